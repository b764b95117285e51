package Shape2D

import "fmt"

type ShapeType uint8

const (
	Tri3 ShapeType = iota
	Tri6
	Quad4
	Quad8
	Quad9
	Nurbs4
	Nurbs9
)

var (
	ShapeNames = map[string]ShapeType{
		"tri3":   Tri3,
		"tri6":   Tri6,
		"quad4":  Quad4,
		"quad8":  Quad8,
		"quad9":  Quad9,
		"nurbs4": Nurbs4,
		"nurbs9": Nurbs9,
	}
	ShapePrintNames = []string{"tri3", "tri6", "quad4", "quad8", "quad9", "nurbs4", "nurbs9"}
)

func (st ShapeType) String() string {
	if int(st) < len(ShapePrintNames) {
		return ShapePrintNames[st]
	}
	return fmt.Sprintf("ShapeType(%d)", st)
}

func (st ShapeType) Print() (txt string) {
	txt = st.String()
	return
}

func NewShapeType(label string) (st ShapeType) {
	var (
		ok bool
	)
	if st, ok = ShapeNames[label]; !ok {
		panic(fmt.Errorf("unable to use shape named %s", label))
	}
	return
}
