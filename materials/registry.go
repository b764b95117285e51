package materials

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Definition is one material entry of an input deck
type Definition struct {
	Type    string  `json:"Type"`
	Density float64 `json:"Density"`
	Params  Params  `json:"Params"`
}

// Registry maps material IDs to materials. It is built once and only read
// afterwards, so concurrent element evaluations may share it.
type Registry struct {
	mats map[int]Material
}

func New(def Definition) (m Material, err error) {
	var (
		mt MaterialType
	)
	if mt, err = NewMaterialType(def.Type); err != nil {
		return
	}
	if def.Density <= 0 {
		err = fmt.Errorf("material %s: density must be positive, have %v", mt.Print(), def.Density)
		return
	}
	switch mt {
	case M_Newtonian:
		mm := &Newtonian{}
		err, m = mm.Init(def.Density, def.Params), mm
	case M_CarreauYasuda:
		mm := &CarreauYasuda{}
		err, m = mm.Init(def.Density, def.Params), mm
	case M_ModifiedPowerLaw:
		mm := &ModifiedPowerLaw{}
		err, m = mm.Init(def.Density, def.Params), mm
	case M_Permeable:
		mm := &Permeable{}
		err, m = mm.Init(def.Density, def.Params), mm
	}
	return
}

func NewRegistry(defs map[int]Definition) (r *Registry, err error) {
	r = &Registry{mats: make(map[int]Material, len(defs))}
	for id, def := range defs {
		var m Material
		if m, err = New(def); err != nil {
			err = fmt.Errorf("material %d: %w", id, err)
			return nil, err
		}
		r.mats[id] = m
	}
	return
}

// NewRegistryFromYAML reads a map of material ID to Definition
func NewRegistryFromYAML(data []byte) (r *Registry, err error) {
	var (
		defs map[int]Definition
	)
	if err = yaml.Unmarshal(data, &defs); err != nil {
		return
	}
	return NewRegistry(defs)
}

// Add registers m under id, used while building a registry by hand
func (r *Registry) Add(id int, m Material) *Registry {
	if r.mats == nil {
		r.mats = make(map[int]Material)
	}
	r.mats[id] = m
	return r
}

func (r *Registry) Material(id int) (m Material, ok bool) {
	m, ok = r.mats[id]
	return
}

func (r *Registry) IDs() (ids []int) {
	for id := range r.mats {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return
}

func (r *Registry) Print() {
	for _, id := range r.IDs() {
		m := r.mats[id]
		fmt.Printf("Material[%d] = %s, density %8.5f\n", id, m.MaterialType().Print(), m.Density())
	}
}
