package types

import "fmt"

// Spatial dimension and dofs per node (ux, uy, p)
const (
	NSD  = 2
	NDOF = NSD + 1
)

//go:generate stringer -type=StateName

// StateName labels a global state vector handed to the element kernels
type StateName uint8

const (
	Velnp     StateName = iota // velocity and pressure at n+1
	Velaf                      // velocity at n+alphaF
	Accam                      // acceleration at n+alphaM
	Dispnp                     // ALE mesh displacement at n+1
	Gridvelaf                  // ALE grid velocity at n+alphaF
)

var StateNameMap = map[string]StateName{
	"velnp":     Velnp,
	"velaf":     Velaf,
	"accam":     Accam,
	"dispnp":    Dispnp,
	"gridvelaf": Gridvelaf,
}

var stateLabels = [...]string{"velnp", "velaf", "accam", "dispnp", "gridvelaf"}

func NewStateName(label string) (sn StateName) {
	var (
		ok bool
	)
	if sn, ok = StateNameMap[label]; !ok {
		panic(fmt.Errorf("unable to use state named %s", label))
	}
	return
}

func (sn StateName) String() string {
	if int(sn) < len(stateLabels) {
		return stateLabels[sn]
	}
	return fmt.Sprintf("StateName(%d)", sn)
}
