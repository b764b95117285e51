// Package discretization is the global layer the element kernels talk to:
// named state vectors, dof maps, volume conditions, materials, time curves
// and the assembly of element contributions into global sparse storage.
package discretization

import (
	"github.com/notargets/vmmfluid/materials"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

// Discretization is consumed by element evaluations. Implementations must
// allow concurrent readers.
type Discretization interface {
	GetState(name types.StateName) (utils.Vector, error)
	NodeCoords(nodeID int) [types.NSD]float64
	// VolumeNeumann returns the volume condition attached to a node, nil if none
	VolumeNeumann(nodeID int) *Condition
	// Material returns nil for an unknown ID
	Material(id int) materials.Material
	Curve(id int) TimeCurve
	Function(id int) SpatialFunction
}

// ExtractMyValues gathers the entries of a global vector named by the
// location vector lm
func ExtractMyValues(global utils.Vector, lm utils.Index) (local []float64) {
	var (
		data = global.Data()
	)
	local = make([]float64, len(lm))
	for i, gi := range lm {
		local[i] = data[gi]
	}
	return
}

// Condition is a volume Neumann load, one entry per spatial component. A
// negative curve or function index means none.
type Condition struct {
	OnOff [types.NSD]bool
	Val   [types.NSD]float64
	Curve [types.NSD]int
	Funct [types.NSD]int
}

func NewCondition(val [types.NSD]float64) (c *Condition) {
	c = &Condition{
		Val:   val,
		Curve: [types.NSD]int{-1, -1},
		Funct: [types.NSD]int{-1, -1},
	}
	for i := range val {
		c.OnOff[i] = true
	}
	return
}

// HasFunction reports a spatial variation in any component
func (c *Condition) HasFunction() bool {
	for i := range c.Funct {
		if c.OnOff[i] && c.Funct[i] >= 0 {
			return true
		}
	}
	return false
}

// Value is the load component at node coordinates x and time t
func (c *Condition) Value(dis Discretization, component int, x [types.NSD]float64, t float64) (val float64) {
	if !c.OnOff[component] {
		return
	}
	val = c.Val[component]
	if ci := c.Curve[component]; ci >= 0 {
		val *= dis.Curve(ci).Value(t)
	}
	if fi := c.Funct[component]; fi >= 0 {
		val *= dis.Function(fi).Evaluate(component, x, t)
	}
	return
}
