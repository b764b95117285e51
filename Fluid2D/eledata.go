package Fluid2D

import (
	"fmt"
	"math"

	"github.com/notargets/vmmfluid/Shape2D"
	"github.com/notargets/vmmfluid/discretization"
	"github.com/notargets/vmmfluid/materials"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

// eleData is gathered once per evaluation, nodal fields laid out [i][node]
type eleData struct {
	nen        int
	xyze       [][types.NSD]float64
	evelnp     [2][]float64
	evelaf     [2][]float64
	eaccam     [2][]float64
	egridv     [2][]float64
	eprenp     []float64
	edeadaf    [2][]float64 // nodal body force at n+alphaF
	constForce bool
	force      [2]float64 // body force when constant over the element
	mat        materials.Material
	dens       float64
	hk, mk     float64
	visc       float64 // kinematic viscosity at the element center
	sv         *Shape2D.Values
}

func (e *Element) setup(p *Parameters, dis discretization.Discretization, lm utils.Index) (ed *eleData) {
	var (
		nen = e.topo.Nen
	)
	ed = &eleData{
		nen:    nen,
		xyze:   make([][types.NSD]float64, nen),
		eprenp: make([]float64, nen),
		sv:     Shape2D.NewValues(e.topo),
	}
	for i := 0; i < 2; i++ {
		ed.evelnp[i] = make([]float64, nen)
		ed.evelaf[i] = make([]float64, nen)
		ed.eaccam[i] = make([]float64, nen)
		ed.egridv[i] = make([]float64, nen)
		ed.edeadaf[i] = make([]float64, nen)
	}
	velnp := e.extract(dis, types.Velnp, lm)
	velaf := e.extract(dis, types.Velaf, lm)
	accam := e.extract(dis, types.Accam, lm)
	for a := 0; a < nen; a++ {
		for i := 0; i < 2; i++ {
			ed.evelnp[i][a] = velnp[a*types.NDOF+i]
			ed.evelaf[i][a] = velaf[a*types.NDOF+i]
			ed.eaccam[i][a] = accam[a*types.NDOF+i]
		}
		ed.eprenp[a] = velnp[a*types.NDOF+2]
		ed.xyze[a] = dis.NodeCoords(e.Nodes[a])
	}
	if p.ALE {
		dispnp := e.extract(dis, types.Dispnp, lm)
		gridv := e.extract(dis, types.Gridvelaf, lm)
		for a := 0; a < nen; a++ {
			for i := 0; i < 2; i++ {
				ed.xyze[a][i] += dispnp[a*types.NDOF+i]
				ed.egridv[i][a] = gridv[a*types.NDOF+i]
			}
		}
	}
	e.bodyForce(p, dis, ed)
	e.material(dis, ed)
	e.center(ed)
	return
}

func (e *Element) extract(dis discretization.Discretization, name types.StateName, lm utils.Index) []float64 {
	v, err := dis.GetState(name)
	if err != nil {
		panic(fmt.Errorf("element %d: %v", e.ID, err))
	}
	return discretization.ExtractMyValues(v, lm)
}

// bodyForce evaluates the volume Neumann condition at the intermediate time
// level. A single condition without spatial function shared by all nodes is
// constant over the element.
func (e *Element) bodyForce(p *Parameters, dis discretization.Discretization, ed *eleData) {
	var (
		taf   = p.Time - (1-p.AlphaF)*p.Dt
		conds = make([]*discretization.Condition, ed.nen)
		same  = true
	)
	for a, node := range e.Nodes {
		conds[a] = dis.VolumeNeumann(node)
		if conds[a] != conds[0] {
			same = false
		}
	}
	if same && conds[0] != nil && !conds[0].HasFunction() {
		ed.constForce = true
		for i := 0; i < 2; i++ {
			ed.force[i] = conds[0].Value(dis, i, ed.xyze[0], taf)
		}
		return
	}
	if same && conds[0] == nil {
		ed.constForce = true
		return
	}
	for a, cond := range conds {
		if cond == nil {
			continue
		}
		x := dis.NodeCoords(e.Nodes[a])
		for i := 0; i < 2; i++ {
			ed.edeadaf[i][a] = cond.Value(dis, i, x, taf)
		}
	}
}

func (e *Element) material(dis discretization.Discretization, ed *eleData) {
	ed.mat = dis.Material(e.MaterialID)
	if ed.mat == nil {
		configPanic("element %d: unknown material %d", e.ID, e.MaterialID)
	}
	switch ed.mat.(type) {
	case *materials.Newtonian, materials.ShearThinning:
	default:
		configPanic("element %d: material type %s is not supported by the fluid element",
			e.ID, ed.mat.MaterialType())
	}
	ed.dens = ed.mat.Density()
	if ed.dens <= 0 {
		configPanic("element %d: material %d has density %v", e.ID, e.MaterialID, ed.dens)
	}
}

// center computes hk, mk and the material viscosity with the one point rule
func (e *Element) center(ed *eleData) {
	var (
		sv      = ed.sv
		r, s, w = e.topo.Center().Point(0)
		vderxy  [2][2]float64
	)
	sv.Evaluate(r, s, false, e.Nurbs)
	sv.Map(ed.xyze, w, e.ID, false)
	ed.hk = math.Sqrt(sv.Fac)
	ed.mk = e.topo.Mk()
	gradient(sv.Derxy, ed.evelaf, &vderxy)
	ed.visc = ed.viscosity(strainRate(vderxy))
}

// viscosity is the kinematic viscosity at a rate of strain
func (ed *eleData) viscosity(rate float64) float64 {
	switch m := ed.mat.(type) {
	case *materials.Newtonian:
		return m.Viscosity() / ed.dens
	case materials.ShearThinning:
		return m.Viscosity(rate) / ed.dens
	}
	return 0
}

// gradient contracts nodal values with global derivatives, g[i][j] = df_i/dx_j
func gradient(derxy [2][]float64, f [2][]float64, g *[2][2]float64) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum float64
			for a, d := range derxy[j] {
				sum += d * f[i][a]
			}
			g[i][j] = sum
		}
	}
}

// strainRate is sqrt(2 eps:eps)
func strainRate(g [2][2]float64) float64 {
	var (
		exy = 0.5 * (g[0][1] + g[1][0])
	)
	return math.Sqrt(2 * (g[0][0]*g[0][0] + g[1][1]*g[1][1] + 2*exy*exy))
}
