// Package Fluid2D implements the residual based variational multiscale
// element for the incompressible Navier Stokes equations in two dimensions,
// integrated in time with the generalized-alpha method.
package Fluid2D

import (
	"fmt"

	"github.com/notargets/vmmfluid/Shape2D"
	"github.com/notargets/vmmfluid/discretization"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

// Element is one fluid cell. Subscales is owned by the element and is only
// touched by evaluations of this element.
type Element struct {
	ID         int
	Shape      Shape2D.ShapeType
	Nodes      []int
	MaterialID int
	Nurbs      *Shape2D.NurbsCell // knots and weights, NURBS shapes only
	Subscales  SubscaleHistory
	topo       *Shape2D.Topology
}

func NewElement(id int, shape Shape2D.ShapeType, nodes []int, materialID int) (e *Element) {
	var (
		tp = Shape2D.NewTopology(shape)
	)
	if len(nodes) != tp.Nen {
		panic(fmt.Errorf("element %d: shape %s needs %d nodes, have %d", id, shape, tp.Nen, len(nodes)))
	}
	e = &Element{
		ID:         id,
		Shape:      shape,
		Nodes:      nodes,
		MaterialID: materialID,
		topo:       tp,
	}
	return
}

func (e *Element) Topology() *Shape2D.Topology { return e.topo }

// NumDOF is the dimension of the element matrix
func (e *Element) NumDOF() int { return types.NDOF * e.topo.Nen }

// variant selects one of the four assemblers
type variant struct {
	conservative  bool
	timeDependent bool
	centerTau     bool // one tau per element, evaluated at the center
}

// Evaluate computes the element matrix K and vector F, the negative
// residual. Both are owned and zeroed by the caller; K may be nil for
// residual only evaluations. Time dependent subscales of this element are
// updated in place.
func (e *Element) Evaluate(p *Parameters, dis discretization.Discretization, lm utils.Index,
	K *utils.Matrix, F utils.Vector) {
	var (
		nd         = e.NumDOF()
		withMatrix = p.Action == CalcSysmatAndResidual
	)
	if len(lm) != nd || F.Len() != nd {
		panic(fmt.Errorf("element %d: location vector %d, vector %d, need %d", e.ID, len(lm), F.Len(), nd))
	}
	if withMatrix {
		if K == nil {
			panic(fmt.Errorf("element %d: matrix requested without storage", e.ID))
		}
		if nr, nc := K.Dims(); nr != nd || nc != nd {
			panic(fmt.Errorf("element %d: matrix is %d x %d, need %d x %d", e.ID, nr, nc, nd, nd))
		}
	} else {
		K = nil
	}
	if e.topo.IsNurbs {
		if e.Nurbs == nil {
			panic(fmt.Errorf("element %d: shape %s needs knot vectors and weights", e.ID, e.Shape))
		}
		// interpolated knot, the cell has no extent
		if e.Nurbs.ZeroSized() {
			return
		}
	}
	p.Check()
	ed := e.setup(p, dis, lm)
	switch {
	case p.ConvForm == Convective && p.Subscales == QuasiStatic:
		e.sysmatAdvQS(p, ed, K, F)
	case p.ConvForm == Convective && p.Subscales == TimeDependent:
		e.sysmatAdvTD(p, ed, K, F)
	case p.ConvForm == Conservative && p.Subscales == QuasiStatic:
		e.sysmatConsQS(p, ed, K, F)
	case p.ConvForm == Conservative && p.Subscales == TimeDependent:
		e.sysmatConsTD(p, ed, K, F)
	default:
		configPanic("no assembler for convection form %d with subscales %d", p.ConvForm, p.Subscales)
	}
}

// sysmatAdvQS reuses the element center tau at every Gauss point
func (e *Element) sysmatAdvQS(p *Parameters, ed *eleData, K *utils.Matrix, F utils.Vector) {
	e.sysmat(p, ed, variant{centerTau: true}, K, F)
}

func (e *Element) sysmatAdvTD(p *Parameters, ed *eleData, K *utils.Matrix, F utils.Vector) {
	e.sysmat(p, ed, variant{timeDependent: true}, K, F)
}

func (e *Element) sysmatConsQS(p *Parameters, ed *eleData, K *utils.Matrix, F utils.Vector) {
	e.sysmat(p, ed, variant{conservative: true}, K, F)
}

func (e *Element) sysmatConsTD(p *Parameters, ed *eleData, K *utils.Matrix, F utils.Vector) {
	e.sysmat(p, ed, variant{conservative: true, timeDependent: true}, K, F)
}
