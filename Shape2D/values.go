package Shape2D

import (
	"fmt"
	"math"

	"github.com/notargets/vmmfluid/utils"
)

// Values is the integration point scratchpad of one element evaluation
type Values struct {
	Topo    *Topology
	N       []float64    // [nen] shape functions
	DerivR  [2][]float64 // [r,s][nen]
	Deriv2R [3][]float64 // [rr,ss,rs][nen]
	Xjm     [2][2]float64
	Xji     [2][2]float64
	Det     float64
	Fac     float64      // integration weight times Det
	Derxy   [2][]float64 // [x,y][nen]
	Derxy2  [3][]float64 // [xx,yy,xy][nen]
	bm      utils.Matrix
	rhs     utils.Matrix
}

func NewValues(tp *Topology) (sv *Values) {
	var (
		nen = tp.Nen
	)
	sv = &Values{
		Topo: tp,
		N:    make([]float64, nen),
		bm:   utils.NewMatrix(3, 3),
		rhs:  utils.NewMatrix(3, nen),
	}
	for i := 0; i < 2; i++ {
		sv.DerivR[i] = make([]float64, nen)
		sv.Derxy[i] = make([]float64, nen)
	}
	for i := 0; i < 3; i++ {
		sv.Deriv2R[i] = make([]float64, nen)
		sv.Derxy2[i] = make([]float64, nen)
	}
	return
}

// Evaluate computes the parametric quantities at (r, s). NURBS shapes need
// the element's cell.
func (sv *Values) Evaluate(r, s float64, second bool, nurbs *NurbsCell) {
	if sv.Topo.IsNurbs {
		if nurbs == nil {
			panic(fmt.Errorf("shape %s needs knot vectors and weights", sv.Topo.Shape))
		}
		nurbs.Eval(sv.N, sv.DerivR, sv.Deriv2R, r, s, second)
		return
	}
	sv.Topo.Func(sv.N, sv.DerivR, sv.Deriv2R, r, s, second)
}

// Map computes the Jacobian, the integration factor and the global
// derivatives for nodal coordinates x. Second derivatives are zero filled
// unless requested.
func (sv *Values) Map(x [][2]float64, weight float64, eleID int, second bool) {
	var (
		nen = sv.Topo.Nen
	)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum float64
			for k := 0; k < nen; k++ {
				sum += sv.DerivR[i][k] * x[k][j]
			}
			sv.Xjm[i][j] = sum
		}
	}
	sv.Det = sv.Xjm[0][0]*sv.Xjm[1][1] - sv.Xjm[0][1]*sv.Xjm[1][0]
	if sv.Det < 0 {
		panic(&DegenerateElementError{EleID: eleID, Det: sv.Det, Reason: "negative jacobian determinant"})
	}
	if sv.Det < MinDet {
		panic(&DegenerateElementError{EleID: eleID, Det: sv.Det, Reason: "vanishing jacobian determinant"})
	}
	sv.Fac = weight * sv.Det
	oodet := 1. / sv.Det
	sv.Xji[0][0] = sv.Xjm[1][1] * oodet
	sv.Xji[0][1] = -sv.Xjm[0][1] * oodet
	sv.Xji[1][0] = -sv.Xjm[1][0] * oodet
	sv.Xji[1][1] = sv.Xjm[0][0] * oodet
	for k := 0; k < nen; k++ {
		sv.Derxy[0][k] = sv.Xji[0][0]*sv.DerivR[0][k] + sv.Xji[0][1]*sv.DerivR[1][k]
		sv.Derxy[1][k] = sv.Xji[1][0]*sv.DerivR[0][k] + sv.Xji[1][1]*sv.DerivR[1][k]
	}
	if second {
		sv.secondDerivatives(x, eleID)
		return
	}
	for i := 0; i < 3; i++ {
		for k := range sv.Derxy2[i] {
			sv.Derxy2[i][k] = 0
		}
	}
}

// secondDerivatives solves the chain rule for the global second derivatives
// with the 3x3 "Jacobian bar" system
func (sv *Values) secondDerivatives(x [][2]float64, eleID int) {
	var (
		nen      = sv.Topo.Nen
		xr, yr   = sv.Xjm[0][0], sv.Xjm[0][1]
		xs, ys   = sv.Xjm[1][0], sv.Xjm[1][1]
		xder2    [3][2]float64
		bm, rhs  = sv.bm, sv.rhs
		rhsData  = rhs.Data()
		solution []float64
	)
	for i := 0; i < 3; i++ {
		for k := 0; k < nen; k++ {
			xder2[i][0] += sv.Deriv2R[i][k] * x[k][0]
			xder2[i][1] += sv.Deriv2R[i][k] * x[k][1]
		}
	}
	bm.Set(0, 0, xr*xr).Set(0, 1, yr*yr).Set(0, 2, 2*xr*yr)
	bm.Set(1, 0, xs*xs).Set(1, 1, ys*ys).Set(1, 2, 2*xs*ys)
	bm.Set(2, 0, xr*xs).Set(2, 1, yr*ys).Set(2, 2, xr*ys+xs*yr)
	for i := 0; i < 3; i++ {
		for k := 0; k < nen; k++ {
			rhsData[i*nen+k] = sv.Deriv2R[i][k] -
				xder2[i][0]*sv.Derxy[0][k] - xder2[i][1]*sv.Derxy[1][k]
		}
	}
	if ok := bm.LUSolve(rhs); !ok {
		panic(&DegenerateElementError{EleID: eleID, Det: sv.Det, Reason: "singular second derivative system"})
	}
	solution = rhs.Data()
	for i := 0; i < 3; i++ {
		copy(sv.Derxy2[i], solution[i*nen:(i+1)*nen])
	}
	if utils.IsNan(solution) {
		panic(&DegenerateElementError{EleID: eleID, Det: math.NaN(), Reason: "second derivatives not finite"})
	}
}

// Interpolate returns sum_k N[k]*f[k]
func (sv *Values) Interpolate(f []float64) (val float64) {
	for k, n := range sv.N {
		val += n * f[k]
	}
	return
}
