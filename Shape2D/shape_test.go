package Shape2D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference node positions for the Lagrange shapes
func refNodes(shape ShapeType) (x [][2]float64) {
	switch shape {
	case Tri3:
		return [][2]float64{{0, 0}, {1, 0}, {0, 1}}
	case Tri6:
		return [][2]float64{{0, 0}, {1, 0}, {0, 1}, {0.5, 0}, {0.5, 0.5}, {0, 0.5}}
	case Quad4:
		return [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	case Quad8:
		x = make([][2]float64, 8)
		for i := range x {
			x[i] = quadNodes[i]
		}
		return
	case Quad9:
		x = make([][2]float64, 9)
		for i := range x {
			x[i] = quadNodes[i]
		}
		return
	}
	return
}

func affine(x [][2]float64) (y [][2]float64) {
	y = make([][2]float64, len(x))
	for i, p := range x {
		y[i] = [2]float64{2 + 1.5*p[0] + 0.3*p[1], -1 + 0.2*p[0] + 0.8*p[1]}
	}
	return
}

func testCell(degree int) *NurbsCell {
	switch degree {
	case 1:
		return NewNurbsCell(1, []float64{0, 0.5}, []float64{0.25, 1}, []float64{1, 0.8, 1.2, 1})
	default:
		return NewNurbsCell(2, []float64{0, 0, 1, 2}, []float64{0, 1, 1.5, 3},
			[]float64{1, 0.9, 1.1, 0.7, 1, 1.3, 1, 0.85, 1})
	}
}

func allValues() (svs []*Values, cells []*NurbsCell) {
	for _, shape := range []ShapeType{Tri3, Tri6, Quad4, Quad8, Quad9, Nurbs4, Nurbs9} {
		tp := NewTopology(shape)
		svs = append(svs, NewValues(tp))
		var cell *NurbsCell
		if tp.IsNurbs {
			cell = testCell(tp.Degree)
		}
		cells = append(cells, cell)
	}
	return
}

func TestPartitionOfUnity(t *testing.T) {
	svs, cells := allValues()
	for n, sv := range svs {
		ir := sv.Topo.Gauss()
		for i := 0; i < ir.NumPoints(); i++ {
			r, s, _ := ir.Point(i)
			sv.Evaluate(r, s, true, cells[n])
			var sum, sr, ss, srr, sss, srs float64
			for k := 0; k < sv.Topo.Nen; k++ {
				sum += sv.N[k]
				sr += sv.DerivR[0][k]
				ss += sv.DerivR[1][k]
				srr += sv.Deriv2R[0][k]
				sss += sv.Deriv2R[1][k]
				srs += sv.Deriv2R[2][k]
			}
			assert.InDeltaf(t, 1., sum, 1.e-13, "shape %s", sv.Topo.Shape)
			assert.InDeltaSlicef(t, []float64{0, 0, 0, 0, 0}, []float64{sr, ss, srr, sss, srs}, 1.e-12,
				"shape %s", sv.Topo.Shape)
		}
	}
}

func TestParametricDerivatives(t *testing.T) {
	var (
		h = 1.e-6
	)
	svs, cells := allValues()
	for n, sv := range svs {
		r0, s0 := 0.21, -0.13
		if sv.Topo.IsSimplex {
			s0 = 0.17
		}
		nen := sv.Topo.Nen
		val := func(r, s float64) (N []float64, dr, ds []float64) {
			sv.Evaluate(r, s, false, cells[n])
			N = append([]float64{}, sv.N...)
			dr = append([]float64{}, sv.DerivR[0]...)
			ds = append([]float64{}, sv.DerivR[1]...)
			return
		}
		Np, drp, dsp := val(r0+h, s0)
		Nm, drm, dsm := val(r0-h, s0)
		Nq, _, dsq := val(r0, s0+h)
		Nl, _, dsl := val(r0, s0-h)
		sv.Evaluate(r0, s0, true, cells[n])
		for k := 0; k < nen; k++ {
			assert.InDeltaf(t, (Np[k]-Nm[k])/(2*h), sv.DerivR[0][k], 1.e-7, "%s dN/dr", sv.Topo.Shape)
			assert.InDeltaf(t, (Nq[k]-Nl[k])/(2*h), sv.DerivR[1][k], 1.e-7, "%s dN/ds", sv.Topo.Shape)
			assert.InDeltaf(t, (drp[k]-drm[k])/(2*h), sv.Deriv2R[0][k], 1.e-6, "%s d2N/dr2", sv.Topo.Shape)
			assert.InDeltaf(t, (dsq[k]-dsl[k])/(2*h), sv.Deriv2R[1][k], 1.e-6, "%s d2N/ds2", sv.Topo.Shape)
			assert.InDeltaf(t, (dsp[k]-dsm[k])/(2*h), sv.Deriv2R[2][k], 1.e-6, "%s d2N/drds", sv.Topo.Shape)
		}
	}
}

func TestAffineJacobian(t *testing.T) {
	for _, shape := range []ShapeType{Tri3, Tri6, Quad4, Quad8, Quad9} {
		var (
			tp   = NewTopology(shape)
			sv   = NewValues(tp)
			x    = affine(refNodes(shape))
			ir   = tp.Gauss()
			area float64
		)
		for i := 0; i < ir.NumPoints(); i++ {
			r, s, w := ir.Point(i)
			sv.Evaluate(r, s, true, nil)
			sv.Map(x, w, 7, tp.HigherOrder())
			// x = A xi + b, det A = 1.5*0.8 - 0.3*0.2
			assert.InDelta(t, 1.14, sv.Det, 1.e-12)
			area += sv.Fac
			// quadratic field f = x^2 + 3xy - y^2 is reproduced by quadratic shapes
			if tp.Degree == 2 {
				var fxx, fyy, fxy, fx float64
				for k := 0; k < tp.Nen; k++ {
					xk, yk := x[k][0], x[k][1]
					f := xk*xk + 3*xk*yk - yk*yk
					fx += sv.Derxy[0][k] * f
					fxx += sv.Derxy2[0][k] * f
					fyy += sv.Derxy2[1][k] * f
					fxy += sv.Derxy2[2][k] * f
				}
				xg := [2]float64{sv.Interpolate(col(x, 0)), sv.Interpolate(col(x, 1))}
				assert.InDelta(t, 2*xg[0]+3*xg[1], fx, 1.e-10)
				assert.InDeltaSlice(t, []float64{2, -2, 3}, []float64{fxx, fyy, fxy}, 1.e-10)
			}
		}
		refArea := 4.
		if tp.IsSimplex {
			refArea = 0.5
		}
		assert.InDeltaf(t, 1.14*refArea, area, 1.e-12, "shape %s", shape)
	}
}

func col(x [][2]float64, j int) (c []float64) {
	c = make([]float64, len(x))
	for i := range x {
		c[i] = x[i][j]
	}
	return
}

func TestDegenerateElement(t *testing.T) {
	var (
		tp = NewTopology(Quad4)
		sv = NewValues(tp)
		// clockwise node order inverts the element
		x = [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	)
	sv.Evaluate(0, 0, false, nil)
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			var de *DegenerateElementError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, 42, de.EleID)
			assert.Less(t, de.Det, 0.)
			assert.False(t, math.IsNaN(de.Det))
		}()
		sv.Map(x, 4, 42, false)
	}()
	// collapsed
	x = [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	assert.Panics(t, func() { sv.Map(x, 4, 3, false) })
}

func TestNurbsZeroSized(t *testing.T) {
	assert.False(t, testCell(1).ZeroSized())
	assert.False(t, testCell(2).ZeroSized())
	nc := NewNurbsCell(2, []float64{0, 1, 1, 2}, []float64{0, 0, 1, 1}, make([]float64, 9))
	assert.True(t, nc.ZeroSized())
	assert.Panics(t, func() { NewNurbsCell(2, []float64{0, 1}, []float64{0, 0, 1, 1}, make([]float64, 9)) })
}

func TestTopology(t *testing.T) {
	assert.Equal(t, Quad9, NewShapeType("quad9"))
	assert.Panics(t, func() { NewShapeType("hex8") })
	assert.Equal(t, 1./3., NewTopology(Quad4).Mk())
	assert.Equal(t, 1./12., NewTopology(Tri6).Mk())
	assert.False(t, NewTopology(Tri3).HigherOrder())
	assert.True(t, NewTopology(Nurbs4).HigherOrder())
	for shape, n := range map[ShapeType]int{Tri3: 3, Tri6: 6, Quad4: 4, Quad8: 9, Quad9: 9, Nurbs4: 4, Nurbs9: 9} {
		assert.Equal(t, n, NewTopology(shape).Gauss().NumPoints())
	}
	assert.Panics(t, func() { NewTopology(ShapeType(99)) })
}
