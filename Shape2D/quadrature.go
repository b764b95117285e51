package Shape2D

import "math"

// IntegrationRule lists points in the parametric domain. The order of the
// points is fixed; per point history stored by element kernels is indexed
// by it.
type IntegrationRule struct {
	R, S, W []float64
}

func (ir IntegrationRule) NumPoints() int { return len(ir.W) }

func (ir IntegrationRule) Point(i int) (r, s, w float64) {
	return ir.R[i], ir.S[i], ir.W[i]
}

// tensorRule builds the product of a 1D Gauss rule with itself, r running fastest
func tensorRule(x, w []float64) (ir IntegrationRule) {
	n := len(x)
	ir = IntegrationRule{
		R: make([]float64, n*n),
		S: make([]float64, n*n),
		W: make([]float64, n*n),
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			k := j*n + i
			ir.R[k], ir.S[k], ir.W[k] = x[i], x[j], w[i]*w[j]
		}
	}
	return
}

var (
	gauss1D2 = []float64{-1. / math.Sqrt(3.), 1. / math.Sqrt(3.)}
	gauss1D3 = []float64{-math.Sqrt(3. / 5.), 0, math.Sqrt(3. / 5.)}

	quadRule2x2 = tensorRule(gauss1D2, []float64{1, 1})
	quadRule3x3 = tensorRule(gauss1D3, []float64{5. / 9., 8. / 9., 5. / 9.})
	quadCenter  = IntegrationRule{R: []float64{0}, S: []float64{0}, W: []float64{4}}

	triRule3 = IntegrationRule{
		R: []float64{1. / 6., 2. / 3., 1. / 6.},
		S: []float64{1. / 6., 1. / 6., 2. / 3.},
		W: []float64{1. / 6., 1. / 6., 1. / 6.},
	}
	triRule6  = newTriRule6()
	triCenter = IntegrationRule{R: []float64{1. / 3.}, S: []float64{1. / 3.}, W: []float64{0.5}}
)

// Symmetric degree 4 rule on the unit triangle
func newTriRule6() IntegrationRule {
	const (
		a  = 0.445948490915965
		b  = 0.091576213509771
		wa = 0.111690794839005
		wb = 0.054975871827661
	)
	return IntegrationRule{
		R: []float64{a, 1 - 2*a, a, b, 1 - 2*b, b},
		S: []float64{a, a, 1 - 2*a, b, b, 1 - 2*b},
		W: []float64{wa, wa, wa, wb, wb, wb},
	}
}
