package Shape2D

import "fmt"

// NurbsCell carries the local knot vectors (2*p knots per direction) and the
// control point weights of one NURBS element. The element occupies the knot
// span [Knots[d][p-1], Knots[d][p]] in each direction d.
type NurbsCell struct {
	Degree  int
	Knots   [2][]float64
	Weights []float64
}

func NewNurbsCell(degree int, knotsU, knotsV, weights []float64) (nc *NurbsCell) {
	var (
		nen = (degree + 1) * (degree + 1)
	)
	if len(knotsU) != 2*degree || len(knotsV) != 2*degree {
		panic(fmt.Errorf("nurbs cell of degree %d needs %d knots per direction, have %d and %d",
			degree, 2*degree, len(knotsU), len(knotsV)))
	}
	if len(weights) != nen {
		panic(fmt.Errorf("nurbs cell of degree %d needs %d weights, have %d", degree, nen, len(weights)))
	}
	nc = &NurbsCell{
		Degree:  degree,
		Knots:   [2][]float64{knotsU, knotsV},
		Weights: weights,
	}
	return
}

// ZeroSized reports a cell collapsed by a repeated (interpolated) knot
func (nc *NurbsCell) ZeroSized() bool {
	p := nc.Degree
	for d := 0; d < 2; d++ {
		if nc.Knots[d][p]-nc.Knots[d][p-1] == 0 {
			return true
		}
	}
	return false
}

// knotCoord maps the natural coordinate in [-1,1] onto the knot span
func (nc *NurbsCell) knotCoord(dir int, r float64) (u, Ju float64) {
	var (
		p      = nc.Degree
		lo, hi = nc.Knots[dir][p-1], nc.Knots[dir][p]
	)
	u = 0.5 * ((hi-lo)*r + (hi + lo))
	Ju = 0.5 * (hi - lo)
	return
}

// bsplineDers evaluates the p+1 non vanishing B-spline basis functions on the
// span [k[p-1], k[p]] and their derivatives up to order n, Cox-de Boor style
func bsplineDers(p int, u float64, k []float64, n int) (ders [3][]float64) {
	var (
		i     = p - 1
		ndu   = make([][]float64, p+1)
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
		a     [2][]float64
	)
	for j := range ndu {
		ndu[j] = make([]float64, p+1)
	}
	for d := range ders {
		ders[d] = make([]float64, p+1)
	}
	if n > p {
		n = p
	}
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - k[i+1-j]
		right[j] = k[i+j] - u
		saved := 0.
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}
	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}
	a[0], a[1] = make([]float64, p+1), make([]float64, p+1)
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for kk := 1; kk <= n; kk++ {
			var (
				d      float64
				rk, pk = r - kk, p - kk
				j1, j2 int
			)
			if r >= kk {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}
			if r-1 <= pk {
				j2 = kk - 1
			} else {
				j2 = p - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][kk] = -a[s1][kk-1] / ndu[pk+1][r]
				d += a[s2][kk] * ndu[r][pk]
			}
			ders[kk][r] = d
			s1, s2 = s2, s1
		}
	}
	fac := float64(p)
	for kk := 1; kk <= n; kk++ {
		for j := 0; j <= p; j++ {
			ders[kk][j] *= fac
		}
		fac *= float64(p - kk)
	}
	return
}

// Eval fills the rational basis and its derivatives with respect to the
// natural coordinates (r, s); node index is j*(p+1)+i with i along u
func (nc *NurbsCell) Eval(N []float64, dN [2][]float64, d2N [3][]float64, r, s float64, second bool) {
	var (
		p        = nc.Degree
		u, Ju    = nc.knotCoord(0, r)
		v, Jv    = nc.knotCoord(1, s)
		bu       = bsplineDers(p, u, nc.Knots[0], 2)
		bv       = bsplineDers(p, v, nc.Knots[1], 2)
		nen      = (p + 1) * (p + 1)
		A        = make([]float64, nen)
		Au, Av   = make([]float64, nen), make([]float64, nen)
		Auu, Avv = make([]float64, nen), make([]float64, nen)
		Auv      = make([]float64, nen)
		W        float64
		Wu, Wv   float64
		Wuu, Wvv float64
		Wuv      float64
	)
	for j := 0; j <= p; j++ {
		for i := 0; i <= p; i++ {
			k := j*(p+1) + i
			w := nc.Weights[k]
			A[k] = bu[0][i] * bv[0][j] * w
			Au[k] = bu[1][i] * bv[0][j] * w
			Av[k] = bu[0][i] * bv[1][j] * w
			Auu[k] = bu[2][i] * bv[0][j] * w
			Avv[k] = bu[0][i] * bv[2][j] * w
			Auv[k] = bu[1][i] * bv[1][j] * w
			W += A[k]
			Wu += Au[k]
			Wv += Av[k]
			Wuu += Auu[k]
			Wvv += Avv[k]
			Wuv += Auv[k]
		}
	}
	for k := 0; k < nen; k++ {
		R := A[k] / W
		Ru := (Au[k] - R*Wu) / W
		Rv := (Av[k] - R*Wv) / W
		N[k] = R
		dN[0][k] = Ru * Ju
		dN[1][k] = Rv * Jv
		if second {
			Ruu := (Auu[k] - 2*Ru*Wu - R*Wuu) / W
			Rvv := (Avv[k] - 2*Rv*Wv - R*Wvv) / W
			Ruv := (Auv[k] - Ru*Wv - Rv*Wu - R*Wuv) / W
			d2N[0][k] = Ruu * Ju * Ju
			d2N[1][k] = Rvv * Jv * Jv
			d2N[2][k] = Ruv * Ju * Jv
		}
	}
}
