package Shape2D

// ShpFunc fills values, parametric first derivatives (r, s) and, when second
// is set, parametric second derivatives (rr, ss, rs) at (r, s)
type ShpFunc func(N []float64, dN [2][]float64, d2N [3][]float64, r, s float64, second bool)

var (
	quadCorner = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	// quad9 node positions; quad8 uses the first eight
	quadNodes = [9][2]float64{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
		{0, 0},
	}
)

func tri3Func(N []float64, dN [2][]float64, d2N [3][]float64, r, s float64, second bool) {
	N[0], N[1], N[2] = 1-r-s, r, s
	dN[0][0], dN[0][1], dN[0][2] = -1, 1, 0
	dN[1][0], dN[1][1], dN[1][2] = -1, 0, 1
	if second {
		for k := 0; k < 3; k++ {
			d2N[k][0], d2N[k][1], d2N[k][2] = 0, 0, 0
		}
	}
}

func tri6Func(N []float64, dN [2][]float64, d2N [3][]float64, r, s float64, second bool) {
	t := 1 - r - s
	N[0] = t * (2*t - 1)
	N[1] = r * (2*r - 1)
	N[2] = s * (2*s - 1)
	N[3] = 4 * r * t
	N[4] = 4 * r * s
	N[5] = 4 * s * t

	dN[0][0] = 1 - 4*t
	dN[0][1] = 4*r - 1
	dN[0][2] = 0
	dN[0][3] = 4 * (t - r)
	dN[0][4] = 4 * s
	dN[0][5] = -4 * s

	dN[1][0] = 1 - 4*t
	dN[1][1] = 0
	dN[1][2] = 4*s - 1
	dN[1][3] = -4 * r
	dN[1][4] = 4 * r
	dN[1][5] = 4 * (t - s)

	if second {
		copy(d2N[0], []float64{4, 4, 0, -8, 0, 0})
		copy(d2N[1], []float64{4, 0, 4, 0, 0, -8})
		copy(d2N[2], []float64{4, 0, 0, -4, 4, -4})
	}
}

func quad4Func(N []float64, dN [2][]float64, d2N [3][]float64, r, s float64, second bool) {
	for i, rs := range quadCorner {
		ri, si := rs[0], rs[1]
		N[i] = 0.25 * (1 + r*ri) * (1 + s*si)
		dN[0][i] = 0.25 * ri * (1 + s*si)
		dN[1][i] = 0.25 * si * (1 + r*ri)
		if second {
			d2N[0][i] = 0
			d2N[1][i] = 0
			d2N[2][i] = 0.25 * ri * si
		}
	}
}

func quad8Func(N []float64, dN [2][]float64, d2N [3][]float64, r, s float64, second bool) {
	for i := 0; i < 8; i++ {
		ri, si := quadNodes[i][0], quadNodes[i][1]
		switch {
		case i < 4:
			a, b := 1+r*ri, 1+s*si
			N[i] = 0.25 * a * b * (r*ri + s*si - 1)
			dN[0][i] = 0.25 * ri * b * (2*r*ri + s*si)
			dN[1][i] = 0.25 * si * a * (r*ri + 2*s*si)
			if second {
				d2N[0][i] = 0.5 * b
				d2N[1][i] = 0.5 * a
				d2N[2][i] = 0.25 * ri * si * (2*r*ri + 2*s*si + 1)
			}
		case ri == 0:
			N[i] = 0.5 * (1 - r*r) * (1 + s*si)
			dN[0][i] = -r * (1 + s*si)
			dN[1][i] = 0.5 * si * (1 - r*r)
			if second {
				d2N[0][i] = -(1 + s*si)
				d2N[1][i] = 0
				d2N[2][i] = -r * si
			}
		default:
			N[i] = 0.5 * (1 + r*ri) * (1 - s*s)
			dN[0][i] = 0.5 * ri * (1 - s*s)
			dN[1][i] = -s * (1 + r*ri)
			if second {
				d2N[0][i] = 0
				d2N[1][i] = -(1 + r*ri)
				d2N[2][i] = -ri * s
			}
		}
	}
}

// 1D quadratic Lagrange polynomial attached to node position xi in {-1, 0, 1}
func lagrange2(x, xi float64) (l, dl, d2l float64) {
	switch xi {
	case -1:
		return 0.5 * x * (x - 1), x - 0.5, 1
	case 0:
		return 1 - x*x, -2 * x, -2
	default:
		return 0.5 * x * (x + 1), x + 0.5, 1
	}
}

func quad9Func(N []float64, dN [2][]float64, d2N [3][]float64, r, s float64, second bool) {
	for i, rs := range quadNodes {
		lr, dlr, d2lr := lagrange2(r, rs[0])
		ls, dls, d2ls := lagrange2(s, rs[1])
		N[i] = lr * ls
		dN[0][i] = dlr * ls
		dN[1][i] = lr * dls
		if second {
			d2N[0][i] = d2lr * ls
			d2N[1][i] = lr * d2ls
			d2N[2][i] = dlr * dls
		}
	}
}
