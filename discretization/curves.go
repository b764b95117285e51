package discretization

import "github.com/notargets/vmmfluid/types"

type TimeCurve interface {
	Value(t float64) float64
}

type SpatialFunction interface {
	Evaluate(component int, x [types.NSD]float64, t float64) float64
}

type ConstantCurve float64

func (c ConstantCurve) Value(t float64) float64 { return float64(c) }

// PolynomialCurve is sum_i Coeffs[i] * t^i
type PolynomialCurve struct {
	Coeffs []float64
}

func (c PolynomialCurve) Value(t float64) (val float64) {
	for i := len(c.Coeffs) - 1; i >= 0; i-- {
		val = val*t + c.Coeffs[i]
	}
	return
}

// RampCurve rises linearly from zero to one over [0, T] and stays at one
type RampCurve struct {
	T float64
}

func (c RampCurve) Value(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= c.T:
		return 1
	}
	return t / c.T
}

// FunctionFn adapts a closure to a SpatialFunction
type FunctionFn func(component int, x [types.NSD]float64, t float64) float64

func (f FunctionFn) Evaluate(component int, x [types.NSD]float64, t float64) float64 {
	return f(component, x, t)
}
