package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) Vector {
	var data []float64
	if len(dataO) != 0 {
		data = dataO[0]
		if len(data) != n {
			panic(fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data) = %v", n, len(data)))
		}
	} else {
		data = make([]float64, n)
	}
	return Vector{mat.NewVecDense(n, data)}
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }
func (v Vector) Data() []float64          { return v.V.RawVector().Data }

// Chainable (extended) methods
func (v Vector) Set(val float64) Vector {
	var (
		data = v.Data()
	)
	for i := range data {
		data[i] = val
	}
	return v
}

func (v Vector) Zero() Vector { return v.Set(0) }

func (v Vector) AddAt(i int, val float64) Vector {
	v.Data()[i] += val
	return v
}

func (v Vector) Subtract(a Vector) Vector {
	floats.Sub(v.Data(), a.Data())
	return v
}

func (v Vector) Scale(a float64) Vector {
	floats.Scale(a, v.Data())
	return v
}

func (v Vector) Copy() Vector {
	var (
		data = make([]float64, v.Len())
	)
	copy(data, v.Data())
	return NewVector(len(data), data)
}

// Subset gathers the entries addressed by I into a new vector
func (v Vector) Subset(I Index) Vector {
	var (
		data = v.Data()
		r    = make([]float64, len(I))
	)
	for i, ind := range I {
		r[i] = data[ind]
	}
	return NewVector(len(r), r)
}

func (v Vector) Norm() float64 { return floats.Norm(v.Data(), 2) }

func (v Vector) Min() (min float64) { return floats.Min(v.Data()) }

func (v Vector) Max() (max float64) { return floats.Max(v.Data()) }

func (v Vector) Print(msgI ...string) (o string) {
	var (
		name = ""
	)
	if len(msgI) != 0 {
		name = msgI[0]
	}
	o = fmt.Sprintf("%s = \n%v\n", name, mat.Formatted(v.V.T(), mat.Squeeze()))
	return
}
