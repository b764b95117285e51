package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a row-major dense matrix backed by gonum. Element tangents,
// Jacobians and nodal field blocks are all carried in this type.
type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:    m,
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }

func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, m.Data())
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.Data()
	)
	R = NewMatrix(nc, nr)
	dataR := R.Data()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			dataR[j*nr+i] = data[i*nc+j]
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.Dims()
		_, ncA = A.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return R
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
	)
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	_, nc := m.Dims()
	m.Data()[i*nc+j] = val
	return m
}

// AddAt accumulates val into entry (i,j), the element assembly primitive
func (m Matrix) AddAt(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	_, nc := m.Dims()
	m.Data()[i*nc+j] += val
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Sub(m.M, A.M)
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	m.checkWritable()
	data := m.Data()
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Zero() Matrix { // Changes receiver
	m.checkWritable()
	data := m.Data()
	for i := range data {
		data[i] = 0
	}
	return m
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("unable to invert, matrix is not square: %d x %d", nr, nc)
		return
	}
	R = m.Copy()
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
	}
	return
}

// LUSolve overwrites B with the solution of m * X = B. The receiver is
// left untouched; ok is false when m is singular.
func (m Matrix) LUSolve(B Matrix) (ok bool) {
	var (
		nr, _ = m.Dims()
		LU    = m.Copy()
		iPiv  = make([]int, nr)
	)
	B.checkWritable()
	if ok = lapack64.Getrf(LU.RawMatrix(), iPiv); !ok {
		return
	}
	lapack64.Getrs(blas.NoTrans, LU.RawMatrix(), B.RawMatrix(), iPiv)
	return
}

func (m Matrix) Col(j int) Vector {
	var (
		data   = m.Data()
		nr, nc = m.Dims()
		vData  = make([]float64, nr)
	)
	for i := range vData {
		vData[i] = data[i*nc+j]
	}
	return NewVector(nr, vData)
}

func (m Matrix) Row(i int) Vector {
	var (
		data  = m.Data()
		_, nc = m.Dims()
		vData = make([]float64, nc)
	)
	copy(vData, data[i*nc:(i+1)*nc])
	return NewVector(nc, vData)
}

func (m Matrix) Min() (min float64) {
	var (
		data = m.Data()
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	var (
		data = m.Data()
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

// MaxAbs is the max norm of the entries, used for relative tolerances
func (m Matrix) MaxAbs() (max float64) {
	for _, val := range m.Data() {
		if val < 0 {
			val = -val
		}
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) Print(msgI ...string) (o string) {
	var (
		name = ""
	)
	if len(msgI) != 0 {
		name = msgI[0]
	}
	o = fmt.Sprintf("%s = \n%v\n", name, mat.Formatted(m.M, mat.Squeeze()))
	return
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
