package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is the global tangent under assembly. Entries are accumulated, then
// converted to CSR for products.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) AddAt(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

// AddBlock scatters a dense element block into the rows and columns named by lm
func (m DOK) AddBlock(lm Index, K Matrix) DOK { // Changes receiver
	var (
		nr, nc = K.Dims()
	)
	if nr != len(lm) || nc != len(lm) {
		panic(fmt.Errorf("element block %d x %d does not match location vector length %d", nr, nc, len(lm)))
	}
	m.checkWritable()
	for i, gi := range lm {
		for j, gj := range lm {
			if val := K.At(i, j); val != 0 {
				m.M.Set(gi, gj, m.M.At(gi, gj)+val)
			}
		}
	}
	return m
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

type CSR struct {
	M    *sparse.CSR
	name string
}

func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

func (m CSR) MulVec(v Vector) (R Vector) {
	var (
		nr, _ = m.Dims()
	)
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}
