package discretization

import (
	"testing"

	"github.com/notargets/vmmfluid/Shape2D"
	"github.com/notargets/vmmfluid/materials"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelMesh(t *testing.T) {
	var (
		nx, ny = 3, 2
		L, H   = 3., 1.
	)
	for shape, nNodes := range map[Shape2D.ShapeType]int{
		Shape2D.Quad4: 12,
		Shape2D.Quad8: 12 + 17,
		Shape2D.Quad9: 12 + 17 + 6,
		Shape2D.Tri3:  12,
		Shape2D.Tri6:  12 + 17 + 6,
	} {
		m := NewChannelMesh(shape, nx, ny, L, H)
		assert.Equalf(t, nNodes, m.NumNodes(), "shape %s", shape)
		// positive cell areas adding up to the channel area
		var (
			tp   = Shape2D.NewTopology(shape)
			sv   = Shape2D.NewValues(tp)
			area float64
		)
		for k := 0; k < m.NumCells(); k++ {
			ir := tp.Gauss()
			x := m.CellCoords(k)
			for i := 0; i < ir.NumPoints(); i++ {
				r, s, w := ir.Point(i)
				sv.Evaluate(r, s, false, nil)
				sv.Map(x, w, k, false)
				area += sv.Fac
			}
		}
		assert.InDeltaf(t, L*H, area, 1.e-12, "shape %s", shape)
	}
	assert.Panics(t, func() { NewChannelMesh(Shape2D.Nurbs4, 1, 1, 1, 1) })
}

func TestStatesAndConditions(t *testing.T) {
	m := NewChannelMesh(Shape2D.Quad4, 2, 1, 2, 1)
	m.SetNodalState(types.Velnp, func(x [types.NSD]float64) [types.NDOF]float64 {
		return [types.NDOF]float64{x[0], x[1], 10 * x[0]}
	})
	v, err := m.GetState(types.Velnp)
	require.Nil(t, err)
	lm := m.LM(1)
	assert.Equal(t, utils.Index{3, 4, 5, 6, 7, 8, 15, 16, 17, 12, 13, 14}, lm)
	assert.Equal(t, []float64{1, 0, 10, 2, 0, 20, 2, 1, 20, 1, 1, 10}, ExtractMyValues(v, lm))
	_, err = m.GetState(types.Accam)
	assert.NotNil(t, err)
	assert.Panics(t, func() { m.SetState(types.Accam, utils.NewVector(3)) })

	m.Curves = []TimeCurve{RampCurve{T: 2}, PolynomialCurve{Coeffs: []float64{1, 0, 3}}}
	m.Functions = []SpatialFunction{FunctionFn(func(c int, x [types.NSD]float64, t float64) float64 {
		return x[0] + 1
	})}
	c := NewCondition([types.NSD]float64{2, 3})
	c.Curve[0] = 0
	c.Funct[1] = 0
	m.Conditions[4] = c
	assert.Nil(t, m.VolumeNeumann(0))
	assert.True(t, c.HasFunction())
	assert.InDelta(t, 1., c.Value(m, 0, m.X[4], 1), 1.e-15)
	assert.InDelta(t, 3*(m.X[4][0]+1), c.Value(m, 1, m.X[4], 1), 1.e-15)
	assert.InDelta(t, 13., m.Curve(1).Value(2), 1.e-15)
	assert.Equal(t, 1., m.Curve(0).Value(5))
	assert.Panics(t, func() { m.Curve(2) })

	m.Materials.Add(1, &materials.Newtonian{Dens: 1, Visc: 1})
	assert.NotNil(t, m.Material(1))
	assert.Nil(t, m.Material(2))
	onB := m.Boundary()
	for n := range onB {
		assert.True(t, onB[n]) // a single row of cells has no interior node
	}
}

func TestAssembleDeterministic(t *testing.T) {
	var (
		m  = NewChannelMesh(Shape2D.Quad9, 5, 3, 5, 1)
		tp = Shape2D.NewTopology(m.Shape)
	)
	// scalar Laplacian on the first dof of each node plus a load
	eval := func(k int, K *utils.Matrix, F utils.Vector) {
		var (
			sv = Shape2D.NewValues(tp)
			x  = m.CellCoords(k)
			ir = tp.Gauss()
		)
		for ip := 0; ip < ir.NumPoints(); ip++ {
			r, s, w := ir.Point(ip)
			sv.Evaluate(r, s, false, nil)
			sv.Map(x, w, k, false)
			for a := 0; a < tp.Nen; a++ {
				F.AddAt(a*types.NDOF, sv.Fac*sv.N[a]*x[a][0])
				if K == nil {
					continue
				}
				for b := 0; b < tp.Nen; b++ {
					K.AddAt(a*types.NDOF, b*types.NDOF,
						sv.Fac*(sv.Derxy[0][a]*sv.Derxy[0][b]+sv.Derxy[1][a]*sv.Derxy[1][b]))
				}
			}
		}
	}
	A1, R1 := m.Assemble(eval, 1, true)
	A4, R4 := m.Assemble(eval, 4, true)
	_, R7 := m.Assemble(eval, 7, false)
	assert.Equal(t, R1.Data(), R4.Data())
	assert.Equal(t, R1.Data(), R7.Data())
	assert.Equal(t, A1.NNZ(), A4.NNZ())
	for i := 0; i < m.NumDOF(); i++ {
		for j := 0; j < m.NumDOF(); j++ {
			if A1.At(i, j) != A4.At(i, j) {
				t.Fatalf("entry %d,%d differs: %v != %v", i, j, A1.At(i, j), A4.At(i, j))
			}
		}
	}
	// constants are in the kernel of the Laplacian
	ones := utils.NewVector(m.NumDOF())
	for n := 0; n < m.NumNodes(); n++ {
		ones.Data()[n*types.NDOF] = 1
	}
	prod := A1.ToCSR().MulVec(ones)
	assert.InDelta(t, 0., prod.Norm(), 1.e-12)
}
