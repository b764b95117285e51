package Channel2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/vmmfluid/InputParameters"
	"github.com/notargets/vmmfluid/types"
)

func TestChannelExactSolution(t *testing.T) {
	for _, shape := range []string{"quad9", "quad8", "tri6"} {
		for _, subscales := range []string{"quasistatic", "time_dependent"} {
			ip := InputParameters.NewFluidParameters()
			ip.Shape = shape
			ip.Stabilization.Subscales = subscales
			ip.Stabilization.VStab = "vstab_gls"
			ip.Stabilization.Cross = "cross_complete"
			ip.Stabilization.Reynolds = "reynolds_complete"
			c := NewChannel(ip, 4, 2, 2, false)
			_, R := c.Assemble()
			momentum, continuity := c.ResidualNorms(R)
			assert.InDeltaf(t, 0, momentum, 1.e-10, "%s %s", shape, subscales)
			assert.InDeltaf(t, 0, continuity, 1.e-10, "%s %s", shape, subscales)
		}
	}
}

func TestChannelParallelAssembly(t *testing.T) {
	ip := InputParameters.NewFluidParameters()
	ip.Shape = "quad4"
	ip.BodyForce = []float64{0.5, -1}
	var (
		results [][]float64
		nnz     []int
	)
	for _, np := range []int{1, 3, 8} {
		c := NewChannel(ip, 6, 4, np, false)
		A, R := c.Assemble()
		results = append(results, R.Data())
		nnz = append(nnz, A.NNZ())
	}
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[0], results[2])
	assert.Equal(t, nnz[0], nnz[2])
}

func TestChannelElementCheck(t *testing.T) {
	ip := InputParameters.NewFluidParameters()
	ip.Shape = "quad9"
	ip.Stabilization.CStab = false
	ip.Stabilization.Subscales = "time_dependent"
	ip.Stabilization.Transient = "transient_complete"
	ip.Stabilization.TauType = "codina"
	ip.TimeIntegration = InputParameters.TimeIntegration{AlphaM: 0.8, AlphaF: 0.6, Gamma: 0.7, Dt: 0.05, Time: 1}
	c := NewChannel(ip, 2, 2, 1, false)
	// leave the exact state so every term contributes
	v, err := c.Mesh.GetState(types.Velaf)
	require.Nil(t, err)
	for i := range v.Data() {
		v.Data()[i] += 0.01 * float64(i%7)
	}
	maxErr, maxK := c.CheckElement(1, 1.e-6)
	assert.Greater(t, maxK, 0.)
	assert.Less(t, maxErr, 1.e-6*maxK)
	K, F := c.EvaluateElement(1)
	assert.Equal(t, 27, F.Len())
	nr, nc := K.Dims()
	assert.Equal(t, [2]int{27, 27}, [2]int{nr, nc})
}

func TestChannelTimeUpdate(t *testing.T) {
	ip := InputParameters.NewFluidParameters()
	ip.Stabilization.Subscales = "time_dependent"
	c := NewChannel(ip, 2, 1, 2, false)
	c.Assemble()
	for _, e := range c.Elements {
		require.Equal(t, 4, e.Subscales.NumPoints())
	}
	svelnp := append([]float64{}, c.Elements[0].Subscales.Svelnp[0]...)
	c.TimeUpdate()
	assert.Equal(t, svelnp, c.Elements[0].Subscales.Sveln[0])
}
