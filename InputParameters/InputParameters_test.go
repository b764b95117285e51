package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
Shape: quad9
ConvForm: conservative
TimeIntegration:
  RhoInf: 0.5
  Dt: 0.01
Stabilization:
  Subscales: time_dependent
  Transient: yes_transient
  Cross: cross_complete
  TauType: codina
Materials:
  2:
    Type: carreau_yasuda
    Density: 1.06
    Params: {Nu0: 0.056, NuInf: 0.00345, Lambda: 3.313, APar: 2.0, BPar: 0.3568}
MaterialID: 2
BodyForce: [0, -9.81]
`)
	input := NewFluidParameters()
	require.Nil(t, input.Parse(fileInput))
	assert.Equal(t, "quad9", input.Shape)
	assert.Equal(t, "conservative", input.ConvForm)
	// untouched defaults survive
	assert.Equal(t, "Newton", input.Linearisation)
	assert.True(t, input.Stabilization.PSPG)
	ti := input.TimeIntegration
	assert.InDelta(t, 2.5/3., ti.AlphaM, 1.e-15)
	assert.InDelta(t, 2./3., ti.AlphaF, 1.e-15)
	assert.InDelta(t, 0.5+ti.AlphaM-ti.AlphaF, ti.Gamma, 1.e-15)
	assert.Equal(t, 1.06, input.Materials[2].Density)
	assert.Equal(t, 3.313, input.Materials[2].Params["Lambda"])
	assert.Equal(t, []float64{0, -9.81}, input.BodyForce)
	input.Print()

	err = NewFluidParameters().Parse([]byte("TimeIntegration: {Dt: 0}"))
	assert.NotNil(t, err)
	err = NewFluidParameters().Parse([]byte("TimeIntegration: {RhoInf: 2}"))
	assert.NotNil(t, err)
}
