package cmd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/vmmfluid/utils"
)

func TestProcessInput(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
Shape: tri6
Linearisation: Newton
TimeIntegration:
  RhoInf: 1.0
  Dt: 0.05
Stabilization:
  Subscales: time_dependent
  Transient: transient_complete
  SUPG: true
  PSPG: true
  CStab: false
  TauType: codina
Materials:
  1:
    Type: newtonian
    Density: 1.0
    Params:
      Viscosity: 0.05
`)
	deck := filepath.Join(t.TempDir(), "deck.yaml")
	require.Nil(t, os.WriteFile(deck, fileInput, 0644))
	ip := processInput(deck)
	assert.Equal(t, "tri6", ip.Shape)
	assert.Equal(t, 0.5, ip.TimeIntegration.AlphaM)
	assert.Equal(t, 0.5, ip.TimeIntegration.AlphaF)
	assert.Equal(t, 0.5, ip.TimeIntegration.Gamma)
	assert.Equal(t, 0.05, ip.Materials[1].Params["Viscosity"])
	// channel defaults survive a deck that does not set them
	assert.Equal(t, 4., ip.Channel.Length)
	assert.Nil(t, RunElement(ip, true, 1.e-6))
}

func TestRunChannel(t *testing.T) {
	ip := processInput("")
	ip.Shape = "quad9"
	momentum, continuity, err := RunChannel(&ChannelModel{Nx: 4, Ny: 2, ParallelDegree: 2, Steps: 2}, ip)
	require.NoError(t, err)
	assert.InDelta(t, 0, momentum, 1.e-10)
	assert.InDelta(t, 0, continuity, 1.e-10)
	// the instruction counter passes the assembly error through
	_, _, err = RunChannel(&ChannelModel{Nx: 2, Ny: 1, ParallelDegree: 1, Steps: 1, Perf: true}, ip)
	assert.NoError(t, err)
}

func TestCheckResidual(t *testing.T) {
	R := utils.NewVector(3, []float64{1, 2, 3})
	assert.NoError(t, checkResidual(R))
	R.Data()[1] = math.NaN()
	assert.Error(t, checkResidual(R))
	assert.Error(t, countInstructions(func() error { return checkResidual(R) }))
}
