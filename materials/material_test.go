package materials

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViscosityLaws(t *testing.T) {
	{ // Carreau-Yasuda: plateaus at both ends, a == 2, b == 0.5
		cy := &CarreauYasuda{Dens: 1, Nu0: 0.056, NuInf: 0.00345, Lambda: 3.313, APar: 2, BPar: 0.3568}
		assert.InDelta(t, cy.Nu0, cy.Viscosity(0), 1.e-15)
		assert.InDelta(t, cy.NuInf, cy.Viscosity(1.e12), 1.e-6)
		rate := 1.7
		exp := cy.NuInf + (cy.Nu0-cy.NuInf)*math.Pow(1+(cy.Lambda*rate)*(cy.Lambda*rate), (cy.BPar-1)/2)
		assert.InDelta(t, exp, cy.Viscosity(rate), 1.e-15)
		// shear thinning
		assert.Greater(t, cy.Viscosity(0.1), cy.Viscosity(10))
	}
	{ // Modified power law
		mp := &ModifiedPowerLaw{Dens: 1, MCons: 2, Delta: 1, AExp: 0.5}
		assert.InDelta(t, 2., mp.Viscosity(0), 1.e-15)
		assert.InDelta(t, 1., mp.Viscosity(3), 1.e-15)
	}
	{
		pm := &Permeable{}
		assert.Error(t, pm.Init(1, Params{"Viscosity": 0.1, "Permeability": 0}))
		assert.NoError(t, pm.Init(1, Params{"Viscosity": 0.1, "Permeability": 0.01}))
		assert.Equal(t, 0.1, pm.Viscosity())
	}
}

func TestRegistryFromYAML(t *testing.T) {
	data := []byte(`
1:
  Type: newtonian
  Density: 1.0
  Params:
    Viscosity: 0.01
2:
  Type: carreau_yasuda
  Density: 1.06
  Params: {Nu0: 0.056, NuInf: 0.00345, Lambda: 3.313, APar: 2.0, BPar: 0.3568}
3:
  Type: modified_power_law
  Density: 1.0
  Params: {MCons: 0.035, Delta: 0.01, AExp: 0.4}
`)
	r, err := NewRegistryFromYAML(data)
	require.Nil(t, err)
	assert.Equal(t, []int{1, 2, 3}, r.IDs())
	m, ok := r.Material(1)
	require.True(t, ok)
	assert.Equal(t, M_Newtonian, m.MaterialType())
	assert.Equal(t, 0.01, m.(*Newtonian).Viscosity())
	m, _ = r.Material(2)
	st, ok := m.(ShearThinning)
	require.True(t, ok)
	assert.Equal(t, 1.06, st.Density())
	_, ok = r.Material(4)
	assert.False(t, ok)

	// concurrent readers
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, _ := r.Material(3)
			assert.InDelta(t, 0.035*math.Pow(0.01, -0.4), m.(ShearThinning).Viscosity(0), 1.e-12)
		}()
	}
	wg.Wait()
}

func TestRegistryErrors(t *testing.T) {
	_, err := NewRegistryFromYAML([]byte("1: {Type: glass, Density: 1}"))
	assert.NotNil(t, err)
	_, err = NewRegistryFromYAML([]byte("1: {Type: newtonian, Density: 1}"))
	assert.ErrorContains(t, err, "Viscosity")
	_, err = NewRegistryFromYAML([]byte("1: {Type: newtonian, Density: 0, Params: {Viscosity: 1}}"))
	assert.NotNil(t, err)
	_, err = NewRegistryFromYAML([]byte("1: {Type: permeable, Density: 1, Params: {Viscosity: 1, Permeability: 0}}"))
	assert.NotNil(t, err)
}
