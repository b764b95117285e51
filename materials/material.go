// Package materials holds the fluid material laws referenced by the element
// kernels. Materials are immutable after construction and shared by every
// element that names them.
package materials

import (
	"fmt"
	"math"
)

type MaterialType uint8

const (
	M_Newtonian MaterialType = iota
	M_CarreauYasuda
	M_ModifiedPowerLaw
	M_Permeable
)

var (
	MaterialNames = map[string]MaterialType{
		"newtonian":          M_Newtonian,
		"fluid":              M_Newtonian,
		"carreau_yasuda":     M_CarreauYasuda,
		"modified_power_law": M_ModifiedPowerLaw,
		"permeable":          M_Permeable,
		"darcy":              M_Permeable,
	}
	MaterialPrintNames = []string{"Newtonian", "Carreau-Yasuda", "Modified Power Law", "Permeable (Darcy)"}
)

func (mt MaterialType) Print() (txt string) {
	if int(mt) < len(MaterialPrintNames) {
		return MaterialPrintNames[mt]
	}
	return fmt.Sprintf("MaterialType(%d)", mt)
}

func (mt MaterialType) String() string { return mt.Print() }

func NewMaterialType(label string) (mt MaterialType, err error) {
	var (
		ok bool
	)
	if mt, ok = MaterialNames[label]; !ok {
		err = fmt.Errorf("unknown material type %s", label)
	}
	return
}

type Material interface {
	MaterialType() MaterialType
	Density() float64
}

// ShearThinning materials have a dynamic viscosity depending on the rate of strain
type ShearThinning interface {
	Material
	Viscosity(rateOfStrain float64) float64
}

// Params are named material parameters as read from a material definition
type Params map[string]float64

func (p Params) get(name string, mt MaterialType) (val float64, err error) {
	var ok bool
	if val, ok = p[name]; !ok {
		err = fmt.Errorf("material %s requires parameter %s", mt.Print(), name)
	}
	return
}

// Newtonian fluid with constant dynamic viscosity
type Newtonian struct {
	Dens float64
	Visc float64
}

func (m *Newtonian) MaterialType() MaterialType { return M_Newtonian }
func (m *Newtonian) Density() float64           { return m.Dens }
func (m *Newtonian) Viscosity() float64         { return m.Visc }

func (m *Newtonian) Init(dens float64, prms Params) (err error) {
	m.Dens = dens
	m.Visc, err = prms.get("Viscosity", M_Newtonian)
	return
}

// CarreauYasuda: mu = NuInf + (Nu0 - NuInf) * (1 + (Lambda*rate)^APar)^((BPar-1)/APar)
type CarreauYasuda struct {
	Dens   float64
	Nu0    float64 // zero shear viscosity
	NuInf  float64 // infinite shear viscosity
	Lambda float64 // characteristic time
	APar   float64
	BPar   float64 // power law index
}

func (m *CarreauYasuda) MaterialType() MaterialType { return M_CarreauYasuda }
func (m *CarreauYasuda) Density() float64           { return m.Dens }

func (m *CarreauYasuda) Viscosity(rate float64) float64 {
	return m.NuInf + (m.Nu0-m.NuInf)*math.Pow(1+math.Pow(m.Lambda*rate, m.APar), (m.BPar-1)/m.APar)
}

func (m *CarreauYasuda) Init(dens float64, prms Params) (err error) {
	m.Dens = dens
	for _, p := range []struct {
		name string
		val  *float64
	}{{"Nu0", &m.Nu0}, {"NuInf", &m.NuInf}, {"Lambda", &m.Lambda}, {"APar", &m.APar}, {"BPar", &m.BPar}} {
		if *p.val, err = prms.get(p.name, M_CarreauYasuda); err != nil {
			return
		}
	}
	if m.APar == 0 {
		err = fmt.Errorf("material %s: APar must be non zero", M_CarreauYasuda.Print())
	}
	return
}

// ModifiedPowerLaw: mu = MCons * (Delta + rate)^(-AExp)
type ModifiedPowerLaw struct {
	Dens  float64
	MCons float64 // consistency
	Delta float64 // regularization of the zero rate limit
	AExp  float64
}

func (m *ModifiedPowerLaw) MaterialType() MaterialType { return M_ModifiedPowerLaw }
func (m *ModifiedPowerLaw) Density() float64           { return m.Dens }

func (m *ModifiedPowerLaw) Viscosity(rate float64) float64 {
	return m.MCons * math.Pow(m.Delta+rate, -m.AExp)
}

func (m *ModifiedPowerLaw) Init(dens float64, prms Params) (err error) {
	m.Dens = dens
	if m.MCons, err = prms.get("MCons", M_ModifiedPowerLaw); err != nil {
		return
	}
	if m.Delta, err = prms.get("Delta", M_ModifiedPowerLaw); err != nil {
		return
	}
	m.AExp, err = prms.get("AExp", M_ModifiedPowerLaw)
	return
}

// Permeable (Darcy-Stokes) fluid
type Permeable struct {
	Dens         float64
	Visc         float64
	Permeability float64
}

func (m *Permeable) MaterialType() MaterialType { return M_Permeable }
func (m *Permeable) Density() float64           { return m.Dens }
func (m *Permeable) Viscosity() float64         { return m.Visc }

func (m *Permeable) Init(dens float64, prms Params) (err error) {
	m.Dens = dens
	if m.Visc, err = prms.get("Viscosity", M_Permeable); err != nil {
		return
	}
	if m.Permeability, err = prms.get("Permeability", M_Permeable); err != nil {
		return
	}
	if m.Permeability <= 0 {
		err = fmt.Errorf("material %s: permeability must be positive", M_Permeable.Print())
	}
	return
}
