package Fluid2D

import (
	"errors"
	"fmt"

	"github.com/notargets/vmmfluid/InputParameters"
)

// ConfigError is raised (panicked) for unknown labels and unsupported
// combinations of formulation switches
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "fluid configuration: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

func configPanic(format string, args ...interface{}) {
	panic(&ConfigError{Err: fmt.Errorf(format, args...)})
}

// IsConfigError reports whether a recovered value is a configuration error
func IsConfigError(r interface{}) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	var ce *ConfigError
	return errors.As(err, &ce)
}

type Action uint8

const (
	CalcSysmatAndResidual Action = iota
	CalcResidual
)

type ConvForm uint8

const (
	Convective ConvForm = iota
	Conservative
)

type Linearisation uint8

// Ordered from the coarsest to the full linearisation
const (
	NoLinearisation Linearisation = iota
	Minimal
	FixedPointLike
	Newton
)

type Subscales uint8

const (
	QuasiStatic Subscales = iota
	TimeDependent
)

type Transient uint8

const (
	NoTransient Transient = iota
	YesTransient
	TransientComplete
)

type VStab uint8

const (
	NoVStab VStab = iota
	VStabGLS
	VStabUSFEM
	VStabGLSRhs
	VStabUSFEMRhs
)

type StressTerm uint8

// Cross and Reynolds stress switches
const (
	NoStress StressTerm = iota
	StressComplete
	StressRhs
)

type TauType uint8

const (
	Tau_Bazilevs TauType = iota
	Tau_FBVW
	Tau_FBVWwoDt
	Tau_FBVC
	Tau_SmoothedFBVW
	Tau_Codina
	Tau_FBVWGradientHk
)

var (
	ActionNames = map[string]Action{
		"calc_fluid_systemmat_and_residual": CalcSysmatAndResidual,
		"calc_fluid_residual":               CalcResidual,
	}
	ConvFormNames = map[string]ConvForm{
		"convective":   Convective,
		"conservative": Conservative,
	}
	LinearisationNames = map[string]Linearisation{
		"no_linearisation": NoLinearisation,
		"minimal":          Minimal,
		"fixed_point_like": FixedPointLike,
		"Newton":           Newton,
	}
	SubscalesNames = map[string]Subscales{
		"quasistatic":    QuasiStatic,
		"time_dependent": TimeDependent,
	}
	TransientNames = map[string]Transient{
		"no_transient":       NoTransient,
		"yes_transient":      YesTransient,
		"transient_complete": TransientComplete,
	}
	VStabNames = map[string]VStab{
		"no_vstab":        NoVStab,
		"vstab_gls":       VStabGLS,
		"vstab_usfem":     VStabUSFEM,
		"vstab_gls_rhs":   VStabGLSRhs,
		"vstab_usfem_rhs": VStabUSFEMRhs,
	}
	CrossNames = map[string]StressTerm{
		"no_cross":       NoStress,
		"cross_complete": StressComplete,
		"cross_rhs":      StressRhs,
	}
	ReynoldsNames = map[string]StressTerm{
		"no_reynolds":       NoStress,
		"reynolds_complete": StressComplete,
		"reynolds_rhs":      StressRhs,
	}
	TauNames = map[string]TauType{
		"bazilevs":                                  Tau_Bazilevs,
		"franca_barrenechea_valentin_wall":          Tau_FBVW,
		"fbvw_wo_dt":                                Tau_FBVWwoDt,
		"franca_barrenechea_valentin_codina":        Tau_FBVC,
		"smoothed_franca_barrenechea_valentin_wall": Tau_SmoothedFBVW,
		"codina":                                    Tau_Codina,
		"fbvw_gradient_based_hk":                    Tau_FBVWGradientHk,
	}
	TauPrintNames = []string{"Bazilevs", "Franca Barrenechea Valentin Wall", "FBVW without dt",
		"Franca Barrenechea Valentin Codina", "Smoothed FBVW", "Codina", "FBVW gradient based hk"}
)

func (tt TauType) Print() (txt string) {
	if int(tt) < len(TauPrintNames) {
		return TauPrintNames[tt]
	}
	return fmt.Sprintf("TauType(%d)", tt)
}

// lookup converts an input deck label, panicking on unknown labels
func lookup[T any](kind string, names map[string]T, label string) (val T) {
	var ok bool
	if val, ok = names[label]; !ok {
		configPanic("unknown %s %q", kind, label)
	}
	return
}

func NewTauType(label string) TauType { return lookup("stabilization parameter", TauNames, label) }

// Parameters select the formulation variant and carry the time integration
// data of one evaluation. They are read only during element evaluation.
type Parameters struct {
	Action        Action
	ConvForm      ConvForm
	Linearisation Linearisation
	Subscales     Subscales
	Transient     Transient
	SUPG          bool
	PSPG          bool
	CStab         bool
	VStab         VStab
	Cross         StressTerm
	Reynolds      StressTerm
	TauType       TauType
	ALE           bool
	AlphaM        float64
	AlphaF        float64
	Gamma         float64
	Dt            float64
	Time          float64 // time at n+1
	// replaces the computed stabilization parameters when set
	fixedTau *[3]float64
}

func NewParameters(ip *InputParameters.FluidParameters) (p *Parameters) {
	var (
		st = ip.Stabilization
		ti = ip.TimeIntegration
	)
	p = &Parameters{
		Action:        lookup("action", ActionNames, ip.Action),
		ConvForm:      lookup("convection form", ConvFormNames, ip.ConvForm),
		Linearisation: lookup("linearisation", LinearisationNames, ip.Linearisation),
		Subscales:     lookup("subscale treatment", SubscalesNames, st.Subscales),
		Transient:     lookup("transient term", TransientNames, st.Transient),
		SUPG:          st.SUPG,
		PSPG:          st.PSPG,
		CStab:         st.CStab,
		VStab:         lookup("viscous stabilization", VStabNames, st.VStab),
		Cross:         lookup("cross stress term", CrossNames, st.Cross),
		Reynolds:      lookup("Reynolds stress term", ReynoldsNames, st.Reynolds),
		TauType:       NewTauType(st.TauType),
		ALE:           ip.ALE,
		AlphaM:        ti.AlphaM,
		AlphaF:        ti.AlphaF,
		Gamma:         ti.Gamma,
		Dt:            ti.Dt,
		Time:          ti.Time,
	}
	p.Check()
	return
}

// Check panics on combinations the element cannot evaluate
func (p *Parameters) Check() {
	if p.Dt <= 0 || p.Gamma <= 0 || p.AlphaM <= 0 || p.AlphaF <= 0 {
		configPanic("time integration needs positive Dt, Gamma, AlphaM, AlphaF, have %v, %v, %v, %v",
			p.Dt, p.Gamma, p.AlphaM, p.AlphaF)
	}
	if p.Subscales == QuasiStatic && p.Transient != NoTransient {
		configPanic("transient subscale terms need time dependent subscales")
	}
	if p.Transient == TransientComplete {
		switch p.TauType {
		case Tau_FBVW, Tau_SmoothedFBVW, Tau_Codina:
		default:
			configPanic("linearisation of 1/tau is not implemented for %s", p.TauType.Print())
		}
	}
	if int(p.TauType) >= len(TauPrintNames) {
		configPanic("unknown stabilization parameter %d", p.TauType)
	}
}

// Galerkin time factors of the velocity unknowns
func (p *Parameters) gdt() float64   { return p.Gamma * p.Dt }
func (p *Parameters) afgdt() float64 { return p.AlphaF * p.Gamma * p.Dt }

func (p *Parameters) vstabSign() (s float64, complete bool) {
	switch p.VStab {
	case VStabGLS:
		return 1, true
	case VStabUSFEM:
		return -1, true
	case VStabGLSRhs:
		return 1, false
	case VStabUSFEMRhs:
		return -1, false
	}
	return 0, false
}

func (p *Parameters) Print() {
	fmt.Printf("Linearisation %d, Subscales %d, Transient %d, ConvForm %d\n",
		p.Linearisation, p.Subscales, p.Transient, p.ConvForm)
	fmt.Printf("SUPG %v, PSPG %v, CStab %v, VStab %d, Cross %d, Reynolds %d\n",
		p.SUPG, p.PSPG, p.CStab, p.VStab, p.Cross, p.Reynolds)
	fmt.Printf("[%s]\t= Tau\n", p.TauType.Print())
	fmt.Printf("alphaM %8.5f, alphaF %8.5f, gamma %8.5f, dt %8.5f, time %8.5f\n",
		p.AlphaM, p.AlphaF, p.Gamma, p.Dt, p.Time)
}
