package Fluid2D

import (
	"math"

	"github.com/notargets/vmmfluid/utils"
)

// TauInput is the local data the stabilization parameters are built from
type TauInput struct {
	Vel           [2]float64 // convective velocity
	Hk            float64    // element length, sqrt of the element area
	Mk            float64    // inverse estimate constant
	Visc          float64    // kinematic material viscosity
	Dt            float64
	TimeDependent bool
	Xji           [2][2]float64 // inverse Jacobian, Xji[j][i] = dr_i/dx_j
	Derxy         [2][]float64  // global shape function derivatives
	VDerxy        [2][2]float64 // velocity gradient, VDerxy[i][j] = du_i/dx_j
}

func (ti *TauInput) velNorm() float64 {
	return utils.Norm2D(ti.Vel)
}

// CalcTau returns {tauM, tauMp, tauC}. tauMp always equals tauM and tauC is
// zero unless continuity stabilization is active. The FBVW family scales
// tauC with the convective velocity, so it vanishes at rest. dTauM is the
// derivative of tauM with respect to the velocity norm, provided for the
// strategies that support the linearisation of 1/tau.
func CalcTau(tt TauType, ti *TauInput, cstab bool) (tau [3]float64, dTauM float64) {
	var (
		vel  = ti.velNorm()
		hk   = ti.Hk
		mk   = ti.Mk
		visc = ti.Visc
		dt   = ti.Dt
	)
	switch tt {
	case Tau_Bazilevs:
		var (
			G     [2][2]float64
			g     [2]float64
			GG    float64
			cGc   float64
			CI    = 12. / mk
			denom float64
		)
		for j := 0; j < 2; j++ {
			for l := 0; l < 2; l++ {
				for i := 0; i < 2; i++ {
					G[j][l] += ti.Xji[j][i] * ti.Xji[l][i]
				}
				GG += G[j][l] * G[j][l]
				cGc += ti.Vel[j] * G[j][l] * ti.Vel[l]
			}
			g[j] = ti.Xji[j][0] + ti.Xji[j][1]
		}
		denom = cGc + CI*visc*visc*GG
		if ti.TimeDependent {
			denom += 4. / utils.POW(dt, 2)
		}
		tau[0] = 1. / math.Sqrt(denom)
		tau[2] = 1. / (tau[0] * (g[0]*g[0] + g[1]*g[1]))
	case Tau_FBVW, Tau_FBVWGradientHk:
		if tt == Tau_FBVWGradientHk {
			hk = gradientHk(ti, hk)
		}
		re1 := 4. * dt * visc / (mk * utils.POW(hk, 2))
		re2 := mk * vel * hk / (2. * visc)
		xi1, xi2 := math.Max(re1, 1), math.Max(re2, 1)
		denom := hk*hk*xi1 + (4.*dt*visc/mk)*xi2
		tau[0] = dt * hk * hk / denom
		if re2 > 1 {
			dTauM = -tau[0] / denom * (4. * dt * visc / mk) * mk * hk / (2. * visc)
		}
		tau[2] = fbvwTauC(vel, hk, re2)
	case Tau_FBVWwoDt:
		re2 := mk * vel * hk / (2. * visc)
		tau[0] = mk * hk * hk / (4. * visc * math.Max(re2, 1))
		tau[2] = fbvwTauC(vel, hk, re2)
	case Tau_FBVC:
		re2 := mk * vel * hk / (2. * visc)
		tau[0] = 1. / (1./dt + (4.*visc/(mk*hk*hk))*math.Max(re2, 1))
		tau[2] = fbvwTauC(vel, hk, re2)
	case Tau_SmoothedFBVW:
		re1 := 4. * dt * visc / (mk * utils.POW(hk, 2))
		re2 := mk * vel * hk / (2. * visc)
		xi1, xi2 := re1+math.Exp(-re1), re2+math.Exp(-re2)
		denom := hk*hk*xi1 + (4.*dt*visc/mk)*xi2
		tau[0] = dt * hk * hk / denom
		dTauM = -tau[0] / denom * (4. * dt * visc / mk) * (1 - math.Exp(-re2)) * mk * hk / (2. * visc)
		tau[2] = fbvwTauC(vel, hk, re2)
	case Tau_Codina:
		tau[0] = 1. / (1./dt + 4.*visc/(hk*hk) + 2.*vel/hk)
		dTauM = -tau[0] * tau[0] * 2. / hk
		tau[2] = visc + 0.5*vel*hk
	default:
		configPanic("unknown stabilization parameter %d", tt)
	}
	tau[1] = tau[0]
	if !cstab {
		tau[2] = 0
	}
	return
}

func fbvwTauC(vel, hk, re2 float64) float64 {
	return 0.5 * vel * hk * math.Min(re2, 1)
}

// gradientHk measures the element along the gradient of the velocity norm,
// falling back to hk where that direction is undefined
func gradientHk(ti *TauInput, hk float64) float64 {
	var (
		vel  = ti.velNorm()
		grad [2]float64
	)
	if vel < 1.e-14 || ti.Derxy[0] == nil {
		return hk
	}
	for j := 0; j < 2; j++ {
		grad[j] = (ti.Vel[0]*ti.VDerxy[0][j] + ti.Vel[1]*ti.VDerxy[1][j]) / vel
	}
	gnorm := math.Sqrt(grad[0]*grad[0] + grad[1]*grad[1])
	if gnorm < 1.e-10 {
		return hk
	}
	var sum float64
	for a := range ti.Derxy[0] {
		sum += math.Abs(grad[0]*ti.Derxy[0][a]+grad[1]*ti.Derxy[1][a]) / gnorm
	}
	if sum < 1.e-14 {
		return hk
	}
	return 2. / sum
}
