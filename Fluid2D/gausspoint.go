package Fluid2D

import (
	"github.com/notargets/vmmfluid/Shape2D"
)

// gpData holds the interpolated fields of one integration point
type gpData struct {
	fac     float64
	accam   [2]float64
	velaf   [2]float64
	velnp   [2]float64
	gridv   [2]float64
	convvel [2]float64 // velaf - gridv
	prenp   float64
	vderaf  [2][2]float64 // [i][j] du_i/dx_j at n+alphaF
	vdernp  [2][2]float64
	pder    [2]float64
	divunp  float64
	divc    float64 // divergence of the convective velocity
	conv    [2]float64
	viscaf  [2]float64 // div 2 eps(u) at n+alphaF
	force   [2]float64
	visceff float64
	resM    [2]float64
}

// interpolate fills gp at the current state of sv. The viscous part of the
// momentum residual uses the effective viscosity and is present only where
// second derivatives were computed.
func (ed *eleData) interpolate(sv *Shape2D.Values, conservative, higher bool, gp *gpData) {
	var (
		gdivu float64
	)
	gp.fac = sv.Fac
	for i := 0; i < 2; i++ {
		gp.accam[i] = sv.Interpolate(ed.eaccam[i])
		gp.velaf[i] = sv.Interpolate(ed.evelaf[i])
		gp.velnp[i] = sv.Interpolate(ed.evelnp[i])
		gp.gridv[i] = sv.Interpolate(ed.egridv[i])
		gp.convvel[i] = gp.velaf[i] - gp.gridv[i]
		if ed.constForce {
			gp.force[i] = ed.force[i]
		} else {
			gp.force[i] = sv.Interpolate(ed.edeadaf[i])
		}
	}
	gp.prenp = sv.Interpolate(ed.eprenp)
	gradient(sv.Derxy, ed.evelaf, &gp.vderaf)
	gradient(sv.Derxy, ed.evelnp, &gp.vdernp)
	for j := 0; j < 2; j++ {
		var sum float64
		for a, d := range sv.Derxy[j] {
			sum += d * ed.eprenp[a]
			gdivu += d * ed.egridv[j][a]
		}
		gp.pder[j] = sum
	}
	gp.divunp = gp.vdernp[0][0] + gp.vdernp[1][1]
	gp.divc = gp.vderaf[0][0] + gp.vderaf[1][1] - gdivu
	for i := 0; i < 2; i++ {
		gp.conv[i] = gp.convvel[0]*gp.vderaf[i][0] + gp.convvel[1]*gp.vderaf[i][1]
		if conservative {
			gp.conv[i] += gp.velaf[i] * gp.divc
		}
	}
	gp.viscaf = [2]float64{}
	if higher {
		var uxx, uyy, uxy, vxx, vyy, vxy float64
		for a := 0; a < ed.nen; a++ {
			u, v := ed.evelaf[0][a], ed.evelaf[1][a]
			uxx += sv.Derxy2[0][a] * u
			uyy += sv.Derxy2[1][a] * u
			uxy += sv.Derxy2[2][a] * u
			vxx += sv.Derxy2[0][a] * v
			vyy += sv.Derxy2[1][a] * v
			vxy += sv.Derxy2[2][a] * v
		}
		gp.viscaf[0] = 2*uxx + uyy + vxy
		gp.viscaf[1] = vxx + 2*vyy + uxy
	}
	gp.visceff = ed.viscosity(strainRate(gp.vderaf))
	for i := 0; i < 2; i++ {
		gp.resM[i] = gp.accam[i] + gp.conv[i] + gp.pder[i] - gp.force[i] - gp.visceff*gp.viscaf[i]
	}
}
