package Fluid2D

import (
	"github.com/notargets/vmmfluid/Shape2D"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

// subgrid is the subscale velocity of one integration point and its
// variations. A variation of the momentum residual dres and of the
// convective velocity dc moves the subscale velocity by
// d*dres + t*(c . dc).
type subgrid struct {
	velaf, velnp, accam    [2]float64
	dVelaf, dVelnp, dAccam float64
	tVelaf, tVelnp, tAccam [2]float64
	transient              bool // subscale acceleration enters the momentum equation
}

func (sg *subgrid) quasiStatic(tau [3]float64, gp *gpData) {
	*sg = subgrid{
		dVelaf: -tau[0],
		dVelnp: -tau[1],
	}
	for i := 0; i < 2; i++ {
		sg.velaf[i] = -tau[0] * gp.resM[i]
		sg.velnp[i] = -tau[1] * gp.resM[i]
	}
}

// timeDependent integrates the subscale equation tau*a' + u' = -tau*resM
// with the generalized-alpha scheme and stores u' at n+1 for point ip
func (sg *subgrid) timeDependent(p *Parameters, sh *SubscaleHistory, ip int,
	tau [3]float64, dTau float64, gp *gpData) {
	var (
		tauM           = tau[0]
		am, af, gamma  = p.AlphaM, p.AlphaF, p.Gamma
		dt, gdt        = p.Dt, p.gdt()
		D              = am*tauM + af*gdt
		sveln, saccn   [2]float64
		complete       bool
		cnorm, dudtau  float64
		dVelnpdVelnorm float64
	)
	*sg = subgrid{
		transient: p.Transient != NoTransient,
	}
	sg.dVelnp = -gdt * tauM / D
	sg.dVelaf = af * sg.dVelnp
	sg.dAccam = am / gdt * sg.dVelnp
	cnorm = utils.Norm2D(gp.convvel)
	complete = p.Transient == TransientComplete && cnorm > 0 && dTau != 0
	if complete {
		dVelnpdVelnorm = dTau / cnorm
	}
	for i := 0; i < 2; i++ {
		sveln[i] = sh.Sveln[i][ip]
		saccn[i] = sh.Saccn[i][ip]
		sg.velnp[i] = ((am*tauM-gdt*(1-af))*sveln[i] - tauM*dt*(gamma-am)*saccn[i] -
			gdt*tauM*gp.resM[i]) / D
		sh.Svelnp[i][ip] = sg.velnp[i]
		sg.velaf[i] = af*sg.velnp[i] + (1-af)*sveln[i]
		accnp := (sg.velnp[i]-sveln[i])/gdt - (1-gamma)/gamma*saccn[i]
		sg.accam[i] = am*accnp + (1-am)*saccn[i]
		if complete {
			dudtau = ((am*sveln[i] - dt*(gamma-am)*saccn[i] - gdt*gp.resM[i]) - am*sg.velnp[i]) / D
			sg.tVelnp[i] = dudtau * dVelnpdVelnorm
			sg.tVelaf[i] = af * sg.tVelnp[i]
			sg.tAccam[i] = am / gdt * sg.tVelnp[i]
		}
	}
}

// tau evaluates the stabilization parameters with the material viscosity
func (e *Element) tau(p *Parameters, ed *eleData, sv *Shape2D.Values, gp *gpData) (tau [3]float64, dTau float64) {
	if p.fixedTau != nil {
		return *p.fixedTau, 0
	}
	ti := TauInput{
		Vel:           gp.convvel,
		Hk:            ed.hk,
		Mk:            ed.mk,
		Visc:          ed.visc,
		Dt:            p.Dt,
		TimeDependent: p.Subscales == TimeDependent,
		Xji:           sv.Xji,
		Derxy:         sv.Derxy,
		VDerxy:        gp.vderaf,
	}
	return CalcTau(p.TauType, &ti, p.CStab)
}

// secondDerivatives reports whether the strong residual needs second
// derivatives of the shape functions
func (e *Element) secondDerivatives(p *Parameters, vr variant) bool {
	if !e.topo.HigherOrder() {
		return false
	}
	return p.SUPG || p.PSPG || p.VStab != NoVStab || p.Cross != NoStress ||
		p.Reynolds != NoStress || vr.timeDependent
}

// sysmat is the integration loop shared by the four assemblers. The point
// order of the rule is fixed, the subscale history relies on it.
func (e *Element) sysmat(p *Parameters, ed *eleData, vr variant, K *utils.Matrix, F utils.Vector) {
	var (
		sv     = ed.sv
		rule   = e.topo.Gauss()
		nGP    = rule.NumPoints()
		higher = e.secondDerivatives(p, vr)
		gp     gpData
		sg     subgrid
		tau    [3]float64
		dTau   float64
	)
	if vr.centerTau {
		r, s, w := e.topo.Center().Point(0)
		sv.Evaluate(r, s, false, e.Nurbs)
		sv.Map(ed.xyze, w, e.ID, false)
		ed.interpolate(sv, vr.conservative, false, &gp)
		tau, _ = e.tau(p, ed, sv, &gp)
	}
	if vr.timeDependent {
		e.Subscales.EnsureSize(nGP)
	}
	for ip := 0; ip < nGP; ip++ {
		r, s, w := rule.Point(ip)
		sv.Evaluate(r, s, higher, e.Nurbs)
		sv.Map(ed.xyze, w, e.ID, higher)
		ed.interpolate(sv, vr.conservative, higher, &gp)
		if !vr.centerTau {
			tau, dTau = e.tau(p, ed, sv, &gp)
		}
		if vr.timeDependent {
			sg.timeDependent(p, &e.Subscales, ip, tau, dTau, &gp)
		} else {
			sg.quasiStatic(tau, &gp)
		}
		residual(p, ed, &gp, &sg, tau, F)
		if K != nil {
			tangent(p, ed, &gp, &sg, tau, vr.conservative, *K)
		}
	}
}

// viscA is the (i,k) entry of the operator div 2 eps applied to N_a e_k
func viscA(d2 [3][]float64, a, i, k int) float64 {
	switch {
	case i == 0 && k == 0:
		return 2*d2[0][a] + d2[1][a]
	case i == 1 && k == 1:
		return d2[0][a] + 2*d2[1][a]
	}
	return d2[2][a]
}

func residual(p *Parameters, ed *eleData, gp *gpData, sg *subgrid, tau [3]float64, F utils.Vector) {
	var (
		sv       = ed.sv
		data     = F.Data()
		fac      = gp.fac
		nu       = gp.visceff
		svel     = sg.velaf
		vs, _    = p.vstabSign()
		dN       = sv.Derxy
		d2N      = sv.Derxy2
		vder     = gp.vderaf
		cgrad, r float64
		psi      float64
	)
	for a := 0; a < ed.nen; a++ {
		Na := sv.N[a]
		cgrad = gp.convvel[0]*dN[0][a] + gp.convvel[1]*dN[1][a]
		psi = 0
		if p.SUPG {
			psi = cgrad
		}
		// Reynolds stress test function is added to the SUPG one
		if p.Reynolds != NoStress {
			psi += svel[0]*dN[0][a] + svel[1]*dN[1][a]
		}
		for i := 0; i < 2; i++ {
			r = Na * (gp.accam[i] + gp.conv[i] - gp.force[i])
			for j := 0; j < 2; j++ {
				r += nu * dN[j][a] * (vder[i][j] + vder[j][i])
			}
			r -= dN[i][a] * gp.prenp
			r -= psi * svel[i]
			if p.CStab {
				r += tau[2] * dN[i][a] * gp.divunp
			}
			if p.VStab != NoVStab {
				r += vs * nu * (viscA(d2N, a, i, 0)*svel[0] + viscA(d2N, a, i, 1)*svel[1])
			}
			if p.Cross != NoStress {
				r += Na * (svel[0]*vder[i][0] + svel[1]*vder[i][1])
			}
			if sg.transient {
				r += Na * sg.accam[i]
			}
			data[a*types.NDOF+i] -= fac * r
		}
		r = Na * gp.divunp
		if p.PSPG {
			r -= dN[0][a]*sg.velnp[0] + dN[1][a]*sg.velnp[1]
		}
		data[a*types.NDOF+2] -= fac * r
	}
}

// colVar is the variation of the point quantities caused by one column
// unknown: an acceleration increment for velocity dofs, a pressure
// increment for the pressure dof
type colVar struct {
	dacc    [2]float64
	dvder   [2][2]float64
	ddivunp float64
	dc      [2]float64
	dconv   [2]float64 // c.grad(du), plus du div(c) in conservative form
	dreact  [2]float64 // dc.grad(u), plus u div(dc) in conservative form
	dp      float64
	dresM   [2]float64
	dsvelaf [2]float64
	dsvelnp [2]float64
	dsaccam [2]float64
}

func (cv *colVar) velocity(p *Parameters, ed *eleData, gp *gpData, b, k int, conservative bool) {
	var (
		sv    = ed.sv
		afgdt = p.afgdt()
		Nb    = sv.N[b]
		dN    = sv.Derxy
	)
	*cv = colVar{}
	cv.dacc[k] = p.AlphaM * Nb
	for j := 0; j < 2; j++ {
		cv.dvder[k][j] = afgdt * dN[j][b]
	}
	cv.ddivunp = p.gdt() * dN[k][b]
	cv.dc[k] = afgdt * Nb
	cv.dconv[k] = gp.convvel[0]*cv.dvder[k][0] + gp.convvel[1]*cv.dvder[k][1]
	for i := 0; i < 2; i++ {
		cv.dreact[i] = cv.dc[k] * gp.vderaf[i][k]
	}
	if conservative {
		cv.dconv[k] += afgdt * Nb * gp.divc
		for i := 0; i < 2; i++ {
			cv.dreact[i] += gp.velaf[i] * afgdt * dN[k][b]
		}
	}
	for i := 0; i < 2; i++ {
		cv.dresM[i] = cv.dacc[i] + cv.dconv[i] - gp.visceff*afgdt*viscA(sv.Derxy2, b, i, k)
		if p.Linearisation >= FixedPointLike {
			cv.dresM[i] += cv.dreact[i]
		}
	}
}

func (cv *colVar) pressure(ed *eleData, b int) {
	*cv = colVar{}
	cv.dp = ed.sv.N[b]
	cv.dresM[0] = ed.sv.Derxy[0][b]
	cv.dresM[1] = ed.sv.Derxy[1][b]
}

func (cv *colVar) subscales(sg *subgrid, cdc float64) {
	for i := 0; i < 2; i++ {
		cv.dsvelaf[i] = sg.dVelaf*cv.dresM[i] + sg.tVelaf[i]*cdc
		cv.dsvelnp[i] = sg.dVelnp*cv.dresM[i] + sg.tVelnp[i]*cdc
		cv.dsaccam[i] = sg.dAccam*cv.dresM[i] + sg.tAccam[i]*cdc
	}
}

// tangent accumulates the derivative of the residual, column by column
func tangent(p *Parameters, ed *eleData, gp *gpData, sg *subgrid, tau [3]float64,
	conservative bool, K utils.Matrix) {
	var (
		sv               = ed.sv
		nen              = ed.nen
		fac              = gp.fac
		nu               = gp.visceff
		svel             = sg.velaf
		dN               = sv.Derxy
		d2N              = sv.Derxy2
		vder             = gp.vderaf
		vs, vstabMatrix  = p.vstabSign()
		newton           = p.Linearisation == Newton
		reactive         = p.Linearisation >= Minimal
		reynoldsComplete = p.Reynolds == StressComplete
		cv               colVar
		psi, dpsi, r     float64
	)
	for b := 0; b < nen; b++ {
		for k := 0; k < types.NDOF; k++ {
			if k < 2 {
				cv.velocity(p, ed, gp, b, k, conservative)
				cv.subscales(sg, gp.convvel[k]*cv.dc[k])
			} else {
				cv.pressure(ed, b)
				cv.subscales(sg, 0)
			}
			col := b*types.NDOF + k
			for a := 0; a < nen; a++ {
				Na := sv.N[a]
				psi, dpsi = 0, 0
				if p.SUPG {
					psi = gp.convvel[0]*dN[0][a] + gp.convvel[1]*dN[1][a]
					if newton {
						dpsi = cv.dc[0]*dN[0][a] + cv.dc[1]*dN[1][a]
					}
				}
				if reynoldsComplete {
					psi += svel[0]*dN[0][a] + svel[1]*dN[1][a]
					if newton {
						dpsi += cv.dsvelaf[0]*dN[0][a] + cv.dsvelaf[1]*dN[1][a]
					}
				}
				for i := 0; i < 2; i++ {
					r = Na * (cv.dacc[i] + cv.dconv[i])
					if reactive {
						r += Na * cv.dreact[i]
					}
					for j := 0; j < 2; j++ {
						r += nu * dN[j][a] * (cv.dvder[i][j] + cv.dvder[j][i])
					}
					r -= dN[i][a] * cv.dp
					r -= psi*cv.dsvelaf[i] + dpsi*svel[i]
					if p.CStab {
						r += tau[2] * dN[i][a] * cv.ddivunp
					}
					if vstabMatrix {
						r += vs * nu * (viscA(d2N, a, i, 0)*cv.dsvelaf[0] + viscA(d2N, a, i, 1)*cv.dsvelaf[1])
					}
					if p.Cross == StressComplete {
						r += Na * (svel[0]*cv.dvder[i][0] + svel[1]*cv.dvder[i][1])
						if newton {
							r += Na * (cv.dsvelaf[0]*vder[i][0] + cv.dsvelaf[1]*vder[i][1])
						}
					}
					if sg.transient {
						r += Na * cv.dsaccam[i]
					}
					K.AddAt(a*types.NDOF+i, col, fac*r)
				}
				r = Na * cv.ddivunp
				if p.PSPG {
					r -= dN[0][a]*cv.dsvelnp[0] + dN[1][a]*cv.dsvelnp[1]
				}
				K.AddAt(a*types.NDOF+2, col, fac*r)
			}
		}
	}
}
