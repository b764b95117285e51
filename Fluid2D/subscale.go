package Fluid2D

import "fmt"

// SubscaleHistory is the per Gauss point state of time dependent subscales,
// each array laid out [component][gauss point]. It belongs to one element and
// is indexed by the fixed point order of that element's integration rule.
type SubscaleHistory struct {
	Sveln  [2][]float64 // subscale velocity at n
	Svelnp [2][]float64 // subscale velocity at n+1
	Saccn  [2][]float64 // subscale acceleration at n
}

func (sh *SubscaleHistory) NumPoints() int { return len(sh.Sveln[0]) }

// EnsureSize sizes the arrays for nGP points. A change of the point count
// discards the history; it is never reused across rules.
func (sh *SubscaleHistory) EnsureSize(nGP int) (resized bool) {
	if sh.NumPoints() == nGP && len(sh.Svelnp[0]) == nGP && len(sh.Saccn[0]) == nGP {
		return false
	}
	for i := 0; i < 2; i++ {
		sh.Sveln[i] = make([]float64, nGP)
		sh.Svelnp[i] = make([]float64, nGP)
		sh.Saccn[i] = make([]float64, nGP)
	}
	return true
}

// TimeUpdate advances the history from n+1 to n once a time step has
// converged: the new acceleration follows from the generalized-alpha
// relation between the subscale velocities of both levels
func (sh *SubscaleHistory) TimeUpdate(gamma, dt float64) {
	var (
		gdt = gamma * dt
	)
	for i := 0; i < 2; i++ {
		for ip := range sh.Sveln[i] {
			sh.Saccn[i][ip] = (sh.Svelnp[i][ip]-sh.Sveln[i][ip])/gdt - (1-gamma)/gamma*sh.Saccn[i][ip]
			sh.Sveln[i][ip] = sh.Svelnp[i][ip]
		}
	}
}

// Point returns the history of one Gauss point, used by restart output
func (sh *SubscaleHistory) Point(ip int) (sveln, svelnp, saccn [2]float64) {
	for i := 0; i < 2; i++ {
		sveln[i] = sh.Sveln[i][ip]
		svelnp[i] = sh.Svelnp[i][ip]
		saccn[i] = sh.Saccn[i][ip]
	}
	return
}

// SetPoint restores the history of one Gauss point, used by restart input
func (sh *SubscaleHistory) SetPoint(ip int, sveln, svelnp, saccn [2]float64) {
	if ip < 0 || ip >= sh.NumPoints() {
		panic(fmt.Errorf("subscale history has %d points, cannot set point %d", sh.NumPoints(), ip))
	}
	for i := 0; i < 2; i++ {
		sh.Sveln[i][ip] = sveln[i]
		sh.Svelnp[i][ip] = svelnp[i]
		sh.Saccn[i][ip] = saccn[i]
	}
}
