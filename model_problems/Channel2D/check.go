package Channel2D

import (
	"math"

	"github.com/notargets/vmmfluid/Fluid2D"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

// EvaluateElement returns the element matrix and vector of cell k
func (c *Channel) EvaluateElement(k int) (K utils.Matrix, F utils.Vector) {
	var (
		e  = c.Elements[k]
		nd = e.NumDOF()
	)
	K, F = utils.NewMatrix(nd, nd), utils.NewVector(nd)
	e.Evaluate(c.Params, c.Mesh, c.Mesh.LM(k), &K, F)
	return
}

// CheckElement compares the element matrix of cell k with central differences
// of its residual. An increment of a velocity unknown moves accam, velaf and
// velnp by alphaM, alphaF*gamma*dt and gamma*dt. Returns the largest
// deviation and the largest matrix entry.
func (c *Channel) CheckElement(k int, eps float64) (maxErr, maxK float64) {
	var (
		e        = c.Elements[k]
		nd       = e.NumDOF()
		lm       = c.Mesh.LM(k)
		p        = c.Params
		pres     = *p
		gdt      = p.Gamma * p.Dt
		velocity = map[types.StateName]float64{
			types.Accam: p.AlphaM,
			types.Velaf: p.AlphaF * gdt,
			types.Velnp: gdt,
		}
		pressure = map[types.StateName]float64{types.Velnp: 1}
	)
	K, _ := c.EvaluateElement(k)
	maxK = K.MaxAbs()
	pres.Action = Fluid2D.CalcResidual
	residual := func(factors map[types.StateName]float64, gi int, h float64) []float64 {
		saved := make(map[types.StateName]float64, len(factors))
		for name, fct := range factors {
			v, err := c.Mesh.GetState(name)
			if err != nil {
				panic(err)
			}
			saved[name] = v.AtVec(gi)
			v.Data()[gi] += h * fct
		}
		F := utils.NewVector(nd)
		e.Evaluate(&pres, c.Mesh, lm, nil, F)
		for name, val := range saved {
			v, _ := c.Mesh.GetState(name)
			v.Data()[gi] = val
		}
		return F.Data()
	}
	for col := 0; col < nd; col++ {
		factors := velocity
		if col%types.NDOF == 2 {
			factors = pressure
		}
		Fp := residual(factors, lm[col], eps)
		Fm := residual(factors, lm[col], -eps)
		for row := 0; row < nd; row++ {
			fd := -(Fp[row] - Fm[row]) / (2 * eps)
			maxErr = math.Max(maxErr, math.Abs(fd-K.At(row, col)))
		}
	}
	return
}
