package discretization

import (
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

// ElementEvaluator fills the element matrix and vector of cell k. K is nil
// for residual only evaluations. It is called concurrently for different k.
type ElementEvaluator func(k int, K *utils.Matrix, F utils.Vector)

// Assemble evaluates every cell, ParallelDegree cells at a time, then
// scatters the element contributions in ascending cell order so the result
// does not depend on the parallel degree
func (m *Mesh) Assemble(eval ElementEvaluator, ParallelDegree int, withMatrix bool) (A utils.DOK, R utils.Vector) {
	var (
		nCells = m.NumCells()
		Ke     = make([]utils.Matrix, nCells)
		Fe     = make([]utils.Vector, nCells)
		pm     = utils.NewPartitionMap(ParallelDegree, nCells)
	)
	pm.RunBuckets(func(bn, k int) {
		nd := len(m.Cells[k]) * types.NDOF
		Fe[k] = utils.NewVector(nd)
		if withMatrix {
			Ke[k] = utils.NewMatrix(nd, nd)
			eval(k, &Ke[k], Fe[k])
			return
		}
		eval(k, nil, Fe[k])
	})
	A = utils.NewDOK(m.NumDOF(), m.NumDOF())
	R = utils.NewVector(m.NumDOF())
	for k := 0; k < nCells; k++ {
		lm := m.LM(k)
		if withMatrix {
			A.AddBlock(lm, Ke[k])
		}
		for i, gi := range lm {
			R.AddAt(gi, Fe[k].AtVec(i))
		}
	}
	return
}
