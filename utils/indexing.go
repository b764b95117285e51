package utils

type Index []int

// NodalDOFs expands node numbers into the interleaved dof list used by the
// element kernels: node n owns dofs [n*nDOF, n*nDOF+nDOF)
func NodalDOFs(nodes []int, nDOF int) (lm Index) {
	lm = make(Index, len(nodes)*nDOF)
	for i, n := range nodes {
		for d := 0; d < nDOF; d++ {
			lm[i*nDOF+d] = n*nDOF + d
		}
	}
	return
}
