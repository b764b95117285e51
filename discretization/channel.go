package discretization

import (
	"fmt"

	"github.com/notargets/vmmfluid/Shape2D"
	"github.com/notargets/vmmfluid/types"
)

// NewChannelMesh meshes the rectangle [0,L]x[0,H] with nx by ny cells of the
// given shape. Triangles come from splitting each quad along its diagonal.
// Midside nodes are shared through the edge they sit on.
func NewChannelMesh(shape Shape2D.ShapeType, nx, ny int, L, H float64) (m *Mesh) {
	var (
		X       [][types.NSD]float64
		cells   [][]int
		corner  = func(i, j int) int { return j*(nx+1) + i }
		midside = make(map[types.EdgeKey]int)
	)
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("channel needs at least one cell per direction, have %d x %d", nx, ny))
	}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			X = append(X, [types.NSD]float64{L * float64(i) / float64(nx), H * float64(j) / float64(ny)})
		}
	}
	mid := func(a, b int) int {
		ek := types.NewEdgeKey([2]int{a, b})
		if n, ok := midside[ek]; ok {
			return n
		}
		X = append(X, [types.NSD]float64{0.5 * (X[a][0] + X[b][0]), 0.5 * (X[a][1] + X[b][1])})
		midside[ek] = len(X) - 1
		return len(X) - 1
	}
	center := func(q [4]int) int {
		var c [types.NSD]float64
		for _, n := range q {
			c[0] += 0.25 * X[n][0]
			c[1] += 0.25 * X[n][1]
		}
		X = append(X, c)
		return len(X) - 1
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			q := [4]int{corner(i, j), corner(i+1, j), corner(i+1, j+1), corner(i, j+1)}
			switch shape {
			case Shape2D.Quad4:
				cells = append(cells, q[:])
			case Shape2D.Quad8, Shape2D.Quad9:
				cell := []int{q[0], q[1], q[2], q[3],
					mid(q[0], q[1]), mid(q[1], q[2]), mid(q[2], q[3]), mid(q[3], q[0])}
				if shape == Shape2D.Quad9 {
					cell = append(cell, center(q))
				}
				cells = append(cells, cell)
			case Shape2D.Tri3:
				cells = append(cells, []int{q[0], q[1], q[2]}, []int{q[0], q[2], q[3]})
			case Shape2D.Tri6:
				cells = append(cells,
					[]int{q[0], q[1], q[2], mid(q[0], q[1]), mid(q[1], q[2]), mid(q[2], q[0])},
					[]int{q[0], q[2], q[3], mid(q[0], q[2]), mid(q[2], q[3]), mid(q[3], q[0])})
			default:
				panic(Shape2D.NewUnsupportedShapeError(shape))
			}
		}
	}
	m = NewMesh(shape, X, cells)
	return
}
