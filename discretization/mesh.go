package discretization

import (
	"fmt"

	"github.com/notargets/vmmfluid/Shape2D"
	"github.com/notargets/vmmfluid/materials"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

// Mesh is an in memory discretization with one shape for all cells and
// types.NDOF dofs per node, numbered node by node
type Mesh struct {
	Shape        Shape2D.ShapeType
	X            [][types.NSD]float64 // node coordinates
	Cells        [][]int              // cell to node connectivity
	CellMaterial []int
	NurbsCells   []*Shape2D.NurbsCell // per cell, NURBS shapes only
	States       map[types.StateName]utils.Vector
	Conditions   map[int]*Condition // volume Neumann conditions by node
	Materials    *materials.Registry
	Curves       []TimeCurve
	Functions    []SpatialFunction
}

func NewMesh(shape Shape2D.ShapeType, X [][types.NSD]float64, cells [][]int) (m *Mesh) {
	var (
		tp = Shape2D.NewTopology(shape)
	)
	for k, cell := range cells {
		if len(cell) != tp.Nen {
			panic(fmt.Errorf("cell %d has %d nodes, shape %s needs %d", k, len(cell), shape, tp.Nen))
		}
	}
	m = &Mesh{
		Shape:        shape,
		X:            X,
		Cells:        cells,
		CellMaterial: make([]int, len(cells)),
		States:       make(map[types.StateName]utils.Vector),
		Conditions:   make(map[int]*Condition),
		Materials:    &materials.Registry{},
	}
	return
}

func (m *Mesh) NumNodes() int { return len(m.X) }
func (m *Mesh) NumDOF() int   { return types.NDOF * len(m.X) }
func (m *Mesh) NumCells() int { return len(m.Cells) }

// LM is the location vector of cell k
func (m *Mesh) LM(k int) utils.Index {
	return utils.NodalDOFs(m.Cells[k], types.NDOF)
}

// CellCoords gathers the node coordinates of cell k
func (m *Mesh) CellCoords(k int) (x [][types.NSD]float64) {
	x = make([][types.NSD]float64, len(m.Cells[k]))
	for i, n := range m.Cells[k] {
		x[i] = m.X[n]
	}
	return
}

func (m *Mesh) SetState(name types.StateName, v utils.Vector) *Mesh {
	if v.Len() != m.NumDOF() {
		panic(fmt.Errorf("state %s has length %d, mesh has %d dofs", name, v.Len(), m.NumDOF()))
	}
	m.States[name] = v
	return m
}

// SetNodalState fills a state from a function of node coordinates
func (m *Mesh) SetNodalState(name types.StateName, f func(x [types.NSD]float64) [types.NDOF]float64) *Mesh {
	v := utils.NewVector(m.NumDOF())
	data := v.Data()
	for n, x := range m.X {
		vals := f(x)
		copy(data[n*types.NDOF:(n+1)*types.NDOF], vals[:])
	}
	return m.SetState(name, v)
}

func (m *Mesh) GetState(name types.StateName) (v utils.Vector, err error) {
	var ok bool
	if v, ok = m.States[name]; !ok {
		err = fmt.Errorf("state vector %s is not available", name)
	}
	return
}

func (m *Mesh) NodeCoords(nodeID int) [types.NSD]float64 { return m.X[nodeID] }

func (m *Mesh) VolumeNeumann(nodeID int) *Condition { return m.Conditions[nodeID] }

func (m *Mesh) Material(id int) materials.Material {
	mat, _ := m.Materials.Material(id)
	return mat
}

func (m *Mesh) Curve(id int) TimeCurve {
	if id < 0 || id >= len(m.Curves) {
		panic(fmt.Errorf("time curve %d is not defined", id))
	}
	return m.Curves[id]
}

func (m *Mesh) Function(id int) SpatialFunction {
	if id < 0 || id >= len(m.Functions) {
		panic(fmt.Errorf("spatial function %d is not defined", id))
	}
	return m.Functions[id]
}

// Boundary reports nodes on the bounding box of the mesh
func (m *Mesh) Boundary() (onBoundary []bool) {
	var (
		xmin, xmax = m.X[0], m.X[0]
		tol        = 1.e-12
	)
	for _, x := range m.X {
		for d := 0; d < types.NSD; d++ {
			xmin[d] = min(xmin[d], x[d])
			xmax[d] = max(xmax[d], x[d])
		}
	}
	onBoundary = make([]bool, len(m.X))
	for n, x := range m.X {
		for d := 0; d < types.NSD; d++ {
			if x[d]-xmin[d] < tol || xmax[d]-x[d] < tol {
				onBoundary[n] = true
			}
		}
	}
	return
}
