package Channel2D

import (
	"fmt"
	"math"
	"runtime"

	"github.com/notargets/vmmfluid/Fluid2D"
	"github.com/notargets/vmmfluid/InputParameters"
	"github.com/notargets/vmmfluid/Shape2D"
	"github.com/notargets/vmmfluid/discretization"
	"github.com/notargets/vmmfluid/materials"
	"github.com/notargets/vmmfluid/types"
	"github.com/notargets/vmmfluid/utils"
)

/*
	Plane Poiseuille flow in the channel [0,L]x[0,H]:
		u = 4 Umax y (H-y) / H^2, v = 0, p = -8 nu Umax x / H^2
	The flow is steady, so velaf = velnp and accam = 0. Quadratic shapes
	represent it exactly and their interior residual vanishes.
*/
type Channel struct {
	Length, Height, Umax float64
	Shape                Shape2D.ShapeType
	Mesh                 *discretization.Mesh
	Elements             []*Fluid2D.Element
	Params               *Fluid2D.Parameters
	ParallelDegree       int // Number of go routines to use for parallel execution
	Partitions           *utils.PartitionMap
	nu                   float64
}

func NewChannel(ip *InputParameters.FluidParameters, nx, ny, ProcLimit int, verbose bool) (c *Channel) {
	var (
		err error
		ch  = ip.Channel
	)
	c = &Channel{
		Length: ch.Length,
		Height: ch.Height,
		Umax:   ch.Umax,
		Shape:  Shape2D.NewShapeType(ip.Shape),
		Params: Fluid2D.NewParameters(ip),
	}
	c.Mesh = discretization.NewChannelMesh(c.Shape, nx, ny, c.Length, c.Height)
	if c.Mesh.Materials, err = materials.NewRegistry(ip.Materials); err != nil {
		panic(err)
	}
	mat, ok := c.Mesh.Materials.Material(ip.MaterialID)
	if !ok {
		panic(fmt.Errorf("material %d is not defined", ip.MaterialID))
	}
	if nm, isNewtonian := mat.(*materials.Newtonian); isNewtonian {
		c.nu = nm.Viscosity() / nm.Density()
	}
	c.Elements = make([]*Fluid2D.Element, c.Mesh.NumCells())
	for k, cell := range c.Mesh.Cells {
		c.Mesh.CellMaterial[k] = ip.MaterialID
		c.Elements[k] = Fluid2D.NewElement(k, c.Shape, cell, ip.MaterialID)
	}
	if len(ip.BodyForce) != 0 {
		var f [types.NSD]float64
		copy(f[:], ip.BodyForce)
		force := discretization.NewCondition(f)
		for n := 0; n < c.Mesh.NumNodes(); n++ {
			c.Mesh.Conditions[n] = force
		}
	}
	c.SetParallelDegree(ProcLimit, c.Mesh.NumCells())
	c.InitializeSolution()
	if verbose {
		fmt.Printf("Poiseuille channel %5.2f x %5.2f, Umax = %8.5f\n", c.Length, c.Height, c.Umax)
		fmt.Printf("Shape %s, %d x %d cells, %d nodes\n", c.Shape, nx, ny, c.Mesh.NumNodes())
		fmt.Printf("Using %d go routines in parallel\n", c.Partitions.ParallelDegree)
		c.Mesh.Materials.Print()
		c.Params.Print()
	}
	return
}

func (c *Channel) SetParallelDegree(ProcLimit, Kmax int) {
	if ProcLimit != 0 {
		c.ParallelDegree = ProcLimit
	} else {
		c.ParallelDegree = runtime.NumCPU()
	}
	if c.ParallelDegree > Kmax {
		c.ParallelDegree = 1
	}
	c.Partitions = utils.NewPartitionMap(c.ParallelDegree, Kmax)
}

// Exact is the Poiseuille state at x, pressure in kinematic units
func (c *Channel) Exact(x [types.NSD]float64) [types.NDOF]float64 {
	var (
		H = c.Height
	)
	return [types.NDOF]float64{4 * c.Umax * x[1] * (H - x[1]) / (H * H), 0, -8 * c.nu * c.Umax * x[0] / (H * H)}
}

func (c *Channel) InitializeSolution() {
	var (
		nd = c.Mesh.NumDOF()
	)
	c.Mesh.SetNodalState(types.Velnp, c.Exact)
	c.Mesh.SetNodalState(types.Velaf, c.Exact)
	c.Mesh.SetState(types.Accam, utils.NewVector(nd))
	if c.Params.ALE {
		c.Mesh.SetState(types.Dispnp, utils.NewVector(nd))
		c.Mesh.SetState(types.Gridvelaf, utils.NewVector(nd))
	}
}

// Assemble evaluates all elements and returns the global matrix and vector
func (c *Channel) Assemble() (A utils.DOK, R utils.Vector) {
	withMatrix := c.Params.Action == Fluid2D.CalcSysmatAndResidual
	return c.Mesh.Assemble(func(k int, K *utils.Matrix, F utils.Vector) {
		c.Elements[k].Evaluate(c.Params, c.Mesh, c.Mesh.LM(k), K, F)
	}, c.ParallelDegree, withMatrix)
}

// ResidualNorms splits the global vector into momentum and continuity parts,
// counting interior nodes only since boundary terms are not assembled
func (c *Channel) ResidualNorms(R utils.Vector) (momentum, continuity float64) {
	var (
		data     = R.Data()
		boundary = c.Mesh.Boundary()
	)
	for n, onBoundary := range boundary {
		if onBoundary {
			continue
		}
		for i := 0; i < types.NDOF; i++ {
			val := data[n*types.NDOF+i]
			if i < types.NSD {
				momentum += val * val
			} else {
				continuity += val * val
			}
		}
	}
	return math.Sqrt(momentum), math.Sqrt(continuity)
}

// TimeUpdate shifts the subscale history of every element after a converged step
func (c *Channel) TimeUpdate() {
	pm := c.Partitions
	pm.RunBuckets(func(bn, k int) {
		c.Elements[k].Subscales.TimeUpdate(c.Params.Gamma, c.Params.Dt)
	})
}
