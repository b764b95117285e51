package Shape2D

// Topology is the stateless description of one element shape: node count,
// shape function callback, integration rules and inverse estimate constant
type Topology struct {
	Shape     ShapeType
	Nen       int // number of element nodes (control points for NURBS)
	Degree    int // polynomial degree per direction
	IsSimplex bool
	IsNurbs   bool
	Func      ShpFunc // nil for NURBS, evaluated by the element's NurbsCell
	gauss     IntegrationRule
	center    IntegrationRule
}

var topologies = [...]Topology{
	Tri3:   {Shape: Tri3, Nen: 3, Degree: 1, IsSimplex: true, Func: tri3Func, gauss: triRule3, center: triCenter},
	Tri6:   {Shape: Tri6, Nen: 6, Degree: 2, IsSimplex: true, Func: tri6Func, gauss: triRule6, center: triCenter},
	Quad4:  {Shape: Quad4, Nen: 4, Degree: 1, Func: quad4Func, gauss: quadRule2x2, center: quadCenter},
	Quad8:  {Shape: Quad8, Nen: 8, Degree: 2, Func: quad8Func, gauss: quadRule3x3, center: quadCenter},
	Quad9:  {Shape: Quad9, Nen: 9, Degree: 2, Func: quad9Func, gauss: quadRule3x3, center: quadCenter},
	Nurbs4: {Shape: Nurbs4, Nen: 4, Degree: 1, IsNurbs: true, gauss: quadRule2x2, center: quadCenter},
	Nurbs9: {Shape: Nurbs9, Nen: 9, Degree: 2, IsNurbs: true, gauss: quadRule3x3, center: quadCenter},
}

// NewTopology returns the shared read only description of shape
func NewTopology(shape ShapeType) (tp *Topology) {
	if int(shape) >= len(topologies) {
		panic(NewUnsupportedShapeError(shape))
	}
	return &topologies[shape]
}

// HigherOrder reports whether second derivatives carry information. Every
// shape except tri3 has non vanishing second derivatives in general.
func (tp *Topology) HigherOrder() bool { return tp.Shape != Tri3 }

func (tp *Topology) Gauss() IntegrationRule { return tp.gauss }

func (tp *Topology) Center() IntegrationRule { return tp.center }

// Mk is the inverse estimate constant used by the stabilization parameters
func (tp *Topology) Mk() float64 {
	if tp.Degree == 1 {
		return 1. / 3.
	}
	return 1. / 12.
}

type UnsupportedShapeError struct {
	Shape ShapeType
}

func NewUnsupportedShapeError(shape ShapeType) *UnsupportedShapeError {
	return &UnsupportedShapeError{Shape: shape}
}

func (e *UnsupportedShapeError) Error() string {
	return "unsupported element shape " + e.Shape.String()
}
