package Shape2D

import "fmt"

// MinDet is the smallest Jacobian determinant accepted at an integration point
const MinDet = 1.0e-14

// DegenerateElementError reports an inverted or collapsed element
type DegenerateElementError struct {
	EleID  int
	Det    float64
	Reason string
}

func (e *DegenerateElementError) Error() string {
	return fmt.Sprintf("element %d: %s, det = %12.5e", e.EleID, e.Reason, e.Det)
}
