package geometry

import (
	"fmt"

	"mcpi/internal/domain"
	"mcpi/internal/numeric"
)

// Boundary decides where a point exactly on the circle belongs.
type Boundary uint8

const (
	// BoundaryInside counts ties as inside.
	BoundaryInside Boundary = iota
	// BoundaryOutside counts ties as outside.
	BoundaryOutside
)

// String returns "inside" or "outside".
func (b Boundary) String() string {
	if b == BoundaryOutside {
		return "outside"
	}
	return "inside"
}

// ParseBoundary accepts "inside" or "outside".
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "", "inside":
		return BoundaryInside, nil
	case "outside":
		return BoundaryOutside, nil
	default:
		return 0, fmt.Errorf("boundary policy %q: %w", s, domain.ErrInvalidArgument)
	}
}

// Classifier tags points relative to a Domain's inscribed circle.
// The zero value uses numeric.Default and BoundaryInside.
type Classifier struct {
	Solver   numeric.Solver
	Boundary Boundary
}

// Classify is Classifier{}.Classify.
func Classify(p domain.Point, d domain.Domain) (domain.SampleCategory, error) {
	return Classifier{}.Classify(p, d)
}

// Distance returns the approximate distance from p to the centre of d.
func (c Classifier) Distance(p domain.Point, d domain.Domain) (float64, error) {
	return c.Solver.Sqrt(squaredDistance(p, d))
}

// Classify returns domain.Inside when p is within the circle inscribed in d.
func (c Classifier) Classify(p domain.Point, d domain.Domain) (domain.SampleCategory, error) {
	if d.Size <= 0 {
		return 0, fmt.Errorf("domain size %d must be positive: %w", d.Size, domain.ErrInvalidArgument)
	}
	sq := squaredDistance(p, d)
	r := d.Radius()

	// Coordinates are integers and the centre is a multiple of 1/2, so both
	// squares are exact and ties can be detected without the solver.
	if sq == r*r {
		if c.Boundary == BoundaryOutside {
			return domain.Outside, nil
		}
		return domain.Inside, nil
	}

	dist, err := c.Solver.Sqrt(sq)
	if err != nil {
		return 0, err
	}
	if dist <= r {
		return domain.Inside, nil
	}
	return domain.Outside, nil
}

func squaredDistance(p domain.Point, d domain.Domain) float64 {
	dx := float64(p.X) - d.Center()
	dy := float64(p.Y) - d.Center()
	return dx*dx + dy*dy
}
