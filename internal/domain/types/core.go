package types

import "fmt"

// Point is an integer coordinate pair inside a Domain.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the "(x, y)" form of the point.
func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Domain is the square sampling region [0, Size] x [0, Size] and the circle
// inscribed in it.
type Domain struct {
	Size int `json:"size"`
}

// Center returns the centre of the inscribed circle on both axes.
func (d Domain) Center() float64 { return float64(d.Size) / 2 }

// Radius returns the radius of the inscribed circle.
func (d Domain) Radius() float64 { return float64(d.Size) / 2 }

// Contains reports whether p lies within the square bounds.
func (d Domain) Contains(p Point) bool {
	return p.X >= 0 && p.X <= d.Size && p.Y >= 0 && p.Y <= d.Size
}

// SampleCategory tags a Point relative to the inscribed circle.
type SampleCategory uint8

const (
	// Inside marks a point on or within the circle (see the classifier's
	// boundary policy for exact ties).
	Inside SampleCategory = iota + 1
	// Outside marks a point beyond the circle.
	Outside
)

// String returns "inside", "outside" or "unknown".
func (c SampleCategory) String() string {
	switch c {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	default:
		return "unknown"
	}
}

// MarshalText encodes the category by name.
func (c SampleCategory) MarshalText() ([]byte, error) {
	if c != Inside && c != Outside {
		return nil, fmt.Errorf("unknown sample category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText mirrors MarshalText.
func (c *SampleCategory) UnmarshalText(b []byte) error {
	switch string(b) {
	case "inside":
		*c = Inside
	case "outside":
		*c = Outside
	default:
		return fmt.Errorf("unknown sample category %q", b)
	}
	return nil
}
