package geometry

import (
	"fmt"

	"mcpi/internal/domain"
)

// NewDomain validates size and returns the Domain.
func NewDomain(size int) (domain.Domain, error) {
	if size <= 0 {
		return domain.Domain{}, fmt.Errorf("domain size %d must be positive: %w", size, domain.ErrInvalidArgument)
	}
	return domain.Domain{Size: size}, nil
}

// SamplePoint draws x and y independently and uniformly from [0, size].
// It advances src by two draws.
func SamplePoint(size int, src domain.RandomSource) (domain.Point, error) {
	if size <= 0 {
		return domain.Point{}, fmt.Errorf("domain size %d must be positive: %w", size, domain.ErrInvalidArgument)
	}
	if src == nil {
		return domain.Point{}, fmt.Errorf("nil random source: %w", domain.ErrInvalidArgument)
	}
	x := src.NextUniformInt(0, size)
	y := src.NextUniformInt(0, size)
	return domain.Point{X: x, Y: y}, nil
}
