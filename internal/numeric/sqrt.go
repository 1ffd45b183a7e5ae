package numeric

import (
	"fmt"
	"math"

	"mcpi/internal/domain"
)

const (
	// DefaultTolerance bounds the gap between the upper and lower estimates.
	DefaultTolerance = 1e-6
	// DefaultMaxIterations caps the averaging loop.
	DefaultMaxIterations = 1000
)

// Solver computes approximate square roots by iterative averaging.
// The zero value uses the defaults.
type Solver struct {
	Tolerance     float64
	MaxIterations int
}

// Result is the outcome of one solve.
type Result struct {
	Value      float64
	Iterations int
	// Capped is set when MaxIterations was reached before convergence.
	Capped bool
}

// Default is the solver with DefaultTolerance and DefaultMaxIterations.
var Default = Solver{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}

// ApproxSqrt is Default.Sqrt.
func ApproxSqrt(n float64) (float64, error) { return Default.Sqrt(n) }

// Sqrt returns the approximate square root of n.
func (s Solver) Sqrt(n float64) (float64, error) {
	r, err := s.Solve(n)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}

// Solve is Sqrt with iteration details.
func (s Solver) Solve(n float64) (Result, error) {
	tol, limit, err := s.params()
	if err != nil {
		return Result{}, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Result{}, fmt.Errorf("sqrt of %v: %w", n, domain.ErrInvalidArgument)
	}
	if n < 0 {
		return Result{}, fmt.Errorf("sqrt of negative %v: %w", n, domain.ErrInvalidArgument)
	}
	if n == 0 {
		return Result{}, nil
	}

	x, y := n, 1.0
	i := 0
	for math.Abs(x-y) > tol {
		if i == limit {
			return Result{Value: x, Iterations: i, Capped: true}, nil
		}
		x = (x + y) / 2
		y = n / x
		i++
	}
	return Result{Value: x, Iterations: i}, nil
}

func (s Solver) params() (tol float64, limit int, err error) {
	tol, limit = s.Tolerance, s.MaxIterations
	if tol == 0 {
		tol = DefaultTolerance
	}
	if limit == 0 {
		limit = DefaultMaxIterations
	}
	if !(tol > 0) || math.IsInf(tol, 0) {
		return 0, 0, fmt.Errorf("tolerance %v must be positive: %w", tol, domain.ErrInvalidArgument)
	}
	if limit < 0 {
		return 0, 0, fmt.Errorf("max iterations %d must be positive: %w", limit, domain.ErrInvalidArgument)
	}
	return tol, limit, nil
}
