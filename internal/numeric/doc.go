// Package numeric implements the iterative square-root solver used for
// distance measurements.
//
// The solver keeps an upper estimate x (starting at n) and a lower estimate
// y (starting at 1) and repeatedly replaces x with the mean of the two and y
// with n / x, until the two are within Tolerance of each other. After the
// first step x never drops below √n and y never rises above it, so the
// returned x is an upper bound on the true root within Tolerance.
//
// Zero short-circuits to 0. Negative, NaN and infinite inputs are rejected
// with domain.ErrInvalidArgument. Iteration is capped by MaxIterations; when
// the cap is reached the best estimate so far is returned.
package numeric
