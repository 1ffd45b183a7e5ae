package interfaces

// RandomSource supplies uniformly distributed integers.
type RandomSource interface {
	// NextUniformInt returns an integer in [min, max], both inclusive.
	NextUniformInt(min, max int) int
}
