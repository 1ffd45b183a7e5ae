package rng

import "mcpi/internal/domain"

// Sequence replays a fixed list of values, cycling when exhausted. Each value
// is clamped into the requested range. An empty Sequence always returns the
// lower bound.
type Sequence struct {
	Values []int
	next   int
	calls  int
}

// NewSequence returns a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{Values: values}
}

// NextUniformInt returns the next scripted value clamped into [lo, hi].
func (q *Sequence) NextUniformInt(lo, hi int) int {
	q.calls++
	if len(q.Values) == 0 {
		return lo
	}
	v := q.Values[q.next%len(q.Values)]
	q.next++
	return min(max(v, lo), hi)
}

// Calls reports how many draws were made.
func (q *Sequence) Calls() int { return q.calls }

var _ domain.RandomSource = (*Sequence)(nil)
