package particle

import (
	"math/rand"
)

// Source is the random number source every randomized decision goes through
// (spawn position, hue, bounce damping, trail trials).
//
// Float64 must return values in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a pseudo-random Source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of values, wrapping around at the end.
// An empty sequence always yields 0.
type SequenceSource struct {
	values []float64
	next   int
}

// NewSequenceSource creates a SequenceSource over values.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

// Float64 returns the next value of the sequence.
func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Calls returns how many values have been drawn so far.
func (s *SequenceSource) Calls() int {
	return s.next
}

// Chance draws one Bernoulli trial that succeeds with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() > 1-p
}
