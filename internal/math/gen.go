package math

import (
	"math/rand"
)

// Random is the source of randomness for parameter initialisation.
// *rand.Rand satisfies it, so tests can pass a seeded generator.
type Random interface {
	Float64() float64
}

// NewRandom creates a seeded random source.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Adjustment returns a random value in (-factor, factor).
// The magnitude is drawn first and the sign is flipped with 50% probability.
func Adjustment(r Random, factor float64) float64 {
	v := r.Float64()
	if r.Float64() < 0.5 {
		v *= -1
	}
	return v * factor
}

// Adjustments fills a new slice of the given size with random adjustments.
func Adjustments(r Random, size int, factor float64) []float64 {
	vv := make([]float64, size)
	for i := range vv {
		vv[i] = Adjustment(r, factor)
	}
	return vv
}
