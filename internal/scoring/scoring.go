// Package scoring provides the pluggable score strategy used by the campaign
// store. The production default is a uniform-random placeholder standing in
// for a real predictive model; swapping in a trained model only requires
// another Strategy implementation.
package scoring

import (
	"math/rand"
	"sync"
	"time"
)

// Kind identifies which score is being requested.
type Kind string

const (
	// KindViral is the predicted message shareability, 70-100 at creation.
	KindViral Kind = "viral"
	// KindEngagement is a contact's engagement score, 60-100 at creation.
	KindEngagement Kind = "engagement"
	// KindRating is a template's rating, 4.5-5.0 at creation.
	KindRating Kind = "rating"
	// KindReach is a campaign's estimated reach, 1000-11000 at creation.
	KindReach Kind = "reach"
)

// Strategy produces a score for the given kind.
type Strategy interface {
	Score(kind Kind) float64
}

// Random is the placeholder strategy: uniform draws within each kind's range.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a Random strategy seeded from the clock.
func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewRandomSeeded creates a Random strategy with a fixed seed, for
// reproducible demo data.
func NewRandomSeeded(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Score returns a uniform draw in the range associated with kind.
func (r *Random) Score(kind Kind) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch kind {
	case KindViral:
		return 70 + r.rng.Float64()*30
	case KindEngagement:
		return 60 + r.rng.Float64()*40
	case KindRating:
		return 4.5 + r.rng.Float64()*0.5
	case KindReach:
		return float64(1000 + r.rng.Intn(10000))
	default:
		return 0
	}
}

// Fixed returns the same value for every kind. Test helper.
type Fixed float64

// Score returns the fixed value regardless of kind.
func (f Fixed) Score(Kind) float64 { return float64(f) }
