package playlist

import (
	"math/rand/v2"
	"time"
)

// Option configures a List.
type Option func(*List)

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) Option {
	return func(l *List) {
		l.rng = r
	}
}

// WithSeed seeds the shuffle source deterministically.
// A zero seed falls back to a clock-based seed.
func WithSeed(seed uint64) Option {
	return func(l *List) {
		if seed != 0 {
			l.rng = newRand(seed)
		}
	}
}

// WithStrictPositions makes InsertAt and MoveTo reject out-of-range target
// positions with ErrInvalidPosition instead of clamping them.
func WithStrictPositions() Option {
	return func(l *List) {
		l.strict = true
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func clockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
