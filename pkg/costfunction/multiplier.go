package costfunction

import (
	"sync"
	"time"

	"github.com/lintang-b-s/arterial/pkg"
	"golang.org/x/exp/rand"
)

// Multiplier. source of the bounded random variation applied to every prediction
type Multiplier interface {
	Next() float64
}

// FixedMultiplier. deterministic multiplier, 1.0 disables the variation
type FixedMultiplier float64

func (f FixedMultiplier) Next() float64 {
	return float64(f)
}

// UniformMultiplier. uniform draw in [min, max). safe for concurrent use.
type UniformMultiplier struct {
	mu       sync.Mutex
	rng      *rand.Rand
	min, max float64
}

// NewUniformMultiplier. seed 0 seeds from the wall clock
func NewUniformMultiplier(seed uint64) *UniformMultiplier {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &UniformMultiplier{
		rng: rand.New(rand.NewSource(seed)),
		min: pkg.MIN_RANDOM_MULTIPLIER,
		max: pkg.MAX_RANDOM_MULTIPLIER,
	}
}

func (u *UniformMultiplier) Next() float64 {
	u.mu.Lock()
	f := u.rng.Float64()
	u.mu.Unlock()
	return u.min + f*(u.max-u.min)
}
