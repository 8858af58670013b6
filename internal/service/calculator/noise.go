package ridecalc

import (
	"math/rand/v2"
	"sync"
)

// Noise is the source of the uniform perturbation added to fare and ETA.
type Noise interface {
	Uniform(min, max float64) float64
}

// RandNoise draws from a seeded PCG generator. Safe for concurrent use.
type RandNoise struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandNoise(seed uint64) *RandNoise {
	return &RandNoise{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (n *RandNoise) Uniform(min, max float64) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return min + n.rnd.Float64()*(max-min)
}

// ZeroNoise always returns the midpoint of the range.
type ZeroNoise struct{}

func (ZeroNoise) Uniform(min, max float64) float64 {
	return (min + max) / 2
}

// FixedNoise returns the given fraction of the range: 0 is min, 1 is max.
type FixedNoise float64

func (f FixedNoise) Uniform(min, max float64) float64 {
	return min + float64(f)*(max-min)
}
