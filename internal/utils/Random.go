package utils

import (
	"math/rand/v2"
	"sync"
)

// Random is the only source of nondeterminism in the game engine. Every
// random activation and investment return draw goes through it.
type Random interface {
	// Float64 returns a sample in [0.0, 1.0).
	Float64() float64
}

// SeededRandom is a PCG backed Random. The same seed always replays the same
// sequence of draws.
type SeededRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *SeededRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// MockRandom returns the configured samples in order and then repeats the
// last one. With no samples it always returns Fallback.
type MockRandom struct {
	Samples  []float64
	Fallback float64
	calls    int
}

func (m *MockRandom) Float64() float64 {
	if len(m.Samples) == 0 {
		return m.Fallback
	}
	idx := m.calls
	if idx >= len(m.Samples) {
		idx = len(m.Samples) - 1
	}
	m.calls++
	return m.Samples[idx]
}

// Calls reports how many samples have been consumed.
func (m *MockRandom) Calls() int {
	return m.calls
}
