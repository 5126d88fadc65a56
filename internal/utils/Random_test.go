package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandom(t *testing.T) {
	t.Run("same seed replays the same sequence", func(t *testing.T) {
		a := NewSeededRandom(42)
		b := NewSeededRandom(42)
		for i := 0; i < 10; i++ {
			assert.Equal(t, a.Float64(), b.Float64())
		}
	})

	t.Run("samples stay in the unit interval", func(t *testing.T) {
		r := NewSeededRandom(7)
		for i := 0; i < 1000; i++ {
			v := r.Float64()
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	})
}

func TestMockRandom(t *testing.T) {
	t.Run("returns samples in order and repeats the last", func(t *testing.T) {
		m := &MockRandom{Samples: []float64{0.1, 0.9}}
		assert.Equal(t, 0.1, m.Float64())
		assert.Equal(t, 0.9, m.Float64())
		assert.Equal(t, 0.9, m.Float64())
		assert.Equal(t, 3, m.Calls())
	})

	t.Run("uses fallback when empty", func(t *testing.T) {
		m := &MockRandom{Fallback: 0.5}
		assert.Equal(t, 0.5, m.Float64())
	})
}
