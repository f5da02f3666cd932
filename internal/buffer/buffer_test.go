package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Push(t *testing.T) {

	b := NewBuffer(3)

	for i := 0; i < 3; i++ {
		_, ok := b.Push(float64(i))
		assert.False(t, ok)
	}
	assert.True(t, b.Full())
	assert.Equal(t, []float64{0, 1, 2}, b.Get())
	assert.Equal(t, 1.0, b.Avg())

	v, ok := b.Push(3)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, []float64{1, 2, 3}, b.Get())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2.0, b.Avg())
}

func TestSMA(t *testing.T) {

	type test struct {
		series []float64
		window int
		sma    []float64
	}

	tests := map[string]test{
		"window-1": {
			series: []float64{4, 2, 0},
			window: 1,
			sma:    []float64{4, 2, 0},
		},
		"window-2": {
			series: []float64{4, 2, 0, 2},
			window: 2,
			sma:    []float64{3, 1, 1},
		},
		"full-window": {
			series: []float64{1, 2, 3},
			window: 3,
			sma:    []float64{2},
		},
		"short-series": {
			series: []float64{1, 2},
			window: 3,
			sma:    []float64{},
		},
		"invalid-window": {
			series: []float64{1, 2},
			window: 0,
			sma:    []float64{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.sma, SMA(tt.series, tt.window))
		})
	}
}
