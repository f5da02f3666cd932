package buffer

import (
	"gonum.org/v1/gonum/stat"
)

// Buffer defines a simple float buffer that acts like a constant size queue
type Buffer struct {
	size   int
	values []float64
}

// NewBuffer creates a new buffer.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		size:   size,
		values: make([]float64, 0),
	}
}

// Push adds an element to the buffer.
// It returns the evicted element, if the buffer was already full.
func (b *Buffer) Push(x float64) (float64, bool) {
	b.values = append(b.values, x)
	if len(b.values) > b.size {
		value := b.values[0]
		b.values = b.values[1:]
		return value, true
	}
	return 0, false
}

// Get returns the buffer elements in the order they were added.
func (b *Buffer) Get() []float64 {
	vv := make([]float64, len(b.values))
	copy(vv, b.values)
	return vv
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return len(b.values)
}

// Full reports if the buffer holds as many elements as its size.
func (b *Buffer) Full() bool {
	return len(b.values) == b.size
}

// Avg returns the average of the buffer elements.
func (b *Buffer) Avg() float64 {
	if len(b.values) == 0 {
		return 0
	}
	return stat.Mean(b.values, nil)
}

// SMA calculates the simple moving average of the series for the given window.
// The result has len(series)-window+1 elements, one for each full window.
func SMA(series []float64, window int) []float64 {
	if window < 1 || len(series) < window {
		return []float64{}
	}
	sma := make([]float64, 0, len(series)-window+1)
	b := NewBuffer(window)
	for _, v := range series {
		b.Push(v)
		if b.Full() {
			sma = append(sma, b.Avg())
		}
	}
	return sma
}
