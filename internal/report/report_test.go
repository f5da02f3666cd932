package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drakos74/dnf-net/internal/train"
)

func TestSummarize(t *testing.T) {

	result := train.Result{
		ID:                "run",
		IncorrectPerEpoch: []int{4, 2, 2, 0},
		UnitMissesPerEpoch: [][]int{
			{3, 1, 1, 1},
			{0, 0, 2, 0},
		},
		Converged: true,
	}

	s := Summarize("lr=0.1", result, 2)

	assert.Equal(t, "lr=0.1", s.Name)
	assert.Equal(t, "run", s.ID)
	assert.Equal(t, 4, s.Epochs)
	assert.True(t, s.Converged)
	assert.Equal(t, 4, s.First)
	assert.Equal(t, 0, s.Last)
	assert.InDelta(t, 2.0, s.Mean, 1e-9)
	assert.Equal(t, []float64{3, 2, 1}, s.SMA)

	expected := []Unit{
		{Index: 0, Mean: 1.5, Max: 3, Last: 1},
		{Index: 1, Mean: 0.5, Max: 2, Last: 0},
	}
	assert.Len(t, s.Units, len(expected))
	for i, u := range expected {
		assert.Equal(t, u.Index, s.Units[i].Index)
		assert.InDelta(t, u.Mean, s.Units[i].Mean, 1e-9)
		assert.Equal(t, u.Max, s.Units[i].Max)
		assert.Equal(t, u.Last, s.Units[i].Last)
	}

	v, ok := s.LastSMA()
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestSummarize_ShortRun(t *testing.T) {

	result := train.Result{
		IncorrectPerEpoch:  []int{0},
		UnitMissesPerEpoch: [][]int{{0}, {0}},
		Converged:          true,
	}

	s := Summarize("identical", result, 100)
	assert.Equal(t, 1, s.Epochs)
	assert.Empty(t, s.SMA)
	_, ok := s.LastSMA()
	assert.False(t, ok)
	assert.Len(t, s.Units, 2)
}

func TestRender(t *testing.T) {

	a := Summarize("lr=0.1", train.Result{
		IncorrectPerEpoch:  []int{4, 0},
		UnitMissesPerEpoch: [][]int{{2, 1}},
		Converged:          true,
	}, 2)
	b := Summarize("lr=0.01", train.Result{
		IncorrectPerEpoch:  []int{4},
		UnitMissesPerEpoch: [][]int{{3}},
	}, 2)

	var buf bytes.Buffer
	Render(&buf, a, b)

	out := buf.String()
	assert.Contains(t, out, "lr=0.1")
	assert.Contains(t, out, "lr=0.01")
	assert.Contains(t, out, "2.00 (2)")
	assert.Contains(t, out, "CONVERGED")
	assert.Contains(t, out, "1.50")
}
