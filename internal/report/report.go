// Package report summarises training results.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/drakos74/dnf-net/internal/buffer"
	dnfmath "github.com/drakos74/dnf-net/internal/math"
	"github.com/drakos74/dnf-net/internal/train"
)

// Unit summarises the misses of one unit over all epochs.
type Unit struct {
	Index int     `json:"index"`
	Mean  float64 `json:"mean"`
	Max   int     `json:"max"`
	Last  int     `json:"last"`
}

// Summary summarises a training run.
type Summary struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	Epochs    int       `json:"epochs"`
	Converged bool      `json:"converged"`
	First     int       `json:"first"`
	Last      int       `json:"last"`
	Mean      float64   `json:"mean"`
	Window    int       `json:"window"`
	SMA       []float64 `json:"sma"`
	Units     []Unit    `json:"units"`
}

// Summarize creates the summary of the given result.
// SMA holds the moving average of the network mismatches over the given window.
func Summarize(name string, result train.Result, window int) Summary {
	s := Summary{
		Name:      name,
		ID:        result.ID,
		Epochs:    result.Epochs(),
		Converged: result.Converged,
		Window:    window,
		SMA:       buffer.SMA(dnfmath.ToFloat(result.IncorrectPerEpoch), window),
		Units:     make([]Unit, len(result.UnitMissesPerEpoch)),
	}
	if s.Epochs == 0 {
		return s
	}

	network := buffer.NewStats()
	for _, incorrect := range result.IncorrectPerEpoch {
		network.Push(float64(incorrect))
	}
	s.First = int(network.First())
	s.Last = int(network.Last())
	s.Mean = network.Avg()

	units := buffer.NewStatsCollector(len(result.UnitMissesPerEpoch))
	for e := 0; e < s.Epochs; e++ {
		misses := make([]float64, len(result.UnitMissesPerEpoch))
		for u, m := range result.UnitMissesPerEpoch {
			misses[u] = float64(m[e])
		}
		units.Push(misses...)
	}
	for u, stats := range units.Stats() {
		s.Units[u] = Unit{
			Index: u,
			Mean:  stats.Avg(),
			Max:   int(stats.Max()),
			Last:  int(stats.Last()),
		}
	}
	return s
}

// LastSMA returns the last moving average value, if the run lasted at least a window.
func (s Summary) LastSMA() (float64, bool) {
	if len(s.SMA) == 0 {
		return 0, false
	}
	return s.SMA[len(s.SMA)-1], true
}

// Render writes the summaries as tables to the given writer.
func Render(w io.Writer, summaries ...Summary) {
	runs := tablewriter.NewWriter(w)
	runs.SetHeader([]string{"run", "epochs", "converged", "first", "last", "mean", "sma"})
	for _, s := range summaries {
		sma := "-"
		if v, ok := s.LastSMA(); ok {
			sma = fmt.Sprintf("%s (%d)", dnfmath.Format(v), s.Window)
		}
		runs.Append([]string{
			s.Name,
			strconv.Itoa(s.Epochs),
			strconv.FormatBool(s.Converged),
			strconv.Itoa(s.First),
			strconv.Itoa(s.Last),
			dnfmath.Format(s.Mean),
			sma,
		})
	}
	runs.Render()

	units := tablewriter.NewWriter(w)
	units.SetHeader([]string{"run", "unit", "mean", "max", "last"})
	for _, s := range summaries {
		for _, u := range s.Units {
			units.Append([]string{
				s.Name,
				strconv.Itoa(u.Index + 1),
				dnfmath.Format(u.Mean),
				strconv.Itoa(u.Max),
				strconv.Itoa(u.Last),
			})
		}
	}
	units.Render()
}
