// Package train drives a learner network towards the outputs of a fixed teacher network
// by enumerating the whole boolean input space on every epoch.
package train

import (
	"errors"
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	dnfmath "github.com/drakos74/dnf-net/internal/math"
	"github.com/drakos74/dnf-net/internal/net"
)

// DefaultMaxEpochs is the default epoch budget.
const DefaultMaxEpochs = 1000

var ErrShapeMismatch = errors.New("shape mismatch")

// Epoch holds the mismatches of one full pass over the input space.
type Epoch struct {
	Index      int   `json:"index"`
	Incorrect  int   `json:"incorrect"`
	UnitMisses []int `json:"unit_misses"`
}

// Converged reports if the learner matched the teacher on every input.
func (e Epoch) Converged() bool {
	return e.Incorrect == 0
}

// Observer is notified at the end of every epoch.
type Observer interface {
	Observe(run string, epoch Epoch)
}

// ObserverFunc adapts a func to an Observer.
type ObserverFunc func(run string, epoch Epoch)

func (f ObserverFunc) Observe(run string, epoch Epoch) {
	f(run, epoch)
}

// Result is the outcome of a training run.
// UnitMissesPerEpoch is unit-major, one series per unit with one value per epoch.
type Result struct {
	ID                 string  `json:"id"`
	IncorrectPerEpoch  []int   `json:"incorrect_per_epoch"`
	UnitMissesPerEpoch [][]int `json:"unit_misses_per_epoch"`
	Converged          bool    `json:"converged"`
}

// Epochs returns the number of executed epochs.
func (r Result) Epochs() int {
	return len(r.IncorrectPerEpoch)
}

// Trainer trains a learner against a teacher of the same shape.
type Trainer struct {
	id        string
	teacher   *net.Network
	learner   *net.Network
	space     Space
	maxEpochs int
	observers []Observer
}

// New creates a new trainer.
// Teacher and learner must have the same shape.
func New(teacher, learner *net.Network, maxEpochs int) (*Trainer, error) {
	if teacher.Shape() != learner.Shape() {
		return nil, fmt.Errorf("%w: teacher %s vs learner %s", ErrShapeMismatch, teacher.Shape(), learner.Shape())
	}
	if maxEpochs < 1 {
		return nil, fmt.Errorf("epoch budget must be positive: %d", maxEpochs)
	}
	space, err := NewSpace(teacher.Shape().InputLength)
	if err != nil {
		return nil, err
	}
	return &Trainer{
		id:        uuid.New().String(),
		teacher:   teacher,
		learner:   learner,
		space:     space,
		maxEpochs: maxEpochs,
		observers: make([]Observer, 0),
	}, nil
}

// WithObserver adds observers for the epoch results.
func (t *Trainer) WithObserver(observers ...Observer) *Trainer {
	t.observers = append(t.observers, observers...)
	return t
}

// ID returns the run id of the trainer.
func (t *Trainer) ID() string {
	return t.id
}

// Run trains the learner until it converges or the epoch budget runs out.
func (t *Trainer) Run() (Result, error) {
	epochs := make([]Epoch, 0)
	for len(epochs) < t.maxEpochs {
		epoch, err := t.epoch(len(epochs))
		if err != nil {
			return Result{}, fmt.Errorf("could not complete epoch %d: %w", len(epochs), err)
		}
		epochs = append(epochs, epoch)
		log.Debug().
			Str("run", t.id).
			Int("epoch", epoch.Index).
			Int("incorrect", epoch.Incorrect).
			Ints("units", epoch.UnitMisses).
			Msg("epoch")
		for _, o := range t.observers {
			o.Observe(t.id, epoch)
		}
		if epoch.Converged() {
			break
		}
	}
	result := t.result(epochs)
	log.Info().
		Str("run", t.id).
		Float64("learning-rate", t.learner.LearningRate()).
		Int("epochs", result.Epochs()).
		Bool("converged", result.Converged).
		Msg("training finished")
	return result, nil
}

// epoch runs one full pass over the input space.
// Every input is processed, so that unit misses are complete.
func (t *Trainer) epoch(index int) (Epoch, error) {
	epoch := Epoch{
		Index:      index,
		UnitMisses: make([]int, t.learner.Shape().Units),
	}
	err := t.space.Each(func(i int64, x []int) error {
		target, expected, err := t.teacher.Infer(x)
		if err != nil {
			return err
		}
		output, activations, err := t.learner.TrainStep(x, target)
		if err != nil {
			return err
		}
		for u := range activations {
			if activations[u] != expected[u] {
				epoch.UnitMisses[u]++
			}
		}
		if output != target {
			epoch.Incorrect++
		}
		return nil
	})
	return epoch, err
}

// result collects the epochs and transposes the unit misses to unit-major order.
func (t *Trainer) result(epochs []Epoch) Result {
	incorrect := make([]int, len(epochs))
	misses := xmath.Mat(len(epochs))
	for i, e := range epochs {
		incorrect[i] = e.Incorrect
		misses[i] = dnfmath.ToFloat(e.UnitMisses)
	}
	unitMisses := make([][]int, t.learner.Shape().Units)
	if len(epochs) > 0 {
		for u, m := range misses.T() {
			unitMisses[u] = dnfmath.ToInt(m)
		}
	}
	return Result{
		ID:                 t.id,
		IncorrectPerEpoch:  incorrect,
		UnitMissesPerEpoch: unitMisses,
		Converged:          len(epochs) > 0 && epochs[len(epochs)-1].Converged(),
	}
}

// Supervised trains the learner against the teacher for at most maxEpochs epochs.
// It returns the network mismatches per epoch and the unit misses per epoch, unit-major.
func Supervised(teacher, learner *net.Network, maxEpochs int) ([]int, [][]int, error) {
	trainer, err := New(teacher, learner, maxEpochs)
	if err != nil {
		return nil, nil, err
	}
	result, err := trainer.Run()
	if err != nil {
		return nil, nil, err
	}
	return result.IncorrectPerEpoch, result.UnitMissesPerEpoch, nil
}
