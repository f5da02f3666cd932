// Package net implements a two layer threshold network representing a DNF formula.
// The hidden units stand for the conjunctive terms (monomials) and the output unit
// for the disjunction over them.
package net

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drakos74/go-ex-machina/xmath"
	"gonum.org/v1/gonum/floats"

	dnfmath "github.com/drakos74/dnf-net/internal/math"
)

const (
	// DefaultInputLength is the number of boolean inputs of the reference formula.
	DefaultInputLength = 10
	// DefaultUnits is the number of monomials of the reference formula.
	DefaultUnits = 5
	// DefaultLearningRate is the learning rate for a trainable network.
	DefaultLearningRate = 0.1
)

var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrInvalidInput = errors.New("invalid input")
)

// Shape defines the dimensions of a network.
type Shape struct {
	InputLength int `json:"input_length"`
	Units       int `json:"units"`
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d,%d)", s.InputLength, s.Units)
}

func (s Shape) validate() error {
	if s.InputLength < 1 || s.Units < 1 {
		return fmt.Errorf("%w: sizes must be positive %s", ErrInvalidShape, s)
	}
	return nil
}

// Params are the explicit parameters of a network.
type Params struct {
	UnitWeights   [][]float64 `json:"unit_weights"`
	UnitBiases    []float64   `json:"unit_biases"`
	OutputWeights []float64   `json:"output_weights"`
	OutputBias    float64     `json:"output_bias"`
}

// Shape returns the shape implied by the parameters.
func (p Params) Shape() Shape {
	s := Shape{Units: len(p.UnitWeights)}
	if s.Units > 0 {
		s.InputLength = len(p.UnitWeights[0])
	}
	return s
}

// Network is a threshold network with one hidden layer of units and a single output unit.
// Parameters are owned by the network, no two networks share their storage.
type Network struct {
	shape         Shape
	learningRate  float64
	unitWeights   xmath.Matrix
	unitBiases    xmath.Vector
	outputWeights xmath.Vector
	outputBias    float64
}

// New creates a network with random parameters in (-factor, factor).
func New(inputLength, units int, learningRate float64, r dnfmath.Random, factor float64) (*Network, error) {
	shape := Shape{InputLength: inputLength, Units: units}
	if err := shape.validate(); err != nil {
		return nil, err
	}
	if learningRate < 0 {
		return nil, fmt.Errorf("%w: negative learning rate %v", ErrInvalidShape, learningRate)
	}
	weights := xmath.Mat(units)
	for i := range weights {
		weights[i] = dnfmath.Adjustments(r, inputLength, factor)
	}
	return &Network{
		shape:         shape,
		learningRate:  learningRate,
		unitWeights:   weights,
		unitBiases:    dnfmath.Adjustments(r, units, factor),
		outputWeights: dnfmath.Adjustments(r, units, factor),
		outputBias:    dnfmath.Adjustment(r, factor),
	}, nil
}

// NewWith creates a network from explicit parameters.
// The parameters are copied.
func NewWith(params Params, learningRate float64) (*Network, error) {
	shape := params.Shape()
	if err := shape.validate(); err != nil {
		return nil, err
	}
	if learningRate < 0 {
		return nil, fmt.Errorf("%w: negative learning rate %v", ErrInvalidShape, learningRate)
	}
	if len(params.UnitBiases) != shape.Units || len(params.OutputWeights) != shape.Units {
		return nil, fmt.Errorf("%w: %d units with %d biases and %d output weights",
			ErrInvalidShape, shape.Units, len(params.UnitBiases), len(params.OutputWeights))
	}
	weights := xmath.Mat(shape.Units)
	for i, w := range params.UnitWeights {
		if len(w) != shape.InputLength {
			return nil, fmt.Errorf("%w: unit %d has %d weights instead of %d", ErrInvalidShape, i, len(w), shape.InputLength)
		}
		weights[i] = xmath.Vector(w).Copy()
	}
	return &Network{
		shape:         shape,
		learningRate:  learningRate,
		unitWeights:   weights,
		unitBiases:    xmath.Vector(params.UnitBiases).Copy(),
		outputWeights: xmath.Vector(params.OutputWeights).Copy(),
		outputBias:    params.OutputBias,
	}, nil
}

// MustNewWith creates a network from explicit parameters and panics on error.
func MustNewWith(params Params, learningRate float64) *Network {
	n, err := NewWith(params, learningRate)
	if err != nil {
		panic(err.Error())
	}
	return n
}

// Shape returns the dimensions of the network.
func (n *Network) Shape() Shape {
	return n.shape
}

// LearningRate returns the learning rate of the network.
func (n *Network) LearningRate() float64 {
	return n.learningRate
}

// Params returns a copy of the network parameters.
func (n *Network) Params() Params {
	weights := make([][]float64, len(n.unitWeights))
	for i, w := range n.unitWeights.Copy() {
		weights[i] = w
	}
	return Params{
		UnitWeights:   weights,
		UnitBiases:    n.unitBiases.Copy(),
		OutputWeights: n.outputWeights.Copy(),
		OutputBias:    n.outputBias,
	}
}

// Infer computes the network output and the unit activations for the given inputs.
// Inputs are expected in {-1,1}, other values are not checked.
func (n *Network) Infer(inputs []int) (int, []int, error) {
	if len(inputs) != n.shape.InputLength {
		return 0, nil, fmt.Errorf("%w: %d inputs for network of shape %s", ErrInvalidInput, len(inputs), n.shape)
	}
	x := xmath.Vector(dnfmath.ToFloat(inputs))
	activations := make([]int, n.shape.Units)
	var output float64
	for i, w := range n.unitWeights {
		activations[i] = dnfmath.Sign(w.Dot(x) - n.unitBiases[i])
		output += n.outputWeights[i] * float64(activations[i])
	}
	return dnfmath.Sign(output - n.outputBias), activations, nil
}

// Update applies the error correction for the given example.
// Unit parameters are corrected with the output weights as they were before this step,
// output parameters are corrected last.
func (n *Network) Update(inputs []int, target, observed int, activations []int) error {
	if len(inputs) != n.shape.InputLength {
		return fmt.Errorf("%w: %d inputs for network of shape %s", ErrInvalidInput, len(inputs), n.shape)
	}
	if len(activations) != n.shape.Units {
		return fmt.Errorf("%w: %d activations for network of shape %s", ErrInvalidInput, len(activations), n.shape)
	}
	e := float64(target - observed)
	for i, w := range n.unitWeights {
		delta := n.learningRate * n.outputWeights[i] * e
		for j := range w {
			w[j] += delta * float64(inputs[j])
		}
		n.unitBiases[i] -= delta
	}
	for i := range n.outputWeights {
		n.outputWeights[i] += n.learningRate * e * float64(activations[i])
	}
	n.outputBias -= n.learningRate * e
	return nil
}

// TrainStep infers the output for the inputs and updates the parameters towards the target.
// It returns the output and activations observed before the update.
func (n *Network) TrainStep(inputs []int, target int) (int, []int, error) {
	output, activations, err := n.Infer(inputs)
	if err != nil {
		return 0, nil, err
	}
	if err := n.Update(inputs, target, output, activations); err != nil {
		return 0, nil, err
	}
	return output, activations, nil
}

// Equal checks if the two networks have the same parameters.
// The learning rate is not taken into account.
func (n *Network) Equal(m *Network) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.shape != m.shape {
		return false
	}
	for i := range n.unitWeights {
		if !floats.Equal(n.unitWeights[i], m.unitWeights[i]) {
			return false
		}
	}
	return floats.Equal(n.unitBiases, m.unitBiases) &&
		floats.Equal(n.outputWeights, m.outputWeights) &&
		n.outputBias == m.outputBias
}

func (n *Network) String() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Network with %d inputs and %d units\n\n", n.shape.InputLength, n.shape.Units))
	for i := range n.unitWeights {
		builder.WriteString(fmt.Sprintf("Unit %d: Weights = %v Bias = %v\n\n", i, []float64(n.unitWeights[i]), n.unitBiases[i]))
	}
	builder.WriteString(fmt.Sprintf("Output weights: %v\n", []float64(n.outputWeights)))
	builder.WriteString(fmt.Sprintf("Output bias: %v\n", n.outputBias))
	return builder.String()
}
