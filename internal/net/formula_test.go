package net

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reference = "x1 x2 x3 !x4 | x2 x3 x4 !x5 | x3 x4 x5 !x6 | x4 x5 x6 !x7 | x7 !x8 !x9 !x10"

func TestParseFormula(t *testing.T) {

	type test struct {
		input   string
		formula Formula
		err     bool
	}

	tests := map[string]test{
		"single-literal": {
			input:   "x1",
			formula: Formula{{{Variable: 1}}},
		},
		"ampersand": {
			input: "x1 & ~x2 | !x3",
			formula: Formula{
				{{Variable: 1}, {Variable: 2, Negated: true}},
				{{Variable: 3, Negated: true}},
			},
		},
		"compact": {
			input: "x1&x2|x3",
			formula: Formula{
				{{Variable: 1}, {Variable: 2}},
				{{Variable: 3}},
			},
		},
		"empty": {
			input: "  ",
			err:   true,
		},
		"empty-term": {
			input: "x1 | | x2",
			err:   true,
		},
		"unknown-literal": {
			input: "y1",
			err:   true,
		},
		"no-index": {
			input: "x",
			err:   true,
		},
		"zero-index": {
			input: "x0",
			err:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := ParseFormula(tt.input)
			if tt.err {
				assert.True(t, errors.Is(err, ErrInvalidFormula))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.formula, f)
		})
	}
}

func TestFormula_String(t *testing.T) {
	f := MustParseFormula(reference)
	assert.Equal(t, reference, f.String())
	assert.Equal(t, 10, f.Variables())
}

func TestFormula_Params(t *testing.T) {
	params, err := MustParseFormula(reference).Params(10)
	require.NoError(t, err)
	assert.Equal(t, referenceParams(), params)
}

func TestFormula_ParamsInvalid(t *testing.T) {

	tests := map[string]Formula{
		"empty":           {},
		"out-of-range":    {{{Variable: 4}}},
		"zero-variable":   {{{Variable: 0}}},
		"duplicate":       {{{Variable: 1}, {Variable: 1}}},
		"contradiction":   {{{Variable: 1}, {Variable: 1, Negated: true}}},
		"later-duplicate": {{{Variable: 1}}, {{Variable: 2}, {Variable: 3}, {Variable: 2}}},
	}

	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.Params(3)
			assert.True(t, errors.Is(err, ErrInvalidFormula))
			_, err = FromFormula(3, f)
			assert.True(t, errors.Is(err, ErrInvalidFormula))
		})
	}
}

func TestFromFormula(t *testing.T) {

	type test struct {
		formula     string
		inputLength int
	}

	tests := map[string]test{
		"reference": {
			formula:     reference,
			inputLength: 10,
		},
		"single-term": {
			formula:     "x1 !x3",
			inputLength: 4,
		},
		"two-terms": {
			formula:     "x1 x2 | !x1 !x2",
			inputLength: 2,
		},
		"unused-inputs": {
			formula:     "x2 | x3",
			inputLength: 6,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := MustParseFormula(tt.formula)
			n, err := FromFormula(tt.inputLength, f)
			require.NoError(t, err)
			assert.Equal(t, Shape{InputLength: tt.inputLength, Units: len(f)}, n.Shape())

			for _, x := range inputs(tt.inputLength) {
				output, activations, err := n.Infer(x)
				require.NoError(t, err)
				assert.Equal(t, f.Eval(x), output == 1, "input %v", x)
				for i, term := range f {
					assert.Equal(t, Formula{term}.Eval(x), activations[i] == 1, "term %d input %v", i, x)
				}
			}
		})
	}
}
