package net

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidFormula = errors.New("invalid formula")

// Literal is a possibly negated boolean variable.
// Variables are indexed from 1.
type Literal struct {
	Variable int  `json:"variable"`
	Negated  bool `json:"negated"`
}

func (l Literal) String() string {
	if l.Negated {
		return fmt.Sprintf("!x%d", l.Variable)
	}
	return fmt.Sprintf("x%d", l.Variable)
}

// Term is a conjunction of literals.
type Term []Literal

// Formula is a disjunction of terms.
type Formula []Term

// ParseFormula parses a formula of the form 'x1 x2 !x4 | x3 & ~x5'.
// Terms are separated by '|' and literals by whitespace or '&'.
func ParseFormula(s string) (Formula, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty formula", ErrInvalidFormula)
	}
	terms := strings.Split(s, "|")
	formula := make(Formula, len(terms))
	for i, t := range terms {
		fields := strings.FieldsFunc(t, func(r rune) bool {
			return r == '&' || r == ' ' || r == '\t' || r == '\n'
		})
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: empty term %d in '%s'", ErrInvalidFormula, i+1, s)
		}
		term := make(Term, len(fields))
		for j, f := range fields {
			l, err := parseLiteral(f)
			if err != nil {
				return nil, err
			}
			term[j] = l
		}
		formula[i] = term
	}
	return formula, nil
}

// MustParseFormula parses the formula and panics on error.
func MustParseFormula(s string) Formula {
	f, err := ParseFormula(s)
	if err != nil {
		panic(err.Error())
	}
	return f
}

func parseLiteral(s string) (Literal, error) {
	var l Literal
	if strings.HasPrefix(s, "!") || strings.HasPrefix(s, "~") {
		l.Negated = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "x") {
		return l, fmt.Errorf("%w: unknown literal '%s'", ErrInvalidFormula, s)
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return l, fmt.Errorf("%w: could not parse variable '%s': %v", ErrInvalidFormula, s, err)
	}
	if v < 1 {
		return l, fmt.Errorf("%w: variable index must be positive '%s'", ErrInvalidFormula, s)
	}
	l.Variable = v
	return l, nil
}

// Variables returns the largest variable index in the formula.
func (f Formula) Variables() int {
	var m int
	for _, t := range f {
		for _, l := range t {
			if l.Variable > m {
				m = l.Variable
			}
		}
	}
	return m
}

// Eval evaluates the formula for inputs in {-1,1}, where 1 stands for true.
// Inputs must cover all the formula variables.
func (f Formula) Eval(inputs []int) bool {
	for _, t := range f {
		satisfied := true
		for _, l := range t {
			if (inputs[l.Variable-1] == 1) == l.Negated {
				satisfied = false
				break
			}
		}
		if satisfied {
			return true
		}
	}
	return false
}

func (f Formula) String() string {
	terms := make([]string, len(f))
	for i, t := range f {
		literals := make([]string, len(t))
		for j, l := range t {
			literals[j] = l.String()
		}
		terms[i] = strings.Join(literals, " ")
	}
	return strings.Join(terms, " | ")
}

// Params encodes the formula as network parameters over the given number of inputs.
// Each term becomes a unit firing only when all its literals hold,
// the output fires when at least one unit does.
func (f Formula) Params(inputLength int) (Params, error) {
	if len(f) == 0 {
		return Params{}, fmt.Errorf("%w: empty formula", ErrInvalidFormula)
	}
	if v := f.Variables(); v > inputLength {
		return Params{}, fmt.Errorf("%w: variable x%d exceeds input length %d", ErrInvalidFormula, v, inputLength)
	}
	params := Params{
		UnitWeights:   make([][]float64, len(f)),
		UnitBiases:    make([]float64, len(f)),
		OutputWeights: make([]float64, len(f)),
		OutputBias:    float64(2 - len(f)),
	}
	for i, t := range f {
		w := make([]float64, inputLength)
		for _, l := range t {
			if l.Variable < 1 {
				return Params{}, fmt.Errorf("%w: variable index must be positive in term %d", ErrInvalidFormula, i+1)
			}
			if w[l.Variable-1] != 0 {
				return Params{}, fmt.Errorf("%w: variable x%d appears twice in term %d", ErrInvalidFormula, l.Variable, i+1)
			}
			if l.Negated {
				w[l.Variable-1] = -1
			} else {
				w[l.Variable-1] = 1
			}
		}
		params.UnitWeights[i] = w
		params.UnitBiases[i] = float64(len(t))
		params.OutputWeights[i] = 1
	}
	return params, nil
}

// FromFormula creates a fixed network computing the given formula.
func FromFormula(inputLength int, f Formula) (*Network, error) {
	params, err := f.Params(inputLength)
	if err != nil {
		return nil, err
	}
	return NewWith(params, 0)
}
