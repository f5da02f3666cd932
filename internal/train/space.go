package train

import (
	"errors"
	"fmt"
)

// MaxInputLength is the largest input length whose space can be enumerated.
const MaxInputLength = 62

var ErrSpaceTooLarge = errors.New("input space too large")

// Space is the set of all {-1,1} assignments of a fixed length.
type Space struct {
	length int
}

// NewSpace creates the input space for the given length.
func NewSpace(length int) (Space, error) {
	if length < 1 || length > MaxInputLength {
		return Space{}, fmt.Errorf("%w: cannot enumerate inputs of length %d", ErrSpaceTooLarge, length)
	}
	return Space{length: length}, nil
}

// Size returns the number of assignments in the space.
func (s Space) Size() int64 {
	return int64(1) << s.length
}

// Assignment returns the i-th assignment.
// Bits of i are read most significant first, 0 maps to -1 and 1 to 1.
func (s Space) Assignment(i int64) []int {
	x := make([]int, s.length)
	for j := 0; j < s.length; j++ {
		if i&(int64(1)<<(s.length-1-j)) != 0 {
			x[j] = 1
		} else {
			x[j] = -1
		}
	}
	return x
}

// Each calls the given func for every assignment in order.
// It stops at the first error.
func (s Space) Each(f func(i int64, x []int) error) error {
	for i := int64(0); i < s.Size(); i++ {
		if err := f(i, s.Assignment(i)); err != nil {
			return err
		}
	}
	return nil
}
