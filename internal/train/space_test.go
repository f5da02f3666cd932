package train

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpace_Order(t *testing.T) {

	space, err := NewSpace(3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), space.Size())

	all := make([][]int, 0)
	err = space.Each(func(i int64, x []int) error {
		assert.Equal(t, int64(len(all)), i)
		all = append(all, x)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, [][]int{
		{-1, -1, -1},
		{-1, -1, 1},
		{-1, 1, -1},
		{-1, 1, 1},
		{1, -1, -1},
		{1, -1, 1},
		{1, 1, -1},
		{1, 1, 1},
	}, all)
}

func TestSpace_Each(t *testing.T) {
	space, err := NewSpace(4)
	require.NoError(t, err)

	var count int
	stop := errors.New("stop")
	err = space.Each(func(i int64, x []int) error {
		count++
		if i == 5 {
			return stop
		}
		return nil
	})
	assert.True(t, errors.Is(err, stop))
	assert.Equal(t, 6, count)
}

func TestSpace_Invalid(t *testing.T) {
	for _, l := range []int{0, -1, MaxInputLength + 1} {
		_, err := NewSpace(l)
		assert.True(t, errors.Is(err, ErrSpaceTooLarge))
	}
	space, err := NewSpace(MaxInputLength)
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<MaxInputLength, space.Size())
	assert.Len(t, space.Assignment(space.Size()-1), MaxInputLength)
}
