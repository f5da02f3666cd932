package math

import (
	"strconv"
)

// Sign is the threshold activation of the network units.
// NOTE : zero maps to 1, a unit sitting exactly on its bias fires.
func Sign(x float64) int {
	if x >= 0 {
		return 1
	}
	return -1
}

// Format formats a float based on the given precision
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func ToInt(ff []float64) []int {
	ii := make([]int, len(ff))
	for i, f := range ff {
		ii[i] = int(f)
	}
	return ii
}

func ToFloat(ii []int) []float64 {
	ff := make([]float64, len(ii))
	for f, i := range ii {
		ff[f] = float64(i)
	}
	return ff
}
