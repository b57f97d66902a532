package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func value(x float64) float64 {
	return 2*x + 3
}

func TestLinear(t *testing.T) {
	xs := []float64{0, 0.5, 1, 2, 4}
	vals := make([]float64, len(xs))
	for i, x := range xs {
		vals[i] = value(x)
	}
	lin := NewLinear(xs, vals)

	// points on the grid should work
	assert.Equal(t, value(0.5), lin.Eval(0.5), "on grid")
	// points between grid points should also work
	assert.Equal(t, value(0.75), lin.Eval(0.75), "between points")
	assert.Equal(t, value(3), lin.Eval(3), "wide cell")
	// points on the edge of the grid should work
	assert.Equal(t, value(0), lin.Eval(0), "grid edge")
	assert.Equal(t, value(4), lin.Eval(4), "upper grid edge")

	assert.Equal(t, 0.0, lin.Min(), "Min")
	assert.Equal(t, 4.0, lin.Max(), "Max")
}

func TestUniformLinear(t *testing.T) {
	n := 11
	x0, dx := -1.0, 0.2
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = value(x0 + dx*float64(i))
	}
	lin := NewUniformLinear(x0, dx, vals)

	assert.Equal(t, value(-1), lin.Eval(-1), "grid edge")
	assert.Equal(t, value(0), lin.Eval(0), "on grid")
	assert.InDelta(t, value(0.73), lin.Eval(0.73), 1e-12, "between points")
	assert.InDelta(t, value(1), lin.Eval(1), 1e-12, "upper grid edge")
}

func TestLinearEvalAll(t *testing.T) {
	xs := []float64{1, 2, 3}
	vals := []float64{10, 20, 30}
	lin := NewLinear(xs, vals)

	out := lin.EvalAll([]float64{1, 1.5, 2.5, 3})
	assert.Equal(t, []float64{10, 15, 25, 30}, out, "EvalAll")

	buf := make([]float64, 2)
	res := lin.EvalAll([]float64{1, 3}, buf)
	assert.Equal(t, []float64{10, 30}, buf, "EvalAll output array")
	assert.Equal(t, &buf[0], &res[0], "EvalAll returns the given array")
}

func TestLinearPanics(t *testing.T) {
	xs := []float64{0, 1, 2}
	vals := []float64{0, 1, 2}
	lin := NewLinear(xs, vals)

	assert.Panics(t, func() { lin.Eval(-0.1) }, "below the grid")
	assert.Panics(t, func() { lin.Eval(2.1) }, "above the grid")
	assert.Panics(t, func() { NewLinear([]float64{0, 0, 1}, vals) },
		"non-increasing grid")
	assert.Panics(t, func() { NewLinear([]float64{0, 1}, vals) },
		"mismatched lengths")
}

func TestSearcherNonUniform(t *testing.T) {
	// A grid hostile to the uniform-spacing guess.
	xs := []float64{0, 1e-3, 1e-2, 1e-1, 1, 10, 100}
	vals := make([]float64, len(xs))
	for i, x := range xs {
		vals[i] = value(x)
	}
	lin := NewLinear(xs, vals)

	for _, x := range []float64{0, 5e-4, 5e-3, 0.05, 0.5, 5, 50, 100} {
		assert.InDelta(t, value(x), lin.Eval(x), 1e-9, "non-uniform grid")
	}
}
