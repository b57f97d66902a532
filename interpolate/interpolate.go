/*package interpolate implements interpolation over tabulated functions.*/
package interpolate

import (
	"fmt"
)

// Interpolator is a 1D interpolator over a tabulated function.
type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Linear{}
)

// searcher locates the grid cell containing a point. It special-cases
// uniformly spaced grids so that lookups on them are O(1), and uses a
// uniform-spacing guess to speed up binary searches on everything else.
type searcher struct {
	xs      []float64
	x0, dx  float64
	n       int
	uniform bool
}

func (s *searcher) init(xs []float64) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("Grid of length %d given to searcher.", len(xs)))
	}
	for i := 0; i < len(xs)-1; i++ {
		if xs[i+1] <= xs[i] {
			panic("Grid given to searcher is not strictly increasing.")
		}
	}

	s.xs = xs
	s.n = len(xs)
	s.x0 = xs[0]
	s.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
	s.uniform = false
}

func (s *searcher) unifInit(x0, dx float64, n int) {
	if n < 2 {
		panic(fmt.Sprintf("Grid of length %d given to searcher.", n))
	} else if dx <= 0 {
		panic(fmt.Sprintf("Grid spacing of %g given to searcher.", dx))
	}

	s.xs = nil
	s.n = n
	s.x0 = x0
	s.dx = dx
	s.uniform = true
}

func (s *searcher) val(i int) float64 {
	if s.uniform {
		return s.x0 + s.dx*float64(i)
	}
	return s.xs[i]
}

// search returns the index of the largest grid point which is not larger
// than x. search panics if x is outside the grid.
func (s *searcher) search(x float64) int {
	if x < s.val(0) || x > s.val(s.n-1) {
		panic(fmt.Sprintf("Point %g out of grid bounds [%g, %g].",
			x, s.val(0), s.val(s.n-1)))
	}

	guess := int((x - s.x0) / s.dx)
	if guess < 0 {
		guess = 0
	} else if guess >= s.n-1 {
		guess = s.n - 2
	}

	if s.uniform || (s.xs[guess] <= x && x <= s.xs[guess+1]) {
		return guess
	}

	lo, hi := 0, s.n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewLinear creates a linear interpolator for a sequence of strictly
// increasing points, xs, which take on the values given by vals.
//
// Lookups will occur in O(log |xs|), possibly faster depending on the access
// pattern and data layout.
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic("Length of input slices are not equal.")
	}
	lin := &Linear{}
	lin.xs.init(xs)
	lin.vals = vals
	return lin
}

// NewUniformLinear creates a linear interpolator over a uniformly spaced
// sequence of x values starting at x0 and separated by dx and whose values
// are given by vals.
//
// Lookups will be O(1).
func NewUniformLinear(x0, dx float64, vals []float64) *Linear {
	lin := &Linear{}
	lin.xs.unifInit(x0, dx, len(vals))
	lin.vals = vals
	return lin
}

// Min returns the lower bound of the interpolation grid.
func (lin *Linear) Min() float64 { return lin.xs.val(0) }

// Max returns the upper bound of the interpolation grid.
func (lin *Linear) Max() float64 { return lin.xs.val(lin.xs.n - 1) }

// Eval returns the interpolated value at x.
//
// Eval panics if called on a value outside the supplied range of inputs.
func (lin *Linear) Eval(x float64) float64 {
	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}
