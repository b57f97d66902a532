/*package geom contains the vector routines shared by the geometry and
transport packages.*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// AddSelf adds u to v in place.
func (v *Vec) AddSelf(u *Vec) {
	for i := 0; i < 3; i++ {
		v[i] += u[i]
	}
}

// AddAt adds u to v and writes the result to out.
func (v *Vec) AddAt(u, out *Vec) {
	for i := 0; i < 3; i++ {
		out[i] = v[i] + u[i]
	}
}

// SubSelf subtracts u from v in place.
func (v *Vec) SubSelf(u *Vec) {
	for i := 0; i < 3; i++ {
		v[i] -= u[i]
	}
}

// SubAt subtracts u from v and writes the result to out.
func (v *Vec) SubAt(u, out *Vec) {
	for i := 0; i < 3; i++ {
		out[i] = v[i] - u[i]
	}
}

// ScaleSelf multiplies every component of v by s in place.
func (v *Vec) ScaleSelf(s float64) {
	for i := 0; i < 3; i++ {
		v[i] *= s
	}
}

// ScaleAt multiplies every component of v by s and writes the result to out.
func (v *Vec) ScaleAt(s float64, out *Vec) {
	for i := 0; i < 3; i++ {
		out[i] = v[i] * s
	}
}

// Dot returns the inner product of v and u.
func (v *Vec) Dot(u *Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Norm returns the Euclidean length of v.
func (v *Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// NormalizeSelf rescales v to unit length in place. v must be non-zero.
func (v *Vec) NormalizeSelf() {
	v.ScaleSelf(1 / v.Norm())
}
