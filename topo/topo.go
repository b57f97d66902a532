/*package topo implements a ray stepper through a stack of flat, horizontally
infinite topography layers wrapped around the WGS84 ellipsoid.

A Stepper is built bottom up: AddFlat sets the top elevation of the current
layer and AddLayer starts the next one. The lowest layer extends downward
without bound, and positions above the top surface of the last layer are
outside of the described geometry.*/
package topo

import (
	"fmt"
	"math"

	"mutransport/geodesy"
	"mutransport/geom"
)

// DefaultResolution is the smallest step length, in meters, that a Stepper
// will advise. Steps never shrink to zero near a layer boundary.
const DefaultResolution = 1e-2

// Stepper answers which topography layer a position belongs to and how far
// that position may safely be moved before the answer can change.
type Stepper struct {
	tops       []float64
	resolution float64
	pending    bool
}

// New creates an empty Stepper with the default resolution.
func New() *Stepper {
	return &Stepper{resolution: DefaultResolution, pending: true}
}

// AddFlat adds a flat surface at the given elevation as the top of the
// current layer. Calling AddFlat twice on the same layer keeps the higher of
// the two surfaces.
//
// AddFlat panics if the elevation is not above the top of the previous layer.
func (s *Stepper) AddFlat(elevation float64) {
	if s.pending {
		if len(s.tops) > 0 && elevation <= s.tops[len(s.tops)-1] {
			panic(fmt.Sprintf(
				"Flat surface at %g is not above the previous layer top, %g.",
				elevation, s.tops[len(s.tops)-1],
			))
		}
		s.tops = append(s.tops, elevation)
		s.pending = false
		return
	}

	if elevation > s.tops[len(s.tops)-1] {
		s.tops[len(s.tops)-1] = elevation
	}
}

// AddLayer starts a new layer on top of the current one.
//
// AddLayer panics if the current layer has no surface yet.
func (s *Stepper) AddLayer() {
	if s.pending {
		panic("AddLayer called on a layer without topography data.")
	}
	s.pending = true
}

// LayerCount returns the number of layers with a top surface.
func (s *Stepper) LayerCount() int { return len(s.tops) }

// SetResolution changes the smallest step length the Stepper will advise.
func (s *Stepper) SetResolution(res float64) {
	if res <= 0 {
		panic(fmt.Sprintf("Resolution of %g given to SetResolution.", res))
	}
	s.resolution = res
}

// Step returns a tentative step length for the given ECEF position together
// with a two element index array. index[0] is the layer the position
// currently occupies, with values outside [0, LayerCount()) denoting a
// position outside the described geometry. index[1] is the layer on the
// other side of the nearest surface.
//
// The step is advisory. The position may be moved by up to the returned
// distance in any direction without skipping over a layer, but callers must
// query again at or before that distance.
func (s *Stepper) Step(pos *geom.Vec) (step float64, index [2]int) {
	alt := geodesy.Altitude(pos)

	layer := 0
	for layer < len(s.tops) && alt >= s.tops[layer] {
		layer++
	}

	nearest, dist := 0, math.Inf(1)
	for i, top := range s.tops {
		if d := math.Abs(alt - top); d < dist {
			nearest, dist = i, d
		}
	}

	index[0] = layer
	if alt < s.tops[nearest] {
		index[1] = nearest + 1
	} else {
		index[1] = nearest
	}

	step = dist
	if step < s.resolution {
		step = s.resolution
	}
	return step, index
}

// Position returns the ECEF position at the given latitude and longitude
// whose altitude is offset meters away from the top surface of the given
// layer.
func (s *Stepper) Position(lat, lon, offset float64, layer int) (geom.Vec, error) {
	if layer < 0 || layer >= len(s.tops) {
		return geom.Vec{}, fmt.Errorf(
			"Layer index %d out of range [0, %d).", layer, len(s.tops),
		)
	}
	return geodesy.FromGeodetic(lat, lon, s.tops[layer]+offset), nil
}
