package topo

import (
	"math"
	"testing"

	"mutransport/geodesy"
)

// earthStepper builds the three layer geometry used by the earth demo:
// layer tops at -1 km, 0 and +1 km.
func earthStepper() *Stepper {
	s := New()
	s.AddFlat(-1e3)
	s.AddLayer()
	s.AddFlat(0)
	s.AddLayer()
	s.AddFlat(1e3)
	return s
}

func TestStepClassification(t *testing.T) {
	s := earthStepper()
	if n := s.LayerCount(); n != 3 {
		t.Fatalf("LayerCount() = %d, not 3", n)
	}

	// Altitudes are kept slightly off the exact surfaces, since converting
	// through ECEF coordinates costs a sub-micrometer rounding error.
	table := []struct {
		alt   float64
		layer int
	}{
		{-5000, 0},
		{-1000.5, 0},
		{-999.999, 1},
		{-500, 1},
		{-0.001, 1},
		{0.001, 2},
		{500, 2},
		{999.999, 2},
		{1000.001, 3},
		{5000, 3},
	}

	for i, line := range table {
		pos := geodesy.FromGeodetic(45, 3, line.alt)
		step, index := s.Step(&pos)

		if index[0] != line.layer {
			t.Errorf("%d) Step at altitude %g classified layer %d, not %d",
				i+1, line.alt, index[0], line.layer)
		}
		if step <= 0 {
			t.Errorf("%d) Step at altitude %g returned step %g",
				i+1, line.alt, step)
		}
	}
}

func TestStepLength(t *testing.T) {
	s := earthStepper()

	// Far from every surface the step is the distance to the nearest one.
	pos := geodesy.FromGeodetic(45, 3, -500)
	step, _ := s.Step(&pos)
	if math.Abs(step-500) > 1e-3 {
		t.Errorf("Step at altitude -500 = %g, not 500", step)
	}

	pos = geodesy.FromGeodetic(45, 3, 5000)
	step, _ = s.Step(&pos)
	if math.Abs(step-4000) > 1e-3 {
		t.Errorf("Step at altitude 5000 = %g, not 4000", step)
	}

	// Near a surface the step never shrinks below the resolution.
	pos = geodesy.FromGeodetic(45, 3, 0.0001)
	step, _ = s.Step(&pos)
	if step != DefaultResolution {
		t.Errorf("Step on a surface = %g, not %g", step, DefaultResolution)
	}
}

func TestStepNeighborIndex(t *testing.T) {
	s := earthStepper()

	pos := geodesy.FromGeodetic(45, 3, -1500)
	_, index := s.Step(&pos)
	if index[1] != 1 {
		t.Errorf("Neighbor below the -1000 surface = %d, not 1", index[1])
	}

	pos = geodesy.FromGeodetic(45, 3, -600)
	_, index = s.Step(&pos)
	if index[1] != 0 {
		t.Errorf("Neighbor above the -1000 surface = %d, not 0", index[1])
	}

	pos = geodesy.FromGeodetic(45, 3, 1500)
	_, index = s.Step(&pos)
	if index[1] != 2 {
		t.Errorf("Neighbor above the +1000 surface = %d, not 2", index[1])
	}
}

func TestPosition(t *testing.T) {
	s := earthStepper()

	pos, err := s.Position(45, 3, -0.5, 0)
	if err != nil {
		t.Fatalf("Position returned error: %s", err.Error())
	}
	if alt := geodesy.Altitude(&pos); math.Abs(alt-(-1000.5)) > 1e-4 {
		t.Errorf("Position(45, 3, -0.5, 0) at altitude %g, not -1000.5", alt)
	}

	if _, err := s.Position(45, 3, 0, -1); err == nil {
		t.Errorf("Position accepted layer -1")
	}
	if _, err := s.Position(45, 3, 0, 3); err == nil {
		t.Errorf("Position accepted layer 3")
	}
}

func TestBuilderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AddFlat accepted a surface below the previous layer")
		}
	}()

	s := New()
	s.AddFlat(0)
	s.AddLayer()
	s.AddFlat(-1)
}

func TestAddLayerWithoutSurfacePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AddLayer accepted a layer without topography data")
		}
	}()

	s := New()
	s.AddLayer()
}

func TestAddFlatKeepsHigherSurface(t *testing.T) {
	s := New()
	s.AddFlat(10)
	s.AddFlat(5)

	pos := geodesy.FromGeodetic(45, 3, 7)
	_, index := s.Step(&pos)
	if index[0] != 0 {
		t.Errorf("Altitude 7 classified layer %d under a surface at 10",
			index[0])
	}
}
