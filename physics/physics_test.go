package physics

import (
	"bytes"
	"math"
	"testing"
)

func testMaterials() []Material {
	grid := LogGrid(1e-3, 1e6, 241)
	return []Material{
		Analytic("StandardRock", 0.5, 2650, grid),
		Analytic("Water", 0.5551, 1000, grid),
		Analytic("Air", 0.4992, 1.205, grid),
	}
}

func testPhysics(t *testing.T) *Physics {
	p, err := New(testMaterials())
	if err != nil {
		t.Fatalf("New returned error: %s", err.Error())
	}
	return p
}

func TestMaterialLookup(t *testing.T) {
	p := testPhysics(t)

	if n := p.MaterialCount(); n != 3 {
		t.Fatalf("MaterialCount() = %d, not 3", n)
	}

	for i, name := range []string{"StandardRock", "Water", "Air"} {
		idx, err := p.MaterialIndex(name)
		if err != nil {
			t.Errorf("MaterialIndex(%s) returned error: %s", name, err.Error())
		} else if idx != i {
			t.Errorf("MaterialIndex(%s) = %d, not %d", name, idx, i)
		}

		back, err := p.MaterialName(i)
		if err != nil {
			t.Errorf("MaterialName(%d) returned error: %s", i, err.Error())
		} else if back != name {
			t.Errorf("MaterialName(%d) = %s, not %s", i, back, name)
		}
	}

	if _, err := p.MaterialIndex("Unobtainium"); err == nil {
		t.Errorf("MaterialIndex accepted an unknown material")
	}
	if _, err := p.MaterialName(3); err == nil {
		t.Errorf("MaterialName accepted an out of range index")
	}
}

func TestNewRejectsInvalidTables(t *testing.T) {
	grid := LogGrid(1e-3, 1e2, 11)

	table := []struct {
		name string
		mats []Material
	}{
		{"no materials", []Material{}},
		{"duplicate name", []Material{
			Analytic("Water", 0.5, 1000, grid),
			Analytic("Water", 0.5, 1000, grid),
		}},
		{"non-positive density", []Material{
			Analytic("Water", 0.5, 0, grid),
		}},
		{"short grid", []Material{{
			Name: "Water", Density: 1000,
			Energies: []float64{1}, Power: []float64{1},
		}}},
		{"non-increasing grid", []Material{{
			Name: "Water", Density: 1000,
			Energies: []float64{1, 1, 2}, Power: []float64{1, 1, 1},
		}}},
		{"non-positive power", []Material{{
			Name: "Water", Density: 1000,
			Energies: []float64{1, 2, 3}, Power: []float64{1, 0, 1},
		}}},
		{"overlong name", []Material{
			Analytic("ANameLongerThanTheDumpFormatAllows", 0.5, 1000, grid),
		}},
	}

	for i, line := range table {
		if _, err := New(line.mats); err == nil {
			t.Errorf("%d) New accepted %s", i+1, line.name)
		}
	}
}

func TestGrammageMonotonic(t *testing.T) {
	p := testPhysics(t)
	m := &p.Materials()[0]

	prev := 0.0
	for _, e := range []float64{1e-3, 1e-1, 1, 10, 1e3, 1e5} {
		g, err := m.grammageAt(e)
		if err != nil {
			t.Fatalf("grammageAt(%g) returned error: %s", e, err.Error())
		}
		if g <= prev {
			t.Errorf("grammageAt(%g) = %g not above %g", e, g, prev)
		}
		prev = g
	}

	if _, err := m.grammageAt(1e7); err == nil {
		t.Errorf("grammageAt accepted an energy above the table")
	}
}

func TestGrammageEnergyInverse(t *testing.T) {
	p := testPhysics(t)
	m := &p.Materials()[1]

	for _, e := range []float64{1e-4, 1e-2, 1, 50, 1e4} {
		g, err := m.grammageAt(e)
		if err != nil {
			t.Fatalf("grammageAt(%g) returned error: %s", e, err.Error())
		}
		back := m.energyAt(g)
		if math.Abs(back-e) > 1e-9*e {
			t.Errorf("energyAt(grammageAt(%g)) = %g", e, back)
		}
	}

	if e := m.energyAt(-1); e != 0 {
		t.Errorf("energyAt(-1) = %g, not 0", e)
	}
}

func TestWaterRangeIsPlausible(t *testing.T) {
	// With the analytic parametrization a 1 GeV muon in water has a range
	// of roughly 5 m. Catches unit slips in the table generation.
	p := testPhysics(t)
	idx, _ := p.MaterialIndex("Water")
	m := &p.Materials()[idx]

	g, err := m.grammageAt(1)
	if err != nil {
		t.Fatalf("grammageAt(1) returned error: %s", err.Error())
	}
	r := g / m.Density
	if r < 3 || r > 7 {
		t.Errorf("1 GeV range in water = %g m", r)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	p := testPhysics(t)

	buf := &bytes.Buffer{}
	if err := p.Write(buf); err != nil {
		t.Fatalf("Write returned error: %s", err.Error())
	}

	q, err := Load(buf)
	if err != nil {
		t.Fatalf("Load returned error: %s", err.Error())
	}

	if q.MaterialCount() != p.MaterialCount() {
		t.Fatalf("Loaded %d materials, wrote %d",
			q.MaterialCount(), p.MaterialCount())
	}

	for i := range p.Materials() {
		pm, qm := &p.Materials()[i], &q.Materials()[i]

		if pm.Name != qm.Name {
			t.Errorf("%d) Loaded name %s, wrote %s", i+1, qm.Name, pm.Name)
		}
		if pm.Density != qm.Density {
			t.Errorf("%d) Loaded density %g, wrote %g",
				i+1, qm.Density, pm.Density)
		}
		if pm.ZoverA != qm.ZoverA {
			t.Errorf("%d) Loaded ZoverA %g, wrote %g",
				i+1, qm.ZoverA, pm.ZoverA)
		}

		// The transported physics must be identical, not just close.
		for _, e := range []float64{1e-3, 1, 1e3} {
			pg, _ := pm.grammageAt(e)
			qg, _ := qm.grammageAt(e)
			if pg != qg {
				t.Errorf("%d) Loaded grammage at %g GeV is %g, wrote %g",
					i+1, e, qg, pg)
			}
		}
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	table := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"bad flag", []byte{7, 7, 7, 7}},
		{"truncated", []byte{0xff, 0xff, 0xff, 0xff, 16, 0}},
	}

	for i, line := range table {
		if _, err := Load(bytes.NewReader(line.data)); err == nil {
			t.Errorf("%d) Load accepted %s input", i+1, line.name)
		}
	}
}
