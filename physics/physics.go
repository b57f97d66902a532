/*package physics implements a small Monte Carlo transport engine for charged
particles slowing down in matter.

Energy loss follows the continuous slowing down approximation driven by
tabulated mass stopping powers. Materials are loaded from a binary dump
written by Write (see the tabulate command), and a simulation context created
around the loaded tables advances individual particle states through a
geometry supplied as a MediumResolver callback.

Units are GeV for kinetic energies, meters for distances and kg/m^3 for
densities. Mass stopping powers are given in GeV m^2/kg and grammages in
kg/m^2.*/
package physics

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unsafe"

	"mutransport/interpolate"
)

// nameLen is the fixed width of material names inside binary dumps.
const nameLen = 32

// Material is a single tabulated material.
type Material struct {
	Name string
	// ZoverA is the charge to mass number ratio of the material.
	ZoverA float64
	// Density is the default density in kg/m^3, used when a Medium carries
	// no Locals callback.
	Density float64
	// Energies is the strictly increasing kinetic energy grid in GeV.
	Energies []float64
	// Power is the mass stopping power on the energy grid, in GeV m^2/kg.
	Power []float64

	grammage []float64
	rangeOf  *interpolate.Linear
	energyOf *interpolate.Linear
}

// grammageAt returns the CSDA grammage, in kg/m^2, that a particle of the
// given kinetic energy can traverse before stopping. Below the bottom of the
// energy grid the stopping power is taken as constant.
func (m *Material) grammageAt(e float64) (float64, error) {
	if e <= m.Energies[0] {
		return e / m.Power[0], nil
	}
	if e > m.Energies[len(m.Energies)-1] {
		return 0, fmt.Errorf(
			"Energy %g GeV above the tabulated maximum of %g GeV for '%s'.",
			e, m.Energies[len(m.Energies)-1], m.Name,
		)
	}
	return m.rangeOf.Eval(e), nil
}

// energyAt inverts grammageAt. g may not exceed the grammage of the top of
// the energy grid.
func (m *Material) energyAt(g float64) float64 {
	if g <= 0 {
		return 0
	}
	if g <= m.grammage[0] {
		return g * m.Power[0]
	}
	return m.energyOf.Eval(g)
}

// Physics holds a loaded set of material tables.
type Physics struct {
	materials []Material
	indices   map[string]int
}

// New creates a Physics handle from the given materials. Every material must
// have a strictly increasing energy grid of at least two points, positive
// stopping powers and a positive default density.
func New(materials []Material) (*Physics, error) {
	if len(materials) == 0 {
		return nil, fmt.Errorf("No materials given.")
	}

	p := &Physics{
		materials: materials,
		indices:   make(map[string]int),
	}

	for i := range p.materials {
		m := &p.materials[i]

		if len(m.Name) == 0 || len(m.Name) > nameLen {
			return nil, fmt.Errorf(
				"Material %d has a name of length %d, but the valid range "+
					"is [1, %d].", i, len(m.Name), nameLen,
			)
		}
		if _, ok := p.indices[m.Name]; ok {
			return nil, fmt.Errorf("Duplicate material name '%s'.", m.Name)
		}
		if m.Density <= 0 {
			return nil, fmt.Errorf(
				"Material '%s' has non-positive density %g.", m.Name, m.Density,
			)
		}
		if len(m.Energies) < 2 || len(m.Energies) != len(m.Power) {
			return nil, fmt.Errorf(
				"Material '%s' has %d energies and %d stopping powers.",
				m.Name, len(m.Energies), len(m.Power),
			)
		}
		for j := 0; j < len(m.Energies); j++ {
			if j > 0 && m.Energies[j] <= m.Energies[j-1] {
				return nil, fmt.Errorf(
					"Energy grid of material '%s' is not strictly increasing.",
					m.Name,
				)
			}
			if m.Power[j] <= 0 {
				return nil, fmt.Errorf(
					"Material '%s' has non-positive stopping power %g at "+
						"%g GeV.", m.Name, m.Power[j], m.Energies[j],
				)
			}
		}

		m.integrate()
		p.indices[m.Name] = i
	}

	return p, nil
}

// integrate fills in the CSDA grammage table and the lookup interpolators.
func (m *Material) integrate() {
	m.grammage = make([]float64, len(m.Energies))
	m.grammage[0] = m.Energies[0] / m.Power[0]
	for i := 1; i < len(m.Energies); i++ {
		de := m.Energies[i] - m.Energies[i-1]
		m.grammage[i] = m.grammage[i-1] +
			de*0.5*(1/m.Power[i]+1/m.Power[i-1])
	}

	m.rangeOf = interpolate.NewLinear(m.Energies, m.grammage)
	m.energyOf = interpolate.NewLinear(m.grammage, m.Energies)
}

// MaterialCount returns the number of loaded materials.
func (p *Physics) MaterialCount() int { return len(p.materials) }

// MaterialIndex returns the index of the material with the given name.
func (p *Physics) MaterialIndex(name string) (int, error) {
	i, ok := p.indices[name]
	if !ok {
		return -1, fmt.Errorf("No material named '%s'.", name)
	}
	return i, nil
}

// MaterialName returns the name of the material with the given index.
func (p *Physics) MaterialName(i int) (string, error) {
	if i < 0 || i >= len(p.materials) {
		return "", fmt.Errorf(
			"Material index %d out of range [0, %d).", i, len(p.materials),
		)
	}
	return p.materials[i].Name, nil
}

// Materials returns the loaded material tables.
func (p *Physics) Materials() []Material { return p.materials }

/*
The binary dump format is as follows:
    |-- 1 --||-- 2 --||-- ... 3 ... --||-- ... 4 ... --||-- ... 5 ... --|

    1 - (int32) Flag indicating the endianness of the file. 0 indicates a big
        endian byte ordering and -1 indicates a little endian byte order.
    2 - (int32) Size of a dumpHeader struct. Checked for consistency.
    3 - (dumpHeader) Material and energy grid sizes.
    4 - ([]float64) The energy grid shared by all materials, in GeV.
    5 - (MaterialCount times) A dumpMaterial record followed by the
        material's []float64 stopping power block.
*/
type dumpHeader struct {
	MaterialCount, EnergyCount int64
}

type dumpMaterial struct {
	Name            [nameLen]byte
	ZoverA, Density float64
}

// maxDumpCount bounds the table sizes read from a dump so that a corrupt
// header cannot trigger an enormous allocation.
const maxDumpCount = 1 << 20

func endianness(flag int32) (binary.ByteOrder, error) {
	if flag == 0 {
		return binary.BigEndian, nil
	} else if flag == -1 {
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("Unrecognized endianness flag %d.", flag)
}

// Load reads a binary dump written by Write and returns a Physics handle for
// its tables.
func Load(r io.Reader) (*Physics, error) {
	var flag int32
	if err := binary.Read(r, binary.LittleEndian, &flag); err != nil {
		return nil, err
	}
	order, err := endianness(flag)
	if err != nil {
		return nil, err
	}

	var headerSize int32
	if err := binary.Read(r, order, &headerSize); err != nil {
		return nil, err
	}
	if headerSize != int32(unsafe.Sizeof(dumpHeader{})) {
		return nil, fmt.Errorf(
			"Expected physics.dumpHeader size of %d, found %d.",
			unsafe.Sizeof(dumpHeader{}), headerSize,
		)
	}

	hd := &dumpHeader{}
	if err := binary.Read(r, order, hd); err != nil {
		return nil, err
	}
	if hd.MaterialCount <= 0 || hd.MaterialCount > maxDumpCount ||
		hd.EnergyCount < 2 || hd.EnergyCount > maxDumpCount {
		return nil, fmt.Errorf(
			"Dump header with %d materials and %d energies is invalid.",
			hd.MaterialCount, hd.EnergyCount,
		)
	}

	energies := make([]float64, hd.EnergyCount)
	if err := binary.Read(r, order, energies); err != nil {
		return nil, err
	}

	materials := make([]Material, hd.MaterialCount)
	for i := range materials {
		rec := &dumpMaterial{}
		if err := binary.Read(r, order, rec); err != nil {
			return nil, err
		}

		power := make([]float64, hd.EnergyCount)
		if err := binary.Read(r, order, power); err != nil {
			return nil, err
		}

		materials[i] = Material{
			Name:     strings.TrimRight(string(rec.Name[:]), "\x00"),
			ZoverA:   rec.ZoverA,
			Density:  rec.Density,
			Energies: energies,
			Power:    power,
		}
	}

	return New(materials)
}

// Write writes the tables to a binary dump readable by Load. All materials
// must share the same energy grid.
func (p *Physics) Write(w io.Writer) error {
	grid := p.materials[0].Energies
	for i := range p.materials {
		m := &p.materials[i]
		if len(m.Energies) != len(grid) {
			return fmt.Errorf(
				"Material '%s' has %d grid points, but '%s' has %d. Dumps "+
					"require a shared energy grid.",
				m.Name, len(m.Energies), p.materials[0].Name, len(grid),
			)
		}
		for j := range grid {
			if m.Energies[j] != grid[j] {
				return fmt.Errorf(
					"Material '%s' is not tabulated on the same energy grid "+
						"as '%s'.", m.Name, p.materials[0].Name,
				)
			}
		}
	}

	order := binary.LittleEndian
	if err := binary.Write(w, order, int32(-1)); err != nil {
		return err
	}
	if err := binary.Write(w, order,
		int32(unsafe.Sizeof(dumpHeader{}))); err != nil {
		return err
	}

	hd := dumpHeader{
		MaterialCount: int64(len(p.materials)),
		EnergyCount:   int64(len(grid)),
	}
	if err := binary.Write(w, order, &hd); err != nil {
		return err
	}
	if err := binary.Write(w, order, grid); err != nil {
		return err
	}

	for i := range p.materials {
		m := &p.materials[i]

		rec := dumpMaterial{ZoverA: m.ZoverA, Density: m.Density}
		copy(rec.Name[:], m.Name)

		if err := binary.Write(w, order, &rec); err != nil {
			return err
		}
		if err := binary.Write(w, order, m.Power); err != nil {
			return err
		}
	}

	return nil
}
