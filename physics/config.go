package physics

import (
	"fmt"
	"sort"

	"gopkg.in/gcfg.v1"
)

const ExampleTabulateFile = `[Tabulate]

#######################
# Required Parameters #
#######################

# File which the binary dump will be written to.
Output = materials/dump

#######################
# Optional Parameters #
#######################

# Bounds and size of the logarithmically spaced kinetic energy grid, in GeV.
# EnergyMin = 1e-3
# EnergyMax = 1e6
# EnergyCount = 241

[Material "StandardRock"]
# Default density in kg/m^3.
Density = 2650
# Charge to mass number ratio.
ZoverA = 0.5

# Without a Table, the stopping power is generated from the analytic a + b*E
# muon parametrization. A two column ASCII table of kinetic energies and mass
# stopping powers can be supplied instead:
# Table = path/to/standard_rock.dat
# EnergyScale and PowerScale convert the table's columns to GeV and
# GeV m^2/kg. Tables already in those units can leave them unset.
# EnergyScale = 1e-3
# PowerScale = 1e-4

[Material "Water"]
Density = 1000
ZoverA = 0.5551

[Material "Air"]
Density = 1.205
ZoverA = 0.4992`

type TabulateConfig struct {
	// Required
	Output string

	// Optional
	EnergyMin, EnergyMax float64
	EnergyCount          int
}

type MaterialConfig struct {
	// Required
	Density float64

	// Optional
	ZoverA                  float64
	Table                   string
	EnergyScale, PowerScale float64

	Name string
}

type TabulateWrapper struct {
	Tabulate TabulateConfig
	Material map[string]*MaterialConfig
}

func DefaultTabulateWrapper() *TabulateWrapper {
	con := TabulateConfig{}
	con.EnergyMin = 1e-3
	con.EnergyMax = 1e6
	con.EnergyCount = 241
	return &TabulateWrapper{Tabulate: con}
}

func (con *TabulateConfig) ValidOutput() bool {
	return con.Output != ""
}

func (con *TabulateConfig) ValidEnergyGrid() bool {
	return con.EnergyMin > 0 && con.EnergyMax > con.EnergyMin &&
		con.EnergyCount >= 2
}

func (mat *MaterialConfig) CheckInit(name string) error {
	if mat.Density <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Density for Material '%s'.", name,
		)
	}

	if mat.ZoverA == 0 {
		mat.ZoverA = 0.5
	} else if mat.ZoverA < 0 {
		return fmt.Errorf(
			"Material '%s' given a negative ZoverA, %g.", name, mat.ZoverA,
		)
	}

	if mat.EnergyScale == 0 {
		mat.EnergyScale = 1
	} else if mat.EnergyScale < 0 {
		return fmt.Errorf(
			"Material '%s' given a negative EnergyScale, %g.",
			name, mat.EnergyScale,
		)
	}
	if mat.PowerScale == 0 {
		mat.PowerScale = 1
	} else if mat.PowerScale < 0 {
		return fmt.Errorf(
			"Material '%s' given a negative PowerScale, %g.",
			name, mat.PowerScale,
		)
	}

	mat.Name = name

	return nil
}

// ReadTabulateConfig reads a tabulation config file and returns its
// validated contents. Materials are returned sorted by name so that material
// indices do not depend on map iteration order.
func ReadTabulateConfig(fname string) (*TabulateConfig, []MaterialConfig, error) {
	wrap := DefaultTabulateWrapper()

	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, nil, err
	}

	con := &wrap.Tabulate
	if !con.ValidOutput() {
		return nil, nil, fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if !con.ValidEnergyGrid() {
		return nil, nil, fmt.Errorf(
			"Invalid energy grid: EnergyMin = %g, EnergyMax = %g, "+
				"EnergyCount = %d.",
			con.EnergyMin, con.EnergyMax, con.EnergyCount,
		)
	}

	if len(wrap.Material) == 0 {
		return nil, nil, fmt.Errorf("No [Material] sections given.")
	}

	names := []string{}
	for name := range wrap.Material {
		names = append(names, name)
	}
	sort.Strings(names)

	mats := []MaterialConfig{}
	for _, name := range names {
		mat := wrap.Material[name]
		if err := mat.CheckInit(name); err != nil {
			return nil, nil, err
		}
		mats = append(mats, *mat)
	}

	return con, mats, nil
}
