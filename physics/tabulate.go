package physics

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"mutransport/interpolate"
)

// Default coefficients of the analytic muon stopping power parametrization
// dE/dX = a + b*E, in GeV m^2/kg and m^2/kg, respectively. They correspond
// to the usual 2 MeV cm^2/g ionisation plateau and the radiative rise.
const (
	IonisationLoss = 2.0e-4
	RadiativeLoss  = 3.9e-7
)

// LogGrid returns an n point logarithmically spaced energy grid covering
// [emin, emax].
func LogGrid(emin, emax float64, n int) []float64 {
	if n < 2 {
		panic(fmt.Sprintf("Grid of length %d given to LogGrid.", n))
	} else if emin <= 0 || emax <= emin {
		panic(fmt.Sprintf("Invalid grid bounds [%g, %g].", emin, emax))
	}

	grid := make([]float64, n)
	lmin, lmax := math.Log(emin), math.Log(emax)
	for i := range grid {
		grid[i] = math.Exp(lmin + (lmax-lmin)*float64(i)/float64(n-1))
	}
	// Snap the end points so that lookups at the exact bounds never fall
	// outside the grid.
	grid[0], grid[n-1] = emin, emax
	return grid
}

// Analytic tabulates a material on the given energy grid using the a + b*E
// stopping power parametrization.
func Analytic(name string, zOverA, density float64, grid []float64) Material {
	power := make([]float64, len(grid))
	for i, e := range grid {
		power[i] = IonisationLoss + RadiativeLoss*e
	}

	return Material{
		Name:     name,
		ZoverA:   zOverA,
		Density:  density,
		Energies: grid,
		Power:    power,
	}
}

// FromTable tabulates a material on the given energy grid from a two column
// ASCII table of kinetic energies and mass stopping powers. energyScale and
// powerScale convert the file's columns to GeV and GeV m^2/kg; pass 1 for
// tables already in those units.
//
// The table is interpolated onto the grid and clamped to its tabulated range
// outside of it.
func FromTable(
	name string, zOverA, density float64,
	file string, energyScale, powerScale float64, grid []float64,
) (Material, error) {
	// table.TextFile panics instead of returning errors; convert the panic
	// back into an error to keep FromTable's contract.
	var cols [][]float64
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
		}()
		cols = table.TextFile(file).ReadFloat64s([]int{0, 1})
		return nil
	}()
	if err != nil {
		return Material{}, err
	}

	es, ps := cols[0], cols[1]
	if len(es) < 2 {
		return Material{}, fmt.Errorf(
			"Table '%s' has only %d rows.", file, len(es),
		)
	}

	for i := range es {
		es[i] *= energyScale
		ps[i] *= powerScale
	}
	for i := 1; i < len(es); i++ {
		if es[i] <= es[i-1] {
			return Material{}, fmt.Errorf(
				"Energy column of table '%s' is not strictly increasing.",
				file,
			)
		}
	}

	m := Material{
		Name:     name,
		ZoverA:   zOverA,
		Density:  density,
		Energies: grid,
		Power:    resample(es, ps, grid),
	}
	return m, nil
}

// resample interpolates the tabulated values onto the target grid, clamping
// target points outside the tabulated range to the nearest end point.
func resample(xs, vals, grid []float64) []float64 {
	lin := interpolate.NewLinear(xs, vals)

	out := make([]float64, len(grid))
	for i, x := range grid {
		if x < lin.Min() {
			x = lin.Min()
		} else if x > lin.Max() {
			x = lin.Max()
		}
		out[i] = lin.Eval(x)
	}
	return out
}
