package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"

	"mutransport/physics"
)

func main() {
	var (
		tabulate, exampleConfig string
	)

	flag.StringVar(
		&tabulate, "Tabulate", "",
		"Configuration file for [Tabulate] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Tabulate'.",
	)

	flag.Parse()

	switch {
	case tabulate != "" && exampleConfig != "":
		log.Fatal("Only one of -Tabulate and -ExampleConfig may be set.")
	case tabulate != "":
		tabulateMain(tabulate)
	case exampleConfig != "":
		switch exampleConfig {
		case "Tabulate":
			fmt.Println(physics.ExampleTabulateFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Tabulate'.",
			)
		}
	default:
		log.Fatal("No flags have been set.")
	}
}

func tabulateMain(configFile string) {
	con, matCons, err := physics.ReadTabulateConfig(configFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	grid := physics.LogGrid(con.EnergyMin, con.EnergyMax, con.EnergyCount)

	materials := make([]physics.Material, len(matCons))
	for i := range matCons {
		mat := &matCons[i]

		if mat.Table == "" {
			materials[i] = physics.Analytic(
				mat.Name, mat.ZoverA, mat.Density, grid,
			)
			continue
		}

		materials[i], err = physics.FromTable(
			mat.Name, mat.ZoverA, mat.Density,
			mat.Table, mat.EnergyScale, mat.PowerScale, grid,
		)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	phys, err := physics.New(materials)
	if err != nil {
		log.Fatal(err.Error())
	}

	if dir := path.Dir(con.Output); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			log.Fatal(err.Error())
		}
	}

	f, err := os.Create(con.Output)
	if err != nil {
		log.Fatalf("Could not create %s.", con.Output)
	}
	defer f.Close()

	if err := phys.Write(f); err != nil {
		log.Fatal(err.Error())
	}

	log.Printf("Wrote %d materials to %s.", phys.MaterialCount(), con.Output)
}
