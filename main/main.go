package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"mutransport/earth"
	"mutransport/physics"
)

const dumpFile = "materials/dump"

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr,
			"Usage: %s AZIMUTH ELEVATION KINETIC_ENERGY\n", os.Args[0],
		)
		os.Exit(1)
	}

	azimuth, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil {
		log.Fatalf("Invalid azimuth '%s'.", os.Args[1])
	}
	elevation, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		log.Fatalf("Invalid elevation '%s'.", os.Args[2])
	}
	energy, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil {
		log.Fatalf("Invalid kinetic energy '%s'.", os.Args[3])
	}

	phys, err := loadPhysics(dumpFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	sim, err := earth.NewSimulation(
		phys, os.Stdout, azimuth, elevation, energy, nil,
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := sim.Run(); err != nil {
		log.Fatal(err.Error())
	}
}

// loadPhysics reads the binary dump written by the tabulate command,
// releasing the file handle on every path.
func loadPhysics(file string) (*physics.Physics, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return physics.Load(f)
}
