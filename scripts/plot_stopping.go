package main

import (
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"

	"mutransport/physics"
)

// Plots the mass stopping power of every material in a binary dump.
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Required file use: $ %s dump_file out_file", os.Args[0])
	}
	dumpFile, outFile := os.Args[1], os.Args[2]

	f, err := os.Open(dumpFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	phys, err := physics.Load(f)
	f.Close()
	if err != nil {
		log.Fatal(err.Error())
	}

	colors := []string{"k", "b", "r", "g", "m", "c"}

	plt.Figure()
	title := ""
	for i, mat := range phys.Materials() {
		c := colors[i%len(colors)]
		plt.Plot(mat.Energies, mat.Power, plt.LW(2), plt.C(c))
		if i > 0 {
			title += ", "
		}
		title += mat.Name + " (" + c + ")"
	}

	plt.Title(title)
	plt.XLabel(`$E$ [GeV]`, plt.FontSize(16))
	plt.YLabel(`$dE/dX$ [GeV m$^2$/kg]`, plt.FontSize(16))
	plt.XScale("log")
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(outFile)
	plt.Execute()
}
