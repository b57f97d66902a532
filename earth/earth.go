/*package earth glues the transport engine to a layered Earth geometry: a
fictitious Earth covered by a 1 km deep ocean and a 1 km high atmosphere,
all of uniform density.

The geometry is made of three flat layers wrapped around the WGS84 ellipsoid.
The bottom layer is standard rock up to 1 km below the ellipsoid, the middle
one water up to the ellipsoid, and the top one air up to 1 km above it.
Positions above the atmosphere, and below the rock if the geometry is ever
rebuilt with a floor, are outside of the model.*/
package earth

import (
	"fmt"
	"io"

	"github.com/phil-mansfield/num/rand"

	"mutransport/geodesy"
	"mutransport/physics"
	"mutransport/topo"
)

// The three layer materials, bottom to top, and the elevation of each
// layer's top surface in meters.
var (
	layerMaterials  = []string{"StandardRock", "Water", "Air"}
	layerElevations = []float64{-1e3, 0, 1e3}
)

// The fixed start point of the demo: latitude and longitude in degrees, and
// the offset of the initial position below the top of the rock layer.
const (
	startLatitude  = 45.0
	startLongitude = 3.0
	startOffset    = -0.5
)

// Classifier maps positions to the medium they occupy by delegating to a
// layer stepper. It implements physics.MediumResolver.
type Classifier struct {
	stepper *topo.Stepper
	media   []physics.Medium
}

// NewClassifier creates a Classifier around the given stepper and media
// array. media[i] is the medium of the stepper's layer i.
func NewClassifier(stepper *topo.Stepper, media []physics.Medium) *Classifier {
	return &Classifier{stepper: stepper, media: media}
}

// Medium returns the medium at the position of the given state and an
// advisory step length. Layer indices outside the media array mean the
// particle has left the modeled volume, for which nil is returned.
func (c *Classifier) Medium(state *physics.State) (*physics.Medium, float64) {
	step, index := c.stepper.Step(&state.Position)

	if index[0] >= 0 && index[0] < len(c.media) {
		return &c.media[index[0]], step
	}
	return nil, step
}

// Reporter renders simulation snapshots as single text lines. The step
// counter starts at 0 and increments once per reported snapshot for the
// lifetime of the Reporter.
type Reporter struct {
	phys       *physics.Physics
	classifier *Classifier
	w          io.Writer
	step       int
}

// NewReporter creates a Reporter writing to w.
func NewReporter(
	phys *physics.Physics, classifier *Classifier, w io.Writer,
) *Reporter {
	return &Reporter{phys: phys, classifier: classifier, w: w}
}

// Report writes a one line snapshot of the given state: step counter,
// kinetic energy, altitude above the ellipsoid and the current material
// name, with "(void)" substituted outside the modeled volume.
func (r *Reporter) Report(state *physics.State) {
	material := "(void)"
	if med, _ := r.classifier.Medium(state); med != nil {
		if name, err := r.phys.MaterialName(med.Material); err == nil {
			material = name
		}
	}

	altitude := geodesy.Altitude(&state.Position)
	fmt.Fprintf(r.w, "%2d. energy = %.3E, altitude = %8.2f, material = %s\n",
		r.step, state.Energy, altitude, material)
	r.step++
}

// randomSource adapts a num/rand generator to physics.UniformSource.
type randomSource struct {
	gen *rand.Generator
}

func (r *randomSource) Uniform01() float64 { return r.gen.Uniform(0, 1) }

// Simulation owns every live handle of one transport run: the physics
// tables, the simulation context, the layer stepper, the media array and the
// evolving particle state.
type Simulation struct {
	phys       *physics.Physics
	ctx        *physics.Context
	stepper    *topo.Stepper
	media      []physics.Medium
	classifier *Classifier
	reporter   *Reporter
	state      physics.State
}

// NewSimulation builds the three layer geometry, maps its media to the
// loaded materials and initializes the particle state from the given
// kinematics. Azimuth and elevation are in degrees and the kinetic energy in
// GeV. A nil src selects a time-seeded generator.
func NewSimulation(
	phys *physics.Physics, out io.Writer,
	azimuth, elevation, energy float64, src physics.UniformSource,
) (*Simulation, error) {
	if energy < 0 {
		return nil, fmt.Errorf("Negative kinetic energy %g GeV.", energy)
	}

	media := make([]physics.Medium, len(layerMaterials))
	for i, name := range layerMaterials {
		idx, err := phys.MaterialIndex(name)
		if err != nil {
			return nil, err
		}
		media[i] = physics.Medium{Material: idx}
	}

	stepper := topo.New()
	for i, top := range layerElevations {
		if i > 0 {
			stepper.AddLayer()
		}
		stepper.AddFlat(top)
	}

	classifier := NewClassifier(stepper, media)

	if src == nil {
		src = &randomSource{rand.NewTimeSeed(rand.Xorshift)}
	}

	ctx, err := physics.NewContext(phys, classifier, src)
	if err != nil {
		return nil, err
	}
	// Stop the transport at each change of medium so that every crossing
	// shows up as a reported snapshot.
	ctx.Event |= physics.EventMedium

	sim := &Simulation{
		phys:       phys,
		ctx:        ctx,
		stepper:    stepper,
		media:      media,
		classifier: classifier,
		reporter:   NewReporter(phys, classifier, out),
	}

	sim.state = physics.State{Charge: -1, Energy: energy, Weight: 1}
	sim.state.Position, err = stepper.Position(
		startLatitude, startLongitude, startOffset, 0,
	)
	if err != nil {
		return nil, err
	}
	sim.state.Direction = geodesy.Horizontal(
		startLatitude, startLongitude, azimuth, elevation,
	)

	return sim, nil
}

// State returns the current particle state.
func (sim *Simulation) State() physics.State { return sim.state }

// Run reports the initial state and then repeatedly invokes the engine,
// reporting after every transport call, until the kinetic energy reaches
// zero or the particle leaves the modeled volume. Any engine error aborts
// the run.
func (sim *Simulation) Run() error {
	sim.reporter.Report(&sim.state)
	for {
		_, media, err := sim.ctx.Transport(&sim.state)
		if err != nil {
			return err
		}

		sim.reporter.Report(&sim.state)

		if sim.state.Energy == 0 || media[1] == nil {
			break
		}
	}
	return nil
}
