package physics

import (
	"fmt"

	"mutransport/geom"
)

// State is the mutable record describing a single transported particle. It
// is owned by the caller of Transport and mutated in place by the engine.
type State struct {
	// Charge is the sign of the electric charge.
	Charge float64
	// Energy is the kinetic energy in GeV.
	Energy float64
	// Weight is the statistical weight of the particle.
	Weight float64
	// Position is the ECEF position in meters.
	Position geom.Vec
	// Direction is the unit vector of propagation. The engine keeps it
	// normalized; callers must supply it normalized.
	Direction geom.Vec
}

// Locals are the local properties of a medium at a given position.
type Locals struct {
	// Density in kg/m^3.
	Density float64
	// Magnet is the local magnetic field. Unused by the current stepping
	// scheme, carried for forward use.
	Magnet geom.Vec
}

// LocalsFunc returns the local properties of a medium at the position of the
// given state.
type LocalsFunc func(state *State) Locals

// Medium associates a material with an optional local-properties callback. A
// nil Locals callback selects the material's default density and a null
// magnetic field.
type Medium struct {
	Material int
	Locals   LocalsFunc
}

// MediumResolver is the geometry oracle queried by the engine during
// transport. Medium returns the medium at the position of the given state,
// or nil if the position is outside of the described geometry, along with an
// advisory step length in meters.
//
// The step is approximate. The engine may take a shorter step, but it will
// re-query the resolver at or before the returned distance. Implementations
// must return the same *Medium pointer for every position inside the same
// region, since the engine detects medium changes by identity. The resolver
// must not mutate the state.
type MediumResolver interface {
	Medium(state *State) (*Medium, float64)
}

// UniformSource supplies the uniform deviates consumed by the engine. Calls
// must be reentrant from within Transport.
type UniformSource interface {
	Uniform01() float64
}

// Event describes why a transport call returned.
type Event int

const (
	EventNone Event = 0
	// EventMedium reports that the particle changed medium or left the
	// geometry.
	EventMedium Event = 1 << iota
	// EventStop reports that the kinetic energy reached zero.
	EventStop
)

func (ev Event) String() string {
	switch ev {
	case EventNone:
		return "none"
	case EventMedium:
		return "medium"
	case EventStop:
		return "stop"
	}
	return fmt.Sprintf("Event(%d)", int(ev))
}

// stragglingWidth bounds the relative fluctuation applied to the energy loss
// of a single sub-step. It must stay below 1 so that losses remain positive
// and energies monotonically non-increasing.
const stragglingWidth = 0.1

// maxSubSteps bounds the internal stepping loop of a single Transport call.
const maxSubSteps = 1 << 22

// Context is a simulation context bound to a set of physics tables and the
// capabilities injected at construction time.
type Context struct {
	// Event selects which events interrupt Transport. EventStop and
	// departures from the geometry always do.
	Event Event

	phys     *Physics
	resolver MediumResolver
	random   UniformSource
}

// NewContext creates a simulation context around the given tables. The
// resolver and random source are the only channels through which the engine
// reaches back into user code.
func NewContext(p *Physics, resolver MediumResolver, random UniformSource) (*Context, error) {
	if p == nil {
		return nil, fmt.Errorf("No physics tables given.")
	} else if resolver == nil {
		return nil, fmt.Errorf("No medium resolver given.")
	} else if random == nil {
		return nil, fmt.Errorf("No uniform source given.")
	}
	return &Context{phys: p, resolver: resolver, random: random}, nil
}

// Transport advances the state through the geometry until an event occurs.
// It returns the event, the media at the start and at the end of the
// transport, and any error surfaced by the tables or the callbacks.
//
// media[1] is nil when the particle ended up outside of the geometry, which
// callers should treat as a terminal condition.
func (ctx *Context) Transport(state *State) (Event, [2]*Medium, error) {
	var media [2]*Medium

	if state == nil {
		return EventNone, media, fmt.Errorf("No state given.")
	} else if state.Energy < 0 {
		return EventNone, media, fmt.Errorf(
			"State has negative kinetic energy %g GeV.", state.Energy,
		)
	}

	med, stepHint := ctx.resolver.Medium(state)
	media[0], media[1] = med, med

	if med == nil {
		media[1] = nil
		return EventMedium, media, nil
	}
	if state.Energy == 0 {
		return EventStop, media, nil
	}

	for n := 0; n < maxSubSteps; n++ {
		if med.Material < 0 || med.Material >= len(ctx.phys.materials) {
			return EventNone, media, fmt.Errorf(
				"Medium references material %d, but only %d are loaded.",
				med.Material, len(ctx.phys.materials),
			)
		}
		mat := &ctx.phys.materials[med.Material]

		density := mat.Density
		if med.Locals != nil {
			density = med.Locals(state).Density
		}
		if density <= 0 {
			return EventNone, media, fmt.Errorf(
				"Medium of material '%s' has non-positive local density %g.",
				mat.Name, density,
			)
		}

		grammageLeft, err := mat.grammageAt(state.Energy)
		if err != nil {
			return EventNone, media, err
		}

		ds := stepHint
		if rangeLeft := grammageLeft / density; rangeLeft < ds {
			ds = rangeLeft
		}
		if ds <= 0 {
			return EventNone, media, fmt.Errorf(
				"Transport stalled with a step of %g m.", ds,
			)
		}

		// One deviate per sub-step drives the soft straggling of the
		// continuous loss.
		u := ctx.random.Uniform01()
		loss := ds * density * (1 + stragglingWidth*(2*u-1))

		state.Energy = mat.energyAt(grammageLeft - loss)

		var dx geom.Vec
		state.Direction.ScaleAt(ds, &dx)
		state.Position.AddSelf(&dx)

		prev := med
		med, stepHint = ctx.resolver.Medium(state)
		media[1] = med

		if med == nil {
			return EventMedium, media, nil
		}
		if state.Energy == 0 {
			return EventStop, media, nil
		}
		if med != prev && ctx.Event&EventMedium != 0 {
			return EventMedium, media, nil
		}
	}

	return EventNone, media, fmt.Errorf(
		"Transport exceeded %d sub-steps without an event.", maxSubSteps,
	)
}
