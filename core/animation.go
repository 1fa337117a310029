package core

import (
	"time"

	"github.com/fleetglass/route-animator/model"
)

// DefaultSpeed is the marker speed along routes, in solution units per
// second.
const DefaultSpeed = 2.5

// EndOfRoutePolicy selects what a vehicle does on arriving at the final
// stop of its route.
type EndOfRoutePolicy int

const (
	// LoopToStart sends the vehicle back to the first segment.
	LoopToStart EndOfRoutePolicy = iota
	// HaltAtEnd parks the vehicle on the final stop.
	HaltAtEnd
)

// VehicleState tracks one vehicle's progress along its route. The
// invariants are 0 <= Segment <= Len-2 and 0 <= Progress < 1; Position
// is always the interpolation between the segment endpoints at
// Progress, recomputed on every advance.
type VehicleState struct {
	Vehicle  int
	Segment  int
	Progress float64
	Position Vec2

	route  *model.Route
	halted bool
}

// Route returns the read-only route this vehicle follows.
func (v *VehicleState) Route() *model.Route { return v.route }

// Halted reports whether the vehicle reached the end of its route under
// the halt policy.
func (v *VehicleState) Halted() bool { return v.halted }

func (v *VehicleState) stopLocation(i int) Vec2 {
	loc := v.route.Stops[i].Location
	return Vec2{X: loc.X, Y: loc.Y}
}

// Engine owns one VehicleState per animatable route and advances them
// all each tick. Routes with fewer than two stops have no motion and
// get no state. The engine has no recoverable error conditions; a route
// with non-finite coordinates is a programming error upstream.
type Engine struct {
	Speed  float64
	Policy EndOfRoutePolicy

	vehicles []*VehicleState
}

// NewEngine builds vehicle states for every animatable route of the
// solution, in route index order. speed <= 0 falls back to
// DefaultSpeed.
func NewEngine(sol *model.Solution, speed float64, policy EndOfRoutePolicy) *Engine {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	e := &Engine{Speed: speed, Policy: policy}
	for i := range sol.Routes {
		rt := &sol.Routes[i]
		if !rt.Animatable() {
			continue
		}
		v := &VehicleState{Vehicle: i, route: rt}
		v.Position = v.stopLocation(0)
		e.vehicles = append(e.vehicles, v)
	}
	return e
}

// Vehicles returns the engine's states in update order. Callers must
// treat them as read-only; only Advance mutates them.
func (e *Engine) Vehicles() []*VehicleState { return e.vehicles }

// Advance moves every vehicle by the elapsed wall time. When active is
// false no state changes at all, which makes pausing idempotent: any
// number of inactive ticks leaves every state bit-identical.
func (e *Engine) Advance(elapsed time.Duration, active bool) {
	if !active {
		return
	}
	dt := elapsed.Seconds()
	for _, v := range e.vehicles {
		e.advanceVehicle(v, dt)
	}
}

// advanceVehicle applies one tick to a single vehicle. A zero-length
// segment is traversed instantaneously (Progress set to 1 outright, no
// division). At most one segment transition happens per tick: even a
// huge elapsed after a stall moves the vehicle forward by a single
// stop, which is an accepted approximation since frame intervals are
// small relative to inter-stop travel time.
func (e *Engine) advanceVehicle(v *VehicleState, dt float64) {
	if v.halted {
		return
	}

	curr := v.stopLocation(v.Segment)
	next := v.stopLocation(v.Segment + 1)

	dist := curr.DistanceTo(next)
	if dist == 0 {
		v.Progress = 1
	} else {
		v.Progress += e.Speed * dt / dist
	}

	if v.Progress >= 1 {
		v.Progress = 0
		v.Segment++
		if v.Segment >= v.route.Len()-1 {
			// Arrived at the final stop; apply the end-of-route policy
			// within the same tick.
			switch e.Policy {
			case HaltAtEnd:
				v.Segment = v.route.Len() - 2
				v.halted = true
				v.Position = v.stopLocation(v.route.Len() - 1)
				return
			default:
				v.Segment = 0
			}
		}
	}

	a := v.stopLocation(v.Segment)
	b := v.stopLocation(v.Segment + 1)
	v.Position = a.Lerp(b, v.Progress)
}
