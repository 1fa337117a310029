package model

// Point is a planar location in solution units.
type Point struct {
	X float64
	Y float64
}

// Stop is a single location a vehicle must visit, identified by the
// solver's node number.
type Stop struct {
	Node     int
	Location Point
}

// Route is one vehicle's ordered itinerary. The final stop repeats the
// depot when the solver closes the tour. A route always has at least one
// stop; a single-stop route is drawable but carries no motion.
type Route struct {
	Stops []Stop
}

// Len returns the number of stops on the route.
func (r *Route) Len() int { return len(r.Stops) }

// Animatable reports whether the route has enough stops to move a
// vehicle along it.
func (r *Route) Animatable() bool { return len(r.Stops) >= 2 }

// Solution is the full set of routes produced by the external optimizer.
// Route order is vehicle index order; it is load-bearing for color
// assignment and animation ordering.
type Solution struct {
	Routes []Route
}

// NumStops returns the total stop count across all routes.
func (s *Solution) NumStops() int {
	n := 0
	for i := range s.Routes {
		n += len(s.Routes[i].Stops)
	}
	return n
}

// Empty reports whether the solution contains no stops at all.
func (s *Solution) Empty() bool { return s.NumStops() == 0 }
