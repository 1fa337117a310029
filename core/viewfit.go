package core

import (
	"math"

	"github.com/fleetglass/route-animator/model"
)

// Framing policy constants. The padding is in solution units; the
// distance clamps are multiples of the exact-fit distance and bound how
// far a viewer may zoom, independent of the data.
const (
	BoundsPadding     = 2.0
	VerticalFOVDeg    = 60.0
	MinDistanceFactor = 0.3
	MaxDistanceFactor = 10.0
)

// ViewFit is the camera framing derived once from a solution's
// geometric extent. It is never mutated afterwards; viewport resizes
// change the camera projection, not the fit.
type ViewFit struct {
	Center      Vec2    `json:"center"`
	Span        float64 `json:"span"`
	FitDistance float64 `json:"fitDistance"`
	MinDistance float64 `json:"minDistance"`
	MaxDistance float64 `json:"maxDistance"`
}

// PaddedBounds returns the padded bounding box over every stop of the
// solution. A solution with no stops degenerates to a unit box centered
// at the origin, so the projection math downstream never divides by
// zero; the padding is then applied to that unit box like any other.
func PaddedBounds(sol *model.Solution) Box {
	box := EmptyBox()
	for i := range sol.Routes {
		for _, st := range sol.Routes[i].Stops {
			box = box.Extend(Vec2{X: st.Location.X, Y: st.Location.Y})
		}
	}
	if box.IsEmpty() {
		box = Box{Min: Vec2{X: -0.5, Y: -0.5}, Max: Vec2{X: 0.5, Y: 0.5}}
	}
	return box.Pad(BoundsPadding)
}

// ComputeViewFit frames the whole route network. The fit distance is
// the distance at which a camera with our vertical field of view
// exactly frames a plane of height Span. Total over any well-formed
// solution, including an empty one.
func ComputeViewFit(sol *model.Solution) ViewFit {
	box := PaddedBounds(sol)

	span := math.Max(box.Width(), box.Height())
	halfFov := VerticalFOVDeg / 2 * math.Pi / 180
	fit := span / (2 * math.Tan(halfFov))

	return ViewFit{
		Center:      box.Center(),
		Span:        span,
		FitDistance: fit,
		MinDistance: fit * MinDistanceFactor,
		MaxDistance: fit * MaxDistanceFactor,
	}
}
