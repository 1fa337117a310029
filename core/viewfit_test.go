package core

import (
	"math"
	"testing"

	"github.com/fleetglass/route-animator/model"
)

// twoRouteSolution is the reference scenario used across the core
// tests: route A visits (0,0) -> (10,0) -> (10,10), route B visits
// (0,0) -> (-5,-5).
func twoRouteSolution() *model.Solution {
	return &model.Solution{Routes: []model.Route{
		{Stops: []model.Stop{
			{Node: 0, Location: model.Point{X: 0, Y: 0}},
			{Node: 1, Location: model.Point{X: 10, Y: 0}},
			{Node: 2, Location: model.Point{X: 10, Y: 10}},
		}},
		{Stops: []model.Stop{
			{Node: 0, Location: model.Point{X: 0, Y: 0}},
			{Node: 3, Location: model.Point{X: -5, Y: -5}},
		}},
	}}
}

func TestComputeViewFitCenterAndSpan(t *testing.T) {
	fit := ComputeViewFit(twoRouteSolution())

	// Raw bounds are x,y in [-5, 10]; symmetric padding leaves the
	// midpoint unchanged.
	if !almostEqual(fit.Center.X, 2.5) || !almostEqual(fit.Center.Y, 2.5) {
		t.Fatalf("Center = %+v, want (2.5, 2.5)", fit.Center)
	}
	wantSpan := 15.0 + 2*BoundsPadding
	if !almostEqual(fit.Span, wantSpan) {
		t.Fatalf("Span = %v, want %v", fit.Span, wantSpan)
	}
}

func TestComputeViewFitDistances(t *testing.T) {
	fit := ComputeViewFit(twoRouteSolution())

	halfFov := VerticalFOVDeg / 2 * math.Pi / 180
	wantFit := fit.Span / (2 * math.Tan(halfFov))
	if !almostEqual(fit.FitDistance, wantFit) {
		t.Fatalf("FitDistance = %v, want %v", fit.FitDistance, wantFit)
	}
	if !almostEqual(fit.MinDistance, wantFit*MinDistanceFactor) {
		t.Fatalf("MinDistance = %v, want %v", fit.MinDistance, wantFit*MinDistanceFactor)
	}
	if !almostEqual(fit.MaxDistance, wantFit*MaxDistanceFactor) {
		t.Fatalf("MaxDistance = %v, want %v", fit.MaxDistance, wantFit*MaxDistanceFactor)
	}
}

func TestComputeViewFitEmptySolution(t *testing.T) {
	fit := ComputeViewFit(&model.Solution{})

	// Degenerate-box policy: unit box at the origin, then padding.
	if !almostEqual(fit.Center.X, 0) || !almostEqual(fit.Center.Y, 0) {
		t.Fatalf("empty solution Center = %+v, want origin", fit.Center)
	}
	wantSpan := 1.0 + 2*BoundsPadding
	if !almostEqual(fit.Span, wantSpan) {
		t.Fatalf("empty solution Span = %v, want %v", fit.Span, wantSpan)
	}
	if fit.FitDistance <= 0 {
		t.Fatalf("empty solution FitDistance = %v, want > 0", fit.FitDistance)
	}
}

func TestPaddedBoundsContainsEveryStop(t *testing.T) {
	sol := twoRouteSolution()
	box := PaddedBounds(sol)

	for i := range sol.Routes {
		for _, st := range sol.Routes[i].Stops {
			p := Vec2{X: st.Location.X, Y: st.Location.Y}
			if !box.Contains(p) {
				t.Fatalf("stop %d at %+v not strictly inside padded bounds %+v", st.Node, p, box)
			}
		}
	}
}

func TestCameraAspectAndZoomClamp(t *testing.T) {
	fit := ComputeViewFit(twoRouteSolution())
	cam := NewCamera(fit)

	if !almostEqual(cam.Distance(), fit.FitDistance) {
		t.Fatalf("initial Distance = %v, want fit distance %v", cam.Distance(), fit.FitDistance)
	}

	cam.SetAspect(1920, 1080)
	if !almostEqual(cam.Aspect(), 1920.0/1080.0) {
		t.Fatalf("Aspect = %v, want %v", cam.Aspect(), 1920.0/1080.0)
	}
	cam.SetAspect(0, -1)
	if !almostEqual(cam.Aspect(), 1920.0/1080.0) {
		t.Fatalf("degenerate resize changed aspect to %v", cam.Aspect())
	}

	cam.SetDistance(0)
	if !almostEqual(cam.Distance(), fit.MinDistance) {
		t.Fatalf("Distance clamped low = %v, want %v", cam.Distance(), fit.MinDistance)
	}
	cam.SetDistance(fit.MaxDistance * 100)
	if !almostEqual(cam.Distance(), fit.MaxDistance) {
		t.Fatalf("Distance clamped high = %v, want %v", cam.Distance(), fit.MaxDistance)
	}

	// Resizing never touches the framing itself.
	if got := cam.Fit(); got != fit {
		t.Fatalf("Fit mutated by camera operations: %+v != %+v", got, fit)
	}
}
