package core

import (
	"strconv"

	"github.com/fleetglass/route-animator/model"
)

// Palette mirrors the route colors of the original solution plots:
// green, magenta, cyan, yellow, blue, black. Vehicle i always gets
// Palette[i mod len(Palette)], so the mapping is stable and cyclic
// regardless of route count.
var Palette = []string{
	"#008000",
	"#bf00bf",
	"#00bfbf",
	"#bfbf00",
	"#0000ff",
	"#000000",
}

// LabelDepthOffset lifts stop labels toward the viewer along the depth
// axis so route lines and markers never occlude them. Clients render
// labels as billboards at this offset.
const LabelDepthOffset = 0.5

// RouteColor returns the palette color assigned to vehicle index i.
func RouteColor(i int) string {
	return Palette[i%len(Palette)]
}

// Polyline is one route drawn as a connected line through its stops.
type Polyline struct {
	Vehicle int    `json:"vehicle"`
	Color   string `json:"color"`
	Points  []Vec2 `json:"points"`
}

// Marker is a stop indicator at a single location.
type Marker struct {
	Vehicle  int    `json:"vehicle"`
	Node     int    `json:"node"`
	Color    string `json:"color"`
	Position Vec2   `json:"position"`
}

// Label is a billboard text primitive showing a stop's node id.
type Label struct {
	Node     int     `json:"node"`
	Text     string  `json:"text"`
	Position Vec2    `json:"position"`
	Depth    float64 `json:"depth"`
}

// Scene is the static, time-independent geometry of a solution.
type Scene struct {
	Polylines []Polyline `json:"polylines"`
	Markers   []Marker   `json:"markers"`
	Labels    []Label    `json:"labels"`
}

// BuildScene emits the drawable primitives for a solution: one polyline
// per route, one marker and one label per stop. It is pure and
// idempotent; every call returns a fresh, independent primitive set, so
// a solution reload replaces the previous scene wholesale instead of
// leaking primitives into it.
func BuildScene(sol *model.Solution) *Scene {
	scene := &Scene{
		Polylines: make([]Polyline, 0, len(sol.Routes)),
	}
	for i := range sol.Routes {
		rt := &sol.Routes[i]
		color := RouteColor(i)

		line := Polyline{
			Vehicle: i,
			Color:   color,
			Points:  make([]Vec2, 0, len(rt.Stops)),
		}
		for _, st := range rt.Stops {
			pos := Vec2{X: st.Location.X, Y: st.Location.Y}
			line.Points = append(line.Points, pos)
			scene.Markers = append(scene.Markers, Marker{
				Vehicle:  i,
				Node:     st.Node,
				Color:    color,
				Position: pos,
			})
			scene.Labels = append(scene.Labels, Label{
				Node:     st.Node,
				Text:     strconv.Itoa(st.Node),
				Position: pos,
				Depth:    LabelDepthOffset,
			})
		}
		scene.Polylines = append(scene.Polylines, line)
	}
	return scene
}
