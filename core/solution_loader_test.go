package core

import (
	"strings"
	"testing"
)

func TestLoadSolutionValidDocument(t *testing.T) {
	doc := `{
		"routes": [
			{"stops": [
				{"node": 0, "x": 0, "y": 0},
				{"node": 4, "x": -1.5, "y": 3}
			]},
			{"stops": [
				{"node": 2, "x": 7, "y": 7}
			]}
		]
	}`
	sol, err := LoadSolution(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadSolution: %v", err)
	}
	if len(sol.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(sol.Routes))
	}
	st := sol.Routes[0].Stops[1]
	if st.Node != 4 || st.Location.X != -1.5 || st.Location.Y != 3 {
		t.Fatalf("stop = %+v, want node 4 at (-1.5, 3)", st)
	}
}

func TestLoadSolutionZeroValuesAreValid(t *testing.T) {
	// The depot sits at the origin with node id 0: zero is data, not
	// absence.
	doc := `{"routes": [{"stops": [{"node": 0, "x": 0, "y": 0}]}]}`
	sol, err := LoadSolution(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadSolution rejected origin depot: %v", err)
	}
	if sol.Routes[0].Stops[0].Node != 0 {
		t.Fatalf("node = %d, want 0", sol.Routes[0].Stops[0].Node)
	}
}

func TestLoadSolutionRejectsMalformedDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing node", `{"routes": [{"stops": [{"x": 1, "y": 2}]}]}`},
		{"missing coordinate", `{"routes": [{"stops": [{"node": 1, "y": 2}]}]}`},
		{"empty stops", `{"routes": [{"stops": []}]}`},
		{"route without stops", `{"routes": [{}]}`},
		{"truncated json", `{"routes": [`},
		{"wrong type", `{"routes": [{"stops": [{"node": "a", "x": 1, "y": 2}]}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := LoadSolution(strings.NewReader(c.doc)); err == nil {
				t.Fatalf("LoadSolution accepted malformed document %q", c.doc)
			}
		})
	}
}

func TestLoadSolutionEmptyRoutes(t *testing.T) {
	sol, err := LoadSolution(strings.NewReader(`{"routes": []}`))
	if err != nil {
		t.Fatalf("LoadSolution: %v", err)
	}
	if !sol.Empty() {
		t.Fatalf("solution with no routes should be empty")
	}
}
