package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/fleetglass/route-animator/model"
)

// internal JSON shapes – kept unexported so we're free to evolve them.
// Required fields use pointers so that a missing field is
// distinguishable from a legitimate zero value.
type solutionJSON struct {
	Routes []routeJSON `json:"routes" validate:"dive"`
}

type routeJSON struct {
	Stops []stopJSON `json:"stops" validate:"required,min=1,dive"`
}

type stopJSON struct {
	Node *int     `json:"node" validate:"required"`
	X    *float64 `json:"x" validate:"required"`
	Y    *float64 `json:"y" validate:"required"`
}

// LoadSolution decodes and validates a solution document. Validation is
// all-or-nothing: a single malformed stop rejects the whole document,
// so the viewer never renders partial or inconsistent geometry.
func LoadSolution(r io.Reader) (*model.Solution, error) {
	var payload solutionJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadSolution: decode failed: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("LoadSolution: malformed solution: %w", err)
	}

	sol := &model.Solution{
		Routes: make([]model.Route, 0, len(payload.Routes)),
	}
	for _, jsRoute := range payload.Routes {
		rt := model.Route{
			Stops: make([]model.Stop, 0, len(jsRoute.Stops)),
		}
		for _, jsStop := range jsRoute.Stops {
			rt.Stops = append(rt.Stops, model.Stop{
				Node:     *jsStop.Node,
				Location: model.Point{X: *jsStop.X, Y: *jsStop.Y},
			})
		}
		sol.Routes = append(sol.Routes, rt)
	}
	return sol, nil
}
