package core

// Camera carries the projection parameters shipped to viewer clients.
// The framing itself (center, distance bounds) comes from a ViewFit and
// stays fixed for the lifetime of a loaded solution; only the aspect
// ratio changes when a client viewport resizes, and only the distance
// changes when a client zooms.
type Camera struct {
	fit      ViewFit
	distance float64
	aspect   float64
}

// NewCamera positions a camera at the exact-fit distance for the given
// framing, with a square viewport until the first resize arrives.
func NewCamera(fit ViewFit) *Camera {
	return &Camera{
		fit:      fit,
		distance: fit.FitDistance,
		aspect:   1,
	}
}

// SetAspect updates the projection aspect ratio from viewport
// dimensions. Degenerate dimensions are ignored rather than producing a
// broken projection.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float64(width) / float64(height)
}

// SetDistance moves the camera along the view axis, clamped to the
// zoom bounds of the framing.
func (c *Camera) SetDistance(d float64) {
	if d < c.fit.MinDistance {
		d = c.fit.MinDistance
	}
	if d > c.fit.MaxDistance {
		d = c.fit.MaxDistance
	}
	c.distance = d
}

// Aspect returns the current projection aspect ratio.
func (c *Camera) Aspect() float64 { return c.aspect }

// Distance returns the current camera distance.
func (c *Camera) Distance() float64 { return c.distance }

// Fit returns the immutable framing the camera was built from.
func (c *Camera) Fit() ViewFit { return c.fit }

// CameraState is the wire snapshot of a camera's projection.
type CameraState struct {
	Center   Vec2    `json:"center"`
	Distance float64 `json:"distance"`
	FOVDeg   float64 `json:"fovDeg"`
	Aspect   float64 `json:"aspect"`
}

// State returns a value snapshot safe to hand to other goroutines.
func (c *Camera) State() CameraState {
	return CameraState{
		Center:   c.fit.Center,
		Distance: c.distance,
		FOVDeg:   VerticalFOVDeg,
		Aspect:   c.aspect,
	}
}
