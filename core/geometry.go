package core

import "math"

// Vec2 is a planar vector in solution units.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Norm returns the Euclidean norm of the vector.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp returns the point a fraction t of the way from v to other.
// t = 0 yields v, t = 1 yields other.
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
	}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec2
	Max Vec2
}

// EmptyBox returns an inverted box that any Extend call will snap onto.
func EmptyBox() Box {
	return Box{
		Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether the box has never been extended.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Extend grows the box to include p.
func (b Box) Extend(p Vec2) Box {
	return Box{
		Min: Vec2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Vec2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Pad expands the box symmetrically by amount on all four sides.
func (b Box) Pad(amount float64) Box {
	return Box{
		Min: Vec2{X: b.Min.X - amount, Y: b.Min.Y - amount},
		Max: Vec2{X: b.Max.X + amount, Y: b.Max.Y + amount},
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies strictly inside the box.
func (b Box) Contains(p Vec2) bool {
	return p.X > b.Min.X && p.X < b.Max.X && p.Y > b.Min.Y && p.Y < b.Max.Y
}
