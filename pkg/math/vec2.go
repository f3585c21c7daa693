package math

import "math"

// Vec2 is a point on a plane, such as texture coordinates or a point on the
// z = 1 projection plane.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 { return Vec2{v.X + other.X, v.Y + other.Y} }

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 { return Vec2{v.X - other.X, v.Y - other.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Length returns the distance from the origin.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Lerp interpolates between v (t = 0) and other (t = 1).
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// Gnomonic projects p through the origin onto the z = 1 plane. ok is false
// when p does not lie in front of the plane by more than eps.
func Gnomonic(p Vec3, eps float64) (q Vec2, ok bool) {
	if p.Z <= eps {
		return Vec2{}, false
	}
	return Vec2{p.X / p.Z, p.Y / p.Z}, true
}
