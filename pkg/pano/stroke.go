package pano

import (
	"image/color"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// Stroke turns a sequence of brush positions into splats spaced evenly along
// the great-circle arcs between them. Distance left over at the end of one
// segment carries into the next, so spacing is uniform across the whole stroke.
type Stroke struct {
	// Spacing is the arc length between dots in radians.
	Spacing float64
	Radius  float64
	Color   color.NRGBA

	last   pm.Vec3
	carry  float64
	active bool
}

// NewStroke returns an idle stroke.
func NewStroke(spacing, radius float64, col color.NRGBA) *Stroke {
	return &Stroke{Spacing: spacing, Radius: radius, Color: col}
}

// Active reports whether a stroke is in progress.
func (s *Stroke) Active() bool { return s.active }

// Begin starts the stroke at d and returns the first dot.
func (s *Stroke) Begin(d pm.Vec3) []Splat {
	s.last = d.Normalize()
	s.carry = 0
	s.active = true
	return []Splat{s.splat(s.last)}
}

// MoveTo extends the stroke to d and returns the dots placed along the way.
// It returns nothing when no stroke is active.
func (s *Stroke) MoveTo(d pm.Vec3) []Splat {
	if !s.active {
		return nil
	}
	d = d.Normalize()
	theta := s.last.Angle(d)
	if theta == 0 || s.Spacing <= 0 {
		return nil
	}

	arc := pm.QuatBetween(s.last, d)
	var out []Splat
	pos := s.Spacing - s.carry
	lastDot := -s.carry
	for ; pos <= theta; pos += s.Spacing {
		p := pm.QuatIdentity().Slerp(arc, pos/theta).Rotate(s.last)
		out = append(out, s.splat(p))
		lastDot = pos
	}
	s.carry = theta - lastDot
	s.last = d
	return out
}

// End finishes the stroke.
func (s *Stroke) End() {
	s.active = false
	s.carry = 0
}

func (s *Stroke) splat(d pm.Vec3) Splat {
	return Splat{Center: d, Radius: s.Radius, Color: s.Color}
}
