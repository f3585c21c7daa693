package pano

import (
	"image/color"
	"math"
	"testing"

	pm "github.com/Faultbox/panorama/pkg/math"
)

func TestStrokeSpacing(t *testing.T) {
	s := NewStroke(radians(10), 0.01, color.NRGBA{A: 255})
	if got := s.MoveTo(pm.Vec3{X: 1}); got != nil {
		t.Fatalf("MoveTo before Begin returned %d dots", len(got))
	}

	first := s.Begin(DirectionFromAngles(0, 0))
	if len(first) != 1 || !s.Active() {
		t.Fatalf("Begin returned %d dots, active=%v", len(first), s.Active())
	}

	dots := s.MoveTo(DirectionFromAngles(radians(95), 0))
	if len(dots) != 9 {
		t.Fatalf("first segment placed %d dots, want 9", len(dots))
	}
	for i, d := range dots {
		az, el := Angles(d.Center)
		if math.Abs(degrees(az)-float64(10*(i+1))) > 1e-9 || math.Abs(el) > 1e-9 {
			t.Errorf("dot %d at az=%v el=%v", i, degrees(az), degrees(el))
		}
	}

	// 5 degrees carried over, so the next dot lands at 100
	dots = s.MoveTo(DirectionFromAngles(radians(107), 0))
	if len(dots) != 1 {
		t.Fatalf("second segment placed %d dots, want 1", len(dots))
	}
	if az, _ := Angles(dots[0].Center); math.Abs(degrees(az)-100) > 1e-9 {
		t.Errorf("carried dot at %v, want 100", degrees(az))
	}

	s.End()
	if s.Active() {
		t.Error("stroke still active after End")
	}
	if got := s.MoveTo(pm.Vec3{Z: 1}); got != nil {
		t.Error("MoveTo after End placed dots")
	}
}

func TestStrokeSplatProperties(t *testing.T) {
	col := color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	s := NewStroke(radians(1), 0.25, col)
	s.Begin(pm.Vec3{Y: 0.5, Z: 2})
	for _, d := range s.MoveTo(pm.Vec3{Y: 1, Z: 1}) {
		if d.Radius != 0.25 || d.Color != col {
			t.Fatalf("dot %+v does not carry brush settings", d)
		}
		if math.Abs(d.Center.Length()-1) > 1e-9 {
			t.Fatalf("dot centre %v is not unit length", d.Center)
		}
	}
}

func TestStrokeZeroMove(t *testing.T) {
	s := NewStroke(radians(5), 0.1, color.NRGBA{A: 255})
	s.Begin(pm.Vec3{Z: 1})
	if got := s.MoveTo(pm.Vec3{Z: 3}); len(got) != 0 {
		t.Errorf("moving to the same direction placed %d dots", len(got))
	}
}
