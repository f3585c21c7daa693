package math

import (
	"math"
	"testing"
)

func TestVec2Lerp(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 6}
	if got := a.Lerp(b, 0.5); got != (Vec2{2, 4}) {
		t.Errorf("Vec2.Lerp(0.5) = %v, want {2 4}", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Vec2.Lerp(1) = %v, want %v", got, b)
	}
}

func TestGnomonic(t *testing.T) {
	tests := []struct {
		name   string
		in     Vec3
		want   Vec2
		wantOK bool
	}{
		{"axis", Vec3{0, 0, 1}, Vec2{}, true},
		{"scaled", Vec3{1, -2, 4}, Vec2{0.25, -0.5}, true},
		{"on plane", Vec3{1, 0, 0}, Vec2{}, false},
		{"behind", Vec3{0, 0, -1}, Vec2{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Gnomonic(tt.in, 1e-9)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Gnomonic(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want float64
	}{
		{"axis", Vec3{0, 0, 5}, 1},
		{"diagonal", Vec3{1, 2, 3}, 1},
		{"zero", Vec3{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize().Length(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Normalize().Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Angle(t *testing.T) {
	got := Vec3{1, 0, 0}.Angle(Vec3{0, 0, 1})
	if math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("Angle = %v, want pi/2", got)
	}
	if got := (Vec3{0, 1, 0}).Angle(Vec3{0, 1, 0}); got != 0 {
		t.Errorf("Angle of identical vectors = %v, want 0", got)
	}
}

func TestVec3MaxAbs(t *testing.T) {
	if got := (Vec3{0.2, -0.9, 0.3}).MaxAbs(); got != 0.9 {
		t.Errorf("MaxAbs = %v, want 0.9", got)
	}
}
