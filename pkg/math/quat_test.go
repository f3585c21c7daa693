package math

import (
	"math"
	"testing"
)

func TestQuatNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Quat
		want Quat
	}{
		{"identity", QuatIdentity(), Quat{0, 0, 0, 1}},
		{"zero", Quat{}, Quat{0, 0, 0, 1}},
		{"scaled", Quat{0, 0, 3, 4}, Quat{0, 0, 0.6, 0.8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.Z-tt.want.Z) > 1e-12 || math.Abs(got.W-tt.want.W) > 1e-12 || got.X != 0 || got.Y != 0 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuatSlerp(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	v := Vec3{0, 0, 1}

	for _, tc := range []struct {
		t    float64
		want Vec3
	}{
		{0, v},
		{0.5, Vec3{math.Sqrt2 / 2, 0, math.Sqrt2 / 2}},
		{1, Vec3{1, 0, 0}},
	} {
		got := QuatIdentity().Slerp(q, tc.t).Rotate(v)
		if got.Distance(tc.want) > 1e-9 {
			t.Errorf("Slerp(%v).Rotate(%v) = %v, want %v", tc.t, v, got, tc.want)
		}
	}

	// Nearly equal endpoints take the lerp path and stay unit length.
	near := QuatFromAxisAngle(Vec3{0, 1, 0}, 1e-6)
	r := QuatIdentity().Slerp(near, 0.5)
	if n := math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z + r.W*r.W); math.Abs(n-1) > 1e-12 {
		t.Errorf("Slerp near identity has length %v", n)
	}
}

func TestQuatMat3Identity(t *testing.T) {
	m := QuatIdentity().Mat3()
	id := Identity3()
	for i := range m {
		if math.Abs(m[i]-id[i]) > 1e-12 {
			t.Errorf("element %d: got %v, want %v", i, m[i], id[i])
		}
	}
}

func TestQuatMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.8)
	v := Vec3{0.1, 0.2, 0.9}
	got := q.Rotate(v)
	want := RotateY(0.8).MulVec(v)
	if got.Distance(want) > 1e-12 {
		t.Errorf("quaternion rotation %v differs from matrix %v", got, want)
	}
}

func TestQuatBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
	}{
		{"quarter", Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"same", Vec3{0, 1, 0}, Vec3{0, 1, 0}},
		{"oblique", Vec3{1, 2, 3}.Normalize(), Vec3{-2, 0.5, 1}.Normalize()},
		{"antipodal", Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatBetween(tt.a, tt.b).Rotate(tt.a)
			if got.Distance(tt.b) > 1e-9 {
				t.Errorf("QuatBetween(%v, %v) maps a to %v", tt.a, tt.b, got)
			}
		})
	}
}
