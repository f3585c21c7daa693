package math

import (
	"math"
	"testing"
)

func TestIdentity3(t *testing.T) {
	m := Identity3()
	if m[0] != 1 || m[4] != 1 || m[8] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[3] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := RotateX(0.3).Mul(RotateY(1.1))
	result := m.Mul(Identity3())
	for i := range m {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestRotateY90(t *testing.T) {
	result := RotateY(math.Pi / 2).MulVec(Vec3{1, 0, 0})

	// Right-handed: +X goes to -Z
	if abs(result.X) > 1e-9 || abs(result.Y) > 1e-9 || abs(result.Z+1) > 1e-9 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateX90(t *testing.T) {
	result := RotateX(math.Pi / 2).MulVec(Vec3{0, 0, 1})
	if abs(result.X) > 1e-9 || abs(result.Y+1) > 1e-9 || abs(result.Z) > 1e-9 {
		t.Errorf("RotateX 90: got %v, want (0, -1, 0)", result)
	}
}

func TestRotateZ90(t *testing.T) {
	result := RotateZ(math.Pi / 2).MulVec(Vec3{1, 0, 0})
	if abs(result.X) > 1e-9 || abs(result.Y-1) > 1e-9 || abs(result.Z) > 1e-9 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", result)
	}
}

func TestRotationDeterminant(t *testing.T) {
	for _, a := range []float64{-3, -1.2, 0, 0.4, 2.5} {
		m := RotateX(a).Mul(RotateY(a * 0.7)).Mul(RotateZ(-a * 1.3))
		if d := m.Determinant(); math.Abs(d-1) > 1e-9 {
			t.Errorf("det = %v for angle %v, want 1", d, a)
		}
		if !m.IsOrthogonal(1e-9) {
			t.Errorf("composition for angle %v is not orthogonal", a)
		}
	}
}

func TestTransposeInverts(t *testing.T) {
	m := RotateX(0.7).Mul(RotateZ(-0.2))
	v := Vec3{0.3, -0.4, 0.5}
	back := m.Transpose().MulVec(m.MulVec(v))
	if back.Distance(v) > 1e-12 {
		t.Errorf("Transpose did not invert rotation: got %v, want %v", back, v)
	}
}

func TestAt(t *testing.T) {
	m := RotateZ(math.Pi / 2)
	// Row 0, column 1 of a Z rotation is -sin
	if got := m.At(0, 1); math.Abs(got+1) > 1e-12 {
		t.Errorf("At(0,1) = %v, want -1", got)
	}
}

func abs(x float64) float64 {
	return math.Abs(x)
}
