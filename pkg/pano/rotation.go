package pano

import (
	"math"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// Euler is an ordered triple of rotation angles in degrees about the X, Y and
// Z axes. Its matrix is always Rx * Ry * Rz.
type Euler struct {
	X, Y, Z float64
}

// Matrix returns Rx * Ry * Rz.
func (e Euler) Matrix() pm.Mat3 {
	return pm.RotateX(radians(e.X)).
		Mul(pm.RotateY(radians(e.Y))).
		Mul(pm.RotateZ(radians(e.Z)))
}

// Apply rotates d by the composed matrix.
func (e Euler) Apply(d pm.Vec3) pm.Vec3 {
	return e.Matrix().MulVec(d)
}

// ApplyInverse rotates d by the inverse (transposed) matrix.
func (e Euler) ApplyInverse(d pm.Vec3) pm.Vec3 {
	return e.Inverse().MulVec(d)
}

// Inverse returns the inverse rotation matrix, Rz^T * Ry^T * Rx^T.
func (e Euler) Inverse() pm.Mat3 {
	return e.Matrix().Transpose()
}

// RotateEuler rotates d by Euler angles rx, ry, rz in degrees.
// RotateEuler((0,0,1), 90, 0, 0) yields (0,-1,0).
func RotateEuler(d pm.Vec3, rx, ry, rz float64) pm.Vec3 {
	return Euler{rx, ry, rz}.Apply(d)
}

// AimAt returns the rotation that carries d onto +Z. Drawing a circle with this
// rotation centres it on d.
func AimAt(d pm.Vec3) Euler {
	az, el := Angles(d)
	return Euler{X: degrees(el), Y: -degrees(az)}
}

// Bearing returns the rotation that aims at the given azimuth and elevation in
// degrees, the compass form of AimAt.
func Bearing(azimuthDeg, elevationDeg float64) Euler {
	return Euler{X: elevationDeg, Y: -azimuthDeg}
}

// Center returns the direction this rotation carries onto +Z.
func (e Euler) Center() pm.Vec3 {
	return e.ApplyInverse(pm.Vec3{Z: 1})
}

// NormalizeView folds a pitch/yaw pair after a drag: pitch goes into
// [-90, 90] and yaw flips by 180 when pitch passes over a pole. Yaw is then
// wrapped into (-180, 180]. The viewing direction is unchanged.
func NormalizeView(pitch, yaw float64) (float64, float64) {
	pitch = math.Mod(pitch+180, 360)
	if pitch < 0 {
		pitch += 360
	}
	pitch -= 180

	if pitch > 90 {
		pitch = 180 - pitch
		yaw += 180
	}
	if pitch < -90 {
		pitch = -180 - pitch
		yaw += 180
	}
	return pitch, wrapDegrees(yaw)
}

// wrapDegrees wraps an angle into (-180, 180].
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	}
	if a <= -180 {
		a += 360
	}
	return a
}
