package math

import "math"

// Quat is a rotation quaternion with scalar part W.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the rotation that changes nothing.
func QuatIdentity() Quat { return Quat{W: 1} }

// QuatFromAxisAngle rotates by angle radians around the unit vector axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	s, c := math.Sincos(angle / 2)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// QuatBetween returns the shortest-arc rotation taking unit vector a onto unit
// vector b. Antipodal inputs rotate half a turn around any axis perpendicular to a.
func QuatBetween(a, b Vec3) Quat {
	d := a.Dot(b)
	if d < -1+1e-12 {
		axis := Vec3{1, 0, 0}.Cross(a)
		if axis.Length() < 1e-6 {
			axis = Vec3{0, 1, 0}.Cross(a)
		}
		return QuatFromAxisAngle(axis.Normalize(), math.Pi)
	}
	c := a.Cross(b)
	return Quat{X: c.X, Y: c.Y, Z: c.Z, W: 1 + d}.Normalize()
}

// Normalize scales q to unit length. A zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n < 1e-12 {
		return QuatIdentity()
	}
	return q.scale(1 / n)
}

// Slerp interpolates along the shorter great arc between q (t = 0) and
// other (t = 1).
func (q Quat) Slerp(other Quat, t float64) Quat {
	cos := q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
	if cos < 0 {
		other = other.scale(-1)
		cos = -cos
	}
	if cos > 1-1e-9 {
		// sin(theta) vanishes; a normalized lerp is exact to rounding here.
		return q.scale(1 - t).add(other.scale(t)).Normalize()
	}
	theta := math.Acos(cos)
	sin := math.Sin(theta)
	return q.scale(math.Sin((1-t)*theta) / sin).add(other.scale(math.Sin(t*theta) / sin))
}

func (q Quat) scale(s float64) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

func (q Quat) add(o Quat) Quat {
	return Quat{q.X + o.X, q.Y + o.Y, q.Z + o.Z, q.W + o.W}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return q.Mat3().MulVec(v)
}

// Mat3 converts the quaternion to a rotation matrix.
func (q Quat) Mat3() Mat3 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw),
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw),
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy),
	}
}
