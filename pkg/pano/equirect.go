package pano

import (
	"math"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// poleEpsilon is the cos(elevation) below which azimuth is treated as undefined.
const poleEpsilon = 1e-9

// DirectionFromAngles returns the unit direction for azimuth and elevation in radians.
func DirectionFromAngles(azimuth, elevation float64) pm.Vec3 {
	ce := math.Cos(elevation)
	return pm.Vec3{
		X: ce * math.Sin(azimuth),
		Y: math.Sin(elevation),
		Z: ce * math.Cos(azimuth),
	}
}

// Angles returns azimuth in (-pi, pi] and elevation in [-pi/2, pi/2] for d.
// d is normalized first. At the poles azimuth is reported as 0.
func Angles(d pm.Vec3) (azimuth, elevation float64) {
	d = d.Normalize()
	elevation = math.Asin(clampUnit(d.Y))
	ce := math.Cos(elevation)
	if ce < poleEpsilon {
		return 0, elevation
	}
	azimuth = math.Acos(clampUnit(d.Z / ce))
	if d.X < 0 {
		azimuth = -azimuth
	}
	if azimuth == -math.Pi {
		azimuth = math.Pi
	}
	return azimuth, elevation
}

// DirectionFromSigned maps signed coordinates in [-1, 1] to a direction.
func DirectionFromSigned(su, sv float64) pm.Vec3 {
	return DirectionFromAngles(su*math.Pi, sv*math.Pi/2)
}

// SignedFromDirection is the inverse of DirectionFromSigned.
func SignedFromDirection(d pm.Vec3) (su, sv float64) {
	az, el := Angles(d)
	return az / math.Pi, el / (math.Pi / 2)
}

// DirectionFromEquirect maps texture coordinates in [0, 1] to a direction.
func DirectionFromEquirect(u, v float64) pm.Vec3 {
	return DirectionFromSigned(2*u-1, 1-2*v)
}

// EquirectFromDirection maps a direction to texture coordinates in [0, 1].
// Near the poles any u is valid; the returned one corresponds to azimuth 0.
func EquirectFromDirection(d pm.Vec3) (u, v float64) {
	su, sv := SignedFromDirection(d)
	return (su + 1) / 2, (1 - sv) / 2
}

// PixelCenter returns the texture coordinates of the centre of pixel (x, y)
// in a w*h image.
func PixelCenter(x, y, w, h int) (u, v float64) {
	return (float64(x) + 0.5) / float64(w), (float64(y) + 0.5) / float64(h)
}

// PixelFromUV returns the pixel index for (u, v) by rounding u*w and v*h,
// wrapping out-of-range indices modulo the image size.
func PixelFromUV(u, v float64, w, h int) (x, y int) {
	x = int(math.Round(u * float64(w)))
	y = int(math.Round(v * float64(h)))
	return wrap(x, w), wrap(y, h)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
