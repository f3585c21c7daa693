package pano

import (
	"image"
	"image/color"
	"math"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// Filter selects how texels are reconstructed between pixel centres.
type Filter int

const (
	// Bilinear blends the four nearest texels.
	Bilinear Filter = iota
	// Nearest picks the texel containing the coordinate.
	Nearest
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case Nearest:
		return "nearest"
	default:
		return "bilinear"
	}
}

// ParseFilter parses "nearest" or "bilinear". Unknown names yield Bilinear.
func ParseFilter(name string) Filter {
	if name == "nearest" {
		return Nearest
	}
	return Bilinear
}

// Environment is anything that can be looked up by direction.
type Environment interface {
	Sample(d pm.Vec3) color.NRGBA
}

// EquirectEnvironment samples an equirectangular image by direction.
type EquirectEnvironment struct {
	Image  *image.NRGBA
	Filter Filter
}

// Sample returns the colour seen along d.
func (e EquirectEnvironment) Sample(d pm.Vec3) color.NRGBA {
	u, v := EquirectFromDirection(d)
	return SampleEquirect(e.Image, u, v, e.Filter)
}

// SampleEquirect samples img at texture coordinates (u, v). Columns wrap
// around, rows clamp at the poles.
func SampleEquirect(img *image.NRGBA, u, v float64, f Filter) color.NRGBA {
	return sampleImage(img, u, v, f, true)
}

// SampleClamped samples img at (u, v) clamping on both axes, as used for cube
// faces.
func SampleClamped(img *image.NRGBA, u, v float64, f Filter) color.NRGBA {
	return sampleImage(img, u, v, f, false)
}

func sampleImage(img *image.NRGBA, u, v float64, f Filter, wrapX bool) color.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{}
	}

	fixX := func(x int) int {
		if wrapX {
			return wrap(x, w)
		}
		return clampInt(x, 0, w-1)
	}

	if f == Nearest {
		x := fixX(int(math.Floor(u * float64(w))))
		y := clampInt(int(math.Floor(v*float64(h))), 0, h-1)
		return img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
	}

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	xa, xb := fixX(x0), fixX(x0+1)
	ya, yb := clampInt(y0, 0, h-1), clampInt(y0+1, 0, h-1)

	p00 := img.NRGBAAt(b.Min.X+xa, b.Min.Y+ya)
	p10 := img.NRGBAAt(b.Min.X+xb, b.Min.Y+ya)
	p01 := img.NRGBAAt(b.Min.X+xa, b.Min.Y+yb)
	p11 := img.NRGBAAt(b.Min.X+xb, b.Min.Y+yb)

	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-tx) + float64(b)*tx
		bot := float64(c)*(1-tx) + float64(d)*tx
		return toByte((top*(1-ty) + bot*ty) / 255)
	}
	return color.NRGBA{
		R: mix(p00.R, p10.R, p01.R, p11.R),
		G: mix(p00.G, p10.G, p01.G, p11.G),
		B: mix(p00.B, p10.B, p01.B, p11.B),
		A: mix(p00.A, p10.A, p01.A, p11.A),
	}
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// toByte converts a [0, 1] channel value to 8 bits with rounding.
func toByte(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(math.Round(x * 255))
}
