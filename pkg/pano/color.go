package pano

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// HSVJitter holds the half-widths of the uniform noise added to a colour in
// HSV space. Hue is in degrees, Saturation and Value in [0, 1] units.
type HSVJitter struct {
	Hue        float64
	Saturation float64
	Value      float64
}

// DefaultHSVJitter returns ±3° hue and ±0.02 saturation and value.
func DefaultHSVJitter() HSVJitter {
	return HSVJitter{Hue: 3, Saturation: 0.02, Value: 0.02}
}

// IsZero reports whether the jitter leaves colours unchanged.
func (j HSVJitter) IsZero() bool {
	return j.Hue == 0 && j.Saturation == 0 && j.Value == 0
}

// JitterColor perturbs c in HSV space. Hue wraps around the colour wheel,
// saturation and value clamp to [0, 1]. Alpha is copied unchanged. Exactly
// three values are drawn from rng, in hue, saturation, value order.
func JitterColor(c color.NRGBA, j HSVJitter, rng *rand.Rand) color.NRGBA {
	dh := symmetric(rng, j.Hue)
	ds := symmetric(rng, j.Saturation)
	dv := symmetric(rng, j.Value)
	if j.IsZero() {
		return c
	}

	h, s, v := toColorful(c).Hsv()
	h = math.Mod(h+dh, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s + ds)
	v = clamp01(v + dv)

	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

// RGBToHSV returns hue in degrees [0, 360) and saturation, value in [0, 1].
func RGBToHSV(c color.NRGBA) (h, s, v float64) {
	return toColorful(c).Hsv()
}

// HSVToRGB converts HSV back to an opaque colour.
func HSVToRGB(h, s, v float64) color.NRGBA {
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// symmetric draws uniformly from [-mag, mag).
func symmetric(rng *rand.Rand, mag float64) float64 {
	return mag * (2*rng.Float64() - 1)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
