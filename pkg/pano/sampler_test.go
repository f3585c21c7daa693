package pano

import (
	"image"
	"image/color"
	"testing"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// ramp returns a w×h image whose red channel is 200 in column 0 and 0
// elsewhere, and whose green channel encodes the row.
func ramp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{G: uint8(100 * y), A: 255}
			if x == 0 {
				c.R = 200
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSampleNearest(t *testing.T) {
	img := ramp(4, 2)
	got := SampleEquirect(img, 0.1, 0.75, Nearest)
	want := color.NRGBA{R: 200, G: 100, A: 255}
	if got != want {
		t.Errorf("SampleEquirect(nearest) = %v, want %v", got, want)
	}
}

func TestSampleBilinear(t *testing.T) {
	img := ramp(4, 2)
	tests := []struct {
		name string
		u, v float64
		want color.NRGBA
		fn   func(*image.NRGBA, float64, float64, Filter) color.NRGBA
	}{
		{"texel centre", 0.125, 0.25, color.NRGBA{R: 200, A: 255}, SampleEquirect},
		{"between columns", 0.25, 0.25, color.NRGBA{R: 100, A: 255}, SampleEquirect},
		{"between rows", 0.375, 0.5, color.NRGBA{G: 50, A: 255}, SampleEquirect},
		{"seam wraps", 0, 0.25, color.NRGBA{R: 100, A: 255}, SampleEquirect},
		{"seam clamps", 0, 0.25, color.NRGBA{R: 200, A: 255}, SampleClamped},
		{"pole clamps", 0.625, 0, color.NRGBA{A: 255}, SampleEquirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(img, tt.u, tt.v, Bilinear); got != tt.want {
				t.Errorf("sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestSampleEmptyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if got := SampleEquirect(img, 0.5, 0.5, Bilinear); got != (color.NRGBA{}) {
		t.Errorf("empty image sample = %v, want zero", got)
	}
}

func TestEquirectEnvironment(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	env := EquirectEnvironment{Image: solid(16, 8, c)}
	for _, d := range []pm.Vec3{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}, {X: -1, Y: 0, Z: 0}, {X: 0.3, Y: -0.9, Z: 0.1}} {
		if got := env.Sample(d.Normalize()); got != c {
			t.Errorf("Sample(%v) = %v, want %v", d, got, c)
		}
	}
}

func TestParseFilter(t *testing.T) {
	for _, f := range []Filter{Bilinear, Nearest} {
		if got := ParseFilter(f.String()); got != f {
			t.Errorf("ParseFilter(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if got := ParseFilter("cubic"); got != Bilinear {
		t.Errorf("ParseFilter(cubic) = %v, want bilinear", got)
	}
}
