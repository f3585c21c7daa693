package pano

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// View is a rectilinear camera inside the panorama. Pitch and Yaw are in
// degrees: positive pitch looks up, positive yaw turns toward +X. FOV is the
// vertical field of view in degrees.
type View struct {
	Pitch float64
	Yaw   float64
	FOV   float64
}

// RenderOptions controls the overlays drawn by View.Render.
type RenderOptions struct {
	// Checker composites the panorama over a checkerboard so transparent
	// regions are visible.
	Checker bool
	// Grid overlays a latitude/longitude graticule every GridStep degrees.
	Grid     bool
	GridStep float64
	Workers  int
}

// Rotation returns the world-to-camera rotation of the view.
func (v View) Rotation() Euler {
	return Bearing(v.Yaw, v.Pitch)
}

// Center returns the world direction at the centre of the view.
func (v View) Center() pm.Vec3 {
	return v.Rotation().Center()
}

// Ray returns the world direction through pixel (x, y) of a w*h frame.
func (v View) Ray(x, y float64, w, h int) pm.Vec3 {
	t := math.Tan(radians(v.FOV) / 2)
	aspect := float64(w) / float64(h)
	cam := pm.Vec3{
		X: (2*x/float64(w) - 1) * t * aspect,
		Y: (1 - 2*y/float64(h)) * t,
		Z: 1,
	}.Normalize()
	return v.Rotation().ApplyInverse(cam)
}

// Render draws the view of env into a new w*h image.
func (v View) Render(ctx context.Context, env Environment, w, h int, opts RenderOptions) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("view %dx%d: %w", w, h, ErrBadOptions)
	}
	if v.FOV <= 0 || v.FOV >= 180 {
		return nil, fmt.Errorf("fov %g: %w", v.FOV, ErrBadOptions)
	}

	m := v.Rotation().Inverse()
	t := math.Tan(radians(v.FOV) / 2)
	aspect := float64(w) / float64(h)
	step := opts.GridStep
	if step <= 0 {
		step = 15
	}
	// graticule half-width: about one pixel of angle at the view centre
	lineWidth := 2 * t / float64(h)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	err := forEachRow(ctx, h, opts.Workers, func(y int) {
		sy := (1 - 2*(float64(y)+0.5)/float64(h)) * t
		for x := 0; x < w; x++ {
			sx := (2*(float64(x)+0.5)/float64(w) - 1) * t * aspect
			d := m.MulVec(pm.Vec3{X: sx, Y: sy, Z: 1}.Normalize())

			c := env.Sample(d)
			if opts.Checker {
				c = over(c, checker(x, y))
			}
			if opts.Grid && onGraticule(d, step, lineWidth) {
				c = over(color.NRGBA{R: 255, G: 255, B: 255, A: 160}, c)
			}
			dst.SetNRGBA(x, y, c)
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// checker returns the transparency checkerboard colour for a pixel.
func checker(x, y int) color.NRGBA {
	if (x/16+y/16)%2 == 0 {
		return color.NRGBA{R: 204, G: 204, B: 204, A: 255}
	}
	return color.NRGBA{R: 153, G: 153, B: 153, A: 255}
}

// over composites src over an opaque dst.
func over(src, dst color.NRGBA) color.NRGBA {
	px := []uint8{dst.R, dst.G, dst.B, dst.A}
	blendOver(px, src)
	return color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
}

// onGraticule reports whether d lies within width radians of a meridian or
// parallel spaced step degrees apart.
func onGraticule(d pm.Vec3, step, width float64) bool {
	az, el := Angles(d)
	s := radians(step)
	gap := func(a float64) float64 {
		r := math.Mod(math.Abs(a), s)
		return math.Min(r, s-r)
	}
	if gap(el) < width {
		return true
	}
	// meridian spacing shrinks with the parallel's circumference
	return gap(az)*math.Cos(el) < width
}
