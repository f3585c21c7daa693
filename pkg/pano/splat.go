package pano

import (
	"image"
	"image/color"
	"math"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// planeEpsilon is the smallest rotated z for which the gnomonic projection is
// evaluated. Points at or behind the tangent plane's horizon are outside.
const planeEpsilon = 1e-12

// Splat is one coloured disc on the sphere. Radius is measured on the tangent
// plane at Center (gnomonic units), so the angular radius is atan(Radius).
type Splat struct {
	Center pm.Vec3
	Radius float64
	Color  color.NRGBA
}

// Circle is a disc on the sphere expressed as the rotation that carries its
// centre onto +Z and a gnomonic radius.
type Circle struct {
	m     pm.Mat3
	scale float64
}

// NewCircle prepares the containment test for a disc drawn with rot and scale.
func NewCircle(rot Euler, scale float64) Circle {
	return Circle{m: rot.Matrix(), scale: scale}
}

// Contains reports whether direction p falls inside the disc: p is rotated,
// projected onto the z = 1 plane, and its planar distance from the origin is
// compared with the scale. Points facing away from the centre are outside.
func (c Circle) Contains(p pm.Vec3) bool {
	plane, ok := pm.Gnomonic(c.m.MulVec(p), planeEpsilon)
	return ok && plane.Length() <= c.scale
}

// Canvas rasterizes circles onto an equirectangular image. It caches the
// per-row and per-column trigonometry of the pixel grid.
type Canvas struct {
	img            *image.NRGBA
	w, h           int
	colSin, colCos []float64
	rowSin, rowCos []float64
}

// NewCanvas wraps img. img must not be resized while the canvas is in use.
func NewCanvas(img *image.NRGBA) *Canvas {
	b := img.Bounds()
	c := &Canvas{
		img:    img,
		w:      b.Dx(),
		h:      b.Dy(),
		colSin: make([]float64, b.Dx()),
		colCos: make([]float64, b.Dx()),
		rowSin: make([]float64, b.Dy()),
		rowCos: make([]float64, b.Dy()),
	}
	for x := 0; x < c.w; x++ {
		u, _ := PixelCenter(x, 0, c.w, c.h)
		az := (2*u - 1) * math.Pi
		c.colSin[x], c.colCos[x] = math.Sincos(az)
	}
	for y := 0; y < c.h; y++ {
		_, v := PixelCenter(0, y, c.w, c.h)
		el := (1 - 2*v) * math.Pi / 2
		c.rowSin[y], c.rowCos[y] = math.Sincos(el)
	}
	return c
}

// Image returns the underlying image.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Clear fills the canvas with col.
func (c *Canvas) Clear(col color.NRGBA) {
	Fill(c.img, col)
}

// Fill sets every pixel of img to col.
func Fill(img *image.NRGBA, col color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, col)
		}
	}
}

// Direction returns the direction through the centre of pixel (x, y).
func (c *Canvas) Direction(x, y int) pm.Vec3 {
	return pm.Vec3{
		X: c.rowCos[y] * c.colSin[x],
		Y: c.rowSin[y],
		Z: c.rowCos[y] * c.colCos[x],
	}
}

// DrawCircle alpha-blends col over every pixel inside the disc described by
// rot and scale.
func (c *Canvas) DrawCircle(rot Euler, scale float64, col color.NRGBA) {
	c.drawCircleRows(rot, scale, col, 0, c.h)
}

// DrawSplat draws s centred on its direction.
func (c *Canvas) DrawSplat(s Splat) {
	c.DrawCircle(AimAt(s.Center), s.Radius, s.Color)
}

// drawCircleRows draws only the part of the disc within rows [y0, y1).
func (c *Canvas) drawCircleRows(rot Euler, scale float64, col color.NRGBA, y0, y1 int) {
	if scale <= 0 || col.A == 0 || c.w == 0 || c.h == 0 {
		return
	}
	circle := NewCircle(rot, scale)
	rowMin, rowMax, cols := c.window(rot.Center(), math.Atan(scale))
	rowMin = max(rowMin, y0)
	rowMax = min(rowMax, y1-1)

	b := c.img.Bounds()
	for y := rowMin; y <= rowMax; y++ {
		for _, x := range cols {
			if !circle.Contains(c.Direction(x, y)) {
				continue
			}
			i := c.img.PixOffset(b.Min.X+x, b.Min.Y+y)
			blendOver(c.img.Pix[i:i+4:i+4], col)
		}
	}
}

// window returns the rows and columns a disc of angular radius rho around
// center can touch. Columns wrap around the seam.
func (c *Canvas) window(center pm.Vec3, rho float64) (rowMin, rowMax int, cols []int) {
	az, el := Angles(center)
	top := el + rho
	bottom := el - rho

	// one-pixel margin absorbs pixel-centre rounding
	rowMin = clampInt(int(math.Floor((1-top/(math.Pi/2))/2*float64(c.h)))-1, 0, c.h-1)
	rowMax = clampInt(int(math.Ceil((1-bottom/(math.Pi/2))/2*float64(c.h)))+1, 0, c.h-1)

	full := top >= math.Pi/2 || bottom <= -math.Pi/2
	var halfWidth float64
	if !full {
		s := math.Sin(rho) / math.Cos(el)
		if s >= 1 {
			full = true
		} else {
			halfWidth = math.Asin(s)
		}
	}
	if full {
		cols = make([]int, c.w)
		for x := range cols {
			cols[x] = x
		}
		return rowMin, rowMax, cols
	}

	uc := (az/math.Pi + 1) / 2
	du := halfWidth / (2 * math.Pi)
	x0 := int(math.Floor((uc-du)*float64(c.w))) - 1
	x1 := int(math.Ceil((uc+du)*float64(c.w))) + 1
	if x1-x0+1 >= c.w {
		x0, x1 = 0, c.w-1
	}
	cols = make([]int, 0, x1-x0+1)
	for x := x0; x <= x1; x++ {
		cols = append(cols, wrap(x, c.w))
	}
	return rowMin, rowMax, cols
}

// blendOver applies src*a + dst*(1-a) to all four channels of px, the
// SRC_ALPHA / ONE_MINUS_SRC_ALPHA blend function on an 8-bit target.
func blendOver(px []uint8, src color.NRGBA) {
	if src.A == 255 {
		px[0], px[1], px[2], px[3] = src.R, src.G, src.B, src.A
		return
	}
	a := float64(src.A) / 255
	mix := func(s, d uint8) uint8 {
		return toByte((float64(s)*a + float64(d)*(1-a)) / 255)
	}
	px[0] = mix(src.R, px[0])
	px[1] = mix(src.G, px[1])
	px[2] = mix(src.B, px[2])
	px[3] = mix(src.A, px[3])
}

// DrawCircle draws a single disc onto dst. Prefer a Canvas when drawing many.
func DrawCircle(dst *image.NRGBA, rot Euler, scale float64, col color.NRGBA) {
	NewCanvas(dst).DrawCircle(rot, scale, col)
}

// DrawSplat draws a single splat onto dst.
func DrawSplat(dst *image.NRGBA, s Splat) {
	NewCanvas(dst).DrawSplat(s)
}
