package pano

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// Face identifies one side of a cube map.
type Face int

// Cube faces. Front looks down +Z, Right down +X, Top down +Y.
const (
	Front Face = iota
	Back
	Left
	Right
	Top
	Bottom
)

// Faces lists all faces in declaration order.
var Faces = [6]Face{Front, Back, Left, Right, Top, Bottom}

var faceNames = [6]string{"front", "back", "left", "right", "top", "bottom"}

// String returns the lower-case face name.
func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// ParseFace parses a face name, ignoring case.
func ParseFace(name string) (Face, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range faceNames {
		if n == name {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cube face %q", name)
}

// SelectFace picks the face whose axis dominates d and returns the face-local
// coordinates in [0, 1] with v pointing up. Ties prefer x over y over z. The
// zero vector maps to the centre of the front face.
func SelectFace(d pm.Vec3) (face Face, u, v float64) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)
	if ax == 0 && ay == 0 && az == 0 {
		return Front, 0.5, 0.5
	}

	if ax >= ay && ax >= az {
		if d.X <= 0 {
			return Left, (-d.Z/d.X + 1) / 2, (-d.Y/d.X + 1) / 2
		}
		return Right, (-d.Z/d.X + 1) / 2, (d.Y/d.X + 1) / 2
	} else if ay >= az {
		if d.Y <= 0 {
			return Bottom, (-d.X/d.Y + 1) / 2, (-d.Z/d.Y + 1) / 2
		}
		return Top, (d.X/d.Y + 1) / 2, (-d.Z/d.Y + 1) / 2
	}
	if d.Z <= 0 {
		return Back, (d.X/d.Z + 1) / 2, (-d.Y/d.Z + 1) / 2
	}
	return Front, (d.X/d.Z + 1) / 2, (d.Y/d.Z + 1) / 2
}

// FaceDirection is the inverse of SelectFace: it returns the unit direction
// through face-local coordinates (u, v), v pointing up.
func FaceDirection(face Face, u, v float64) pm.Vec3 {
	a, b := 2*u-1, 2*v-1
	var d pm.Vec3
	switch face {
	case Front:
		d = pm.Vec3{X: a, Y: b, Z: 1}
	case Back:
		d = pm.Vec3{X: -a, Y: b, Z: -1}
	case Right:
		d = pm.Vec3{X: 1, Y: b, Z: -a}
	case Left:
		d = pm.Vec3{X: -1, Y: b, Z: a}
	case Top:
		d = pm.Vec3{X: a, Y: 1, Z: -b}
	case Bottom:
		d = pm.Vec3{X: a, Y: -1, Z: b}
	}
	return d.Normalize()
}

// CubeFaces is a validated set of six square, equal-sized face images.
type CubeFaces struct {
	faces  [6]*image.NRGBA
	size   int
	Filter Filter
}

// NewCubeFaces validates the face images. Every face must be present, square
// and the same size.
func NewCubeFaces(faces map[Face]*image.NRGBA) (*CubeFaces, error) {
	cf := &CubeFaces{}
	for _, f := range Faces {
		img, ok := faces[f]
		if !ok || img == nil {
			return nil, fmt.Errorf("%s: %w", f, ErrFaceMissing)
		}
		b := img.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			return nil, fmt.Errorf("%s: %w", f, ErrEmptyImage)
		}
		if b.Dx() != b.Dy() {
			return nil, fmt.Errorf("%s is %dx%d: %w", f, b.Dx(), b.Dy(), ErrFaceSize)
		}
		if cf.size == 0 {
			cf.size = b.Dx()
		} else if b.Dx() != cf.size {
			return nil, fmt.Errorf("%s is %d px, expected %d: %w", f, b.Dx(), cf.size, ErrFaceSize)
		}
		cf.faces[f] = img
	}
	return cf, nil
}

// Size returns the edge length of each face in pixels.
func (c *CubeFaces) Size() int { return c.size }

// Face returns the image for f.
func (c *CubeFaces) Face(f Face) *image.NRGBA { return c.faces[f] }

// Sample returns the colour seen along d.
func (c *CubeFaces) Sample(d pm.Vec3) color.NRGBA {
	f, u, v := SelectFace(d)
	// Face images are stored top row first, v points up.
	return SampleClamped(c.faces[f], u, 1-v, c.Filter)
}

// CubeToEquirect renders the cube faces into a w*h equirectangular image.
func CubeToEquirect(ctx context.Context, faces *CubeFaces, w, h, workers int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("output %dx%d: %w", w, h, ErrBadOptions)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	err := forEachRow(ctx, h, workers, func(y int) {
		for x := 0; x < w; x++ {
			u, v := PixelCenter(x, y, w, h)
			dst.SetNRGBA(x, y, faces.Sample(DirectionFromEquirect(u, v)))
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// EquirectToCube extracts six size*size faces from an equirectangular image.
func EquirectToCube(ctx context.Context, src *image.NRGBA, size int, f Filter, workers int) (*CubeFaces, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if size <= 0 {
		return nil, fmt.Errorf("face size %d: %w", size, ErrBadOptions)
	}
	env := EquirectEnvironment{Image: src, Filter: f}
	out := make(map[Face]*image.NRGBA, 6)
	for _, face := range Faces {
		img := image.NewNRGBA(image.Rect(0, 0, size, size))
		err := forEachRow(ctx, size, workers, func(y int) {
			for x := 0; x < size; x++ {
				u, v := PixelCenter(x, y, size, size)
				img.SetNRGBA(x, y, env.Sample(FaceDirection(face, u, 1-v)))
			}
		})
		if err != nil {
			return nil, err
		}
		out[face] = img
	}
	cf, err := NewCubeFaces(out)
	if err != nil {
		return nil, err
	}
	cf.Filter = f
	return cf, nil
}
