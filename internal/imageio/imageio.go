// Package imageio loads and saves panorama and cube face images.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/Faultbox/panorama/internal/texture"
)

// JPEGQuality is used for .jpg and .jpeg output.
const JPEGQuality = 95

// ErrUnsupportedFormat is returned when an extension has no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Load decodes the image at path into NRGBA. PNG, JPEG, BMP, TIFF, WebP and
// TGA are recognised by content, not extension.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// Info returns the dimensions and format name of the image at path without
// decoding its pixels.
func Info(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, format, nil
}

// ToNRGBA returns img as an NRGBA image with its origin at (0, 0). NRGBA
// inputs already at the origin are returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Resize scales img to w*h with Catmull-Rom filtering.
func Resize(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Save encodes img according to the extension of path. A missing extension
// means PNG. The file is written to a temporary name first and renamed into
// place, so readers never see a partial image.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	encode, err := encoderFor(ext)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".pano-*"+ext)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

type encodeFunc func(f *os.File, img image.Image) error

func encoderFor(ext string) (encodeFunc, error) {
	switch ext {
	case "", ".png":
		return func(f *os.File, img image.Image) error { return png.Encode(f, img) }, nil
	case ".jpg", ".jpeg":
		return func(f *os.File, img image.Image) error {
			return jpeg.Encode(f, img, &jpeg.Options{Quality: JPEGQuality})
		}, nil
	case ".bmp":
		return func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, nil
	case ".tif", ".tiff":
		return func(f *os.File, img image.Image) error {
			return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}, nil
	case ".tga":
		return func(f *os.File, img image.Image) error { return texture.EncodeTGA(f, img) }, nil
	}
	return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
}
