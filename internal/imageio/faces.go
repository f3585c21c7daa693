package imageio

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/panorama/pkg/pano"
)

// LoadFaces reads the six cube faces from dir using names. All faces are
// attempted and every failure is reported. With resize set, faces that are not
// square or not the same size are rescaled to the largest edge found.
func LoadFaces(dir string, names map[pano.Face]string, resize bool) (*pano.CubeFaces, error) {
	imgs := make(map[pano.Face]*image.NRGBA, len(pano.Faces))
	var errs error
	for _, f := range pano.Faces {
		name, ok := names[f]
		if !ok || name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f, pano.ErrFaceMissing))
			continue
		}
		img, err := Load(filepath.Join(dir, name))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s face: %w", f, err))
			continue
		}
		imgs[f] = img
	}
	if errs != nil {
		return nil, errs
	}

	if resize {
		size := 0
		for _, img := range imgs {
			b := img.Bounds()
			size = max(size, b.Dx(), b.Dy())
		}
		for f, img := range imgs {
			if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
				imgs[f] = Resize(img, size, size)
			}
		}
	}
	return pano.NewCubeFaces(imgs)
}

// SaveFaces writes each face of cf into dir under names. Every face is
// attempted; failures are combined.
func SaveFaces(dir string, names map[pano.Face]string, cf *pano.CubeFaces) error {
	var errs error
	for _, f := range pano.Faces {
		name, ok := names[f]
		if !ok || name == "" {
			name = f.String() + ".png"
		}
		if err := Save(filepath.Join(dir, name), cf.Face(f)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s face: %w", f, err))
		}
	}
	return errs
}
