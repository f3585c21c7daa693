package pano

import "errors"

// Validation errors returned at the image boundary. The projection math
// itself never fails.
var (
	ErrEmptyImage  = errors.New("pano: empty image")
	ErrFaceMissing = errors.New("pano: cube face missing")
	ErrFaceSize    = errors.New("pano: cube faces must be square and equal-sized")
	ErrBadOptions  = errors.New("pano: invalid options")
)
