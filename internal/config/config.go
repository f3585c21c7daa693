// Package config handles panorama tool configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Faultbox/panorama/pkg/pano"
)

// Config holds all settings shared by panotool and panoview.
type Config struct {
	Work     WorkConfig     `yaml:"work"`
	View     ViewConfig     `yaml:"view"`
	Transfer TransferConfig `yaml:"transfer"`
	Cube     CubeConfig     `yaml:"cube"`
	Brush    BrushConfig    `yaml:"brush"`
	Circles  []CircleConfig `yaml:"circles"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WorkConfig sizes the equirectangular work texture.
type WorkConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ViewConfig holds the interactive viewer settings.
type ViewConfig struct {
	FOV             float64 `yaml:"fov"`
	Pitch           float64 `yaml:"pitch"`
	Yaw             float64 `yaml:"yaw"`
	DragSensitivity float64 `yaml:"drag_sensitivity"` // degrees per pixel
	ZoomStep        float64 `yaml:"zoom_step"`        // degrees per wheel notch
	WindowWidth     int     `yaml:"window_width"`
	WindowHeight    int     `yaml:"window_height"`
	VSync           bool    `yaml:"vsync"`
	Grid            bool    `yaml:"grid"`
	GridStep        float64 `yaml:"grid_step"`
	Checker         bool    `yaml:"checker"`
}

// TransferConfig mirrors pano.TransferOptions in file form.
type TransferConfig struct {
	Samples          int     `yaml:"samples"`
	Sampler          string  `yaml:"sampler"` // uniform or icosphere
	Subdivisions     int     `yaml:"subdivisions"`
	DirectionJitter  float64 `yaml:"direction_jitter"`
	HueJitter        float64 `yaml:"hue_jitter"` // degrees
	SaturationJitter float64 `yaml:"saturation_jitter"`
	ValueJitter      float64 `yaml:"value_jitter"`
	RadiusMin        float64 `yaml:"radius_min"`
	RadiusMax        float64 `yaml:"radius_max"`
	Seed             uint64  `yaml:"seed"`
	Background       RGBA    `yaml:"background"`
	Workers          int     `yaml:"workers"`
}

// CubeConfig holds cube map file naming and conversion settings.
type CubeConfig struct {
	Faces    FaceNames `yaml:"faces"`
	FaceSize int       `yaml:"face_size"` // equirect to cube output size
	Resize   bool      `yaml:"resize"`    // rescale mismatched faces on load
	Filter   string    `yaml:"filter"`    // bilinear or nearest
}

// FaceNames maps each cube face to its file name inside a face directory.
type FaceNames struct {
	Front  string `yaml:"front"`
	Back   string `yaml:"back"`
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	Top    string `yaml:"top"`
	Bottom string `yaml:"bottom"`
}

// BrushConfig sets the freehand stroke brush.
type BrushConfig struct {
	Spacing float64 `yaml:"spacing"` // degrees of arc between dots
	Radius  float64 `yaml:"radius"`
	Color   RGBA    `yaml:"color"`
}

// CircleConfig is one circle of a batch drawing.
type CircleConfig struct {
	Rotation [3]float64 `yaml:"rotation"` // Euler degrees, X Y Z
	Scale    float64    `yaml:"scale"`
	Color    RGBA       `yaml:"color"`
}

// OutputConfig controls where exported images go.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png or jpg
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// RGBA is a colour with channels in [0, 1].
type RGBA [4]float64

// NRGBA converts to an 8-bit colour, clamping out-of-range channels.
func (c RGBA) NRGBA() color.NRGBA {
	b := func(x float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
	}
	return color.NRGBA{R: b(c[0]), G: b(c[1]), B: b(c[2]), A: b(c[3])}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	blue := RGBA{0, 0, 1, 1}
	return &Config{
		Work: WorkConfig{
			Width:  3840,
			Height: 1920,
		},
		View: ViewConfig{
			FOV:             90,
			DragSensitivity: 0.3,
			ZoomStep:        5,
			WindowWidth:     1280,
			WindowHeight:    720,
			VSync:           true,
			GridStep:        15,
			Checker:         true,
		},
		Transfer: TransferConfig{
			Samples:          500000,
			Sampler:          "uniform",
			Subdivisions:     7,
			HueJitter:        3,
			SaturationJitter: 0.02,
			ValueJitter:      0.02,
			RadiusMin:        0.005,
			RadiusMax:        0.01,
			Seed:             1,
			Background:       RGBA{0.98, 0.98, 0.95, 1},
		},
		Cube: CubeConfig{
			Faces: FaceNames{
				Front:  "front.png",
				Back:   "back.png",
				Left:   "left.png",
				Right:  "right.png",
				Top:    "top.png",
				Bottom: "bottom.png",
			},
			FaceSize: 1024,
			Filter:   "bilinear",
		},
		Brush: BrushConfig{
			Spacing: 0.5,
			Radius:  0.01,
			Color:   RGBA{0.1, 0.1, 0.1, 1},
		},
		Circles: []CircleConfig{
			{Rotation: [3]float64{60, 185, 10}, Scale: 0.3, Color: blue},
			{Rotation: [3]float64{90, 0, 3}, Scale: 0.1, Color: blue},
			{Rotation: [3]float64{-30, 20, 1}, Scale: 0.2, Color: blue},
			{Rotation: [3]float64{-20, 120, 50}, Scale: 0.4, Color: blue},
		},
		Output: OutputConfig{
			Dir:    ".",
			Prefix: "pano",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Options converts the section into transfer options.
func (t TransferConfig) Options() (pano.TransferOptions, error) {
	sampler, err := pano.ParseSampler(t.Sampler)
	if err != nil {
		return pano.TransferOptions{}, err
	}
	opts := pano.TransferOptions{
		Samples:         t.Samples,
		Sampler:         sampler,
		Subdivisions:    t.Subdivisions,
		DirectionJitter: t.DirectionJitter,
		Color: pano.HSVJitter{
			Hue:        t.HueJitter,
			Saturation: t.SaturationJitter,
			Value:      t.ValueJitter,
		},
		RadiusMin:  t.RadiusMin,
		RadiusMax:  t.RadiusMax,
		Seed:       t.Seed,
		Background: t.Background.NRGBA(),
		Workers:    t.Workers,
	}
	if err := opts.Validate(); err != nil {
		return pano.TransferOptions{}, err
	}
	return opts, nil
}

// Map returns the face names keyed by face.
func (f FaceNames) Map() map[pano.Face]string {
	return map[pano.Face]string{
		pano.Front:  f.Front,
		pano.Back:   f.Back,
		pano.Left:   f.Left,
		pano.Right:  f.Right,
		pano.Top:    f.Top,
		pano.Bottom: f.Bottom,
	}
}

// Euler returns the circle's rotation.
func (c CircleConfig) Euler() pano.Euler {
	return pano.Euler{X: c.Rotation[0], Y: c.Rotation[1], Z: c.Rotation[2]}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Work.Width <= 0 || c.Work.Height <= 0 {
		return fmt.Errorf("work texture %dx%d must be positive", c.Work.Width, c.Work.Height)
	}
	if c.View.FOV <= 0 || c.View.FOV >= 180 {
		return fmt.Errorf("view fov %g must be in (0, 180)", c.View.FOV)
	}
	if c.View.WindowWidth <= 0 || c.View.WindowHeight <= 0 {
		return fmt.Errorf("window %dx%d must be positive", c.View.WindowWidth, c.View.WindowHeight)
	}
	if _, err := c.Transfer.Options(); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	if c.Cube.FaceSize <= 0 {
		return fmt.Errorf("cube face size %d must be positive", c.Cube.FaceSize)
	}
	for f, name := range c.Cube.Faces.Map() {
		if name == "" {
			return fmt.Errorf("cube face %s has no file name", f)
		}
	}
	for i, circle := range c.Circles {
		if circle.Scale <= 0 {
			return fmt.Errorf("circle %d: scale %g must be positive", i, circle.Scale)
		}
	}
	switch c.Output.Format {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("output format %q is not png or jpg", c.Output.Format)
	}
	return nil
}
