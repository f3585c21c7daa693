package pano

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// cancelCheckInterval is how many splats a compositing worker draws between
// context checks.
const cancelCheckInterval = 4096

// TransferOptions configures the Monte-Carlo texture transfer.
type TransferOptions struct {
	// Samples is the number of uniform samples. Ignored by the icosphere sampler,
	// which emits one sample per vertex.
	Samples      int
	Sampler      SamplerKind
	Subdivisions int

	// DirectionJitter is the per-axis Gaussian sigma added to each sample
	// direction before renormalizing.
	DirectionJitter float64
	Color           HSVJitter

	// RadiusMin and RadiusMax bound the uniform splat radius, in gnomonic units.
	RadiusMin float64
	RadiusMax float64

	// Seed fully determines the generated splats.
	Seed uint64

	// Background is painted over the destination before compositing.
	Background color.NRGBA

	// Workers is the number of compositing goroutines. Zero means one per CPU.
	// The output does not depend on it.
	Workers int
}

// DefaultTransferOptions returns the settings of the reference stylization.
func DefaultTransferOptions() TransferOptions {
	return TransferOptions{
		Samples:      500000,
		Sampler:      SamplerUniform,
		Subdivisions: 7,
		Color:        DefaultHSVJitter(),
		RadiusMin:    0.005,
		RadiusMax:    0.01,
		Seed:         1,
		Background:   color.NRGBA{R: 250, G: 250, B: 242, A: 255},
	}
}

// Validate checks the options for values the transfer cannot use.
func (o TransferOptions) Validate() error {
	switch o.Sampler {
	case SamplerUniform:
		if o.Samples <= 0 {
			return fmt.Errorf("samples must be positive, got %d: %w", o.Samples, ErrBadOptions)
		}
	case SamplerIcosphere:
		if o.Subdivisions < 0 || o.Subdivisions > 10 {
			return fmt.Errorf("subdivisions must be in [0, 10], got %d: %w", o.Subdivisions, ErrBadOptions)
		}
	default:
		return fmt.Errorf("unknown sampler %d: %w", o.Sampler, ErrBadOptions)
	}
	if o.RadiusMin <= 0 || o.RadiusMax < o.RadiusMin {
		return fmt.Errorf("radius range [%g, %g] is invalid: %w", o.RadiusMin, o.RadiusMax, ErrBadOptions)
	}
	if o.DirectionJitter < 0 || o.Color.Hue < 0 || o.Color.Saturation < 0 || o.Color.Value < 0 {
		return fmt.Errorf("jitter magnitudes must not be negative: %w", ErrBadOptions)
	}
	return nil
}

// SampleCount returns how many splats GenerateSplats will produce.
func (o TransferOptions) SampleCount() int {
	if o.Sampler == SamplerIcosphere {
		return IcosphereVertexCount(o.Subdivisions)
	}
	return o.Samples
}

// NewRand returns the generator used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateSplats resamples src into a list of splats. Generation is sequential
// and the result depends only on src and opts.
func GenerateSplats(src *image.NRGBA, opts TransferOptions) ([]Splat, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := NewRand(opts.Seed)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var grid []pm.Vec3
	if opts.Sampler == SamplerIcosphere {
		grid = Icosphere(opts.Subdivisions)
	}
	n := opts.SampleCount()

	splats := make([]Splat, 0, n)
	for i := 0; i < n; i++ {
		var d pm.Vec3
		if grid != nil {
			d = grid[i]
		} else {
			d = UniformDirection(rng)
		}
		d = JitterDirection(d, opts.DirectionJitter, rng)

		u, v := EquirectFromDirection(d)
		x, y := PixelFromUV(u, v, w, h)
		c := JitterColor(src.NRGBAAt(b.Min.X+x, b.Min.Y+y), opts.Color, rng)

		splats = append(splats, Splat{
			Center: d,
			Radius: opts.RadiusMin + (opts.RadiusMax-opts.RadiusMin)*rng.Float64(),
			Color:  c,
		})
	}
	return splats, nil
}

// Composite draws splats onto dst in slice order. Rows of dst are split among
// workers and every worker replays the full list over its own rows, so the
// blend order per pixel, and therefore the output, is the same for any
// worker count.
func Composite(ctx context.Context, dst *image.NRGBA, splats []Splat, workers int) error {
	canvas := NewCanvas(dst)
	rots := make([]Euler, len(splats))
	for i, s := range splats {
		rots[i] = AimAt(s.Center)
	}

	return forEachBand(ctx, canvas.h, workers, func(ctx context.Context, y0, y1 int) {
		for i, s := range splats {
			if i%cancelCheckInterval == 0 && ctx.Err() != nil {
				return
			}
			canvas.drawCircleRows(rots[i], s.Radius, s.Color, y0, y1)
		}
	})
}

// Transfer paints a pointillist copy of src onto dst: dst is cleared to the
// background, then every generated splat is composited in sample order.
func Transfer(ctx context.Context, src, dst *image.NRGBA, opts TransferOptions) error {
	if dst == nil || dst.Bounds().Empty() {
		return ErrEmptyImage
	}
	splats, err := GenerateSplats(src, opts)
	if err != nil {
		return err
	}
	Fill(dst, opts.Background)
	return Composite(ctx, dst, splats, opts.Workers)
}
