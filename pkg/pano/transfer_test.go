package pano

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// gradient returns an opaque test panorama with distinct colours per pixel.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 100, A: 255})
		}
	}
	return img
}

func smallTransfer() TransferOptions {
	opts := DefaultTransferOptions()
	opts.Samples = 3000
	opts.RadiusMin = 0.02
	opts.RadiusMax = 0.06
	return opts
}

func TestGenerateSplatsDeterministic(t *testing.T) {
	src := gradient(64, 32)
	opts := smallTransfer()

	a, err := GenerateSplats(src, opts)
	if err != nil {
		t.Fatalf("GenerateSplats: %v", err)
	}
	b, err := GenerateSplats(src, opts)
	if err != nil {
		t.Fatalf("GenerateSplats: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different splats (-first +second):\n%s", diff)
	}

	opts.Seed = 2
	c, err := GenerateSplats(src, opts)
	if err != nil {
		t.Fatalf("GenerateSplats: %v", err)
	}
	if cmp.Equal(a, c) {
		t.Error("different seeds produced identical splats")
	}
}

func TestGenerateSplatsRadiusAndColour(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	Fill(src, color.NRGBA{R: 30, G: 60, B: 90, A: 200})
	opts := smallTransfer()
	opts.Color = HSVJitter{}

	splats, err := GenerateSplats(src, opts)
	if err != nil {
		t.Fatalf("GenerateSplats: %v", err)
	}
	if len(splats) != opts.Samples {
		t.Fatalf("got %d splats, want %d", len(splats), opts.Samples)
	}
	for _, s := range splats {
		if s.Radius < opts.RadiusMin || s.Radius > opts.RadiusMax {
			t.Fatalf("radius %v outside [%v, %v]", s.Radius, opts.RadiusMin, opts.RadiusMax)
		}
		if s.Color != src.NRGBAAt(0, 0) {
			t.Fatalf("splat colour %v, want source colour", s.Color)
		}
	}
}

func TestGenerateSplatsIcosphere(t *testing.T) {
	opts := smallTransfer()
	opts.Sampler = SamplerIcosphere
	opts.Subdivisions = 2

	splats, err := GenerateSplats(gradient(32, 16), opts)
	if err != nil {
		t.Fatalf("GenerateSplats: %v", err)
	}
	if len(splats) != 162 {
		t.Errorf("got %d splats, want 162", len(splats))
	}
	if opts.SampleCount() != 162 {
		t.Errorf("SampleCount() = %d, want 162", opts.SampleCount())
	}
}

func TestTransferWorkerInvariant(t *testing.T) {
	src := gradient(64, 32)
	opts := smallTransfer()

	var outs [][]uint8
	for _, workers := range []int{1, 3, 8} {
		opts.Workers = workers
		dst := image.NewNRGBA(image.Rect(0, 0, 128, 64))
		if err := Transfer(context.Background(), src, dst, opts); err != nil {
			t.Fatalf("Transfer with %d workers: %v", workers, err)
		}
		outs = append(outs, dst.Pix)
	}
	for i := 1; i < len(outs); i++ {
		if !bytes.Equal(outs[0], outs[i]) {
			t.Errorf("output with worker setting %d differs from single worker", i)
		}
	}
}

func TestTransferOpaque(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 96, 48))
	if err := Transfer(context.Background(), gradient(48, 24), dst, smallTransfer()); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	bg := DefaultTransferOptions().Background
	untouched := 0
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i+3] != 255 {
			t.Fatalf("pixel %d has alpha %d", i/4, dst.Pix[i+3])
		}
		if dst.Pix[i] == bg.R && dst.Pix[i+1] == bg.G && dst.Pix[i+2] == bg.B {
			untouched++
		}
	}
	if untouched == len(dst.Pix)/4 {
		t.Error("no splats were drawn")
	}
}

func TestTransferErrors(t *testing.T) {
	ctx := context.Background()
	dst := image.NewNRGBA(image.Rect(0, 0, 8, 4))

	if err := Transfer(ctx, image.NewNRGBA(image.Rect(0, 0, 0, 0)), dst, smallTransfer()); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty source: got %v", err)
	}
	if err := Transfer(ctx, gradient(8, 4), image.NewNRGBA(image.Rect(0, 0, 0, 0)), smallTransfer()); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty destination: got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := Transfer(cancelled, gradient(8, 4), dst, smallTransfer()); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: got %v", err)
	}
}

func TestTransferOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TransferOptions)
		ok     bool
	}{
		{"defaults", func(*TransferOptions) {}, true},
		{"no samples", func(o *TransferOptions) { o.Samples = 0 }, false},
		{"icosphere ignores samples", func(o *TransferOptions) { o.Samples = 0; o.Sampler = SamplerIcosphere }, true},
		{"too many subdivisions", func(o *TransferOptions) { o.Sampler = SamplerIcosphere; o.Subdivisions = 11 }, false},
		{"zero radius", func(o *TransferOptions) { o.RadiusMin = 0 }, false},
		{"inverted radius", func(o *TransferOptions) { o.RadiusMax = o.RadiusMin / 2 }, false},
		{"negative jitter", func(o *TransferOptions) { o.Color.Hue = -1 }, false},
		{"unknown sampler", func(o *TransferOptions) { o.Sampler = SamplerKind(7) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultTransferOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrBadOptions) {
				t.Errorf("got %v, want ErrBadOptions", err)
			}
		})
	}
}
