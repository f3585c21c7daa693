// Package editor implements the panorama editing session shared by the
// interactive viewer and the batch tool.
package editor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/panorama/internal/config"
	"github.com/Faultbox/panorama/internal/imageio"
	"github.com/Faultbox/panorama/internal/texture"
	"github.com/Faultbox/panorama/pkg/pano"
)

// FOV limits applied by Zoom.
const (
	MinFOV = 10
	MaxFOV = 150
)

// Session is one editing session: a work panorama held in a texture arena and
// the camera looking at it.
type Session struct {
	cfg   *config.Config
	log   *zap.Logger
	arena *texture.Arena
	work  texture.ID
	namer *imageio.OutputNamer

	mu       sync.Mutex
	view     pano.View
	grid     bool
	checker  bool
	dragging bool
	stroke   *pano.Stroke
}

// New creates a session with a blank work texture sized by cfg.Work.
func New(cfg *config.Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	arena := texture.NewArena()
	work, err := arena.Create(cfg.Work.Width, cfg.Work.Height)
	if err != nil {
		return nil, fmt.Errorf("creating work texture: %w", err)
	}

	s := &Session{
		cfg:   cfg,
		log:   log,
		arena: arena,
		work:  work,
		namer: imageio.NewOutputNamer(cfg.Output.Dir, cfg.Output.Prefix, "."+cfg.Output.Format),
		view: pano.View{
			Pitch: cfg.View.Pitch,
			Yaw:   cfg.View.Yaw,
			FOV:   cfg.View.FOV,
		},
		grid:    cfg.View.Grid,
		checker: cfg.View.Checker,
		stroke: pano.NewStroke(
			cfg.Brush.Spacing*math.Pi/180,
			cfg.Brush.Radius,
			cfg.Brush.Color.NRGBA(),
		),
	}
	log.Debug("session created",
		zap.Int("width", cfg.Work.Width),
		zap.Int("height", cfg.Work.Height),
		zap.Uint32("texture", uint32(work)),
	)
	return s, nil
}

// Arena returns the texture arena owning the work panorama.
func (s *Session) Arena() *texture.Arena { return s.arena }

// WorkTexture returns the ID of the work panorama.
func (s *Session) WorkTexture() texture.ID { return s.work }

// Close releases the session's textures.
func (s *Session) Close() error {
	return s.arena.Release(s.work)
}

// ImportImage replaces the work panorama with the image at path.
func (s *Session) ImportImage(path string) error {
	img, err := imageio.Load(path)
	if err != nil {
		return err
	}
	if err := s.arena.Replace(s.work, img); err != nil {
		return err
	}
	s.log.Info("image imported",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return nil
}

// ExportImage writes the work panorama to path. An empty path picks a
// timestamped name in the output directory. The written path is returned.
func (s *Session) ExportImage(path string) (string, error) {
	err := s.arena.View(s.work, func(img *image.NRGBA) error {
		if path == "" {
			var err error
			path, err = s.namer.Save(img)
			return err
		}
		return imageio.Save(path, img)
	})
	if err != nil {
		return "", err
	}
	s.log.Info("image exported", zap.String("path", path))
	return path, nil
}

// Image returns the current work panorama. It must not be modified.
func (s *Session) Image() (*image.NRGBA, error) {
	return s.arena.Get(s.work)
}

// View returns the camera state.
func (s *Session) View() pano.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView replaces the camera orientation, normalizing pitch and yaw.
func (s *Session) SetView(pitch, yaw float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Pitch, s.view.Yaw = pano.NormalizeView(pitch, yaw)
}

// DragBy turns the camera by a mouse movement of (dx, dy) pixels. Pitch and
// yaw are left unwrapped until EndDrag.
func (s *Session) DragBy(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sens := s.cfg.View.DragSensitivity
	s.dragging = true
	s.view.Yaw += dx * sens
	s.view.Pitch -= dy * sens
}

// EndDrag folds the camera angles back into range.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dragging {
		return
	}
	s.dragging = false
	s.view.Pitch, s.view.Yaw = pano.NormalizeView(s.view.Pitch, s.view.Yaw)
	s.log.Debug("drag ended",
		zap.Float64("pitch", s.view.Pitch),
		zap.Float64("yaw", s.view.Yaw),
	)
}

// SetFOV sets the vertical field of view in degrees.
func (s *Session) SetFOV(fov float64) error {
	if fov <= 0 || fov >= 180 {
		return fmt.Errorf("fov %g: %w", fov, pano.ErrBadOptions)
	}
	s.mu.Lock()
	s.view.FOV = fov
	s.mu.Unlock()
	return nil
}

// Zoom narrows the field of view by notches wheel steps, clamped to
// [MinFOV, MaxFOV].
func (s *Session) Zoom(notches float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fov := s.view.FOV - notches*s.cfg.View.ZoomStep
	s.view.FOV = math.Max(MinFOV, math.Min(MaxFOV, fov))
}

// ToggleGrid flips the graticule overlay and returns the new state.
func (s *Session) ToggleGrid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = !s.grid
	return s.grid
}

// DrawCircle draws a disc with rotation rot and gnomonic radius scale.
func (s *Session) DrawCircle(rot pano.Euler, scale float64, col color.NRGBA) error {
	return s.arena.Update(s.work, func(img *image.NRGBA) error {
		pano.DrawCircle(img, rot, scale, col)
		return nil
	})
}

// DrawCircleAtCenter draws a disc where the camera is looking.
func (s *Session) DrawCircleAtCenter(scale float64, col color.NRGBA) error {
	rot := s.View().Rotation()
	s.log.Debug("circle at view centre",
		zap.Float64("rx", rot.X),
		zap.Float64("ry", rot.Y),
		zap.Float64("scale", scale),
	)
	return s.DrawCircle(rot, scale, col)
}

// DrawCircles draws a batch of configured circles in order.
func (s *Session) DrawCircles(circles []config.CircleConfig) error {
	return s.arena.Update(s.work, func(img *image.NRGBA) error {
		canvas := pano.NewCanvas(img)
		for _, c := range circles {
			canvas.DrawCircle(c.Euler(), c.Scale, c.Color.NRGBA())
		}
		return nil
	})
}

// Clear fills the work panorama with col.
func (s *Session) Clear(col color.NRGBA) error {
	return s.arena.Update(s.work, func(img *image.NRGBA) error {
		pano.Fill(img, col)
		return nil
	})
}

// BeginStroke starts a brush stroke at pixel (x, y) of a w*h view.
func (s *Session) BeginStroke(x, y float64, w, h int) error {
	s.mu.Lock()
	dots := s.stroke.Begin(s.view.Ray(x, y, w, h))
	s.mu.Unlock()
	return s.drawSplats(dots)
}

// StrokeTo extends the active stroke to pixel (x, y). Without an active
// stroke it does nothing.
func (s *Session) StrokeTo(x, y float64, w, h int) error {
	s.mu.Lock()
	dots := s.stroke.MoveTo(s.view.Ray(x, y, w, h))
	s.mu.Unlock()
	return s.drawSplats(dots)
}

// EndStroke finishes the active stroke.
func (s *Session) EndStroke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stroke.End()
}

func (s *Session) drawSplats(dots []pano.Splat) error {
	if len(dots) == 0 {
		return nil
	}
	return s.arena.Update(s.work, func(img *image.NRGBA) error {
		canvas := pano.NewCanvas(img)
		for _, d := range dots {
			canvas.DrawSplat(d)
		}
		return nil
	})
}

// Transfer restyles the panorama at srcPath into the work texture as splats.
// An empty srcPath uses the current work panorama as the source. The work
// texture keeps its size.
func (s *Session) Transfer(ctx context.Context, srcPath string, opts pano.TransferOptions) error {
	var src *image.NRGBA
	var err error
	if srcPath != "" {
		src, err = imageio.Load(srcPath)
	} else {
		src, err = s.copyWork()
	}
	if err != nil {
		return err
	}

	cur, err := s.arena.Get(s.work)
	if err != nil {
		return err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, cur.Bounds().Dx(), cur.Bounds().Dy()))

	start := time.Now()
	s.log.Info("transfer started",
		zap.String("source", srcPath),
		zap.Int("samples", opts.SampleCount()),
		zap.String("sampler", opts.Sampler.String()),
		zap.Uint64("seed", opts.Seed),
	)
	if err := pano.Transfer(ctx, src, dst, opts); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	if err := s.arena.Replace(s.work, dst); err != nil {
		return err
	}
	s.log.Info("transfer finished", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// copyWork snapshots the work panorama.
func (s *Session) copyWork() (*image.NRGBA, error) {
	var cp *image.NRGBA
	err := s.arena.View(s.work, func(img *image.NRGBA) error {
		cp = image.NewNRGBA(img.Bounds())
		copy(cp.Pix, img.Pix)
		return nil
	})
	return cp, err
}

// CubesToEquirect loads the six faces in dir and resamples them into the work
// texture at its current size.
func (s *Session) CubesToEquirect(ctx context.Context, dir string) error {
	faces, err := imageio.LoadFaces(dir, s.cfg.Cube.Faces.Map(), s.cfg.Cube.Resize)
	if err != nil {
		return err
	}
	faces.Filter = pano.ParseFilter(s.cfg.Cube.Filter)

	cur, err := s.arena.Get(s.work)
	if err != nil {
		return err
	}
	start := time.Now()
	equi, err := pano.CubeToEquirect(ctx, faces, cur.Bounds().Dx(), cur.Bounds().Dy(), s.cfg.Transfer.Workers)
	if err != nil {
		return err
	}
	if err := s.arena.Replace(s.work, equi); err != nil {
		return err
	}
	s.log.Info("cube faces converted",
		zap.String("dir", dir),
		zap.Int("face_size", faces.Size()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// ExportCubes writes the work panorama as six faces of the configured size.
func (s *Session) ExportCubes(ctx context.Context, dir string) error {
	src, err := s.copyWork()
	if err != nil {
		return err
	}
	faces, err := pano.EquirectToCube(ctx, src, s.cfg.Cube.FaceSize, pano.ParseFilter(s.cfg.Cube.Filter), s.cfg.Transfer.Workers)
	if err != nil {
		return err
	}
	if err := imageio.SaveFaces(dir, s.cfg.Cube.Faces.Map(), faces); err != nil {
		return err
	}
	s.log.Info("cube faces exported", zap.String("dir", dir), zap.Int("face_size", faces.Size()))
	return nil
}

// RenderView renders what the camera sees into a w*h image.
func (s *Session) RenderView(ctx context.Context, w, h int) (*image.NRGBA, error) {
	s.mu.Lock()
	view := s.view
	opts := pano.RenderOptions{
		Checker:  s.checker,
		Grid:     s.grid,
		GridStep: s.cfg.View.GridStep,
		Workers:  s.cfg.Transfer.Workers,
	}
	s.mu.Unlock()

	var out *image.NRGBA
	err := s.arena.View(s.work, func(img *image.NRGBA) error {
		var err error
		out, err = view.Render(ctx, pano.EquirectEnvironment{Image: img}, w, h, opts)
		return err
	})
	return out, err
}
