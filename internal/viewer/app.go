package viewer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/panorama/internal/config"
	"github.com/Faultbox/panorama/internal/editor"
	"github.com/Faultbox/panorama/internal/imageio"
)

const title = "panoview"

// Sources names the inputs used by the transfer and cube conversion keys.
type Sources struct {
	// TransferImage is restyled by ActionTransfer. Empty restyles the work
	// panorama itself.
	TransferImage string
	// CubeDir holds the faces loaded by ActionCubeToEquirect.
	CubeDir string
}

// App runs the interactive editor.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	session   *editor.Session
	sources   Sources
	window    *Window
	presenter *Presenter
	input     *Input
	shots     *imageio.OutputNamer

	width, height int
	dirty         bool
	shownVersion  uint64

	jobMu   sync.Mutex
	jobName string
	cancel  context.CancelFunc
	jobs    sync.WaitGroup
}

// NewApp opens the window for session.
func NewApp(cfg *config.Config, session *editor.Session, sources Sources, log *zap.Logger) (*App, error) {
	window, err := NewWindow(WindowConfig{
		Title:  title,
		Width:  cfg.View.WindowWidth,
		Height: cfg.View.WindowHeight,
		VSync:  cfg.View.VSync,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	presenter, err := NewPresenter()
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	a := &App{
		cfg:       cfg,
		log:       log,
		session:   session,
		sources:   sources,
		window:    window,
		presenter: presenter,
		input:     NewInput(),
		shots:     imageio.NewOutputNamer(cfg.Output.Dir, "screenshot", ".png"),
		dirty:     true,
	}
	a.width, a.height = window.Size()
	return a, nil
}

// Run processes input and redraws until the window closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting event loop")
	defer a.cancelJob()

	for ctx.Err() == nil {
		if a.input.Update() {
			return nil
		}
		for _, ev := range a.input.Events() {
			if err := a.handle(ctx, ev); err != nil {
				a.log.Warn("action failed", zap.Stringer("action", ev.Action), zap.Error(err))
			}
		}

		if v := a.session.Arena().Version(a.session.WorkTexture()); v != a.shownVersion {
			a.shownVersion = v
			a.dirty = true
		}
		if a.dirty {
			if err := a.redraw(ctx); err != nil {
				return fmt.Errorf("render error: %w", err)
			}
			a.dirty = false
		}

		dw, dh := a.window.DrawableSize()
		a.presenter.Blit(dw, dh, a.background())
		a.window.SwapBuffers()
		if !a.cfg.View.VSync {
			time.Sleep(time.Millisecond)
		}
	}
	return ctx.Err()
}

func (a *App) handle(ctx context.Context, ev Event) error {
	s := a.session
	switch ev.Action {
	case ActionResize:
		a.width, a.height = ev.Width, ev.Height
		a.dirty = true
	case ActionDrag:
		s.DragBy(ev.DX, ev.DY)
		a.dirty = true
	case ActionDragEnd:
		s.EndDrag()
		a.dirty = true
	case ActionStrokeBegin:
		return s.BeginStroke(ev.X, ev.Y, a.width, a.height)
	case ActionStroke:
		return s.StrokeTo(ev.X, ev.Y, a.width, a.height)
	case ActionStrokeEnd:
		s.EndStroke()
	case ActionZoom:
		s.Zoom(ev.Zoom)
		a.dirty = true
	case ActionDrawCircle:
		return s.DrawCircleAtCenter(a.cfg.Brush.Radius*5, a.cfg.Brush.Color.NRGBA())
	case ActionToggleGrid:
		a.log.Debug("grid toggled", zap.Bool("on", s.ToggleGrid()))
		a.dirty = true
	case ActionExport:
		_, err := s.ExportImage("")
		return err
	case ActionScreenshot:
		return a.screenshot()
	case ActionTransfer:
		opts, err := a.cfg.Transfer.Options()
		if err != nil {
			return err
		}
		a.startJob(ctx, "transfer", func(ctx context.Context) error {
			return s.Transfer(ctx, a.sources.TransferImage, opts)
		})
	case ActionCubeToEquirect:
		if a.sources.CubeDir == "" {
			return fmt.Errorf("no cube face directory given")
		}
		a.startJob(ctx, "cube2equi", func(ctx context.Context) error {
			return s.CubesToEquirect(ctx, a.sources.CubeDir)
		})
	}
	return nil
}

func (a *App) redraw(ctx context.Context) error {
	frame, err := a.session.RenderView(ctx, a.width, a.height)
	if err != nil {
		return err
	}
	if err := a.presenter.Upload(frame); err != nil {
		return err
	}

	v := a.session.View()
	status := fmt.Sprintf("%s - pitch %.1f yaw %.1f fov %.0f", title, v.Pitch, v.Yaw, v.FOV)
	if job := a.runningJob(); job != "" {
		status += " - " + job + "..."
	}
	a.window.SetTitle(status)
	return nil
}

// background is the clear colour around the frame, the transfer background.
func (a *App) background() [4]float32 {
	c := a.cfg.Transfer.Background
	return [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
}

func (a *App) screenshot() error {
	dw, dh := a.window.DrawableSize()
	name, err := a.shots.Save(ReadPixels(dw, dh))
	if err != nil {
		return err
	}
	a.log.Info("screenshot saved", zap.String("path", name))
	return nil
}

// startJob runs a long operation in the background. Only one job runs at a
// time; starting another while one is running is ignored.
func (a *App) startJob(ctx context.Context, name string, fn func(context.Context) error) {
	a.jobMu.Lock()
	if a.jobName != "" {
		a.jobMu.Unlock()
		a.log.Warn("job already running", zap.String("job", a.jobName), zap.String("requested", name))
		return
	}
	jobCtx, cancel := context.WithCancel(ctx)
	a.jobName, a.cancel = name, cancel
	a.jobMu.Unlock()

	a.dirty = true
	a.jobs.Add(1)
	go func() {
		defer a.jobs.Done()
		start := time.Now()
		err := fn(jobCtx)

		a.jobMu.Lock()
		a.jobName, a.cancel = "", nil
		a.jobMu.Unlock()
		cancel()

		if err != nil {
			a.log.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		a.log.Info("job finished", zap.String("job", name), zap.Duration("elapsed", time.Since(start)))
	}()
}

func (a *App) runningJob() string {
	a.jobMu.Lock()
	defer a.jobMu.Unlock()
	return a.jobName
}

func (a *App) cancelJob() {
	a.jobMu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.jobMu.Unlock()
	a.jobs.Wait()
}

// Close releases GL resources and the window.
func (a *App) Close() {
	a.cancelJob()
	a.presenter.Destroy()
	a.window.Close()
}
