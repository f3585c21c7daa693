package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/panorama/internal/config"
	"github.com/Faultbox/panorama/internal/editor"
	"github.com/Faultbox/panorama/internal/imageio"
	"github.com/Faultbox/panorama/internal/logger"
	"github.com/Faultbox/panorama/pkg/pano"
)

// errUsage reports a wrong number of positional arguments.
var errUsage = errors.New("usage")

// common holds the flags every command shares.
type common struct {
	fs         *flag.FlagSet
	configPath *string
	verbose    *bool
	usage      string
}

func newCommon(name string) *common {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &common{
		fs:         fs,
		configPath: fs.String("config", "", "Path to config file"),
		verbose:    fs.Bool("v", false, "Enable debug logging"),
		usage:      usages[name],
	}
}

// parse parses args, checks the positional count and loads config and logger.
func (c *common) parse(args []string, minArgs, maxArgs int) (*config.Config, error) {
	c.fs.Parse(args)
	if c.fs.NArg() < minArgs || c.fs.NArg() > maxArgs {
		return nil, fmt.Errorf("%w: panotool %s", errUsage, c.usage)
	}

	cfg, err := config.LoadFrom(*c.configPath)
	if err != nil {
		return nil, err
	}
	if *c.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config) (*editor.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return editor.New(cfg, logger.Named("editor"))
}

func cmdTransfer(ctx context.Context, args []string) error {
	c := newCommon("transfer")
	samples := c.fs.Int("samples", 0, "Number of samples (default from config)")
	seed := c.fs.Uint64("seed", 0, "Random seed (default from config)")
	sampler := c.fs.String("sampler", "", "Sampler: uniform or icosphere")
	subdiv := c.fs.Int("subdiv", -1, "Icosphere subdivisions")
	workers := c.fs.Int("workers", -1, "Compositing goroutines (0 = one per CPU)")
	width := c.fs.Int("width", 0, "Output width (default from config)")
	height := c.fs.Int("height", 0, "Output height (default width/2)")
	cfg, err := c.parse(args, 2, 2)
	if err != nil {
		return err
	}

	if *samples > 0 {
		cfg.Transfer.Samples = *samples
	}
	if *seed > 0 {
		cfg.Transfer.Seed = *seed
	}
	if *sampler != "" {
		cfg.Transfer.Sampler = *sampler
	}
	if *subdiv >= 0 {
		cfg.Transfer.Subdivisions = *subdiv
	}
	if *workers >= 0 {
		cfg.Transfer.Workers = *workers
	}
	applySize(cfg, *width, *height)

	opts, err := cfg.Transfer.Options()
	if err != nil {
		return err
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Transfer(ctx, c.fs.Arg(0), opts); err != nil {
		return err
	}
	_, err = s.ExportImage(c.fs.Arg(1))
	return err
}

func cmdCubeToEquirect(ctx context.Context, args []string) error {
	c := newCommon("cube2equi")
	width := c.fs.Int("width", 0, "Output width (default from config)")
	height := c.fs.Int("height", 0, "Output height (default width/2)")
	resize := c.fs.Bool("resize", false, "Rescale faces of mismatched size")
	filter := c.fs.String("filter", "", "Face sampling: bilinear or nearest")
	cfg, err := c.parse(args, 2, 2)
	if err != nil {
		return err
	}

	applySize(cfg, *width, *height)
	cfg.Cube.Resize = cfg.Cube.Resize || *resize
	if *filter != "" {
		cfg.Cube.Filter = *filter
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Debug("reading cube faces",
		zap.String("dir", c.fs.Arg(0)),
		zap.String("files", describeFaces(cfg)))
	if err := s.CubesToEquirect(ctx, c.fs.Arg(0)); err != nil {
		return err
	}
	_, err = s.ExportImage(c.fs.Arg(1))
	return err
}

func cmdEquirectToCube(ctx context.Context, args []string) error {
	c := newCommon("equi2cube")
	size := c.fs.Int("size", 0, "Face edge in pixels (default from config)")
	filter := c.fs.String("filter", "", "Sampling: bilinear or nearest")
	cfg, err := c.parse(args, 2, 2)
	if err != nil {
		return err
	}
	if *size > 0 {
		cfg.Cube.FaceSize = *size
	}
	if *filter != "" {
		cfg.Cube.Filter = *filter
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ImportImage(c.fs.Arg(0)); err != nil {
		return err
	}
	return s.ExportCubes(ctx, c.fs.Arg(1))
}

func cmdView(ctx context.Context, args []string) error {
	c := newCommon("view")
	pitch := c.fs.Float64("pitch", 0, "Pitch in degrees, positive looks up")
	yaw := c.fs.Float64("yaw", 0, "Yaw in degrees, positive turns right")
	fov := c.fs.Float64("fov", 0, "Vertical field of view (default from config)")
	width := c.fs.Int("width", 0, "Output width (default window width)")
	height := c.fs.Int("height", 0, "Output height (default window height)")
	grid := c.fs.Bool("grid", false, "Overlay a latitude/longitude grid")
	cfg, err := c.parse(args, 2, 2)
	if err != nil {
		return err
	}

	if *fov > 0 {
		cfg.View.FOV = *fov
	}
	cfg.View.Grid = cfg.View.Grid || *grid
	w, h := cfg.View.WindowWidth, cfg.View.WindowHeight
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ImportImage(c.fs.Arg(0)); err != nil {
		return err
	}
	s.SetView(*pitch, *yaw)
	img, err := s.RenderView(ctx, w, h)
	if err != nil {
		return err
	}
	return imageio.Save(c.fs.Arg(1), img)
}

func cmdCircles(_ context.Context, args []string) error {
	c := newCommon("circles")
	cfg, err := c.parse(args, 1, 2)
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if in := c.fs.Arg(1); in != "" {
		err = s.ImportImage(in)
	} else {
		err = s.Clear(cfg.Transfer.Background.NRGBA())
	}
	if err != nil {
		return err
	}
	if err := s.DrawCircles(cfg.Circles); err != nil {
		return err
	}
	logger.Info("circles drawn", zap.Int("count", len(cfg.Circles)))
	_, err = s.ExportImage(c.fs.Arg(0))
	return err
}

func cmdInfo(_ context.Context, args []string) error {
	c := newCommon("info")
	if _, err := c.parse(args, 1, 1<<20); err != nil {
		return err
	}

	for _, path := range c.fs.Args() {
		img, format, err := imageio.Info(path)
		if err != nil {
			return err
		}
		fmt.Printf("File:   %s\n", path)
		fmt.Printf("Format: %s\n", format)
		fmt.Printf("Size:   %dx%d\n", img.Width, img.Height)
		switch {
		case img.Width == 2*img.Height:
			fmt.Println("Layout: equirectangular (2:1)")
		case img.Width == img.Height:
			fmt.Println("Layout: square, usable as a cube face")
		default:
			fmt.Printf("Layout: %.3f:1, not a panorama\n", float64(img.Width)/float64(img.Height))
		}
		fmt.Println()
	}
	return nil
}

func cmdConfig(_ context.Context, args []string) error {
	c := newCommon("config")
	cfg, err := c.parse(args, 0, 1)
	if err != nil {
		return err
	}

	path := c.fs.Arg(0)
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// applySize overrides the work texture size. A missing height is half the
// width, the equirectangular aspect.
func applySize(cfg *config.Config, width, height int) {
	if width > 0 {
		cfg.Work.Width = width
		cfg.Work.Height = width / 2
	}
	if height > 0 {
		cfg.Work.Height = height
	}
}

// describeFaces lists the face files a cube directory must contain.
func describeFaces(cfg *config.Config) string {
	names := make([]string, 0, len(pano.Faces))
	m := cfg.Cube.Faces.Map()
	for _, f := range pano.Faces {
		names = append(names, m[f])
	}
	return strings.Join(names, ", ")
}
