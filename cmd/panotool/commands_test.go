package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/panorama/internal/config"
	"github.com/Faultbox/panorama/internal/imageio"
	"github.com/Faultbox/panorama/internal/logger"
)

func TestApplySize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"defaults kept", 0, 0, 3840, 1920},
		{"width only", 1000, 0, 1000, 500},
		{"both", 1000, 300, 1000, 300},
		{"height only", 0, 100, 3840, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			applySize(cfg, tt.width, tt.height)
			if cfg.Work.Width != tt.wantW || cfg.Work.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Work.Width, cfg.Work.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDescribeFaces(t *testing.T) {
	got := describeFaces(config.Default())
	want := "front.png, back.png, left.png, right.png, top.png, bottom.png"
	if got != want {
		t.Errorf("describeFaces() = %q, want %q", got, want)
	}
}

func TestCommandUsage(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(logger.Nop)

	err := cmdTransfer(context.Background(), []string{"only-one"})
	if !errors.Is(err, errUsage) {
		t.Errorf("cmdTransfer with one argument: err = %v, want errUsage", err)
	}
}

func TestCirclesAndInfo(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(logger.Nop)

	cfgPath := filepath.Join(dir, "small.yaml")
	cfg := config.Default()
	cfg.Work.Width, cfg.Work.Height = 64, 32
	if err := cfg.SaveTo(cfgPath); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "circles.png")
	if err := cmdCircles(context.Background(), []string{"-config", cfgPath, out}); err != nil {
		t.Fatalf("cmdCircles: %v", err)
	}
	info, format, err := imageio.Info(out)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || info.Width != 64 || info.Height != 32 {
		t.Errorf("output = %s %dx%d, want png 64x32", format, info.Width, info.Height)
	}

	if err := cmdInfo(context.Background(), []string{"-config", cfgPath, out}); err != nil {
		t.Errorf("cmdInfo: %v", err)
	}
}

func TestConfigRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(logger.Nop)

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "out.yaml")
	if err := cmdConfig(context.Background(), []string{path}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if err := cmdConfig(context.Background(), []string{path}); err == nil {
		t.Error("second write succeeded, want an error")
	}
}
