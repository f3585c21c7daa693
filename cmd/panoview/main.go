// Package main is the entry point for the interactive panorama viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/panorama/internal/config"
	"github.com/Faultbox/panorama/internal/editor"
	"github.com/Faultbox/panorama/internal/logger"
	"github.com/Faultbox/panorama/internal/viewer"
)

var (
	flagTransferSrc = flag.String("transfer-src", "", "Image restyled by the T key (default: the open panorama)")
	flagCubes       = flag.String("cubes", "", "Directory of cube faces loaded by the 6 key")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== panoview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	session, err := editor.New(cfg, logger.Named("editor"))
	if err != nil {
		return err
	}
	defer session.Close()

	if path := flag.Arg(0); path != "" {
		if err := session.ImportImage(path); err != nil {
			return err
		}
	} else if err := session.Clear(cfg.Transfer.Background.NRGBA()); err != nil {
		return err
	}

	app, err := viewer.NewApp(cfg, session, viewer.Sources{
		TransferImage: *flagTransferSrc,
		CubeDir:       *flagCubes,
	}, logger.Named("viewer"))
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
