// panotool is a CLI utility for converting and restyling panoramas.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Faultbox/panorama/internal/logger"
)

// usages holds the one-line synopsis of each command.
var usages = map[string]string{
	"transfer":  "transfer [options] <in> <out>",
	"cube2equi": "cube2equi [options] <facedir> <out>",
	"equi2cube": "equi2cube [options] <in> <outdir>",
	"view":      "view [options] <in> <out>",
	"circles":   "circles [options] <out> [in]",
	"info":      "info <image>...",
	"config":    "config [path]",
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var run func(ctx context.Context, args []string) error
	switch os.Args[1] {
	case "transfer":
		run = cmdTransfer
	case "cube2equi":
		run = cmdCubeToEquirect
	case "equi2cube":
		run = cmdEquirectToCube
	case "view":
		run = cmdView
	case "circles":
		run = cmdCircles
	case "info":
		run = cmdInfo
	case "config":
		run = cmdConfig
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[2:])
	stop()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`panotool - equirectangular panorama utility

Usage:
  panotool <command> [options]

Commands:
  transfer <in> <out>          Restyle a panorama as randomly placed dots
  cube2equi <facedir> <out>    Stitch six cube faces into an equirect image
  equi2cube <in> <outdir>      Split an equirect image into six cube faces
  view <in> <out>              Render a perspective view of a panorama
  circles <out> [in]           Draw the configured circles onto a panorama
  info <image>...              Show image size and format
  config [path]                Write the default configuration

Every command accepts -config <file> and -v (debug logging).
Run "panotool <command> -h" for command options.

Examples:
  panotool transfer -samples 200000 -seed 7 pano.jpg dots.png
  panotool cube2equi -width 4096 ./faces pano.png
  panotool equi2cube -size 1024 pano.png ./faces
  panotool view -yaw 90 -pitch 10 -fov 75 pano.png view.png`)
}
