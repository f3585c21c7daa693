package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagFOV     = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagSamples = flag.Int("samples", 0, "Transfer sample count")
	flagSeed    = flag.Uint64("seed", 0, "Transfer random seed")
	flagWorkers = flag.Int("workers", -1, "Compositing goroutines (0 = one per CPU)")
	flagOut     = flag.String("out", "", "Output directory for exported images")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.View.WindowWidth = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.View.WindowHeight = *flagHeight
	}
	if *flagFOV > 0 {
		cfg.View.FOV = *flagFOV
	}
	if *flagSamples > 0 {
		cfg.Transfer.Samples = *flagSamples
	}
	if *flagSeed > 0 {
		cfg.Transfer.Seed = *flagSeed
	}
	if *flagWorkers >= 0 {
		cfg.Transfer.Workers = *flagWorkers
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
}
