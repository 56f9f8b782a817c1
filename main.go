// Package main is the entry point for SketchBoard, a single-user raster
// drawing board with a desktop and a terminal front end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SketchBoard/internal/config"
	"SketchBoard/internal/term"
	"SketchBoard/internal/ui"
)

const defaultConfigPath = "sketchboard.toml"

// options are the command-line settings. Only flags given explicitly
// override the configuration.
type options struct {
	configPath string
	logPath    string
	quiet      bool
	overrides  []func(*config.Config)
}

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(opts, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	closeLog, err := setupLogging(opts, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	switch cfg.UI.Frontend {
	case config.FrontendTerminal:
		err = runTerminal(cfg)
	default:
		err = ui.RunApp(cfg)
	}
	if err != nil {
		log.Printf("[MAIN] %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runTerminal(cfg config.Config) error {
	screen, err := term.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	app, err := term.New(screen, cfg)
	if err != nil {
		screen.Fini()
		return err
	}
	defer app.Close()

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", defaultConfigPath, "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logPath, "log", "", "Write logs to this file")
	fs.BoolVar(&opts.quiet, "quiet", false, "Discard log output")

	frontend := fs.String("frontend", "", "Front end: desktop or terminal")
	width := fs.Int("width", 0, "Canvas width in pixels")
	height := fs.Int("height", 0, "Canvas height in pixels")
	background := fs.String("background", "", "Canvas background color")
	brush := fs.String("color", "", "Initial stroke color")
	strokeWidth := fs.Float64("stroke", 0, "Initial stroke width")
	tool := fs.String("tool", "", "Initial tool: freehand, line, rectangle or circle")
	maxHistory := fs.Int("max-history", 0, "Maximum undo entries, 0 for unbounded")
	exportDir := fs.String("export-dir", "", "Directory drawings are exported to")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "SketchBoard - raster drawing board\n\n")
		fmt.Fprintf(fs.Output(), "Usage: sketchboard [options]\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nEnvironment variables %s* override the config file; flags override both.\n", config.EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		var set func(*config.Config)
		switch f.Name {
		case "frontend":
			set = func(c *config.Config) { c.UI.Frontend = *frontend }
		case "width":
			set = func(c *config.Config) { c.Canvas.Width = *width }
		case "height":
			set = func(c *config.Config) { c.Canvas.Height = *height }
		case "background":
			set = func(c *config.Config) { c.Canvas.Background = *background }
		case "color":
			set = func(c *config.Config) { c.Brush.Color = *brush }
		case "stroke":
			set = func(c *config.Config) { c.Brush.Width = *strokeWidth }
		case "tool":
			set = func(c *config.Config) { c.Brush.Tool = *tool }
		case "max-history":
			set = func(c *config.Config) { c.History.MaxEntries = *maxHistory }
		case "export-dir":
			set = func(c *config.Config) { c.Export.Dir = *exportDir }
		}
		if set != nil {
			opts.overrides = append(opts.overrides, set)
		}
	})
	return opts, nil
}

// loadConfig layers defaults, the config file, the environment and flags,
// then validates the result.
func loadConfig(opts options, lookup func(string) (string, bool)) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	for _, set := range opts.overrides {
		set(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupLogging routes the standard logger. The terminal front end owns the
// screen, so its logs go to a file or nowhere.
func setupLogging(opts options, cfg config.Config) (func(), error) {
	switch {
	case opts.quiet:
		log.SetOutput(io.Discard)
	case opts.logPath != "":
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing log: %v\n", err)
			}
		}, nil
	case cfg.UI.Frontend == config.FrontendTerminal:
		log.SetOutput(io.Discard)
	}
	return func() {}, nil
}
