package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "SKETCHBOARD_"

// Load returns the defaults overlaid with the TOML file at path. A missing
// file is not an error; an empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // File doesn't exist, not an error
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := decode(path, bytes.NewReader(data), &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadFromReader overlays the defaults with TOML read from r.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode("<reader>", r, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func decode(source string, r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		perr.Line, perr.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		perr.Line, perr.Column = serr.Errors[0].Position()
		perr.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
	}
	return perr
}

// envSetters maps variable names, without EnvPrefix, to the field they set.
var envSetters = map[string]func(*Config, string) error{
	"CANVAS_WIDTH":        intSetter(func(c *Config) *int { return &c.Canvas.Width }),
	"CANVAS_HEIGHT":       intSetter(func(c *Config) *int { return &c.Canvas.Height }),
	"CANVAS_VIEWPORT":     floatSetter(func(c *Config) *float64 { return &c.Canvas.Viewport }),
	"CANVAS_BACKGROUND":   stringSetter(func(c *Config) *string { return &c.Canvas.Background }),
	"BRUSH_COLOR":         stringSetter(func(c *Config) *string { return &c.Brush.Color }),
	"BRUSH_WIDTH":         floatSetter(func(c *Config) *float64 { return &c.Brush.Width }),
	"BRUSH_TOOL":          stringSetter(func(c *Config) *string { return &c.Brush.Tool }),
	"HISTORY_MAX_ENTRIES": intSetter(func(c *Config) *int { return &c.History.MaxEntries }),
	"EXPORT_DIR":          stringSetter(func(c *Config) *string { return &c.Export.Dir }),
	"UI_FRONTEND":         stringSetter(func(c *Config) *string { return &c.UI.Frontend }),
	"UI_TITLE":            stringSetter(func(c *Config) *string { return &c.UI.Title }),
	"UI_WINDOW_WIDTH":     intSetter(func(c *Config) *int { return &c.UI.WindowWidth }),
	"UI_WINDOW_HEIGHT":    intSetter(func(c *Config) *int { return &c.UI.WindowHeight }),
	"UI_CELL_SCALE":       intSetter(func(c *Config) *int { return &c.UI.CellScale }),
}

// ApplyEnv overlays cfg with SKETCHBOARD_* variables found through lookup,
// normally os.LookupEnv. Empty values are treated as set. Variables are read
// in name order, so the first bad one reported is stable.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, name := range slices.Sorted(maps.Keys(envSetters)) {
		val, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := envSetters[name](cfg, strings.TrimSpace(val)); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
	}
	return nil
}

func stringSetter(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
		}
		*field(c) = f
		return nil
	}
}
