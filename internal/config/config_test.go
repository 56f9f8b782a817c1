package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if w, h := cfg.CanvasSize(); w != 819 || h != 614 {
		t.Errorf("CanvasSize() = %dx%d, want 819x614", w, h)
	}
}

func TestCanvasSizeFor(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		viewport      float64
		vw, vh        int
		wantW, wantH  int
	}{
		{"viewport fraction", 0, 0, 0.5, 200, 100, 100, 50},
		{"explicit wins", 320, 240, 0.5, 200, 100, 320, 240},
		{"mixed", 300, 0, 0.5, 200, 100, 300, 50},
		{"never zero", 0, 0, 0.1, 5, 5, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Viewport = tt.width, tt.height, tt.viewport
			w, h := cfg.CanvasSizeFor(tt.vw, tt.vh)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("CanvasSizeFor(%d, %d) = %dx%d, want %dx%d", tt.vw, tt.vh, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"negative canvas", func(c *Config) { c.Canvas.Width = -1 }, ErrInvalidSize},
		{"zero window", func(c *Config) { c.UI.WindowHeight = 0 }, ErrInvalidSize},
		{"zero cell scale", func(c *Config) { c.UI.CellScale = 0 }, ErrInvalidSize},
		{"viewport too large", func(c *Config) { c.Canvas.Viewport = 1.5 }, ErrInvalidValue},
		{"bad background", func(c *Config) { c.Canvas.Background = "plaid" }, ErrInvalidColor},
		{"bad brush color", func(c *Config) { c.Brush.Color = "#12345" }, ErrInvalidColor},
		{"thin brush", func(c *Config) { c.Brush.Width = 0.5 }, ErrInvalidValue},
		{"unknown tool", func(c *Config) { c.Brush.Tool = "spray" }, ErrInvalidTool},
		{"negative history", func(c *Config) { c.History.MaxEntries = -3 }, ErrInvalidValue},
		{"unknown frontend", func(c *Config) { c.UI.Frontend = "web" }, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketchboard.toml")
	content := `
[canvas]
width = 640
background = "#ffeecc"

[brush]
tool = "circle"
width = 8.5

[history]
max_entries = 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Canvas.Width != 640 || cfg.Canvas.Background != "#ffeecc" {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Brush.Tool != "circle" || cfg.Brush.Width != 8.5 {
		t.Errorf("brush = %+v", cfg.Brush)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("max_entries = %d, want 50", cfg.History.MaxEntries)
	}
	// untouched keys keep their defaults
	if cfg.Brush.Color != "black" || cfg.Canvas.Viewport != 0.8 || cfg.UI.Title != "SketchBoard" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"syntax", "[canvas]\nwidth = = 3\n", 2},
		{"unknown key", "[brush]\ncolor = \"red\"\nsize = 4\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tt.content))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if perr.Path != "<reader>" {
				t.Errorf("Path = %q", perr.Path)
			}
			if perr.Line != tt.line {
				t.Errorf("Line = %d, want %d (%v)", perr.Line, tt.line, perr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SKETCHBOARD_BRUSH_COLOR":         "#ff0000",
		"SKETCHBOARD_CANVAS_VIEWPORT":     "0.5",
		"SKETCHBOARD_HISTORY_MAX_ENTRIES": "10",
		"SKETCHBOARD_UI_FRONTEND":         "terminal",
		"OTHER_BRUSH_COLOR":               "blue",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Brush.Color != "#ff0000" || cfg.Canvas.Viewport != 0.5 ||
		cfg.History.MaxEntries != 10 || cfg.UI.Frontend != FrontendTerminal {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Canvas.Background != "white" {
		t.Errorf("unset variable changed background to %q", cfg.Canvas.Background)
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("[brush]\ncolor = \"green\"\ntool = \"line\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	lookup := func(k string) (string, bool) {
		if k == "SKETCHBOARD_BRUSH_COLOR" {
			return "navy", true
		}
		return "", false
	}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Brush.Color != "navy" {
		t.Errorf("env should win over file, color = %q", cfg.Brush.Color)
	}
	if cfg.Brush.Tool != "line" {
		t.Errorf("file should win over default, tool = %q", cfg.Brush.Tool)
	}
}

func TestApplyEnvBadNumber(t *testing.T) {
	cfg := Default()
	lookup := func(k string) (string, bool) {
		if k == "SKETCHBOARD_CANVAS_WIDTH" {
			return "wide", true
		}
		return "", false
	}
	err := ApplyEnv(&cfg, lookup)
	if !errors.Is(err, ErrInvalidValue) || !strings.Contains(err.Error(), "SKETCHBOARD_CANVAS_WIDTH") {
		t.Errorf("err = %v", err)
	}
}

func TestApplyEnvReportsFirstBadVariableByName(t *testing.T) {
	env := map[string]string{
		"SKETCHBOARD_CANVAS_WIDTH":  "wide",
		"SKETCHBOARD_BRUSH_WIDTH":   "thick",
		"SKETCHBOARD_UI_CELL_SCALE": "big",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	for i := 0; i < 20; i++ {
		cfg := Default()
		err := ApplyEnv(&cfg, lookup)
		if err == nil || !strings.HasPrefix(err.Error(), "SKETCHBOARD_BRUSH_WIDTH:") {
			t.Fatalf("run %d: err = %v, want SKETCHBOARD_BRUSH_WIDTH first", i, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff8000", color.RGBA{R: 255, G: 128, A: 255}, false},
		{"#FFF", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"  Red ", color.RGBA{R: 255, A: 255}, false},
		{"cornflowerblue", color.RGBA{R: 100, G: 149, B: 237, A: 255}, false},
		{"", color.RGBA{}, true},
		{"#12", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"notacolor", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("ParseColor(%q) err = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(color.RGBA{R: 255, G: 128, A: 255}); got != "#ff8000" {
		t.Errorf("FormatColor = %q, want #ff8000", got)
	}
	c, err := ParseColor(FormatColor(color.RGBA{R: 12, G: 34, B: 56, A: 255}))
	if err != nil || c != (color.RGBA{R: 12, G: 34, B: 56, A: 255}) {
		t.Errorf("round trip = %v, %v", c, err)
	}
}
