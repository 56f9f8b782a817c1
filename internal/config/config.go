// Package config holds SketchBoard settings and the layers they are read
// from: built-in defaults, a TOML file and SKETCHBOARD_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"fmt"

	"SketchBoard/internal/state"
)

// Front end names accepted by UI.Frontend.
const (
	FrontendDesktop  = "desktop"
	FrontendTerminal = "terminal"
)

// Config is the complete application configuration.
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Brush   Brush   `toml:"brush"`
	History History `toml:"history"`
	Export  Export  `toml:"export"`
	UI      UI      `toml:"ui"`
}

// Canvas configures the drawing surface. A zero Width or Height is derived
// from the window size scaled by Viewport.
type Canvas struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Viewport   float64 `toml:"viewport"`
	Background string  `toml:"background"`
}

// Brush configures the initial stroke settings.
type Brush struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
	Tool  string  `toml:"tool"`
}

// History configures the undo stack. Zero MaxEntries means unbounded.
type History struct {
	MaxEntries int `toml:"max_entries"`
}

// Export configures where drawings are written.
type Export struct {
	Dir string `toml:"dir"`
}

// UI selects and sizes the front end.
type UI struct {
	Frontend     string `toml:"frontend"`
	Title        string `toml:"title"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
	CellScale    int    `toml:"cell_scale"` // surface pixels per terminal column
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Viewport:   0.8,
			Background: "white",
		},
		Brush: Brush{
			Color: "black",
			Width: 3,
			Tool:  state.ToolFreehand.String(),
		},
		Export: Export{Dir: "."},
		UI: UI{
			Frontend:     FrontendDesktop,
			Title:        "SketchBoard",
			WindowWidth:  1024,
			WindowHeight: 768,
			CellScale:    4,
		},
	}
}

// CanvasSize returns the surface size for a window of the configured size.
func (c Config) CanvasSize() (int, int) {
	return c.CanvasSizeFor(c.UI.WindowWidth, c.UI.WindowHeight)
}

// CanvasSizeFor returns the surface size for a viewport of w x h. Explicit
// canvas dimensions win over the viewport fraction.
func (c Config) CanvasSizeFor(w, h int) (int, int) {
	cw, ch := c.Canvas.Width, c.Canvas.Height
	if cw <= 0 {
		cw = int(float64(w) * c.Canvas.Viewport)
	}
	if ch <= 0 {
		ch = int(float64(h) * c.Canvas.Viewport)
	}
	return max(cw, 1), max(ch, 1)
}

// Validate checks every setting and returns the first problem found.
func (c Config) Validate() error {
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("canvas %dx%d: %w", c.Canvas.Width, c.Canvas.Height, ErrInvalidSize)
	}
	if c.UI.WindowWidth <= 0 || c.UI.WindowHeight <= 0 {
		return fmt.Errorf("window %dx%d: %w", c.UI.WindowWidth, c.UI.WindowHeight, ErrInvalidSize)
	}
	if c.UI.CellScale < 1 {
		return fmt.Errorf("ui cell_scale %d: %w", c.UI.CellScale, ErrInvalidSize)
	}
	if c.Canvas.Viewport <= 0 || c.Canvas.Viewport > 1 {
		return fmt.Errorf("canvas viewport %v: %w", c.Canvas.Viewport, ErrInvalidValue)
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("canvas background: %w", err)
	}
	if _, err := ParseColor(c.Brush.Color); err != nil {
		return fmt.Errorf("brush color: %w", err)
	}
	if c.Brush.Width < 1 {
		return fmt.Errorf("brush width %v: %w", c.Brush.Width, ErrInvalidValue)
	}
	if _, ok := state.ParseTool(c.Brush.Tool); !ok {
		return fmt.Errorf("brush tool %q: %w", c.Brush.Tool, ErrInvalidTool)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history max_entries %d: %w", c.History.MaxEntries, ErrInvalidValue)
	}
	switch c.UI.Frontend {
	case FrontendDesktop, FrontendTerminal:
	default:
		return fmt.Errorf("ui frontend %q: %w", c.UI.Frontend, ErrInvalidValue)
	}
	return nil
}
