// Package session ties a drawing surface, its history and the stroke
// renderer into one object owned by a front end.
package session

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"SketchBoard/internal/config"
	"SketchBoard/internal/export"
	"SketchBoard/internal/state"
	"SketchBoard/internal/stroke"
	"SketchBoard/internal/surface"
)

// History labels for commits that do not come from a gesture.
const (
	ReasonClear      = "clear"
	ReasonBackground = "background"
)

// Options configure a new Session.
type Options struct {
	Width, Height int
	Settings      state.Settings
	MaxHistory    int
}

// Session is one drawing session. All methods must be called from a single
// goroutine, the front end's event loop.
type Session struct {
	id       string
	surface  *surface.Surface
	history  *state.History
	renderer *stroke.Renderer
	settings state.Settings

	// OnChange, if set, is called after any operation that changed pixels.
	OnChange func()
	// OnHistory, if set, is called after every commit, undo and redo.
	OnHistory func(op state.OpType, top state.Entry)
}

// New creates a session whose surface is filled with the background color
// and committed as the base history entry.
func New(opts Options) *Session {
	if opts.Settings.Width < 1 {
		opts.Settings.Width = 1
	}
	s := &Session{
		id:       state.NewSessionID(),
		settings: opts.Settings,
	}
	s.surface = surface.New(opts.Width, opts.Height, opts.Settings.Background)
	s.history = state.NewHistory(s.surface, opts.MaxHistory)
	s.history.OnChange = func(op state.OpType, top state.Entry) {
		if s.OnHistory != nil {
			s.OnHistory(op, top)
		}
	}
	s.renderer = stroke.New(s.surface, s.history, s)
	log.Printf("[SESSION] %s started, %dx%d", s.id, s.surface.Width(), s.surface.Height())
	return s
}

// FromConfig creates a session of the given size with settings taken from cfg.
func FromConfig(cfg config.Config, width, height int) (*Session, error) {
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(Options{
		Width:      width,
		Height:     height,
		Settings:   settings,
		MaxHistory: cfg.History.MaxEntries,
	}), nil
}

// SettingsFromConfig resolves the brush and background settings of cfg.
func SettingsFromConfig(cfg config.Config) (state.Settings, error) {
	fg, err := config.ParseColor(cfg.Brush.Color)
	if err != nil {
		return state.Settings{}, fmt.Errorf("brush color: %w", err)
	}
	bg, err := config.ParseColor(cfg.Canvas.Background)
	if err != nil {
		return state.Settings{}, fmt.Errorf("canvas background: %w", err)
	}
	tool, ok := state.ParseTool(cfg.Brush.Tool)
	if !ok {
		return state.Settings{}, fmt.Errorf("%w: %q", config.ErrInvalidTool, cfg.Brush.Tool)
	}
	return state.Settings{
		Color:      fg,
		Background: bg,
		Width:      float32(cfg.Brush.Width),
		Tool:       tool,
	}, nil
}

func (s *Session) ID() string { return s.id }

// Settings returns the current drawing settings.
func (s *Session) Settings() state.Settings { return s.settings }

// Size returns the surface size in pixels.
func (s *Session) Size() (int, int) { return s.surface.Width(), s.surface.Height() }

// Image returns the live surface image. It is updated in place.
func (s *Session) Image() *image.RGBA { return s.surface.Image() }

// Damage returns the area changed since the previous call.
func (s *Session) Damage() image.Rectangle { return s.surface.Damage() }

// History exposes the session history for inspection.
func (s *Session) History() *state.History { return s.history }

// Drawing reports whether a gesture is in progress.
func (s *Session) Drawing() bool { return s.renderer.Active() }

func (s *Session) SetColor(c color.Color) { s.settings.Color = toRGBA(c) }

func (s *Session) SetTool(t state.Tool) { s.settings.Tool = t }

// SetWidth sets the stroke width, clamped to at least one pixel.
func (s *Session) SetWidth(w float32) {
	if w < 1 {
		w = 1
	}
	s.settings.Width = w
}

func (s *Session) SetErasing(on bool) { s.settings.Erasing = on }

// ToggleEraser flips the eraser and returns its new state.
func (s *Session) ToggleEraser() bool {
	s.settings.Erasing = !s.settings.Erasing
	return s.settings.Erasing
}

// PointerDown starts a gesture at p.
func (s *Session) PointerDown(p surface.Point) {
	s.renderer.Down(p)
	s.changed()
}

// PointerMove feeds p to the active gesture; ignored while idle.
func (s *Session) PointerMove(p surface.Point) {
	if s.renderer.Move(p) {
		s.changed()
	}
}

// PointerUp finishes the active gesture; ignored while idle.
func (s *Session) PointerUp(p surface.Point) {
	s.renderer.Up(p)
}

// PointerLeave finishes the active gesture when the pointer leaves the
// surface; ignored while idle.
func (s *Session) PointerLeave(p surface.Point) {
	s.renderer.Leave(p)
}

// Undo reverts the latest commit. It reports false and changes nothing when
// there is nothing to undo.
func (s *Session) Undo() bool {
	if !s.history.Undo() {
		return false
	}
	s.changed()
	return true
}

// Redo reapplies the latest undone commit. It reports false and changes
// nothing when there is nothing to redo.
func (s *Session) Redo() bool {
	if !s.history.Redo() {
		return false
	}
	s.changed()
	return true
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Clear fills the surface with the background color and commits it.
func (s *Session) Clear() {
	s.surface.Fill(s.settings.Background)
	s.history.Commit(ReasonClear)
	s.changed()
}

// SetBackground changes the background color, repaints the whole surface
// with it and commits the result.
func (s *Session) SetBackground(c color.Color) {
	s.settings.Background = toRGBA(c)
	s.surface.Fill(s.settings.Background)
	s.history.Commit(ReasonBackground)
	s.changed()
}

// ExportPNG writes the surface as a PNG image.
func (s *Session) ExportPNG(w io.Writer) error {
	return export.PNG(w, s.surface.Image())
}

// ExportPDF writes the surface as a one-page PDF document.
func (s *Session) ExportPDF(w io.Writer) error {
	return export.PDF(w, s.surface.Image())
}

// SavePNG writes drawing.png into dir and returns the file path.
func (s *Session) SavePNG(dir string) (string, error) {
	return export.Save(dir, export.FileName, s.ExportPNG)
}

// SavePDF writes drawing.pdf into dir and returns the file path.
func (s *Session) SavePDF(dir string) (string, error) {
	return export.Save(dir, export.PDFFileName, s.ExportPDF)
}

func (s *Session) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
