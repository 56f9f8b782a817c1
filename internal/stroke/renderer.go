// Package stroke turns pointer gestures into pixels.
//
// A Renderer is a two-state machine. Down moves it from Idle to Active and
// records the anchor; Move paints while Active; Up or Leave commits the
// result as one history entry and returns to Idle. Move, Up and Leave are
// ignored while Idle.
package stroke

import (
	"image/color"
	"math"

	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

// Canvas is the raster a Renderer paints on.
type Canvas interface {
	Restore(surface.Snapshot)
	Segment(a, b surface.Point, width float32, c color.Color)
	Dot(p surface.Point, width float32, c color.Color)
	Rect(a, b surface.Point, width float32, c color.Color)
	Circle(center surface.Point, radius, width float32, c color.Color)
}

// History records finished gestures and supplies the state shape previews
// are drawn over.
type History interface {
	Top() state.Entry
	Commit(reason string) state.Entry
}

// SettingsSource supplies the drawing settings at the moment of drawing.
type SettingsSource interface {
	Settings() state.Settings
}

// Renderer paints gestures on a Canvas and commits them to a History.
type Renderer struct {
	canvas   Canvas
	history  History
	settings SettingsSource
	gesture  state.Gesture
}

// New creates an idle Renderer.
func New(canvas Canvas, history History, settings SettingsSource) *Renderer {
	return &Renderer{canvas: canvas, history: history, settings: settings}
}

// Active reports whether a gesture is in progress.
func (r *Renderer) Active() bool {
	return r.gesture.Active
}

// Gesture returns a copy of the current gesture state.
func (r *Renderer) Gesture() state.Gesture {
	return r.gesture
}

// Down starts a gesture at p. A gesture still active is finished first, so
// every gesture ends in exactly one commit. Freehand gestures stamp a dot
// at the anchor.
func (r *Renderer) Down(p surface.Point) {
	if r.gesture.Active {
		r.finish()
	}
	r.gesture = state.BeginGesture(p, r.settings.Settings())
	if r.gesture.Tool == state.ToolFreehand {
		r.canvas.Dot(p, r.gesture.Width, r.gesture.Color)
	}
}

// Move paints the gesture up to p and reports whether anything was drawn.
func (r *Renderer) Move(p surface.Point) bool {
	if !r.gesture.Active {
		return false
	}
	g := &r.gesture
	g.Apply(r.settings.Settings())
	g.Moves++

	switch g.Tool {
	case state.ToolLine:
		r.canvas.Restore(r.history.Top().Snapshot)
		r.canvas.Segment(g.Anchor, p, g.Width, g.Color)
	case state.ToolRectangle:
		r.canvas.Restore(r.history.Top().Snapshot)
		r.canvas.Rect(g.Anchor, p, g.Width, g.Color)
	case state.ToolCircle:
		r.canvas.Restore(r.history.Top().Snapshot)
		r.canvas.Circle(g.Anchor, Radius(g.Anchor, p), g.Width, g.Color)
	default:
		r.canvas.Segment(g.Last, p, g.Width, g.Color)
	}
	g.Last = p
	return true
}

// Up ends the gesture and commits the surface. It reports whether a commit
// happened.
func (r *Renderer) Up(surface.Point) bool {
	if !r.gesture.Active {
		return false
	}
	r.finish()
	return true
}

// Leave is called when the pointer leaves the surface and behaves like Up.
func (r *Renderer) Leave(p surface.Point) bool {
	return r.Up(p)
}

func (r *Renderer) finish() {
	tool := r.gesture.Tool
	r.gesture = state.Gesture{}
	r.history.Commit(Reason(tool))
}

// Reason returns the history label recorded for gestures made with tool.
func Reason(tool state.Tool) string {
	if tool == state.ToolFreehand {
		return "stroke"
	}
	return tool.String()
}

// Radius returns the circle radius for a drag from anchor to p: the
// Euclidean distance between them.
func Radius(anchor, p surface.Point) float32 {
	return float32(math.Hypot(float64(p.X-anchor.X), float64(p.Y-anchor.Y)))
}
