package state

import (
	"image/color"
	"strings"

	"SketchBoard/internal/surface"
)

// Tool selects how a pointer drag is turned into pixels.
type Tool int

const (
	ToolFreehand Tool = iota
	ToolLine
	ToolRectangle
	ToolCircle
)

var toolNames = [...]string{
	ToolFreehand:  "freehand",
	ToolLine:      "line",
	ToolRectangle: "rectangle",
	ToolCircle:    "circle",
}

// Tools lists every tool in display order.
func Tools() []Tool {
	return []Tool{ToolFreehand, ToolLine, ToolRectangle, ToolCircle}
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "unknown"
	}
	return toolNames[t]
}

// IsShape reports whether the tool previews against the last commit
// instead of painting the live surface.
func (t Tool) IsShape() bool {
	return t == ToolLine || t == ToolRectangle || t == ToolCircle
}

// ParseTool maps a tool name (case-insensitive) to its Tool.
func ParseTool(name string) (Tool, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "rect" {
		return ToolRectangle, true
	}
	for i, n := range toolNames {
		if n == name {
			return Tool(i), true
		}
	}
	return ToolFreehand, false
}

// Settings are the user-controlled drawing parameters, read at the moment
// something is drawn.
type Settings struct {
	Color      color.RGBA
	Background color.RGBA
	Width      float32
	Tool       Tool
	Erasing    bool
}

// Ink is the color strokes are painted with: the background while erasing.
func (s Settings) Ink() color.RGBA {
	if s.Erasing {
		return s.Background
	}
	return s.Color
}

// Gesture is the transient state of one pointer-down to pointer-up drag.
type Gesture struct {
	Active  bool
	Anchor  surface.Point
	Last    surface.Point
	Tool    Tool
	Color   color.RGBA
	Width   float32
	Erasing bool
	Moves   int
}

// BeginGesture starts a gesture anchored at p using the current settings.
func BeginGesture(p surface.Point, s Settings) Gesture {
	g := Gesture{
		Active: true,
		Anchor: p,
		Last:   p,
		Tool:   s.Tool,
	}
	g.Apply(s)
	return g
}

// Apply refreshes the gesture's paint parameters from s. The tool is fixed
// for the lifetime of the gesture.
func (g *Gesture) Apply(s Settings) {
	g.Color = s.Ink()
	g.Width = s.Width
	if g.Width < 1 {
		g.Width = 1
	}
	g.Erasing = s.Erasing
}
