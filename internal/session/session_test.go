package session

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"SketchBoard/internal/config"
	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(Options{
		Width:  40,
		Height: 30,
		Settings: state.Settings{
			Color:      black,
			Background: white,
			Width:      4,
			Tool:       state.ToolFreehand,
		},
	})
}

func drawStroke(s *Session, from, to surface.Point) {
	s.PointerDown(from)
	s.PointerMove(to)
	s.PointerUp(to)
}

func TestNewSession(t *testing.T) {
	s := newSession(t)
	if w, h := s.Size(); w != 40 || h != 30 {
		t.Errorf("Size() = %dx%d, want 40x30", w, h)
	}
	if s.ID() == "" {
		t.Error("session has no id")
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("fresh session should have nothing to undo or redo")
	}
	if s.History().Top().Reason != state.ReasonBase {
		t.Errorf("top reason = %q, want base", s.History().Top().Reason)
	}
	if got := s.Image().RGBAAt(20, 15); got != white {
		t.Errorf("background = %v, want white", got)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Brush.Color = "#ff0000"
	cfg.Brush.Tool = "rect"
	cfg.Canvas.Background = "navy"
	cfg.History.MaxEntries = 5

	s, err := FromConfig(cfg, 20, 10)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	st := s.Settings()
	if st.Color != red || st.Tool != state.ToolRectangle || st.Width != 3 {
		t.Errorf("settings = %+v", st)
	}
	if got := s.Image().RGBAAt(0, 0); got != (color.RGBA{B: 128, A: 255}) {
		t.Errorf("background = %v, want navy", got)
	}
	if s.History().MaxEntries() != 5 {
		t.Errorf("MaxEntries = %d, want 5", s.History().MaxEntries())
	}
}

func TestFromConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"color", func(c *config.Config) { c.Brush.Color = "nope" }, config.ErrInvalidColor},
		{"background", func(c *config.Config) { c.Canvas.Background = "#zz0000" }, config.ErrInvalidColor},
		{"tool", func(c *config.Config) { c.Brush.Tool = "lasso" }, config.ErrInvalidTool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if _, err := FromConfig(cfg, 10, 10); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSettersClampAndToggle(t *testing.T) {
	s := newSession(t)
	s.SetWidth(0.2)
	if s.Settings().Width != 1 {
		t.Errorf("width = %v, want 1", s.Settings().Width)
	}
	if !s.ToggleEraser() || !s.Settings().Erasing {
		t.Error("first toggle should enable the eraser")
	}
	if s.ToggleEraser() {
		t.Error("second toggle should disable the eraser")
	}
	s.SetColor(color.NRGBA{R: 255, A: 255})
	if s.Settings().Color != red {
		t.Errorf("color = %v, want red", s.Settings().Color)
	}
	s.SetTool(state.ToolCircle)
	if s.Settings().Tool != state.ToolCircle {
		t.Errorf("tool = %v", s.Settings().Tool)
	}
}

func TestUndoRedoThroughSession(t *testing.T) {
	s := newSession(t)
	changes := 0
	s.OnChange = func() { changes++ }
	var ops []state.OpType
	s.OnHistory = func(op state.OpType, _ state.Entry) { ops = append(ops, op) }

	if s.Undo() || s.Redo() {
		t.Fatal("undo/redo on a fresh session should be no-ops")
	}
	if changes != 0 {
		t.Fatalf("no-op undo fired OnChange %d times", changes)
	}

	drawStroke(s, surface.Pt(5, 15), surface.Pt(35, 15))
	if got := s.Image().RGBAAt(20, 15); got != black {
		t.Fatalf("stroke not drawn: %v", got)
	}
	if !s.Undo() {
		t.Fatal("Undo returned false")
	}
	if got := s.Image().RGBAAt(20, 15); got != white {
		t.Errorf("after undo pixel = %v, want white", got)
	}
	if !s.Redo() {
		t.Fatal("Redo returned false")
	}
	if got := s.Image().RGBAAt(20, 15); got != black {
		t.Errorf("after redo pixel = %v, want black", got)
	}

	want := []state.OpType{state.OpCommit, state.OpUndo, state.OpRedo}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i], want[i])
		}
	}
	if changes == 0 {
		t.Error("OnChange never fired")
	}
}

func TestClearCommitsOneEntry(t *testing.T) {
	s := newSession(t)
	drawStroke(s, surface.Pt(5, 15), surface.Pt(35, 15))
	before := s.History().Len()

	s.Clear()
	if s.History().Len() != before+1 {
		t.Errorf("Len() = %d, want %d", s.History().Len(), before+1)
	}
	if s.History().Top().Reason != ReasonClear {
		t.Errorf("reason = %q, want clear", s.History().Top().Reason)
	}
	if got := s.Image().RGBAAt(20, 15); got != white {
		t.Errorf("clear left %v", got)
	}

	s.Undo()
	if got := s.Image().RGBAAt(20, 15); got != black {
		t.Errorf("undo of clear = %v, want the stroke back", got)
	}
}

func TestSetBackground(t *testing.T) {
	s := newSession(t)
	drawStroke(s, surface.Pt(5, 15), surface.Pt(35, 15))
	s.SetBackground(red)

	if s.Settings().Background != red {
		t.Errorf("background setting = %v", s.Settings().Background)
	}
	if s.History().Top().Reason != ReasonBackground {
		t.Errorf("reason = %q, want background", s.History().Top().Reason)
	}
	for _, p := range [][2]int{{0, 0}, {20, 15}, {39, 29}} {
		if got := s.Image().RGBAAt(p[0], p[1]); got != red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}

	// the eraser now paints with the new background
	s.SetColor(black)
	drawStroke(s, surface.Pt(5, 5), surface.Pt(35, 5))
	s.SetErasing(true)
	drawStroke(s, surface.Pt(5, 5), surface.Pt(35, 5))
	if got := s.Image().RGBAAt(20, 5); got != red {
		t.Errorf("eraser painted %v, want red", got)
	}
}

func TestPointerEventsWhileIdle(t *testing.T) {
	s := newSession(t)
	s.PointerMove(surface.Pt(10, 10))
	s.PointerUp(surface.Pt(10, 10))
	s.PointerLeave(surface.Pt(10, 10))
	if s.History().Len() != 1 || s.Drawing() {
		t.Errorf("idle pointer events changed state: Len()=%d drawing=%v", s.History().Len(), s.Drawing())
	}
}

func TestPointerLeaveCommits(t *testing.T) {
	s := newSession(t)
	s.PointerDown(surface.Pt(5, 5))
	s.PointerMove(surface.Pt(20, 5))
	if !s.Drawing() {
		t.Fatal("should be drawing")
	}
	s.PointerLeave(surface.Pt(50, 5))
	if s.Drawing() || s.History().Len() != 2 {
		t.Errorf("leave did not commit: drawing=%v Len()=%d", s.Drawing(), s.History().Len())
	}
}

func TestDamageCoversStroke(t *testing.T) {
	s := newSession(t)
	s.Damage()
	drawStroke(s, surface.Pt(10, 10), surface.Pt(20, 10))
	d := s.Damage()
	for _, x := range []int{10, 15, 20} {
		if !image.Pt(x, 10).In(d) {
			t.Errorf("damage %v does not cover (%d,10)", d, x)
		}
	}
	if !s.Damage().Empty() {
		t.Error("damage should be reset after it is taken")
	}
}

func TestExport(t *testing.T) {
	s := newSession(t)
	drawStroke(s, surface.Pt(5, 15), surface.Pt(35, 15))

	var buf bytes.Buffer
	if err := s.ExportPNG(&buf); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(20, 15)).(color.RGBA); got != black {
		t.Errorf("exported pixel = %v, want black", got)
	}

	dir := t.TempDir()
	path, err := s.SavePNG(dir)
	if err != nil || path != filepath.Join(dir, "drawing.png") {
		t.Fatalf("SavePNG = %q, %v", path, err)
	}
	path, err = s.SavePDF(dir)
	if err != nil {
		t.Fatalf("SavePDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("SavePDF did not write a PDF")
	}
}
