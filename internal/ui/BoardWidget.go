package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/session"
	"SketchBoard/internal/surface"
)

// BoardWidget shows a session's surface and turns mouse input into pointer
// events on it. Widget coordinates are scaled to surface pixels.
type BoardWidget struct {
	widget.BaseWidget
	session *session.Session
	image   *canvas.Image
	last    fyne.Position
	pressed bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

// NewBoardWidget creates a board for sess. It takes over sess.OnChange to
// repaint itself.
func NewBoardWidget(sess *session.Session) *BoardWidget {
	b := &BoardWidget{session: sess}
	b.image = canvas.NewImageFromImage(sess.Image())
	b.image.FillMode = canvas.ImageFillStretch
	b.image.ScaleMode = canvas.ImageScalePixels
	sess.OnChange = b.Refresh
	b.ExtendBaseWidget(b)
	return b
}

// Session returns the session the board draws into.
func (b *BoardWidget) Session() *session.Session { return b.session }

// ToSurface maps a widget position to surface pixel coordinates.
func (b *BoardWidget) ToSurface(pos fyne.Position) surface.Point {
	w, h := b.session.Size()
	size := b.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return surface.Pt(pos.X, pos.Y)
	}
	return surface.Pt(pos.X*float32(w)/size.Width, pos.Y*float32(h)/size.Height)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.last = e.Position
	b.session.PointerDown(b.ToSurface(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.pressed {
		return
	}
	b.pressed = false
	b.last = e.Position
	b.session.PointerUp(b.ToSurface(e.Position))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.pressed {
		return
	}
	b.last = e.Position
	b.session.PointerMove(b.ToSurface(e.Position))
}

// DragEnd finishes the gesture when the release is reported as the end of
// a drag rather than a mouse up.
func (b *BoardWidget) DragEnd() {
	if !b.pressed {
		return
	}
	b.pressed = false
	b.session.PointerUp(b.ToSurface(b.last))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.pressed {
		b.last = e.Position
		b.session.PointerMove(b.ToSurface(e.Position))
	}
}

func (b *BoardWidget) MouseOut() {
	if !b.pressed {
		return
	}
	b.pressed = false
	b.session.PointerLeave(b.ToSurface(b.last))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: b}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.image}
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.image.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.image.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	w, h := r.board.session.Size()
	return fyne.NewSize(float32(w), float32(h))
}
