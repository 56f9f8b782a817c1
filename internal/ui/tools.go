package ui

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/config"
	"SketchBoard/internal/export"
	"SketchBoard/internal/session"
	"SketchBoard/internal/state"
)

// Palettes offered by the toolbar.
var (
	strokePalette = []color.Color{
		color.Black,
		color.NRGBA{R: 255, A: 255},         // Red
		color.NRGBA{G: 160, A: 255},         // Green
		color.NRGBA{B: 255, A: 255},         // Blue
		color.NRGBA{R: 255, G: 200, A: 255}, // Yellow
	}
	backgroundPalette = []color.Color{
		color.White,
		color.NRGBA{R: 255, G: 248, B: 220, A: 255}, // Cornsilk
		color.NRGBA{R: 220, G: 235, B: 255, A: 255}, // Pale blue
		color.NRGBA{R: 40, G: 40, B: 40, A: 255},    // Charcoal
	}
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the controls that edit a session's settings and history.
type Toolbar struct {
	session *session.Session
	window  fyne.Window
	status  *widget.Label

	tool   *widget.Select
	width  *widget.Slider
	eraser *widget.Button
	undo   *widget.Button
	redo   *widget.Button
	clear  *widget.Button

	content fyne.CanvasObject
}

// NewToolbar builds the toolbar for sess. Dialogs open on win; messages go
// to status. It takes over sess.OnHistory to keep undo and redo enabled
// only when they can act.
func NewToolbar(sess *session.Session, win fyne.Window, status *widget.Label) *Toolbar {
	t := &Toolbar{session: sess, window: win, status: status}

	// --- Tools ---
	names := make([]string, 0, len(state.Tools()))
	for _, tool := range state.Tools() {
		names = append(names, tool.String())
	}
	t.tool = widget.NewSelect(names, func(name string) {
		if tool, ok := state.ParseTool(name); ok {
			sess.SetTool(tool)
		}
	})
	t.tool.SetSelected(sess.Settings().Tool.String())

	t.eraser = widget.NewButtonWithIcon("Eraser", theme.DeleteIcon(), t.toggleEraser)

	// --- Color Palette ---
	colorBox := container.NewHBox()
	for _, c := range strokePalette {
		colorBox.Add(newColorSwatch(c, t.pickColor))
	}
	colorBox.Add(widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.showColorPicker))

	bgBox := container.NewHBox()
	for _, c := range backgroundPalette {
		bgBox.Add(newColorSwatch(c, t.pickBackground))
	}

	// --- Stroke Width Slider ---
	t.width = widget.NewSlider(1.0, 50.0)
	t.width.SetValue(float64(sess.Settings().Width))
	t.width.OnChanged = func(val float64) {
		sess.SetWidth(float32(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.width)

	// --- History ---
	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), t.Undo)
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), t.Redo)
	t.clear = widget.NewButtonWithIcon("", theme.ContentClearIcon(), sess.Clear)
	sess.OnHistory = func(state.OpType, state.Entry) { t.refreshHistory() }
	t.refreshHistory()

	// --- Export ---
	exportPNG := widget.NewButtonWithIcon("PNG", theme.DocumentSaveIcon(), func() {
		t.showExport(export.FileName, sess.ExportPNG)
	})
	exportPDF := widget.NewButtonWithIcon("PDF", theme.DocumentPrintIcon(), func() {
		t.showExport(export.PDFFileName, sess.ExportPDF)
	})

	// --- Assemble everything ---
	t.content = container.NewHBox(
		widget.NewLabel("Tool:"),
		t.tool,
		t.eraser,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		widget.NewLabel("Paper:"),
		bgBox,
		widget.NewSeparator(),
		t.undo,
		t.redo,
		t.clear,
		layout.NewSpacer(),
		exportPNG,
		exportPDF,
	)
	return t
}

// Content returns the toolbar's canvas object.
func (t *Toolbar) Content() fyne.CanvasObject { return t.content }

// Undo reverts the latest change, if any.
func (t *Toolbar) Undo() {
	if !t.session.Undo() {
		t.setStatus("Nothing to undo")
	}
}

// Redo reapplies the latest undone change, if any.
func (t *Toolbar) Redo() {
	if !t.session.Redo() {
		t.setStatus("Nothing to redo")
	}
}

func (t *Toolbar) pickColor(c color.Color) {
	t.session.SetColor(c)
}

func (t *Toolbar) pickBackground(c color.Color) {
	t.session.SetBackground(c)
	t.setStatus("Background " + config.FormatColor(c))
}

func (t *Toolbar) toggleEraser() {
	if t.session.ToggleEraser() {
		t.eraser.SetText("Brush")
		t.eraser.SetIcon(theme.DocumentCreateIcon())
	} else {
		t.eraser.SetText("Eraser")
		t.eraser.SetIcon(theme.DeleteIcon())
	}
}

func (t *Toolbar) showColorPicker() {
	picker := dialog.NewColorPicker("Stroke color", "Pick any color", t.pickColor, t.window)
	picker.Advanced = true
	picker.SetColor(t.session.Settings().Color)
	picker.Show()
}

func (t *Toolbar) showExport(name string, encode func(io.Writer) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		if writer == nil {
			return // cancelled
		}
		t.save(writer, encode)
	}, t.window)
	d.SetFileName(name)
	d.Show()
}

func (t *Toolbar) save(writer fyne.URIWriteCloser, encode func(io.Writer) error) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[UI] error closing %s: %v", writer.URI(), err)
		}
	}()
	if err := encode(writer); err != nil {
		log.Printf("[UI] export failed: %v", err)
		t.setStatus("Export failed")
		dialog.ShowError(err, t.window)
		return
	}
	log.Printf("[UI] exported %s", writer.URI())
	t.setStatus(fmt.Sprintf("Saved %s", writer.URI().Name()))
}

func (t *Toolbar) refreshHistory() {
	setEnabled(t.undo, t.session.CanUndo())
	setEnabled(t.redo, t.session.CanRedo())
}

func (t *Toolbar) setStatus(text string) {
	if t.status != nil {
		t.status.SetText(text)
	}
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}
