// Package term is the terminal front end. It draws the session surface with
// half-block characters and maps mouse and keyboard input onto it.
package term

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/colornames"

	"SketchBoard/internal/config"
	"SketchBoard/internal/session"
	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

var (
	inkPalette = []color.RGBA{
		colornames.Black, colornames.Red, colornames.Green,
		colornames.Blue, colornames.Orange, colornames.Purple,
	}
	paperPalette = []color.RGBA{
		colornames.White, colornames.Cornsilk, colornames.Lightblue, colornames.Darkslategray,
	}
)

const widthStep = 1

// App runs one session on a terminal screen.
type App struct {
	screen  tcell.Screen
	session *session.Session
	view    *view
	scale   int
	dir     string

	pressed bool
	last    surface.Point
	ink     int
	paper   int
	message string
}

// NewScreen opens the controlling terminal with mouse reporting enabled.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return screen, nil
}

// New creates an App on an initialised screen. The surface fills every row
// but the last, which shows the status line.
func New(screen tcell.Screen, cfg config.Config) (*App, error) {
	scale := max(cfg.UI.CellScale, 1)
	cols, rows := screen.Size()
	width := max(cols, 1) * scale
	height := max(rows-1, 1) * 2 * scale

	sess, err := session.FromConfig(cfg, width, height)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	a := &App{
		screen:  screen,
		session: sess,
		view:    newView(width, height, scale),
		scale:   scale,
		dir:     cfg.Export.Dir,
		message: "q quits, h for keys",
	}
	screen.EnableMouse()
	a.redraw()
	log.Printf("[TERM] %dx%d cells, surface %dx%d", cols, rows, width, height)
	return a, nil
}

// Session returns the session the app draws into.
func (a *App) Session() *session.Session { return a.session }

// Run processes terminal events until ctx is cancelled or the user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(events)
		for {
			// PollEvent returns nil once the screen is finalized.
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[TERM] stopping: %v", ctx.Err())
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				log.Printf("[TERM] quit")
				return nil
			}
		}
	}
}

// Close restores the terminal.
func (a *App) Close() {
	a.screen.Fini()
}

// HandleEvent applies one event and refreshes the screen. It reports false
// when the user asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.redraw()
		return true
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		if !a.handleKey(ev) {
			return false
		}
	}
	a.flush()
	return true
}

// Cell maps a screen cell to the surface pixel at its centre.
func (a *App) Cell(x, y int) surface.Point {
	s := float32(a.scale)
	return surface.Pt((float32(x)+0.5)*s, (float32(y)+0.5)*2*s)
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, rows := a.view.cells()
	inside := y < rows
	p := a.Cell(x, y)

	switch {
	case ev.Buttons()&tcell.Button1 != 0 && !a.pressed:
		if !inside {
			return
		}
		a.pressed = true
		a.last = p
		a.session.PointerDown(p)
	case ev.Buttons()&tcell.Button1 != 0:
		if !inside {
			a.pressed = false
			a.session.PointerLeave(a.last)
			return
		}
		a.last = p
		a.session.PointerMove(p)
	case a.pressed:
		a.pressed = false
		if inside {
			a.last = p
		}
		a.session.PointerUp(a.last)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlZ:
		a.undo()
		return true
	case tcell.KeyCtrlY:
		a.redo()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	sess := a.session
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case 'u':
		a.undo()
	case 'r':
		a.redo()
	case 'c':
		sess.Clear()
		a.message = "cleared"
	case 'e':
		if sess.ToggleEraser() {
			a.message = "eraser on"
		} else {
			a.message = "eraser off"
		}
	case '1', '2', '3', '4':
		tool := state.Tools()[r-'1']
		sess.SetTool(tool)
		a.message = tool.String()
	case '[':
		sess.SetWidth(sess.Settings().Width - widthStep)
	case ']':
		sess.SetWidth(sess.Settings().Width + widthStep)
	case 'k':
		a.ink = (a.ink + 1) % len(inkPalette)
		sess.SetColor(inkPalette[a.ink])
	case 'b':
		a.paper = (a.paper + 1) % len(paperPalette)
		sess.SetBackground(paperPalette[a.paper])
	case 's':
		a.save(sess.SavePNG)
	case 'p':
		a.save(sess.SavePDF)
	case 'h', '?':
		a.message = "u/r undo/redo  c clear  e eraser  1-4 tool  [ ] width  k ink  b paper  s png  p pdf  q quit"
	}
	return true
}

func (a *App) undo() {
	if !a.session.Undo() {
		a.message = "nothing to undo"
	}
}

func (a *App) redo() {
	if !a.session.Redo() {
		a.message = "nothing to redo"
	}
}

func (a *App) save(fn func(dir string) (string, error)) {
	path, err := fn(a.dir)
	if err != nil {
		log.Printf("[TERM] export failed: %v", err)
		a.message = "export failed: " + err.Error()
		return
	}
	a.message = "saved " + path
}

// flush repaints the cells touched since the last flush and the status line.
func (a *App) flush() {
	dirty := a.view.update(a.session.Image(), a.session.Damage())
	a.view.paint(a.screen, dirty)
	a.drawStatus()
	a.screen.Show()
}

func (a *App) redraw() {
	a.screen.Clear()
	a.session.Damage()
	a.view.update(a.session.Image(), a.session.Image().Bounds())
	cols, rows := a.view.cells()
	a.view.paint(a.screen, image.Rect(0, 0, cols, rows))
	a.drawStatus()
	a.screen.Show()
}

// Status returns the text of the status line.
func (a *App) Status() string {
	st := a.session.Settings()
	mode := "brush"
	if st.Erasing {
		mode = "eraser"
	}
	h := a.session.History()
	return fmt.Sprintf(" %s %s w=%g %s | undo %d redo %d | %s",
		st.Tool, mode, st.Width, config.FormatColor(st.Color), h.UndoCount(), h.RedoCount(), a.message)
}

func (a *App) drawStatus() {
	cols, rows := a.screen.Size()
	y := rows - 1
	style := tcell.StyleDefault.Reverse(true)
	text := []rune(a.Status())
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		a.screen.SetContent(x, y, r, nil, style)
	}
}
