// Package ui is the desktop front end: a Fyne window with the drawing board
// and its toolbar.
package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/config"
	"SketchBoard/internal/session"
)

// Window is the assembled desktop UI for one session.
type Window struct {
	Board   *BoardWidget
	Toolbar *Toolbar
	Status  *widget.Label
	Content fyne.CanvasObject
}

// NewWindow lays out board, toolbar and status bar for sess inside win and
// registers the keyboard shortcuts.
func NewWindow(sess *session.Session, win fyne.Window) *Window {
	w := &Window{Status: widget.NewLabel("Ready")}
	w.Board = NewBoardWidget(sess)
	w.Toolbar = NewToolbar(sess, win, w.Status)

	// Set up the main layout
	w.Content = container.NewBorder(w.Toolbar.Content(), w.Status, nil, nil, container.NewCenter(w.Board))
	win.SetContent(w.Content)
	addShortcuts(win.Canvas(), w.Toolbar)
	return w
}

func addShortcuts(c fyne.Canvas, t *Toolbar) {
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { t.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { t.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { t.Redo() })
}

// RunApp opens the desktop window and blocks until it is closed.
func RunApp(cfg config.Config) error {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.UI.Title)
	myWindow.Resize(fyne.NewSize(float32(cfg.UI.WindowWidth), float32(cfg.UI.WindowHeight)))

	width, height := cfg.CanvasSize()
	sess, err := session.FromConfig(cfg, width, height)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	w := NewWindow(sess, myWindow)
	w.Status.SetText(fmt.Sprintf("Canvas %dx%d", width, height))

	log.Printf("[UI] window %dx%d, session %s", cfg.UI.WindowWidth, cfg.UI.WindowHeight, sess.ID())
	myWindow.ShowAndRun()
	return nil
}
