package state

import (
	"log"
	"slices"
	"time"

	"SketchBoard/internal/surface"
)

// Canvas is the raster a History captures and repaints.
type Canvas interface {
	Snapshot() surface.Snapshot
	Restore(surface.Snapshot)
}

// OpType names the history operation reported to observers.
type OpType string

const (
	OpCommit OpType = "commit"
	OpUndo   OpType = "undo"
	OpRedo   OpType = "redo"
)

// ReasonBase labels the entry committed when a History is created.
const ReasonBase = "base"

// Entry is one committed state of the canvas.
type Entry struct {
	ID       string
	Seq      uint64
	Reason   string
	Time     time.Time
	Snapshot surface.Snapshot
}

// History keeps the undo and redo stacks of full-canvas snapshots.
//
// The undo stack always holds at least one entry, the floor state that undo
// never goes below. Its top equals the canvas as of the latest commit, undo
// or redo.
type History struct {
	canvas    Canvas
	undoStack []Entry
	redoStack []Entry
	clock     Clock

	// maxEntries bounds the undo stack; 0 means unbounded.
	maxEntries int

	// OnChange, if set, is called after every commit, undo and redo with
	// the new top of the undo stack.
	OnChange func(op OpType, top Entry)
}

// NewHistory creates a history for canvas and commits its current content
// as the base entry. maxEntries of 0 keeps every entry.
func NewHistory(canvas Canvas, maxEntries int) *History {
	if maxEntries < 0 {
		maxEntries = 0
	}
	if maxEntries == 1 {
		maxEntries = 2
	}
	h := &History{canvas: canvas, maxEntries: maxEntries}
	h.Commit(ReasonBase)
	return h
}

// Commit captures the canvas as a new entry and clears the redo stack.
func (h *History) Commit(reason string) Entry {
	e := Entry{
		ID:       newEntryID(),
		Seq:      h.clock.Tick(),
		Reason:   reason,
		Time:     time.Now(),
		Snapshot: h.canvas.Snapshot(),
	}
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if h.maxEntries > 0 && len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = slices.Delete(h.undoStack, 0, excess)
		log.Printf("[HISTORY] dropped %d oldest entries (limit %d)", excess, h.maxEntries)
	}

	log.Printf("[HISTORY] commit #%d %s (undo %d, redo 0)", e.Seq, reason, len(h.undoStack)-1)
	h.notify(OpCommit, e)
	return e
}

// Undo moves the latest entry to the redo stack and repaints the canvas
// from the entry below it. It reports false, changing nothing, when only the
// floor entry is left.
func (h *History) Undo() bool {
	if len(h.undoStack) <= 1 {
		return false
	}
	last := len(h.undoStack) - 1
	e := h.undoStack[last]
	h.undoStack = h.undoStack[:last]
	h.redoStack = append(h.redoStack, e)

	top := h.undoStack[len(h.undoStack)-1]
	h.canvas.Restore(top.Snapshot)
	log.Printf("[HISTORY] undo #%d %s -> #%d", e.Seq, e.Reason, top.Seq)
	h.notify(OpUndo, top)
	return true
}

// Redo moves the latest undone entry back onto the undo stack and repaints
// the canvas from it. It reports false when there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	last := len(h.redoStack) - 1
	e := h.redoStack[last]
	h.redoStack = h.redoStack[:last]
	h.undoStack = append(h.undoStack, e)

	h.canvas.Restore(e.Snapshot)
	log.Printf("[HISTORY] redo #%d %s", e.Seq, e.Reason)
	h.notify(OpRedo, e)
	return true
}

// Top returns the entry the canvas was last committed or restored to.
func (h *History) Top() Entry {
	return h.undoStack[len(h.undoStack)-1]
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 1 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns how many undo steps are available.
func (h *History) UndoCount() int { return len(h.undoStack) - 1 }

// RedoCount returns how many redo steps are available.
func (h *History) RedoCount() int { return len(h.redoStack) }

// Len returns the number of entries on the undo stack, floor included.
func (h *History) Len() int { return len(h.undoStack) }

// MaxEntries returns the undo stack bound, 0 when unbounded.
func (h *History) MaxEntries() int { return h.maxEntries }

// Entries returns the undo stack, oldest first.
func (h *History) Entries() []Entry {
	return slices.Clone(h.undoStack)
}

// Bytes returns the pixel memory held by both stacks.
func (h *History) Bytes() int {
	n := 0
	for _, e := range h.undoStack {
		n += e.Snapshot.Size()
	}
	for _, e := range h.redoStack {
		n += e.Snapshot.Size()
	}
	return n
}

func (h *History) notify(op OpType, top Entry) {
	if h.OnChange != nil {
		h.OnChange(op, top)
	}
}
