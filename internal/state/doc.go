// Package state holds the drawing model of a board: tools, settings, the
// per-drag gesture and the snapshot history behind undo and redo.
//
// # History
//
// History keeps two stacks of full-canvas snapshots:
//
//	h := state.NewHistory(surf, 0) // commits the base entry
//
//	// ... draw on surf ...
//	h.Commit("stroke")
//
//	h.Undo() // repaints surf from the previous entry
//	h.Redo() // repaints surf from the undone entry
//
// Every commit clears the redo stack. Undo never removes the oldest entry,
// so a fresh history has nothing to undo.
//
// Each entry is a complete copy of the canvas pixels. History is unbounded
// unless a maximum is given, in which case the oldest entries are dropped
// and the oldest one kept becomes the new floor.
package state
