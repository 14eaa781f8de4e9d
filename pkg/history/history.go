// Package history holds the editor's undo/redo state: two stacks of
// full section-model snapshots, decoupled from persistence. The 500ms
// debounce that decides what counts as a "meaningful" edit lives with
// the event loop; this package only manages snapshots.
package history

import (
	"github.com/entwurf/entwurf-cli/pkg/models"
	"github.com/entwurf/entwurf-cli/pkg/sections"
)

// History keeps past snapshots (older first, newest last) and future
// snapshots (soonest redo first). Invariant: the newest past entry is
// the current model, so the seeded baseline can never be undone away.
// All snapshots are deep copies; the caller keeps mutating its working
// model freely.
type History struct {
	past   [][]models.Section
	future [][]models.Section
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Seed installs the initially loaded model as the undo baseline. Empty
// models are not seeded; there is nothing to undo back to.
func (h *History) Seed(snapshot []models.Section) {
	if len(snapshot) == 0 {
		return
	}
	h.past = [][]models.Section{sections.Clone(snapshot)}
	h.future = nil
}

// Capture appends a snapshot of the current model. A snapshot that is
// deep-equal to the newest past entry is skipped, so a debounce firing
// without an effective change records nothing. Any redo branch is
// discarded.
func (h *History) Capture(snapshot []models.Section) {
	if n := len(h.past); n > 0 && sections.Equal(h.past[n-1], snapshot) {
		return
	}
	h.past = append(h.past, sections.Clone(snapshot))
	h.future = nil
}

// Undo moves the pre-undo current model to the front of the redo stack
// and returns the previous snapshot as the new current model. Returns
// (current, false) when only the baseline is left.
func (h *History) Undo(current []models.Section) ([]models.Section, bool) {
	if !h.CanUndo() {
		return current, false
	}
	h.past = h.past[:len(h.past)-1]
	h.future = append([][]models.Section{sections.Clone(current)}, h.future...)
	return sections.Clone(h.past[len(h.past)-1]), true
}

// Redo is the mirror of Undo: the front of the redo stack becomes the
// current model and is appended to the past stack.
func (h *History) Redo(current []models.Section) ([]models.Section, bool) {
	if !h.CanRedo() {
		return current, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, sections.Clone(next))
	return sections.Clone(next), true
}

// CanUndo reports whether a state before the current one exists.
func (h *History) CanUndo() bool { return len(h.past) > 1 }

// CanRedo reports whether a redo target exists.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the sizes of the past and future stacks.
func (h *History) Depth() (past, future int) {
	return len(h.past), len(h.future)
}
