package layout

import (
	"slices"

	"clinic-portal/internal/model"
)

// DefaultHistoryLimit caps the number of undoable steps
const DefaultHistoryLimit = 50

// Snapshot is the undoable part of the layout: both stat card grids and the
// package/offer cards that cross-type swaps exchange content with.
type Snapshot struct {
	Primary   []model.StatCard    `json:"primary"`
	Secondary []model.StatCard    `json:"secondary"`
	Packages  []model.PackageCard `json:"packages"`
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Primary:   slices.Clone(s.Primary),
		Secondary: slices.Clone(s.Secondary),
		Packages:  slices.Clone(s.Packages),
	}
}

// History is a linear undo/redo log. Entries before index are the states to undo
// to; entries from index on are the states to redo to.
type History struct {
	entries []Snapshot
	index   int
	limit   int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record stores the pre-mutation state, discarding any redo entries and the
// oldest entries beyond the limit.
func (h *History) Record(pre Snapshot) {
	h.entries = append(h.entries[:h.index], pre.Clone())
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]Snapshot(nil), h.entries[over:]...)
	}
	h.index = len(h.entries)
}

// Undo returns the state preceding current and keeps current for Redo
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if h.index == 0 {
		return Snapshot{}, false
	}
	h.index--
	prev := h.entries[h.index]
	h.entries[h.index] = current.Clone()
	return prev.Clone(), true
}

// Redo returns the state following current and keeps current for Undo
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if h.index >= len(h.entries) {
		return Snapshot{}, false
	}
	next := h.entries[h.index]
	h.entries[h.index] = current.Clone()
	h.index++
	return next.Clone(), true
}

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.entries) }

// Len is the number of stored entries
func (h *History) Len() int { return len(h.entries) }

// Index is the cursor: the number of steps that can be undone
func (h *History) Index() int { return h.index }

func (h *History) Reset() {
	h.entries = nil
	h.index = 0
}
