package app

import (
	"github.com/marcus/scratchpad/internal/dashboard"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/store"
	"github.com/marcus/scratchpad/internal/ui"
)

// The methods in this file implement coordinator.View. They only record
// what to draw; View renders it on the next frame.

// ShowCategory replaces the note list.
func (m *Model) ShowCategory(c notes.Category, items []store.Note) {
	m.category = c
	m.onDashboard = false
	m.items = items
	m.cursor = -1
}

// ShowDashboard replaces the list with the dashboard figures.
func (m *Model) ShowDashboard(s dashboard.Stats) {
	m.category = ""
	m.onDashboard = true
	m.items = nil
	m.cursor = -1
	m.preview = ""
	m.stats = s

	list, err := m.notes.ListSticky()
	if err != nil {
		m.logger.Warn("list sticky notes", "err", err)
		list = nil
	}
	m.stickyList = list
	m.stickyCursor = clamp(m.stickyCursor, 0, len(list)-1)
}

// SetPreview sets the preview pane content.
func (m *Model) SetPreview(content string) { m.preview = content }

// UpdateItemTitle renames one list entry in place.
func (m *Model) UpdateItemTitle(id, title string) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Title = title
			return
		}
	}
}

// SelectItem moves the list cursor to id without notifying the coordinator.
func (m *Model) SelectItem(id string) {
	m.cursor = -1
	for i := range m.items {
		if m.items[i].ID == id {
			m.cursor = i
			return
		}
	}
}

// Warn queues an acknowledge-only dialog.
func (m *Model) Warn(title, message string) {
	m.logger.Debug("warning shown", "title", title, "message", message)
	m.dialogs = append(m.dialogs, pendingDialog{dialog: ui.NewWarningDialog(title, message)})
}

// Confirm queues a destructive yes/no dialog. onYes runs only on confirm.
func (m *Model) Confirm(title, question string, onYes func()) {
	m.dialogs = append(m.dialogs, pendingDialog{dialog: ui.NewDeleteDialog(title, question), onYes: onYes})
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
