package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/scratchpad/internal/watch"
)

// Message types for tea.Cmd
type (
	// openEditorMsg opens the note editor on the next update cycle, after
	// the key event that requested it has been fully handled.
	openEditorMsg struct {
		edit bool
	}

	// storeChangedMsg reports a write to the database files.
	storeChangedMsg struct {
		Event watch.Event
	}

	// stickySavedMsg reports a completed sticky autosave.
	stickySavedMsg struct {
		ID string
	}
)

// openEditor defers an editor open to its own message.
func openEditor(edit bool) tea.Cmd {
	return func() tea.Msg {
		return openEditorMsg{edit: edit}
	}
}

// waitForEvent blocks until the watcher reports a change.
func waitForEvent(ch <-chan watch.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{Event: ev}
	}
}

// waitForSave blocks until a sticky note is written.
func waitForSave(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return stickySavedMsg{ID: <-ch}
	}
}
