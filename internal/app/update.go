package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/scratchpad/internal/coordinator"
	appmsg "github.com/marcus/scratchpad/internal/msg"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/state"
	"github.com/marcus/scratchpad/internal/ui"
)

// Update handles all messages and returns the updated model and commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.editor != nil {
			m.editor.resize(m.width, m.height)
		}
		return m, nil

	case openEditorMsg:
		return m, m.handleOpenEditor(msg)

	case storeChangedMsg:
		m.logger.Debug("store changed", "path", msg.Event.Path)
		if err := m.coord.Refresh(); err != nil {
			m.logger.Warn("refresh after external change", "err", err)
		}
		return m, waitForEvent(m.events)

	case stickySavedMsg:
		if m.onDashboard {
			_ = m.coord.Refresh()
		}
		return m, waitForSave(m.saved)

	case appmsg.ToastMsg:
		return m, m.showToast(msg.Message, msg.IsError, msg.Duration)

	case appmsg.ToastExpiredMsg:
		if msg.Seq == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil
	}

	// Cursor blink and other widget messages go to whatever has focus.
	return m, m.forwardToFocused(msg)
}

func (m *Model) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.prompt != nil:
		m.prompt.input, cmd = m.prompt.input.Update(msg)
	case m.editor != nil:
		m.editor.input, cmd = m.editor.input.Update(msg)
	case m.focusedWindow >= 0:
		w := m.windows[m.focusedWindow]
		w.input, cmd = w.input.Update(msg)
	}
	return cmd
}

// showToast sets the toast text and schedules its expiry. A zero d uses
// the default duration.
func (m *Model) showToast(text string, isErr bool, d time.Duration) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	return appmsg.ExpireToast(m.toastSeq, d)
}

// handleKeyMsg routes a key to the focused overlay or the main view.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	switch m.context() {
	case contextWarning, contextConfirm:
		return m.handleDialogKey(key)
	case contextPicker:
		return m.handlePromptKey(msg)
	case contextEditor:
		return m.handleEditorKey(msg)
	case contextSticky:
		return m.handleStickyKey(msg)
	case contextDashboard:
		return m.handleMainKey(key, contextDashboard)
	default:
		return m.handleMainKey(key, contextList)
	}
}

func (m *Model) handleDialogKey(key string) tea.Cmd {
	if len(m.dialogs) == 0 {
		return nil
	}
	front := m.dialogs[0]
	d := front.dialog

	if d.Kind == ui.KindWarning {
		if m.keymap.LookupLocal(key, contextWarning) == "dismiss" {
			m.dialogs = m.dialogs[1:]
		}
		return nil
	}

	switch m.keymap.LookupLocal(key, contextConfirm) {
	case "toggle":
		d.ToggleFocus()
	case "confirm":
		m.dialogs = m.dialogs[1:]
		if front.onYes != nil {
			front.onYes()
		}
	case "select":
		m.dialogs = m.dialogs[1:]
		if d.Confirmed() && front.onYes != nil {
			front.onYes()
		}
	case "cancel":
		m.dialogs = m.dialogs[1:]
	}
	return nil
}

// handleMainKey handles keys for the list or dashboard, then global keys.
func (m *Model) handleMainKey(key, context string) tea.Cmd {
	command := m.keymap.Lookup(key, context)
	if m.stickyOnly {
		switch command {
		case "quit":
			return m.quit()
		case "new-sticky":
			return m.openStickyCmd("")
		}
		return nil
	}

	switch command {
	case "":
		return nil

	// Note list
	case "cursor-down":
		m.moveCursor(1)
	case "cursor-up":
		m.moveCursor(-1)
	case "cursor-top":
		m.moveCursorTo(0)
	case "cursor-bottom":
		m.moveCursorTo(len(m.items) - 1)
	case "add-note":
		return openEditor(false)
	case "edit-note":
		return openEditor(true)
	case "delete-note":
		_ = m.coord.Delete()
	case "yank-note":
		return m.yankNote()

	// Dashboard
	case "open-sticky":
		if len(m.stickyList) > 0 {
			return m.openStickyCmd(m.stickyList[m.stickyCursor].ID)
		}
	case "delete-sticky":
		if len(m.stickyList) > 0 {
			m.confirmDeleteSticky(m.stickyList[m.stickyCursor].ID)
		}

	// Global
	case "quit":
		return m.quit()
	case "show-dashboard":
		_ = m.coord.SelectCategory(coordinator.Dashboard)
	case "category-1", "category-2", "category-3", "category-4":
		i := int(command[len(command)-1] - '1')
		_ = m.coord.SelectCategory(notes.FixedCategories[i].String())
	case "next-category":
		m.stepScope(1)
	case "prev-category":
		m.stepScope(-1)
	case "toggle-footer":
		m.showFooter = !m.showFooter
	case "refresh":
		if err := m.coord.Refresh(); err == nil {
			return m.showToast("Refreshed", false, 0)
		}
	case "new-sticky":
		return m.openStickyCmd("")
	case "run-script":
		return m.openScriptPrompt()
	case "shrink-list":
		m.resizeList(-listStep)
	case "grow-list":
		m.resizeList(listStep)
	case "next-sticky":
		return m.cycleWindows()
	}
	return nil
}

// moveCursor moves the list or sticky cursor by delta.
func (m *Model) moveCursor(delta int) {
	if m.onDashboard {
		m.stickyCursor = clamp(m.stickyCursor+delta, 0, len(m.stickyList)-1)
		return
	}
	if m.cursor < 0 && delta > 0 {
		m.moveCursorTo(0)
		return
	}
	m.moveCursorTo(m.cursor + delta)
}

// moveCursorTo highlights item i and tells the coordinator.
func (m *Model) moveCursorTo(i int) {
	if m.onDashboard {
		m.stickyCursor = clamp(i, 0, len(m.stickyList)-1)
		return
	}
	if len(m.items) == 0 {
		return
	}
	m.cursor = clamp(i, 0, len(m.items)-1)
	m.coord.SelectNote(m.items[m.cursor].ID)
}

func (m *Model) stepScope(delta int) {
	all := scopes()
	cur := 0
	for i, s := range all {
		if s == m.scope() {
			cur = i
			break
		}
	}
	next := (cur + delta + len(all)) % len(all)
	_ = m.coord.SelectCategory(all[next])
}

func (m *Model) resizeList(delta int) {
	maxWidth := max(minListWidth, m.width/2)
	w := clamp(m.listWidth+delta, minListWidth, maxWidth)
	if w == m.listWidth {
		return
	}
	m.listWidth = w
	if err := state.SetListWidth(w); err != nil {
		m.logger.Warn("save list width", "err", err)
	}
}

func (m *Model) yankNote() tea.Cmd {
	id, content := m.coord.Selected()
	if id == "" {
		return appmsg.ShowErrorToast("No note selected")
	}
	if err := m.copyText(content); err != nil {
		m.logger.Warn("copy to clipboard", "err", err)
		return appmsg.ShowErrorToast(fmt.Sprintf("Copy failed: %v", err))
	}
	return appmsg.ShowToast("Copied to clipboard", appmsg.DefaultToastDuration)
}

func (m *Model) openStickyCmd(id string) tea.Cmd {
	cmd, err := m.openSticky(id)
	if err != nil {
		m.logger.Error("open sticky", "id", id, "err", err)
		m.Warn("Cannot open sticky note", err.Error())
		return nil
	}
	if m.onDashboard {
		_ = m.coord.Refresh()
	}
	return cmd
}

// quit flushes sticky notes, records what was open and exits.
func (m *Model) quit() tea.Cmd {
	if m.quitting {
		return nil
	}
	m.quitting = true

	if m.editor != nil {
		m.editor.sess.Cancel()
		m.editor = nil
	}

	ids := make([]string, 0, len(m.windows))
	for _, w := range m.windows {
		ids = append(ids, w.sess.ID())
	}
	if !m.stickyOnly {
		if err := state.SetOpenStickies(ids); err != nil {
			m.logger.Warn("save open stickies", "err", err)
		}
		if err := state.SetLastCategory(m.scope()); err != nil {
			m.logger.Warn("save last category", "err", err)
		}
	}
	if err := m.stickies.CloseAll(); err != nil {
		m.logger.Error("flush sticky notes", "err", err)
	}
	return tea.Quit
}
