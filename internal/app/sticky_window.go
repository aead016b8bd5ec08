package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/sticky"
	"github.com/marcus/scratchpad/internal/styles"
	"github.com/marcus/scratchpad/internal/ui"
)

const (
	stickyWidth  = 34
	stickyHeight = 8
)

// stickyWindow is one on-screen sticky note.
type stickyWindow struct {
	sess  *sticky.Session
	input textarea.Model
}

func newStickyWindow(sess *sticky.Session) *stickyWindow {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.Placeholder = "Jot something down..."
	ta.CharLimit = 0
	ta.SetWidth(stickyWidth - 4)
	ta.SetHeight(stickyHeight)
	ta.SetValue(sess.Content())
	return &stickyWindow{sess: sess, input: ta}
}

func (w *stickyWindow) view(focused bool) string {
	title := notes.DeriveTitle(w.input.Value(), notes.Sticky)
	if w.sess.Pending() {
		title += " •"
	}

	box := styles.StickyBox.Width(stickyWidth - 2)
	if focused {
		box = box.BorderForeground(styles.Primary)
	}

	var b strings.Builder
	b.WriteString(styles.Title.Foreground(styles.StickyInk).Render(title))
	b.WriteString("\n")
	b.WriteString(w.input.View())
	return box.Render(b.String())
}

// openSticky shows the sticky note with id, creating a new one when id is
// empty. An already open note is focused instead of opened twice.
func (m *Model) openSticky(id string) (tea.Cmd, error) {
	if id != "" {
		for i, w := range m.windows {
			if w.sess.ID() == id {
				return m.focusWindow(i), nil
			}
		}
	}

	var (
		sess *sticky.Session
		err  error
	)
	if id == "" {
		sess, err = m.stickies.New()
	} else {
		sess, err = m.stickies.Open(id)
	}
	if err != nil {
		return nil, err
	}

	m.windows = append(m.windows, newStickyWindow(sess))
	return m.focusWindow(len(m.windows) - 1), nil
}

// focusWindow gives input focus to window i, or to the main view when i < 0.
func (m *Model) focusWindow(i int) tea.Cmd {
	for _, w := range m.windows {
		w.input.Blur()
	}
	if i < 0 || i >= len(m.windows) {
		m.focusedWindow = -1
		return nil
	}
	m.focusedWindow = i
	return m.windows[i].input.Focus()
}

// cycleWindows moves focus main -> first window -> ... -> last -> main.
func (m *Model) cycleWindows() tea.Cmd {
	if len(m.windows) == 0 {
		return nil
	}
	next := m.focusedWindow + 1
	if next >= len(m.windows) {
		next = -1
		if m.stickyOnly {
			next = 0
		}
	}
	return m.focusWindow(next)
}

// removeWindow drops the window for id without saving.
func (m *Model) removeWindow(id string) {
	for i, w := range m.windows {
		if w.sess.ID() == id {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			break
		}
	}
	next := len(m.windows) - 1
	if !m.stickyOnly {
		next = -1
	}
	m.focusWindow(next)
}

// closeWindow flushes the focused note and removes its window.
func (m *Model) closeWindow() tea.Cmd {
	w := m.windows[m.focusedWindow]
	id := w.sess.ID()

	err := m.stickies.Close(id)
	m.removeWindow(id)
	if err != nil {
		m.logger.Error("close sticky", "id", id, "err", err)
		m.Warn("Save failed", err.Error())
	}
	return m.afterStickyChange()
}

// confirmDeleteSticky asks before removing the note with id.
func (m *Model) confirmDeleteSticky(id string) {
	m.Confirm("Delete sticky note", "Delete this sticky note permanently?", func() {
		if err := m.stickies.Delete(id); err != nil && !errors.Is(err, notes.ErrNotFound) {
			m.logger.Error("delete sticky", "id", id, "err", err)
			m.Warn("Delete failed", err.Error())
		}
		m.removeWindow(id)
		_ = m.afterStickyChange()
	})
}

// afterStickyChange repaints the dashboard, or quits a standalone window
// once nothing is left open.
func (m *Model) afterStickyChange() tea.Cmd {
	if m.stickyOnly && len(m.windows) == 0 {
		return m.quit()
	}
	if m.onDashboard {
		_ = m.coord.Refresh()
	}
	return nil
}

func (m *Model) handleStickyKey(msg tea.KeyMsg) tea.Cmd {
	w := m.windows[m.focusedWindow]
	switch m.keymap.LookupLocal(msg.String(), contextSticky) {
	case "close-sticky":
		return m.closeWindow()
	case "delete-sticky":
		m.confirmDeleteSticky(w.sess.ID())
		return nil
	case "next-sticky":
		return m.cycleWindows()
	}

	before := w.input.Value()
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if after := w.input.Value(); after != before {
		if err := w.sess.Change(after); err != nil {
			m.logger.Warn("sticky change", "id", w.sess.ID(), "err", err)
		}
	}
	return cmd
}

// renderStickies cascades the sticky windows from the top-right corner.
// The focused window is drawn last so it is on top.
func (m *Model) renderStickies(bg string) string {
	order := make([]int, 0, len(m.windows))
	for i := range m.windows {
		if i != m.focusedWindow {
			order = append(order, i)
		}
	}
	if m.focusedWindow >= 0 {
		order = append(order, m.focusedWindow)
	}

	for _, i := range order {
		box := m.windows[i].view(i == m.focusedWindow)
		x := m.width - stickyWidth - 2 - i*3
		y := 2 + i*2
		bg = ui.OverlayAt(bg, box, x, y, m.height, false)
	}
	return bg
}
