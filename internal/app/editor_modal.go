package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/scratchpad/internal/coordinator"
	"github.com/marcus/scratchpad/internal/editor"
	appmsg "github.com/marcus/scratchpad/internal/msg"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/styles"
	"github.com/marcus/scratchpad/internal/ui"
)

const editorMaxHeight = 14

// editorModal wraps an editor session in a textarea.
type editorModal struct {
	sess  *editor.Session
	input textarea.Model
	width int
	err   string
}

func newEditorModal(sess *editor.Session, termWidth, termHeight int) *editorModal {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Placeholder = "Type your note..."
	ta.CharLimit = 0

	e := &editorModal{sess: sess, input: ta}
	e.resize(termWidth, termHeight)
	e.input.SetValue(sess.Content())
	return e
}

func (e *editorModal) resize(termWidth, termHeight int) {
	e.width = min(ui.ModalWidthLarge, max(termWidth-4, 30))
	e.input.SetWidth(e.width - 6)
	e.input.SetHeight(min(editorMaxHeight, max(termHeight-12, 3)))
}

func (e *editorModal) view(hints string) string {
	title := e.sess.Title
	if e.sess.Mode == editor.ModeEdit {
		title = "Edit: " + title
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(e.input.View())
	b.WriteString("\n")
	if e.err != "" {
		b.WriteString(styles.ImageMissing.Render(e.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.Muted.Render(hints))

	return styles.ModalBox.Width(e.width - 2).Render(b.String())
}

// handleOpenEditor runs a deferred open. A second request arriving while a
// session is open is dropped.
func (m *Model) handleOpenEditor(msg openEditorMsg) tea.Cmd {
	if m.editor != nil {
		m.logger.Debug("editor open ignored", "reason", "modal open")
		return nil
	}

	var (
		sess *editor.Session
		err  error
	)
	if msg.edit {
		sess, err = m.coord.OpenEdit()
	} else {
		sess, err = m.coord.OpenAdd()
	}
	if err != nil {
		switch {
		case errors.Is(err, coordinator.ErrBusy):
			m.logger.Debug("editor open ignored", "reason", err)
		case errors.Is(err, notes.ErrValidation), errors.Is(err, notes.ErrNotFound):
			// reported by the coordinator
		default:
			m.Warn("Cannot open editor", err.Error())
		}
		return nil
	}

	m.editor = newEditorModal(sess, m.width, m.height)
	return m.editor.input.Focus()
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	e := m.editor
	switch m.keymap.LookupLocal(msg.String(), contextEditor) {
	case "save":
		return m.saveEditor()
	case "cancel":
		e.sess.Cancel()
		m.editor = nil
		return nil
	case "insert-image":
		m.prompt = newPathPrompt(promptImage, m.width)
		return m.prompt.input.Focus()
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	e.err = ""
	return cmd
}

func (m *Model) saveEditor() tea.Cmd {
	e := m.editor
	e.sess.SetContent(e.input.Value())

	err := e.sess.Save()
	switch {
	case err == nil:
		m.editor = nil
		return appmsg.ShowToast("Saved", appmsg.DefaultToastDuration)
	case errors.Is(err, editor.ErrSaveInFlight):
		return nil
	case errors.Is(err, editor.ErrEmpty):
		e.err = "Write something before saving."
		return nil
	case e.sess.Closed():
		// The note vanished; the coordinator has warned and refreshed.
		m.editor = nil
		return nil
	default:
		m.logger.Error("save note", "mode", e.sess.Mode, "err", err)
		e.err = err.Error()
		return nil
	}
}

// insertImage imports path into the open editor at the end of the buffer.
func (m *Model) insertImage(path string) {
	e := m.editor
	if e == nil {
		return
	}
	e.sess.SetContent(e.input.Value())
	if err := e.sess.InsertImage(path); err != nil {
		m.Warn("Cannot insert image", err.Error())
		return
	}
	e.input.SetValue(e.sess.Content())
}

func (m *Model) renderEditorOverlay(bg string) string {
	hints := m.hints(contextEditor, []hint{
		{"save", "save"}, {"insert-image", "image"}, {"cancel", "cancel"},
	})
	box := m.editor.view(hints)
	return ui.OverlayModal(bg, box, m.width, m.height)
}
