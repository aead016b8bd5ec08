package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/scratchpad/internal/config"
	"github.com/marcus/scratchpad/internal/images"
	"github.com/marcus/scratchpad/internal/launcher"
	"github.com/marcus/scratchpad/internal/styles"
	"github.com/marcus/scratchpad/internal/ui"
)

type promptPurpose int

const (
	promptImage promptPurpose = iota
	promptScript
)

// pathPrompt asks for a file path, completing entries that match pattern.
type pathPrompt struct {
	purpose promptPurpose
	title   string
	pattern string
	width   int
	input   textinput.Model
}

func newPathPrompt(purpose promptPurpose, termWidth int) *pathPrompt {
	p := &pathPrompt{purpose: purpose}
	switch purpose {
	case promptImage:
		p.title, p.pattern = "Insert image", images.Pattern
	case promptScript:
		p.title, p.pattern = "Run script", launcher.Pattern
	}
	p.width = min(ui.ModalWidthLarge, max(termWidth-4, 30))

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "~/path/to/file"
	ti.ShowSuggestions = true
	ti.Width = p.width - 10
	p.input = ti
	p.refreshSuggestions()
	return p
}

func (p *pathPrompt) refreshSuggestions() {
	p.input.SetSuggestions(pathSuggestions(p.input.Value(), p.pattern))
}

// path returns the entered path with ~ expanded.
func (p *pathPrompt) path() string {
	return config.ExpandPath(strings.TrimSpace(p.input.Value()))
}

func (p *pathPrompt) view(hints string) string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("Files matching %s", p.pattern)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(hints))
	return styles.ModalBox.Width(p.width - 2).Render(b.String())
}

// pathSuggestions lists the entries next to input that are directories or
// match pattern. Suggestions keep the prefix exactly as typed so that the
// input's prefix matching works with ~ and relative paths.
func pathSuggestions(input, pattern string) []string {
	sep := string(filepath.Separator)
	prefix := ""
	if i := strings.LastIndex(input, sep); i >= 0 {
		prefix = input[:i+1]
	}
	dir := "."
	if prefix != "" {
		dir = config.ExpandPath(prefix)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			out = append(out, prefix+name+sep)
			continue
		}
		if ok, _ := doublestar.Match(pattern, strings.ToLower(name)); ok {
			out = append(out, prefix+name)
		}
	}
	return out
}

func (m *Model) openScriptPrompt() tea.Cmd {
	m.prompt = newPathPrompt(promptScript, m.width)
	return m.prompt.input.Focus()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keymap.LookupLocal(msg.String(), contextPicker) {
	case "accept":
		return m.acceptPrompt()
	case "cancel":
		m.prompt = nil
		return nil
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	m.prompt.refreshSuggestions()
	return cmd
}

func (m *Model) acceptPrompt() tea.Cmd {
	p := m.prompt
	m.prompt = nil

	path := p.path()
	if path == "" {
		return nil
	}

	switch p.purpose {
	case promptImage:
		m.insertImage(path)
		return nil
	case promptScript:
		return m.runScript(path)
	}
	return nil
}

// runScript launches path detached. Failures are shown, never fatal.
func (m *Model) runScript(path string) tea.Cmd {
	if !launcher.Runnable(path) {
		m.Warn("Unsupported file", fmt.Sprintf("%s is not a script (%s).", filepath.Base(path), launcher.Pattern))
		return nil
	}
	if err := m.launcher.Run(path); err != nil {
		m.logger.Warn("run script", "path", path, "err", err)
		m.Warn("Launch failed", err.Error())
		return nil
	}
	return m.showToast("Started "+filepath.Base(path), false, 0)
}

func (m *Model) renderPromptOverlay(bg string) string {
	hints := m.hints(contextPicker, []hint{{"accept", "open"}, {"cancel", "cancel"}})
	return ui.OverlayModal(bg, m.prompt.view(hints+"  tab complete"), m.width, m.height)
}
