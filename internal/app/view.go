package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/marcus/scratchpad/internal/coordinator"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/styles"
	"github.com/marcus/scratchpad/internal/ui"
	"github.com/mattn/go-runewidth"
)

const (
	headerHeight = 2 // header line + spacing
	footerHeight = 1
	minWidth     = 60
	minHeight    = 16
)

// hint pairs a command with its footer label.
type hint struct {
	command string
	label   string
}

// View renders the entire application UI.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.ImageMissing.Render(msg))
	}

	var bg string
	if m.stickyOnly {
		bg = strings.Repeat("\n", m.height-1)
	} else {
		bg = m.renderMain()
	}

	// Overlays in priority order, lowest first.
	out := m.renderStickies(bg)
	if m.editor != nil {
		out = m.renderEditorOverlay(out)
	}
	if m.prompt != nil {
		out = m.renderPromptOverlay(out)
	}
	if len(m.dialogs) > 0 {
		out = ui.OverlayModal(out, m.dialogs[0].dialog.View(), m.width, m.height)
	}
	return out
}

func (m *Model) renderMain() string {
	contentHeight := m.height - headerHeight
	if m.showFooter {
		contentHeight -= footerHeight
	}
	contentHeight = max(contentHeight, 0)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.onDashboard {
		b.WriteString(m.renderDashboard(m.width, contentHeight))
	} else {
		listWidth := min(m.listWidth, m.width/2)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderList(listWidth, contentHeight),
			m.renderPreview(m.width-listWidth, contentHeight),
		))
	}

	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	chips := []string{styles.Logo.Render("scratchpad")}
	for i, s := range scopes() {
		label := fmt.Sprintf("%d %s", i, s)
		if s == m.scope() {
			chips = append(chips, styles.BarChipActive.Render(label))
		} else {
			chips = append(chips, styles.BarChip.Render(label))
		}
	}
	left := strings.Join(chips, " ")

	right := ""
	if m.toast != "" {
		if m.toastErr {
			right = styles.ToastError.Render(m.toast)
		} else {
			right = styles.ToastSuccess.Render(m.toast)
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(line)
}

// panel renders body inside a bordered box of exactly width x height cells.
func panel(title, body string, width, height int, active bool) string {
	style := styles.PanelInactive
	if active {
		style = styles.PanelActive
	}
	inner := max(height-2, 0)
	content := styles.PanelHeader.Render(title) + "\n" + body
	lines := strings.Split(content, "\n")
	if len(lines) > inner {
		lines = lines[:inner]
	}
	return style.Width(max(width-2, 0)).Height(inner).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderList(width, height int) string {
	inner := max(width-4, 1)
	rows := max(height-4, 1) // border, header and its margin

	title := fmt.Sprintf("%s (%d)", m.category, len(m.items))
	if len(m.items) == 0 {
		body := styles.Muted.Render(runewidth.Truncate(
			"No notes. Press "+m.firstKey("add-note", contextList)+" to add one.", inner, "…"))
		return panel(title, body, width, height, true)
	}

	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.items))

	var b strings.Builder
	for i := start; i < end; i++ {
		name := runewidth.Truncate(m.items[i].Title, inner-2, "…")
		if i == m.cursor {
			b.WriteString(styles.ListCursor.Render("> "))
			b.WriteString(styles.ListItemSelected.Render(runewidth.FillRight(name, inner-2)))
		} else {
			b.WriteString("  ")
			b.WriteString(styles.ListItemNormal.Render(name))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return panel(title, b.String(), width, height, true)
}

func (m *Model) renderPreview(width, height int) string {
	inner := max(width-4, 1)
	if m.preview == "" {
		return panel("Preview", styles.Muted.Render("Select a note to preview it."), width, height, false)
	}

	var b strings.Builder
	for _, seg := range m.notes.RenderImagePlaceholders(m.preview) {
		switch seg.Kind {
		case notes.SegmentImage:
			line := "▣ " + seg.Name + "  " + seg.Path
			b.WriteString(styles.ImageRef.Render(ansi.Truncate(line, inner, "…")))
		default:
			line := strings.ReplaceAll(strings.TrimSuffix(seg.Text, "\n"), "\t", "    ")
			line = ansi.Truncate(line, inner, "…")
			if seg.Name != "" {
				b.WriteString(styles.ImageMissing.Render(line))
			} else {
				b.WriteString(styles.Body.Render(line))
			}
		}
		b.WriteString("\n")
	}

	title := "Preview"
	if id, _ := m.coord.Selected(); id != "" && m.cursor >= 0 && m.cursor < len(m.items) {
		title = m.items[m.cursor].Title
	}
	return panel(runewidth.Truncate(title, inner, "…"), strings.TrimSuffix(b.String(), "\n"), width, height, false)
}

func (m *Model) renderDashboard(width, height int) string {
	leftWidth := width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderStats(leftWidth, height),
		m.renderStickyList(width-leftWidth, height),
	)
}

func (m *Model) renderStats(width, height int) string {
	inner := max(width-4, 10)
	s := m.stats

	row := func(label string, value any) string {
		return fmt.Sprintf("%-18s %s", label, styles.StatValue.Render(fmt.Sprint(value)))
	}

	var lines []string
	for _, c := range notes.FixedCategories {
		lines = append(lines, row(c.String(), s.Counts[c]))
	}
	lines = append(lines,
		row("Total notes", s.Total()),
		row("Sticky notes", s.StickyCount),
		row("Tasks completed", s.TasksCompleted),
		"",
		row("Storage used", humanize.Bytes(uint64(max(s.UsedBytes, 0)))),
	)

	if s.CapacityBytes > 0 {
		g := m.gauge
		g.Width = inner
		lines = append(lines,
			row("Capacity", humanize.Bytes(uint64(s.CapacityBytes))),
			g.ViewAs(float64(s.UsagePercent)/100),
		)
	} else {
		lines = append(lines, styles.Muted.Render("Usage gauge off (storage.capacityBytes)"))
	}

	return panel(coordinator.Dashboard, strings.Join(lines, "\n"), width, height, true)
}

func (m *Model) renderStickyList(width, height int) string {
	inner := max(width-4, 1)
	title := fmt.Sprintf("Sticky notes (%d)", len(m.stickyList))
	if len(m.stickyList) == 0 {
		hint := "Press " + m.firstKey("new-sticky", contextDashboard) + " for a new sticky note."
		return panel(title, styles.Muted.Render(runewidth.Truncate(hint, inner, "…")), width, height, false)
	}

	open := make(map[string]bool, len(m.windows))
	for _, w := range m.windows {
		open[w.sess.ID()] = true
	}

	rows := max(height-4, 1)
	start := 0
	if m.stickyCursor >= rows {
		start = m.stickyCursor - rows + 1
	}
	end := min(start+rows, len(m.stickyList))

	var b strings.Builder
	for i := start; i < end; i++ {
		n := m.stickyList[i]
		name := n.Title
		if open[n.ID] {
			name += " (open)"
		}
		name = runewidth.Truncate(name, inner-2, "…")
		if i == m.stickyCursor {
			b.WriteString(styles.ListCursor.Render("> "))
			b.WriteString(styles.ListItemSelected.Render(runewidth.FillRight(name, inner-2)))
		} else {
			b.WriteString("  ")
			b.WriteString(styles.ListItemNormal.Render(name))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return panel(title, b.String(), width, height, false)
}

func (m *Model) renderFooter() string {
	var hs []hint
	ctx := m.context()
	switch ctx {
	case contextDashboard:
		hs = []hint{{"open-sticky", "open"}, {"delete-sticky", "delete"}, {"new-sticky", "sticky"}}
	case contextSticky:
		hs = []hint{{"close-sticky", "close"}, {"delete-sticky", "delete"}, {"next-sticky", "next"}}
	default:
		hs = []hint{{"add-note", "add"}, {"edit-note", "edit"}, {"delete-note", "delete"},
			{"yank-note", "copy"}, {"new-sticky", "sticky"}}
	}
	hs = append(hs, hint{"run-script", "run"}, hint{"refresh", "refresh"}, hint{"quit", "quit"})
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(m.hints(ctx, hs))
}

// hints renders "key label" pairs using the first key bound to each command.
func (m *Model) hints(context string, hs []hint) string {
	parts := make([]string, 0, len(hs))
	for _, h := range hs {
		if k := m.firstKey(h.command, context); k != "" {
			parts = append(parts, styles.KeyHint.Render(k)+" "+h.label)
		}
	}
	return strings.Join(parts, "  ")
}

func (m *Model) firstKey(command, context string) string {
	keys := m.keymap.KeysFor(command, context)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
