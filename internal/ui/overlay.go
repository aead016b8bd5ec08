// Package ui provides dialogs and compositing helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle greys out background content behind modals. Existing ANSI codes
// are stripped first because faint does not combine reliably with colors.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the widest visual width among lines.
func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

// dimLine strips ANSI codes and applies DimStyle.
func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// spliceRow writes boxLine over bgLine starting at column x. When dim is
// set the visible background is greyed out, otherwise it keeps its styling.
func spliceRow(bgLine, boxLine string, x, boxWidth int, dim bool) string {
	var b strings.Builder
	bgWidth := ansi.StringWidth(bgLine)

	if x > 0 {
		left := ansi.Truncate(bgLine, x, "")
		if dim {
			b.WriteString(dimLine(left))
		} else {
			b.WriteString(left)
		}
		if w := ansi.StringWidth(left); w < x {
			b.WriteString(strings.Repeat(" ", x-w))
		}
	}

	b.WriteString(boxLine)
	if pad := boxWidth - ansi.StringWidth(boxLine); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	if end := x + boxWidth; bgWidth > end {
		right := ansi.Cut(bgLine, end, bgWidth)
		if dim {
			b.WriteString(dimLine(right))
		} else {
			b.WriteString(right)
		}
	}
	return b.String()
}

// OverlayAt draws box over background with its top-left corner at (x, y).
// The result always has height lines.
func OverlayAt(background, box string, x, y, height int, dim bool) string {
	bgLines := strings.Split(background, "\n")
	boxLines := strings.Split(box, "\n")
	boxWidth := maxLineWidth(boxLines)
	x, y = max(x, 0), max(y, 0)

	out := make([]string, height)
	for row := 0; row < height; row++ {
		bg := ""
		if row < len(bgLines) {
			bg = bgLines[row]
		}
		switch i := row - y; {
		case i >= 0 && i < len(boxLines):
			out[row] = spliceRow(bg, boxLines[i], x, boxWidth, dim)
		case dim:
			out[row] = dimLine(bg)
		default:
			out[row] = bg
		}
	}
	return strings.Join(out, "\n")
}

// OverlayModal centers modal over a dimmed background.
func OverlayModal(background, modal string, width, height int) string {
	lines := strings.Split(modal, "\n")
	x := (width - maxLineWidth(lines)) / 2
	y := (height - len(lines)) / 2
	return OverlayAt(background, modal, x, y, height, true)
}
