package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/scratchpad/internal/styles"
)

// Modal widths.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 72
)

// DialogKind selects the dialog's accent color and buttons.
type DialogKind int

const (
	KindConfirm DialogKind = iota
	KindDanger
	KindWarning
)

// Dialog is a confirmation or warning box. Warnings have a single button.
type Dialog struct {
	Kind         DialogKind
	Title        string
	Message      string
	ConfirmLabel string // e.g., " Delete ", " Yes "
	CancelLabel  string // unused for warnings
	Width        int
	Focus        int // 0 = confirm, 1 = cancel
}

// NewConfirmDialog creates a yes/no dialog focused on the confirm button.
func NewConfirmDialog(title, message string) *Dialog {
	return &Dialog{
		Kind:         KindConfirm,
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
	}
}

// NewDeleteDialog creates a danger dialog focused on cancel.
func NewDeleteDialog(title, message string) *Dialog {
	d := NewConfirmDialog(title, message)
	d.Kind = KindDanger
	d.ConfirmLabel = " Delete "
	d.Focus = 1
	return d
}

// NewWarningDialog creates an acknowledge-only dialog.
func NewWarningDialog(title, message string) *Dialog {
	return &Dialog{
		Kind:         KindWarning,
		Title:        title,
		Message:      message,
		ConfirmLabel: " OK ",
		Width:        ModalWidthMedium,
	}
}

// ToggleFocus moves focus between the two buttons.
func (d *Dialog) ToggleFocus() {
	if d.Kind == KindWarning {
		return
	}
	d.Focus = 1 - d.Focus
}

// Confirmed reports whether the confirm button has focus.
func (d *Dialog) Confirmed() bool { return d.Focus == 0 }

func (d *Dialog) accent() lipgloss.Color {
	switch d.Kind {
	case KindDanger:
		return styles.Error
	case KindWarning:
		return styles.Warning
	default:
		return styles.Primary
	}
}

// View renders the dialog box.
func (d *Dialog) View() string {
	width := d.Width
	if width <= 0 {
		width = ModalWidthMedium
	}
	inner := width - 6 // border + padding

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Foreground(d.accent()).Render(d.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Render(d.Message))
	b.WriteString("\n\n")
	b.WriteString(d.buttons())

	return styles.ModalBox.
		BorderForeground(d.accent()).
		Width(width - 2).
		Render(b.String())
}

func (d *Dialog) buttons() string {
	focused := styles.ButtonFocused
	if d.Kind == KindDanger {
		focused = styles.ButtonDangerFocused
	}

	if d.Kind == KindWarning {
		return focused.Render(d.ConfirmLabel)
	}

	confirm, cancel := styles.Button, styles.Button
	if d.Focus == 0 {
		confirm = focused
	} else {
		cancel = styles.ButtonFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		confirm.Render(d.ConfirmLabel), "  ", cancel.Render(d.CancelLabel))
}
