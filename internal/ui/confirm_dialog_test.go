package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewConfirmDialog(t *testing.T) {
	d := NewConfirmDialog("Test Title", "Test message")

	if d.Title != "Test Title" {
		t.Errorf("expected title 'Test Title', got %q", d.Title)
	}
	if d.ConfirmLabel != " Confirm " {
		t.Errorf("expected default confirm label ' Confirm ', got %q", d.ConfirmLabel)
	}
	if d.Width != ModalWidthMedium {
		t.Errorf("expected width %d, got %d", ModalWidthMedium, d.Width)
	}
	if !d.Confirmed() {
		t.Error("confirm dialogs start focused on confirm")
	}
}

func TestNewDeleteDialog_FocusesCancel(t *testing.T) {
	d := NewDeleteDialog("Delete note", "Delete \"x\"?")
	if d.Confirmed() {
		t.Error("delete dialogs start focused on cancel")
	}
	d.ToggleFocus()
	if !d.Confirmed() {
		t.Error("toggle should move focus to delete")
	}
}

func TestWarningDialog_SingleButton(t *testing.T) {
	d := NewWarningDialog("No note selected", "Select a note to edit.")
	d.ToggleFocus()
	if !d.Confirmed() {
		t.Error("warning focus never moves")
	}

	view := ansi.Strip(d.View())
	if !strings.Contains(view, "OK") {
		t.Errorf("warning view missing OK button: %q", view)
	}
	if strings.Contains(view, "Cancel") {
		t.Errorf("warning view should not offer cancel: %q", view)
	}
}

func TestDialogView_ContainsText(t *testing.T) {
	d := NewConfirmDialog("Delete note", "Really?")
	view := ansi.Strip(d.View())
	for _, want := range []string{"Delete note", "Really?", "Confirm", "Cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
