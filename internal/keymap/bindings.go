package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "0", Command: "show-dashboard", Context: "global"},
		{Key: "1", Command: "category-1", Context: "global"},
		{Key: "2", Command: "category-2", Context: "global"},
		{Key: "3", Command: "category-3", Context: "global"},
		{Key: "4", Command: "category-4", Context: "global"},
		{Key: "tab", Command: "next-category", Context: "global"},
		{Key: "shift+tab", Command: "prev-category", Context: "global"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global"},
		{Key: "r", Command: "refresh", Context: "global"},
		{Key: "s", Command: "new-sticky", Context: "global"},
		{Key: "x", Command: "run-script", Context: "global"},
		{Key: "<", Command: "shrink-list", Context: "global"},
		{Key: ">", Command: "grow-list", Context: "global"},
		{Key: "ctrl+n", Command: "next-sticky", Context: "global"},

		// Note list
		{Key: "j", Command: "cursor-down", Context: "list"},
		{Key: "down", Command: "cursor-down", Context: "list"},
		{Key: "k", Command: "cursor-up", Context: "list"},
		{Key: "up", Command: "cursor-up", Context: "list"},
		{Key: "g", Command: "cursor-top", Context: "list"},
		{Key: "G", Command: "cursor-bottom", Context: "list"},
		{Key: "a", Command: "add-note", Context: "list"},
		{Key: "n", Command: "add-note", Context: "list"},
		{Key: "e", Command: "edit-note", Context: "list"},
		{Key: "enter", Command: "edit-note", Context: "list"},
		{Key: "d", Command: "delete-note", Context: "list"},
		{Key: "y", Command: "yank-note", Context: "list"},

		// Dashboard (sticky note list)
		{Key: "j", Command: "cursor-down", Context: "dashboard"},
		{Key: "down", Command: "cursor-down", Context: "dashboard"},
		{Key: "k", Command: "cursor-up", Context: "dashboard"},
		{Key: "up", Command: "cursor-up", Context: "dashboard"},
		{Key: "enter", Command: "open-sticky", Context: "dashboard"},
		{Key: "o", Command: "open-sticky", Context: "dashboard"},
		{Key: "D", Command: "delete-sticky", Context: "dashboard"},

		// Editor modal
		{Key: "ctrl+s", Command: "save", Context: "editor"},
		{Key: "esc", Command: "cancel", Context: "editor"},
		{Key: "ctrl+o", Command: "insert-image", Context: "editor"},

		// Sticky note window
		{Key: "esc", Command: "close-sticky", Context: "sticky"},
		{Key: "ctrl+w", Command: "close-sticky", Context: "sticky"},
		{Key: "ctrl+d", Command: "delete-sticky", Context: "sticky"},
		{Key: "ctrl+n", Command: "next-sticky", Context: "sticky"},

		// Confirm / warning dialogs
		{Key: "y", Command: "confirm", Context: "confirm"},
		{Key: "enter", Command: "select", Context: "confirm"},
		{Key: "tab", Command: "toggle", Context: "confirm"},
		{Key: "left", Command: "toggle", Context: "confirm"},
		{Key: "right", Command: "toggle", Context: "confirm"},
		{Key: "n", Command: "cancel", Context: "confirm"},
		{Key: "esc", Command: "cancel", Context: "confirm"},
		{Key: "enter", Command: "dismiss", Context: "warning"},
		{Key: "esc", Command: "dismiss", Context: "warning"},

		// File picker
		{Key: "enter", Command: "accept", Context: "picker"},
		{Key: "esc", Command: "cancel", Context: "picker"},
	}
}
