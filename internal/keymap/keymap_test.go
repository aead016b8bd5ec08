package keymap

import "testing"

func TestLookup_ContextThenGlobal(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		key, context, want string
	}{
		{"e", "list", "edit-note"},
		{"q", "list", "quit"},
		{"ctrl+s", "editor", "save"},
		{"enter", "dashboard", "open-sticky"},
		{"enter", "list", "edit-note"},
		{"F12", "list", ""},
	}
	for _, tc := range tests {
		if got := r.Lookup(tc.key, tc.context); got != tc.want {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tc.key, tc.context, got, tc.want)
		}
	}
}

func TestSetUserOverride(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride("ctrl+n", "add-note")

	if got := r.Lookup("ctrl+n", "list"); got != "add-note" {
		t.Errorf("override not applied, got %q", got)
	}
	keys := r.KeysFor("add-note", "list")
	if len(keys) == 0 || keys[0] != "ctrl+n" {
		t.Errorf("KeysFor should list override first, got %v", keys)
	}
}

func TestBindingsForContext(t *testing.T) {
	r := NewRegistry()
	r.Register(Binding{Key: "b", Command: "two", Context: "x"})
	r.Register(Binding{Key: "a", Command: "one", Context: "x"})
	r.Register(Binding{Key: "z", Command: "global-cmd"})

	got := r.BindingsForContext("x")
	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "b" {
		t.Errorf("unexpected bindings: %+v", got)
	}
	if r.Lookup("z", "x") != "global-cmd" {
		t.Error("empty context should register as global")
	}
}

func TestDefaultBindings_NoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range DefaultBindings() {
		k := b.Context + "/" + b.Key
		if seen[k] {
			t.Errorf("duplicate binding %s", k)
		}
		seen[k] = true
	}
}

func TestLookupLocal_IgnoresGlobal(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if got := r.LookupLocal("q", "editor"); got != "" {
		t.Errorf("LookupLocal(q, editor) = %q, want unbound", got)
	}
	if got := r.LookupLocal("ctrl+s", "editor"); got != "save" {
		t.Errorf("LookupLocal(ctrl+s, editor) = %q, want save", got)
	}
}

func TestLookupLocal_Override(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride("ctrl+x", "save")
	r.SetUserOverride("Q", "quit")

	if got := r.LookupLocal("ctrl+x", "editor"); got != "save" {
		t.Errorf("LookupLocal(ctrl+x, editor) = %q, want save", got)
	}
	if got := r.LookupLocal("ctrl+s", "editor"); got != "save" {
		t.Errorf("default binding lost: LookupLocal(ctrl+s, editor) = %q", got)
	}
	// quit is not an editor command, so Q stays text.
	if got := r.LookupLocal("Q", "editor"); got != "" {
		t.Errorf("LookupLocal(Q, editor) = %q, want unbound", got)
	}
	if got := r.LookupLocal("ctrl+x", "sticky"); got != "" {
		t.Errorf("LookupLocal(ctrl+x, sticky) = %q, want unbound", got)
	}
}
