package keymap

import (
	"sort"
	"strings"
	"sync"
)

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string // "global" applies everywhere without a more specific binding
}

// Registry resolves keys to commands. User overrides take precedence over
// the defaults.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[string]map[string]string // context -> key -> command
	overrides map[string]string            // key -> command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[string]map[string]string),
		overrides: make(map[string]string),
	}
}

// RegisterDefaults adds DefaultBindings to r.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.Register(b)
	}
}

// Register adds or replaces a binding.
func (r *Registry) Register(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx := b.Context
	if ctx == "" {
		ctx = "global"
	}
	if r.bindings[ctx] == nil {
		r.bindings[ctx] = make(map[string]string)
	}
	r.bindings[ctx][b.Key] = b.Command
}

// SetUserOverride binds key to command in every context.
func (r *Registry) SetUserOverride(key, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[strings.TrimSpace(key)] = strings.TrimSpace(command)
}

// Lookup returns the command for key in context, falling back to global.
// Returns "" when the key is unbound.
func (r *Registry) Lookup(key, context string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.overrides[key]; ok {
		return cmd
	}
	if cmd, ok := r.bindings[context][key]; ok {
		return cmd
	}
	return r.bindings["global"][key]
}

// LookupLocal returns the command bound to key in context only. Text entry
// contexts use it so that printable keys reach the input. An override
// applies when its command is one of the context's commands.
func (r *Registry) LookupLocal(key, context string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.overrides[key]; ok && r.hasCommand(context, cmd) {
		return cmd
	}
	return r.bindings[context][key]
}

// hasCommand reports whether any key in context is bound to command.
// Callers hold r.mu.
func (r *Registry) hasCommand(context, command string) bool {
	for _, cmd := range r.bindings[context] {
		if cmd == command {
			return true
		}
	}
	return false
}

// BindingsForContext returns the bindings of context, sorted by key.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	for key, cmd := range r.bindings[context] {
		out = append(out, Binding{Key: key, Command: cmd, Context: context})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// KeysFor returns the keys that trigger command in context, overrides first.
func (r *Registry) KeysFor(command, context string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []string
	for key, cmd := range r.overrides {
		if cmd == command {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var bound []string
	for _, ctx := range []string{context, "global"} {
		for key, cmd := range r.bindings[ctx] {
			if cmd == command {
				bound = append(bound, key)
			}
		}
	}
	sort.Strings(bound)
	return append(keys, bound...)
}
