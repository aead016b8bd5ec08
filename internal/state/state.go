package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences that change while the app runs.
type State struct {
	LastCategory string `json:"lastCategory,omitempty"` // category or "Dashboard"

	// List pane width in columns (0 = use config default)
	ListWidth int `json:"listWidth,omitempty"`

	// Open sticky notes, restored on the next start
	OpenStickies []string `json:"openStickies,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "scratchpad"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetLastCategory returns the category shown when the app last exited.
func GetLastCategory() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.LastCategory
}

// SetLastCategory saves the selected category.
func SetLastCategory(category string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.LastCategory = category
	mu.Unlock()
	return Save()
}

// GetListWidth returns the saved list pane width.
// Returns 0 if no preference is saved (use default).
func GetListWidth() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.ListWidth
}

// SetListWidth saves the list pane width.
func SetListWidth(width int) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.ListWidth = width
	mu.Unlock()
	return Save()
}

// GetOpenStickies returns the ids of sticky notes open at last exit.
func GetOpenStickies() []string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return nil
	}
	out := make([]string, len(current.OpenStickies))
	copy(out, current.OpenStickies)
	return out
}

// SetOpenStickies saves the ids of currently open sticky notes.
func SetOpenStickies(ids []string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.OpenStickies = append([]string(nil), ids...)
	mu.Unlock()
	return Save()
}
