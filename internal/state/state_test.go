package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// withTempState points the package at a temp state file and restores it afterwards.
func withTempState(t *testing.T) string {
	t.Helper()
	originalPath := path
	originalCurrent := current
	t.Cleanup(func() {
		path = originalPath
		current = originalCurrent
	})
	return filepath.Join(t.TempDir(), "state.json")
}

func TestInitWithDir(t *testing.T) {
	file := withTempState(t)

	if err := InitWithDir(filepath.Dir(file)); err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}
	if current == nil {
		t.Fatal("current state should be initialized")
	}
	if got := GetLastCategory(); got != "" {
		t.Errorf("default LastCategory = %q, want empty", got)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	file := withTempState(t)
	path = filepath.Join(filepath.Dir(file), "nonexistent", "state.json")

	if err := Load(); err != nil {
		t.Fatalf("Load() for non-existent file should return nil, got %v", err)
	}
	if current == nil {
		t.Error("current should be initialized with defaults")
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	file := withTempState(t)
	path = file

	data, _ := json.Marshal(State{LastCategory: "Bookmarks", ListWidth: 40})
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("failed to write test state file: %v", err)
	}

	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := GetLastCategory(); got != "Bookmarks" {
		t.Errorf("LastCategory = %q, want Bookmarks", got)
	}
	if got := GetListWidth(); got != 40 {
		t.Errorf("ListWidth = %d, want 40", got)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	file := withTempState(t)
	path = file

	if err := os.WriteFile(file, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestSetters_Persist(t *testing.T) {
	file := withTempState(t)
	path = file
	current = &State{}

	if err := SetLastCategory("Dashboard"); err != nil {
		t.Fatalf("SetLastCategory() failed: %v", err)
	}
	if err := SetListWidth(28); err != nil {
		t.Fatalf("SetListWidth() failed: %v", err)
	}
	if err := SetOpenStickies([]string{"a", "b"}); err != nil {
		t.Fatalf("SetOpenStickies() failed: %v", err)
	}

	// Reload from disk
	current = nil
	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := GetLastCategory(); got != "Dashboard" {
		t.Errorf("LastCategory = %q, want Dashboard", got)
	}
	if got := GetListWidth(); got != 28 {
		t.Errorf("ListWidth = %d, want 28", got)
	}
	if got := GetOpenStickies(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("OpenStickies = %v, want [a b]", got)
	}
}

func TestGetters_NilState(t *testing.T) {
	withTempState(t)
	current = nil

	if got := GetLastCategory(); got != "" {
		t.Errorf("GetLastCategory() = %q, want empty", got)
	}
	if got := GetListWidth(); got != 0 {
		t.Errorf("GetListWidth() = %d, want 0", got)
	}
	if got := GetOpenStickies(); got != nil {
		t.Errorf("GetOpenStickies() = %v, want nil", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	file := withTempState(t)
	path = file
	current = &State{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = SetListWidth(20 + n)
		}(i)
		go func() {
			defer wg.Done()
			_ = GetListWidth()
		}()
	}
	wg.Wait()

	if w := GetListWidth(); w < 20 || w > 29 {
		t.Errorf("ListWidth = %d, want a value written by a goroutine", w)
	}
}
