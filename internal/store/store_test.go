package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "notes.db"), DriverSQLite)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "notes.db")
	s, err := Open(path, "")
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, path, s.Path())
	assert.FileExists(t, path)
}

func TestOpen_Unavailable(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "notes.db"), "no-such-driver")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInsertGet(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Insert("Notes", "Hello", "Hello\nWorld")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	n, err := s.Get("Notes", id)
	require.NoError(t, err)
	assert.Equal(t, Note{ID: id, Category: "Notes", Title: "Hello", Content: "Hello\nWorld"}, *n)

	// Same id under a different category is not visible
	_, err = s.Get("Contacts", id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_InsertionOrder(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.List("Bookmarks")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var ids []string
	for _, title := range []string{"c", "a", "b"} {
		id, err := s.Insert("Bookmarks", title, title)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err = s.Insert("Notes", "other", "other")
	require.NoError(t, err)

	list, err := s.List("Bookmarks")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, n := range list {
		assert.Equal(t, ids[i], n.ID)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Insert("Notes", "old", "old")
	require.NoError(t, err)

	ok, err := s.Update(id, "Notes", "new", "new body")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := s.Get("Notes", id)
	require.NoError(t, err)
	assert.Equal(t, "new", n.Title)
	assert.Equal(t, "new body", n.Content)

	ok, err = s.Update("missing", "Notes", "x", "x")
	require.NoError(t, err)
	assert.False(t, ok, "update of a missing note is a no-op")
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Insert("Contacts", "bob", "bob")
	require.NoError(t, err)

	ok, err := s.Delete(id, "Notes")
	require.NoError(t, err)
	assert.False(t, ok, "wrong category must not delete")

	ok, err = s.Delete(id, "Contacts")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Get("Contacts", id)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = s.Delete(id, "Contacts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCount(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.Insert("Notes", "t", "c")
		require.NoError(t, err)
	}

	n, err := s.Count("Notes")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.Count("CoPilot")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContentByID_SaveContent(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Insert("sticky", "Untitled", "")
	require.NoError(t, err)

	ok, err := s.SaveContent(id, "todo", "todo\nmilk")
	require.NoError(t, err)
	assert.True(t, ok)

	content, err := s.ContentByID(id)
	require.NoError(t, err)
	assert.Equal(t, "todo\nmilk", content)

	_, err = s.ContentByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = s.SaveContent("missing", "x", "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsedBytes(t *testing.T) {
	s := newTestStore(t)

	n, err := s.UsedBytes()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Insert("Notes", "a", "abcd")
	require.NoError(t, err)
	_, err = s.Insert("sticky", "é", "é") // two bytes
	require.NoError(t, err)

	n, err = s.UsedBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestTasks(t *testing.T) {
	s := newTestStore(t)

	a, err := s.AddTask("write docs")
	require.NoError(t, err)
	_, err = s.AddTask("ship")
	require.NoError(t, err)

	n, err := s.CountCompletedTasks()
	require.NoError(t, err)
	assert.Zero(t, n)

	ok, err := s.SetTaskCompleted(a, true)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = s.CountCompletedTasks()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, err = s.SetTaskCompleted("missing", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	s, err := Open(path, DriverSQLite)
	require.NoError(t, err)
	id, err := s.Insert("Notes", "kept", "kept")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, DriverSQLite)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Get("Notes", id)
	require.NoError(t, err)
	assert.Equal(t, "kept", n.Content)
}
