package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_TrimsAndCloses(t *testing.T) {
	var committed []string
	closes := 0
	s := New(Options{
		Commit:  func(c string) error { committed = append(committed, c); return nil },
		OnClose: func() { closes++ },
	})

	s.SetContent("  hello\nworld \n\n")
	require.NoError(t, s.Save())

	assert.Equal(t, []string{"hello\nworld"}, committed)
	assert.True(t, s.Closed())
	assert.Equal(t, 1, closes)

	assert.ErrorIs(t, s.Save(), ErrSessionClosed)
	assert.Equal(t, 1, closes, "onClose runs once")
}

func TestSave_EmptyKeepsOpen(t *testing.T) {
	calls := 0
	s := New(Options{Commit: func(string) error { calls++; return nil }})

	s.SetContent(" \n\t ")
	assert.ErrorIs(t, s.Save(), ErrEmpty)
	assert.False(t, s.Closed())
	assert.Zero(t, calls)
}

func TestSave_CommitErrorKeepsOpen(t *testing.T) {
	boom := errors.New("boom")
	s := New(Options{Content: "x", Commit: func(string) error { return boom }})

	assert.ErrorIs(t, s.Save(), boom)
	assert.False(t, s.Closed())
}

func TestSave_InFlightDropped(t *testing.T) {
	calls := 0
	var s *Session
	var nested error
	s = New(Options{
		Content: "text",
		Commit: func(string) error {
			calls++
			nested = s.Save() // double activation while the first save runs
			return nil
		},
	})

	require.NoError(t, s.Save())
	assert.ErrorIs(t, nested, ErrSaveInFlight)
	assert.Equal(t, 1, calls)
}

func TestCancel(t *testing.T) {
	calls, closes := 0, 0
	s := New(Options{
		Mode:    ModeEdit,
		NoteID:  "n1",
		Content: "orig",
		Commit:  func(string) error { calls++; return nil },
		OnClose: func() { closes++ },
	})

	s.SetContent("changed")
	s.Cancel()
	s.Cancel()

	assert.True(t, s.Closed())
	assert.Zero(t, calls, "cancel never persists")
	assert.Equal(t, 1, closes)

	s.SetContent("ignored")
	assert.Equal(t, "changed", s.Content())
}

func TestInsertImage(t *testing.T) {
	s := New(Options{
		Content:     "caption",
		InsertImage: func(src string) (string, error) { return "[image:x.png]", nil },
	})

	require.NoError(t, s.InsertImage("/tmp/a.png"))
	assert.Equal(t, "caption\n[image:x.png]\n", s.Content())

	s.Cancel()
	assert.ErrorIs(t, s.InsertImage("/tmp/a.png"), ErrSessionClosed)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "add", ModeAdd.String())
	assert.Equal(t, "edit", ModeEdit.String())
}
