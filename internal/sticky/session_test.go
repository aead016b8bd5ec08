package sticky

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend is an in-memory Backend that records writes.
type memBackend struct {
	mu     sync.Mutex
	notes  map[string]string
	writes []string
	next   int
}

func newMemBackend() *memBackend {
	return &memBackend{notes: make(map[string]string)}
}

func (b *memBackend) NewSticky() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := fmt.Sprintf("s%d", b.next)
	b.notes[id] = ""
	return id, nil
}

func (b *memBackend) StickyContent(id string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.notes[id]
	if !ok {
		return "", errors.New("not found")
	}
	return c, nil
}

func (b *memBackend) SaveSticky(id, content string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.notes[id]; !ok {
		return errors.New("not found")
	}
	b.notes[id] = content
	b.writes = append(b.writes, content)
	return nil
}

func (b *memBackend) DeleteSticky(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.notes, id)
	return nil
}

func (b *memBackend) writeLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.writes...)
}

func TestSession_RapidChangesWriteOnce(t *testing.T) {
	b := newMemBackend()
	m := NewManager(b, 40*time.Millisecond, nil)

	s, err := m.New()
	require.NoError(t, err)

	for _, c := range []string{"h", "he", "hel", "hell", "hello"} {
		require.NoError(t, s.Change(c))
	}

	assert.Eventually(t, func() bool { return len(b.writeLog()) == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"hello"}, b.writeLog())
}

func TestSession_CloseFlushesPending(t *testing.T) {
	b := newMemBackend()
	m := NewManager(b, time.Hour, nil)

	s, err := m.New()
	require.NoError(t, err)
	require.NoError(t, s.Change("last words"))
	assert.True(t, s.Pending())

	require.NoError(t, m.Close(s.ID()))

	assert.Equal(t, []string{"last words"}, b.writeLog())
	assert.ErrorIs(t, s.Change("too late"), ErrClosed)
	_, open := m.Get(s.ID())
	assert.False(t, open)
}

func TestSession_CloseWithoutChangeSkipsWrite(t *testing.T) {
	b := newMemBackend()
	m := NewManager(b, time.Hour, nil)

	s, err := m.New()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Empty(t, b.writeLog())
}

func TestManager_OpenReusesSession(t *testing.T) {
	b := newMemBackend()
	m := NewManager(b, time.Hour, nil)

	s, err := m.New()
	require.NoError(t, err)
	again, err := m.Open(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, again)

	_, err = m.Open("missing")
	assert.Error(t, err)
}

func TestManager_IndependentSessions(t *testing.T) {
	b := newMemBackend()
	m := NewManager(b, 30*time.Millisecond, nil)

	a, err := m.New()
	require.NoError(t, err)
	c, err := m.New()
	require.NoError(t, err)

	require.NoError(t, a.Change("a1"))
	require.NoError(t, c.Change("c1"))
	require.NoError(t, a.Change("a2"))

	assert.Eventually(t, func() bool { return len(b.writeLog()) == 2 }, time.Second, 10*time.Millisecond)
	content, _ := b.StickyContent(a.ID())
	assert.Equal(t, "a2", content)
	content, _ = b.StickyContent(c.ID())
	assert.Equal(t, "c1", content)
	assert.Equal(t, []string{a.ID(), c.ID()}, m.IDs())
}

func TestManager_CloseAll(t *testing.T) {
	b := newMemBackend()
	m := NewManager(b, time.Hour, nil)

	var saved []string
	var mu sync.Mutex
	m.OnSave = func(id string) {
		mu.Lock()
		saved = append(saved, id)
		mu.Unlock()
	}

	a, err := m.New()
	require.NoError(t, err)
	c, err := m.New()
	require.NoError(t, err)
	require.NoError(t, a.Change("alpha"))
	require.NoError(t, c.Change("gamma"))

	require.NoError(t, m.CloseAll())

	assert.ElementsMatch(t, []string{"alpha", "gamma"}, b.writeLog())
	assert.ElementsMatch(t, []string{a.ID(), c.ID()}, saved)
	assert.Empty(t, m.IDs())
}

func TestManager_Delete(t *testing.T) {
	b := newMemBackend()
	m := NewManager(b, time.Hour, nil)

	s, err := m.New()
	require.NoError(t, err)
	require.NoError(t, s.Change("gone"))
	require.NoError(t, m.Delete(s.ID()))

	_, err = b.StickyContent(s.ID())
	assert.Error(t, err)
	assert.Empty(t, b.writeLog(), "deleting discards the pending save")
}
