// Package sticky manages sticky-note windows. Each open note autosaves
// after a quiet period and flushes synchronously when closed.
package sticky

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ErrClosed is returned for changes to a closed session.
var ErrClosed = errors.New("sticky note closed")

// Backend persists sticky notes.
type Backend interface {
	NewSticky() (string, error)
	StickyContent(id string) (string, error)
	SaveSticky(id, content string) error
	DeleteSticky(id string) error
}

// Session is one open sticky note.
type Session struct {
	id      string
	backend Backend
	logger  *slog.Logger
	deb     *Debouncer
	onSave  func(id string)

	mu      sync.Mutex
	content string
	closed  bool

	saveMu    sync.Mutex // one write at a time per session
	savedHash uint64
}

func newSession(id, content string, delay time.Duration, b Backend, logger *slog.Logger, onSave func(string)) *Session {
	s := &Session{
		id:        id,
		backend:   b,
		logger:    logger,
		onSave:    onSave,
		content:   content,
		savedHash: xxhash.Sum64String(content),
	}
	s.deb = NewDebouncer(delay, s.autosave)
	return s
}

// ID returns the note id.
func (s *Session) ID() string { return s.id }

// Content returns the current buffer.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Change replaces the buffer and rearms the autosave timer.
func (s *Session) Change(content string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.content = content
	s.mu.Unlock()

	s.deb.Trigger()
	return nil
}

// Pending reports whether an autosave is scheduled.
func (s *Session) Pending() bool { return s.deb.Pending() }

// Close cancels the timer and saves synchronously.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.deb.Stop()
	return s.save()
}

// Delete cancels the timer and removes the note.
func (s *Session) Delete() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.deb.Stop()
	if err := s.backend.DeleteSticky(s.id); err != nil {
		return fmt.Errorf("delete sticky %s: %w", s.id, err)
	}
	return nil
}

func (s *Session) autosave() {
	if err := s.save(); err != nil {
		s.logger.Error("sticky autosave", "id", s.id, "err", err)
	}
}

// save writes the buffer unless it matches what was last written.
func (s *Session) save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	content := s.Content()
	h := xxhash.Sum64String(content)
	if h == s.savedHash {
		return nil
	}
	if err := s.backend.SaveSticky(s.id, content); err != nil {
		return fmt.Errorf("save sticky %s: %w", s.id, err)
	}
	s.savedHash = h
	s.logger.Debug("sticky saved", "id", s.id, "bytes", len(content))

	if s.onSave != nil {
		s.onSave(s.id)
	}
	return nil
}
