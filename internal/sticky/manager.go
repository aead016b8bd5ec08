package sticky

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Manager tracks the open sticky notes.
type Manager struct {
	backend Backend
	delay   time.Duration
	logger  *slog.Logger

	// OnSave is called after every successful write, from the saving goroutine.
	OnSave func(id string)

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager. delay is the autosave quiet period.
func NewManager(b Backend, delay time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		backend:  b,
		delay:    delay,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// New creates an empty sticky note and opens it.
func (m *Manager) New() (*Session, error) {
	id, err := m.backend.NewSticky()
	if err != nil {
		return nil, err
	}
	return m.Open(id)
}

// Open opens the sticky note with id, or returns it if already open.
func (m *Manager) Open(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	content, err := m.backend.StickyContent(id)
	if err != nil {
		return nil, err
	}

	s := newSession(id, content, m.delay, m.backend, m.logger, m.notify)
	m.sessions[id] = s
	m.logger.Debug("sticky opened", "id", id)
	return s, nil
}

func (m *Manager) notify(id string) {
	if m.OnSave != nil {
		m.OnSave(id)
	}
}

// Get returns the open session for id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// IDs returns the ids of open sessions, sorted.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close flushes and closes one session.
func (m *Manager) Close(id string) error {
	s := m.take(id)
	if s == nil {
		return nil
	}
	return s.Close()
}

// Delete closes one session and removes its note.
func (m *Manager) Delete(id string) error {
	s := m.take(id)
	if s == nil {
		return m.backend.DeleteSticky(id)
	}
	return s.Delete()
}

// CloseAll flushes every open session. Call before exit.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) take(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[id]
	delete(m.sessions, id)
	return s
}
