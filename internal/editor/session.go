// Package editor holds the state of one modal note-editing session.
package editor

import (
	"errors"
	"strings"
	"sync"
)

var (
	// ErrEmpty is returned by Save when the trimmed buffer is empty.
	ErrEmpty = errors.New("note content is empty")
	// ErrSaveInFlight is returned when Save is called while a save runs.
	ErrSaveInFlight = errors.New("save already in progress")
	// ErrSessionClosed is returned for operations on a closed session.
	ErrSessionClosed = errors.New("editor session closed")
)

// Mode says whether the session creates or edits a note.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// CommitFunc persists the trimmed buffer. Returning an error keeps the
// session open.
type CommitFunc func(content string) error

// Session is a single editing session. The buffer is only persisted by Save.
type Session struct {
	Mode   Mode
	NoteID string // empty in ModeAdd
	Title  string // title when opened, for the dialog header

	mu      sync.Mutex
	content string
	saving  bool
	closed  bool

	commit  CommitFunc
	onClose func()
	insert  func(src string) (string, error)
}

// Options configure a new Session.
type Options struct {
	Mode    Mode
	NoteID  string
	Title   string
	Content string

	// Commit persists content on Save.
	Commit CommitFunc
	// OnClose runs exactly once when the session saves or cancels.
	OnClose func()
	// InsertImage imports a file and returns its placeholder line.
	InsertImage func(src string) (string, error)
}

// New opens a session seeded with opts.Content.
func New(opts Options) *Session {
	return &Session{
		Mode:    opts.Mode,
		NoteID:  opts.NoteID,
		Title:   opts.Title,
		content: opts.Content,
		commit:  opts.Commit,
		onClose: opts.OnClose,
		insert:  opts.InsertImage,
	}
}

// Content returns the current buffer.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// SetContent replaces the buffer.
func (s *Session) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.content = content
	}
}

// InsertImage imports src and appends its placeholder on its own line.
func (s *Session) InsertImage(src string) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	if s.insert == nil {
		return errors.New("image insertion unavailable")
	}

	line, err := s.insert(src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.content += "\n" + line + "\n"
	s.mu.Unlock()
	return nil
}

// Save trims and commits the buffer. On success the session closes.
// A second Save while one is running is dropped with ErrSaveInFlight.
func (s *Session) Save() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	content := strings.TrimSpace(s.content)
	if content == "" {
		s.mu.Unlock()
		return ErrEmpty
	}
	s.saving = true
	s.mu.Unlock()

	var err error
	if s.commit != nil {
		err = s.commit(content)
	}

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.content = content
	s.mu.Unlock()

	s.close()
	return nil
}

// Cancel discards the buffer and closes the session.
func (s *Session) Cancel() {
	s.close()
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	onClose := s.onClose
	s.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}
