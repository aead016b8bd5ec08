package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marcus/scratchpad/internal/store"
)

var (
	// ErrValidation is returned for empty content or an unknown category.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the target note no longer exists.
	ErrNotFound = store.ErrNotFound
)

// NoteStore is the persistence contract the service relies on.
type NoteStore interface {
	List(category string) ([]store.Note, error)
	Get(category, id string) (*store.Note, error)
	Insert(category, title, content string) (string, error)
	Update(id, category, title, content string) (bool, error)
	Delete(id, category string) (bool, error)
	Count(category string) (int, error)
	ContentByID(id string) (string, error)
	SaveContent(id, title, content string) (bool, error)
}

// ImageStore resolves and imports embedded images.
type ImageStore interface {
	Import(src string) (string, error)
	Has(name string) bool
	Path(name string) string
	Remove(name string) error
}

// Service applies the title and image conventions on top of the store.
type Service struct {
	store  NoteStore
	images ImageStore
	logger *slog.Logger
}

// NewService creates a note service. A nil logger discards output.
func NewService(st NoteStore, img ImageStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: st, images: img, logger: logger}
}

// AddNote validates content, derives its title and stores it.
func (s *Service) AddNote(category Category, content string) (string, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: note content is empty", ErrValidation)
	}

	title := DeriveTitle(content, category)
	id, err := s.store.Insert(string(category), title, content)
	if err != nil {
		return "", err
	}
	s.logger.Debug("note added", "category", category, "id", id)
	return id, nil
}

// EditNote replaces the content of a note and returns its new title.
func (s *Service) EditNote(category Category, id, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: note content is empty", ErrValidation)
	}

	old, _ := s.store.ContentByID(id)
	title := DeriveTitle(content, category)
	ok, err := s.store.Update(id, string(category), title, content)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.logger.Debug("note edited", "category", category, "id", id)
	s.pruneImages(old)
	return title, nil
}

// DeleteNote removes a note. Confirmation is the caller's job.
func (s *Service) DeleteNote(category Category, id string) error {
	old, _ := s.store.ContentByID(id)
	ok, err := s.store.Delete(id, string(category))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.logger.Debug("note deleted", "category", category, "id", id)
	s.pruneImages(old)
	return nil
}

// pruneImages removes the images referenced by content that no stored note
// references any more. Failures are logged; the note change already stands.
func (s *Service) pruneImages(content string) {
	names := imageNames(content)
	if len(names) == 0 || s.images == nil {
		return
	}

	inUse := make(map[string]bool)
	for _, c := range allCategories {
		items, err := s.store.List(string(c))
		if err != nil {
			s.logger.Warn("prune images: list notes", "category", c, "err", err)
			return
		}
		for _, n := range items {
			for _, name := range imageNames(n.Content) {
				inUse[name] = true
			}
		}
	}

	for _, name := range names {
		if inUse[name] || !s.images.Has(name) {
			continue
		}
		if err := s.images.Remove(name); err != nil {
			s.logger.Warn("remove orphaned image", "name", name, "err", err)
			continue
		}
		s.logger.Debug("orphaned image removed", "name", name)
	}
}

// imageNames returns the image names placed in content, in order.
func imageNames(content string) []string {
	var names []string
	for _, line := range splitLines(content) {
		if name, ok := ParsePlaceholder(line); ok {
			names = append(names, name)
		}
	}
	return names
}

// Get returns a note from category.
func (s *Service) Get(category Category, id string) (*store.Note, error) {
	return s.store.Get(string(category), id)
}

// List returns the notes of category in insertion order.
func (s *Service) List(category Category) ([]store.Note, error) {
	return s.store.List(string(category))
}

// Count returns the number of notes in category.
func (s *Service) Count(category Category) (int, error) {
	return s.store.Count(string(category))
}

// InsertImage copies src into the image store and returns the placeholder
// line referencing the copy.
func (s *Service) InsertImage(src string) (string, error) {
	name, err := s.images.Import(src)
	if err != nil {
		return "", err
	}
	return Placeholder(name), nil
}
