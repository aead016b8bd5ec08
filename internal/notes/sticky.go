package notes

import (
	"fmt"

	"github.com/marcus/scratchpad/internal/store"
)

// NewSticky creates an empty sticky note and returns its id.
func (s *Service) NewSticky() (string, error) {
	id, err := s.store.Insert(string(Sticky), DeriveTitle("", Sticky), "")
	if err != nil {
		return "", err
	}
	s.logger.Debug("sticky created", "id", id)
	return id, nil
}

// StickyContent returns the stored content of a sticky note.
func (s *Service) StickyContent(id string) (string, error) {
	return s.store.ContentByID(id)
}

// SaveSticky persists sticky content. Empty content is allowed.
func (s *Service) SaveSticky(id, content string) error {
	ok, err := s.store.SaveContent(id, DeriveTitle(content, Sticky), content)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// DeleteSticky removes a sticky note.
func (s *Service) DeleteSticky(id string) error {
	return s.DeleteNote(Sticky, id)
}

// ListSticky returns all sticky notes.
func (s *Service) ListSticky() ([]store.Note, error) {
	return s.store.List(string(Sticky))
}
