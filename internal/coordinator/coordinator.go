// Package coordinator keeps the note list, the preview and the dashboard in
// step with the store. Every mutation is followed by a fresh read of the
// affected scope; nothing is patched incrementally except the edited title.
package coordinator

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marcus/scratchpad/internal/dashboard"
	"github.com/marcus/scratchpad/internal/editor"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/store"
)

// Dashboard is the pseudo-category that shows aggregate stats.
const Dashboard = "Dashboard"

// ErrBusy is returned when an editor session is already open.
var ErrBusy = errors.New("editor already open")

// View is the surface the coordinator repaints. Implementations must not
// call back into the coordinator from these methods.
type View interface {
	ShowCategory(category notes.Category, items []store.Note)
	ShowDashboard(stats dashboard.Stats)
	SetPreview(content string)
	UpdateItemTitle(id, title string)
	SelectItem(id string)
	Warn(title, message string)
	Confirm(title, question string, onYes func())
}

// NoteService is the subset of notes.Service the coordinator drives.
type NoteService interface {
	AddNote(category notes.Category, content string) (string, error)
	EditNote(category notes.Category, id, content string) (string, error)
	DeleteNote(category notes.Category, id string) error
	Get(category notes.Category, id string) (*store.Note, error)
	List(category notes.Category) ([]store.Note, error)
	InsertImage(src string) (string, error)
}

// StatsSource recomputes dashboard figures.
type StatsSource interface {
	Recompute() (dashboard.Stats, error)
}

// Coordinator owns the selection state.
type Coordinator struct {
	svc    NoteService
	stats  StatsSource
	view   View
	logger *slog.Logger

	category        notes.Category // empty when none or dashboard
	onDashboard     bool
	selectedID      string
	selectedContent string

	// session is the single open editor, if any.
	session *editor.Session
}

// New creates a Coordinator. A nil logger discards output.
func New(svc NoteService, stats StatsSource, view View, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{svc: svc, stats: stats, view: view, logger: logger}
}

// Category returns the selected category, if any.
func (c *Coordinator) Category() (notes.Category, bool) {
	return c.category, c.category != ""
}

// OnDashboard reports whether the dashboard is shown.
func (c *Coordinator) OnDashboard() bool { return c.onDashboard }

// Selected returns the cached selection.
func (c *Coordinator) Selected() (id, content string) {
	return c.selectedID, c.selectedContent
}

// Session returns the open editor session or nil.
func (c *Coordinator) Session() *editor.Session {
	if c.session != nil && c.session.Closed() {
		c.session = nil
	}
	return c.session
}

// Busy reports whether an editor session is open.
func (c *Coordinator) Busy() bool { return c.Session() != nil }

// SelectCategory switches to name, which may be Dashboard.
func (c *Coordinator) SelectCategory(name string) error {
	if strings.EqualFold(strings.TrimSpace(name), Dashboard) {
		c.category = ""
		c.onDashboard = true
		c.clearSelection()
		return c.showDashboard()
	}

	cat, err := notes.ParseCategory(name)
	if err != nil || !cat.Listed() {
		c.view.Warn("Unknown category", fmt.Sprintf("%q has no note list.", name))
		return fmt.Errorf("%w: category %q", notes.ErrValidation, name)
	}

	c.category = cat
	c.onDashboard = false
	c.clearSelection()
	c.view.SetPreview("")
	return c.reloadList()
}

// SelectNote caches the note with id if it exists in the current category.
func (c *Coordinator) SelectNote(id string) {
	if c.category == "" || id == "" {
		c.clearSelection()
		c.view.SetPreview("")
		return
	}

	n, err := c.svc.Get(c.category, id)
	if err != nil {
		if !errors.Is(err, notes.ErrNotFound) {
			c.logger.Warn("select note", "id", id, "err", err)
		}
		c.clearSelection()
		c.view.SetPreview("")
		return
	}

	c.selectedID = n.ID
	c.selectedContent = n.Content
	c.view.SetPreview(n.Content)
}

// OpenAdd opens an empty editor for the current category.
func (c *Coordinator) OpenAdd() (*editor.Session, error) {
	if c.Busy() {
		return nil, ErrBusy
	}
	if c.category == "" {
		c.view.Warn("No category", "Select a category before adding a note.")
		return nil, fmt.Errorf("%w: no category selected", notes.ErrValidation)
	}

	cat := c.category
	c.session = editor.New(editor.Options{
		Mode:        editor.ModeAdd,
		Title:       "New " + cat.String() + " note",
		Commit:      func(content string) error { return c.commitAdd(cat, content) },
		OnClose:     c.releaseSession,
		InsertImage: c.svc.InsertImage,
	})
	c.logger.Debug("editor opened", "mode", "add", "category", cat)
	return c.session, nil
}

func (c *Coordinator) commitAdd(cat notes.Category, content string) error {
	id, err := c.svc.AddNote(cat, content)
	if err != nil {
		return err
	}
	// The new id is known only now; reselect it after the reload.
	if c.category == cat && c.reloadList() == nil {
		c.view.SelectItem(id)
		c.SelectNote(id)
	}
	return nil
}

// OpenEdit opens an editor seeded with the selected note.
func (c *Coordinator) OpenEdit() (*editor.Session, error) {
	if c.Busy() {
		return nil, ErrBusy
	}
	if c.category == "" || c.selectedID == "" {
		c.view.Warn("No note selected", "Select a note to edit.")
		return nil, fmt.Errorf("%w: no note selected", notes.ErrValidation)
	}

	cat, id := c.category, c.selectedID
	n, err := c.svc.Get(cat, id)
	if err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			c.vanished()
		}
		return nil, err
	}

	var sess *editor.Session
	sess = editor.New(editor.Options{
		Mode:    editor.ModeEdit,
		NoteID:  id,
		Title:   n.Title,
		Content: n.Content,
		Commit: func(content string) error {
			err := c.commitEdit(cat, id, content)
			if errors.Is(err, notes.ErrNotFound) {
				sess.Cancel()
			}
			return err
		},
		OnClose:     c.releaseSession,
		InsertImage: c.svc.InsertImage,
	})
	c.session = sess
	c.logger.Debug("editor opened", "mode", "edit", "id", id)
	return sess, nil
}

func (c *Coordinator) commitEdit(cat notes.Category, id, content string) error {
	title, err := c.svc.EditNote(cat, id, content)
	if err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			c.vanished()
		}
		return err
	}
	if c.category != cat {
		return nil
	}

	c.view.UpdateItemTitle(id, title)
	c.selectedID = id
	c.selectedContent = content
	c.view.SetPreview(content)
	c.view.SelectItem(id)
	return nil
}

// Delete asks for confirmation, then removes the selected note.
func (c *Coordinator) Delete() error {
	if c.category == "" || c.selectedID == "" {
		c.view.Warn("No note selected", "Select a note to delete.")
		return fmt.Errorf("%w: no note selected", notes.ErrValidation)
	}

	cat, id := c.category, c.selectedID
	n, err := c.svc.Get(cat, id)
	if err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			c.vanished()
		}
		return err
	}

	c.view.Confirm("Delete note", fmt.Sprintf("Delete %q?", n.Title), func() {
		c.confirmDelete(cat, id)
	})
	return nil
}

func (c *Coordinator) confirmDelete(cat notes.Category, id string) {
	if err := c.svc.DeleteNote(cat, id); err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			c.vanished()
			return
		}
		c.logger.Error("delete note", "id", id, "err", err)
		c.view.Warn("Delete failed", err.Error())
		return
	}
	c.logger.Debug("note deleted", "id", id)
	if c.category == cat {
		_ = c.SelectCategory(cat.String())
	}
}

// Refresh re-reads the visible scope, keeping the selection if it still exists.
func (c *Coordinator) Refresh() error {
	if c.onDashboard {
		return c.showDashboard()
	}
	if c.category == "" {
		return nil
	}

	id := c.selectedID
	if err := c.reloadList(); err != nil {
		return err
	}
	if id != "" {
		c.SelectNote(id)
		if c.selectedID == id {
			c.view.SelectItem(id)
		}
	}
	return nil
}

// vanished reports a note removed behind our back and reconciles the view.
func (c *Coordinator) vanished() {
	c.view.Warn("Note not found", "The note no longer exists. The list has been refreshed.")
	_ = c.Refresh()
}

func (c *Coordinator) reloadList() error {
	items, err := c.svc.List(c.category)
	if err != nil {
		c.logger.Error("list notes", "category", c.category, "err", err)
		c.view.Warn("Load failed", err.Error())
		return err
	}
	c.view.ShowCategory(c.category, items)
	return nil
}

func (c *Coordinator) showDashboard() error {
	stats, err := c.stats.Recompute()
	if err != nil {
		c.logger.Error("recompute dashboard", "err", err)
		c.view.Warn("Dashboard unavailable", err.Error())
		return err
	}
	c.view.ShowDashboard(stats)
	return nil
}

func (c *Coordinator) clearSelection() {
	c.selectedID = ""
	c.selectedContent = ""
}

func (c *Coordinator) releaseSession() {
	c.session = nil
}
