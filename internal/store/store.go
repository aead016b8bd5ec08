package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverSQLite is the pure-Go modernc driver.
	DriverSQLite = "sqlite"
	// DriverSQLite3 is the cgo mattn driver.
	DriverSQLite3 = "sqlite3"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("note not found")
	// ErrUnavailable is returned when the database cannot be opened or created.
	ErrUnavailable = errors.New("storage unavailable")
)

// Note is a persisted note row.
type Note struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Store handles SQLite operations for notes and tasks.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex // serializes writes from sticky timers and the UI loop
}

// Open opens (creating if needed) the database at path using driver.
// Any failure wraps ErrUnavailable.
func Open(path, driver string) (*Store, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create dir: %v", ErrUnavailable, err)
	}

	db, err := sql.Open(driver, dsn(path, driver))
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrUnavailable, err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", ErrUnavailable, err)
	}

	return s, nil
}

// dsn builds the connection string with a 5s busy timeout and WAL journal.
func dsn(path, driver string) string {
	if driver == DriverSQLite3 {
		return path + "?_busy_timeout=5000&_journal_mode=WAL"
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// initSchema creates the notes and tasks tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category);
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    completed INTEGER DEFAULT 0
);
`
	_, err := s.db.Exec(schema)
	return err
}

// List returns the notes in category in insertion order.
// A category without notes yields an empty slice.
func (s *Store) List(category string) ([]Note, error) {
	rows, err := s.db.Query(`
		SELECT id, category, title, content
		FROM notes WHERE category = ?
		ORDER BY rowid`, category)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Category, &n.Title, &n.Content); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// Get retrieves a note by category and id.
func (s *Store) Get(category, id string) (*Note, error) {
	var n Note
	err := s.db.QueryRow(`
		SELECT id, category, title, content
		FROM notes WHERE category = ? AND id = ?`, category, id).
		Scan(&n.ID, &n.Category, &n.Title, &n.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query note: %w", err)
	}
	return &n, nil
}

// Insert adds a note and returns its generated id.
func (s *Store) Insert(category, title, content string) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO notes (id, category, title, content)
		VALUES (?, ?, ?, ?)`, id, category, title, content)
	if err != nil {
		return "", fmt.Errorf("insert note: %w", err)
	}
	return id, nil
}

// Update replaces the title and content of a note.
// Returns false when no note matched.
func (s *Store) Update(id, category, title, content string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE notes SET title = ?, content = ?
		WHERE id = ? AND category = ?`, title, content, id, category)
	if err != nil {
		return false, fmt.Errorf("update note: %w", err)
	}
	return affected(res)
}

// Delete removes a note. Returns false when no note matched.
func (s *Store) Delete(id, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ? AND category = ?`, id, category)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return affected(res)
}

// Count returns the number of notes in category.
func (s *Store) Count(category string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE category = ?`, category).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

// ContentByID returns a note's content regardless of category.
func (s *Store) ContentByID(id string) (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM notes WHERE id = ?`, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("query content: %w", err)
	}
	return content, nil
}

// SaveContent replaces title and content by id regardless of category.
// Returns false when no note matched.
func (s *Store) SaveContent(id, title, content string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE notes SET title = ?, content = ? WHERE id = ?`, title, content, id)
	if err != nil {
		return false, fmt.Errorf("save content: %w", err)
	}
	return affected(res)
}

// UsedBytes returns the total byte length of all note content.
func (s *Store) UsedBytes() (int64, error) {
	var n sql.NullInt64
	if err := s.db.QueryRow(`SELECT SUM(LENGTH(CAST(content AS BLOB))) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum content: %w", err)
	}
	return n.Int64, nil
}

// AddTask inserts a task and returns its id.
func (s *Store) AddTask(title string) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`INSERT INTO tasks (id, title, completed) VALUES (?, ?, 0)`, id, title); err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

// SetTaskCompleted marks a task completed or not.
// Returns false when no task matched.
func (s *Store) SetTaskCompleted(id string, completed bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE tasks SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return affected(res)
}

// CountCompletedTasks returns the number of completed tasks.
func (s *Store) CountCompletedTasks() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE completed = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// boolToInt converts a bool to an int for SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
