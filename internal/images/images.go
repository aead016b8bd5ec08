// Package images keeps copies of pictures embedded in notes.
// Files are stored flat under one folder and named with a ULID plus the
// original extension, so names never collide.
package images

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oklog/ulid/v2"
	"github.com/peterbourgon/diskv/v3"
)

// Pattern matches file names accepted by Import.
const Pattern = "*.{png,jpg,jpeg,gif,bmp}"

var (
	// ErrUnsupported is returned when a file is not a recognized image type.
	ErrUnsupported = errors.New("unsupported image type")
	// ErrInvalidName is returned for names that would escape the image folder.
	ErrInvalidName = errors.New("invalid image name")
)

// Store is a folder of imported images.
type Store struct {
	d   *diskv.Diskv
	dir string
}

// Open returns an image store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverse,
		}),
		dir: dir,
	}, nil
}

func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func flatInverse(pk *diskv.PathKey) string {
	return pk.FileName
}

// Dir returns the folder images are stored in.
func (s *Store) Dir() string { return s.dir }

// IsImage reports whether path has an accepted image extension.
func IsImage(path string) bool {
	ok, _ := doublestar.Match(Pattern, strings.ToLower(filepath.Base(path)))
	return ok
}

// Import copies src into the store under a fresh name and returns that name.
func (s *Store) Import(src string) (string, error) {
	if !IsImage(src) {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(src))
	}

	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnsupported, src)
	}

	name := ulid.Make().String() + filepath.Ext(src)
	if err := s.d.WriteStream(name, f, true); err != nil {
		return "", fmt.Errorf("copy image: %w", err)
	}
	return name, nil
}

// Has reports whether an image with the given name is stored.
func (s *Store) Has(name string) bool {
	if validName(name) != nil {
		return false
	}
	return s.d.Has(name)
}

// Path returns the on-disk location of name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Remove deletes a stored image.
func (s *Store) Remove(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return s.d.Erase(name)
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
