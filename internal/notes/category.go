package notes

import (
	"fmt"
	"strings"
)

// Category is a fixed partition of notes.
type Category string

const (
	Contacts  Category = "Contacts"
	Bookmarks Category = "Bookmarks"
	CoPilot   Category = "CoPilot"
	General   Category = "Notes"
	Sticky    Category = "sticky"
)

// FixedCategories are the list-bearing categories, in sidebar order.
var FixedCategories = []Category{Contacts, Bookmarks, CoPilot, General}

var allCategories = []Category{Contacts, Bookmarks, CoPilot, General, Sticky}

// ParseCategory resolves name case-insensitively, so "Copilot" and
// "CoPilot" are the same category.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, c := range allCategories {
		if strings.EqualFold(name, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, name)
}

// String returns the stored category name.
func (c Category) String() string { return string(c) }

// Listed reports whether the category has a list view.
func (c Category) Listed() bool {
	for _, f := range FixedCategories {
		if c == f {
			return true
		}
	}
	return false
}
