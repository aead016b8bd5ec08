// Package dashboard computes the aggregate figures shown on the dashboard.
package dashboard

import (
	"fmt"

	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/store"
)

// Lister lists notes by category.
type Lister interface {
	List(category notes.Category) ([]store.Note, error)
}

// Totals exposes store-wide figures.
type Totals interface {
	UsedBytes() (int64, error)
	CountCompletedTasks() (int, error)
}

// Stats is one dashboard snapshot.
type Stats struct {
	Counts         map[notes.Category]int
	StickyCount    int
	TasksCompleted int
	UsedBytes      int64
	CapacityBytes  int64
	UsagePercent   int
}

// Aggregator recomputes Stats from the store on every call.
type Aggregator struct {
	notes    Lister
	totals   Totals
	capacity int64
}

// New creates an Aggregator. capacity <= 0 disables the usage gauge.
func New(l Lister, t Totals, capacity int64) *Aggregator {
	return &Aggregator{notes: l, totals: t, capacity: capacity}
}

// Recompute counts every fixed category and the store-wide totals.
func (a *Aggregator) Recompute() (Stats, error) {
	s := Stats{
		Counts:        make(map[notes.Category]int, len(notes.FixedCategories)),
		CapacityBytes: a.capacity,
	}

	for _, c := range notes.FixedCategories {
		list, err := a.notes.List(c)
		if err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", c, err)
		}
		s.Counts[c] = len(list)
	}

	sticky, err := a.notes.List(notes.Sticky)
	if err != nil {
		return Stats{}, fmt.Errorf("count sticky: %w", err)
	}
	s.StickyCount = len(sticky)

	if s.TasksCompleted, err = a.totals.CountCompletedTasks(); err != nil {
		return Stats{}, err
	}
	if s.UsedBytes, err = a.totals.UsedBytes(); err != nil {
		return Stats{}, err
	}
	s.UsagePercent = UsagePercent(s.UsedBytes, a.capacity)

	return s, nil
}

// UsagePercent returns used as a percentage of capacity, capped at 100.
// Zero capacity means no ceiling is configured and yields 0.
func UsagePercent(used, capacity int64) int {
	if capacity <= 0 || used <= 0 {
		return 0
	}
	if used >= capacity {
		return 100
	}
	return int(used * 100 / capacity)
}

// Total returns the number of notes across the fixed categories.
func (s Stats) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}
