// Package entries owns the ordered list of experience entries edited by the user.
package entries

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned when an operation names an id that is not in the list.
var ErrNotFound = errors.New("entry not found")

// Entry is one user-supplied date range. Start and End hold masked text.
type Entry struct {
	ID    int    `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Field selects which date of an entry an update targets.
type Field int

const (
	FieldStart Field = iota
	FieldEnd
)

func (f Field) String() string {
	switch f {
	case FieldStart:
		return "start"
	case FieldEnd:
		return "end"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// List is an ordered collection of entries with copy-on-write mutation.
// Every mutation installs a fresh backing slice, so a slice returned by
// Entries is never modified afterwards.
type List struct {
	items   []Entry
	version uint64
}

// NewList returns a list holding copies of the given entries.
func NewList(items ...Entry) *List {
	return &List{items: slices.Clone(items)}
}

// Entries returns the current snapshot in list order.
func (l *List) Entries() []Entry {
	return l.items
}

// Len reports the number of entries.
func (l *List) Len() int {
	return len(l.items)
}

// Version increments on every successful mutation.
func (l *List) Version() uint64 {
	return l.version
}

// Position returns the 1-based position of id, or 0 when absent.
func (l *List) Position(id int) int {
	for i, e := range l.items {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}

// Get returns the entry with the given id.
func (l *List) Get(id int) (Entry, bool) {
	if p := l.Position(id); p > 0 {
		return l.items[p-1], true
	}
	return Entry{}, false
}

// Add appends an empty entry and returns it.
func (l *List) Add() Entry {
	e := Entry{ID: NextID(l.items)}
	next := make([]Entry, len(l.items), len(l.items)+1)
	copy(next, l.items)
	l.replace(append(next, e))
	return e
}

// Remove deletes the entry with the given id.
func (l *List) Remove(id int) error {
	if l.Position(id) == 0 {
		return fmt.Errorf("entries.Remove: id %d: %w", id, ErrNotFound)
	}
	next := make([]Entry, 0, len(l.items)-1)
	for _, e := range l.items {
		if e.ID != id {
			next = append(next, e)
		}
	}
	l.replace(next)
	return nil
}

// Update masks value and stores it in the chosen field of entry id.
func (l *List) Update(id int, field Field, value string) error {
	p := l.Position(id)
	if p == 0 {
		return fmt.Errorf("entries.Update: id %d: %w", id, ErrNotFound)
	}
	next := slices.Clone(l.items)
	masked := Mask(value)
	switch field {
	case FieldStart:
		next[p-1].Start = masked
	case FieldEnd:
		next[p-1].End = masked
	default:
		return fmt.Errorf("entries.Update: unknown field %s", field)
	}
	l.replace(next)
	return nil
}

func (l *List) replace(items []Entry) {
	l.items = items
	l.version++
}

// NextID returns max(existing ids)+1, or 1 for an empty list.
func NextID(items []Entry) int {
	maxID := 0
	for _, e := range items {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}
