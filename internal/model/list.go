package model

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// MinItems is the smallest list a spin is allowed on, and the floor
// Remove refuses to go below.
const MinItems = 2

var (
	ErrEmptyLabel   = errors.New("label cannot be empty")
	ErrMinimumItems = errors.New("keep at least 2 items")
	ErrItemNotFound = errors.New("item not found")
)

// NewID returns a fresh item id.
var NewID = uuid.NewString

// List is an ordered set of items. It is a value: every mutation returns
// a new List and never touches the receiver's backing array.
type List struct {
	items []Item
}

// NewList builds a list from labels, colored by position.
func NewList(labels ...string) List {
	return List{}.ReplaceAll(labels)
}

// Len returns the number of items.
func (l List) Len() int { return len(l.items) }

// At returns the item at index i.
func (l List) At(i int) Item { return l.items[i] }

// Items returns a copy of the items in order.
func (l List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Labels returns the labels in order.
func (l List) Labels() []string {
	out := make([]string, len(l.items))
	for i, it := range l.items {
		out[i] = it.Label
	}
	return out
}

// Index returns the position of id, or -1.
func (l List) Index(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a trimmed label with the next palette color.
func (l List) Add(label string) (List, Item, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return l, Item{}, ErrEmptyLabel
	}
	it := Item{ID: NewID(), Label: label, Color: ColorAt(len(l.items))}
	out := make([]Item, len(l.items), len(l.items)+1)
	copy(out, l.items)
	return List{items: append(out, it)}, it, nil
}

// Remove drops the item with the given id. It refuses to leave fewer than
// MinItems behind.
func (l List) Remove(id string) (List, error) {
	idx := l.Index(id)
	if idx < 0 {
		return l, ErrItemNotFound
	}
	if len(l.items)-1 < MinItems {
		return l, ErrMinimumItems
	}
	out := make([]Item, 0, len(l.items)-1)
	out = append(out, l.items[:idx]...)
	out = append(out, l.items[idx+1:]...)
	return List{items: out}, nil
}

// ReplaceAll swaps the whole list for fresh items built from labels.
// Labels are trimmed and blanks dropped; colors follow the kept position.
func (l List) ReplaceAll(labels []string) List {
	labels = Compact(labels)
	out := make([]Item, len(labels))
	for i, label := range labels {
		out[i] = Item{ID: NewID(), Label: label, Color: ColorAt(i)}
	}
	return List{items: out}
}

// Compact returns labels trimmed, without blanks. The result is never nil.
func Compact(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			out = append(out, label)
		}
	}
	return out
}
