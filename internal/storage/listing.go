package storage

import (
	"cmp"
	"fmt"
	"slices"
)

type selectable interface {
	Selector() string
}

// Listing is a stable, numbered view over a record set, ordered by Selector.
type Listing[T selectable] struct {
	options []option[T]
}

type option[T selectable] struct {
	id  string
	val T
}

func NewListing[T selectable](r Reader[T]) *Listing[T] {
	return NewListingFunc(r, func(string, T) bool { return true })
}

// NewListingFunc lists only the records keep returns true for.
func NewListingFunc[T selectable](r Reader[T], keep func(string, T) bool) *Listing[T] {
	l := &Listing[T]{}

	for id, val := range r.GetAll() {
		if keep(id, val) {
			l.options = append(l.options, option[T]{id: id, val: val})
		}
	}
	slices.SortFunc(l.options, func(a, b option[T]) int {
		return cmp.Or(
			cmp.Compare(a.val.Selector(), b.val.Selector()),
			cmp.Compare(a.id, b.id),
		)
	})

	return l
}

func (l *Listing[T]) Len() int {
	return len(l.options)
}

// IDs returns the record ids in listing order.
func (l *Listing[T]) IDs() []string {
	ids := make([]string, len(l.options))
	for i, o := range l.options {
		ids[i] = o.id
	}
	return ids
}

// Lines renders one numbered row per record using format for the value.
func (l *Listing[T]) Lines(format func(T) string) []string {
	lines := make([]string, len(l.options))
	for i, o := range l.options {
		lines[i] = fmt.Sprintf("%2d. %s", i+1, format(o.val))
	}
	return lines
}

// Select maps a 1-based position to a record id, or "" when out of range.
func (l *Listing[T]) Select(i int) string {
	if i < 1 || i > len(l.options) {
		return ""
	}
	return l.options[i-1].id
}
