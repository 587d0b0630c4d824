// Package pagewindow decides which page links a paginator shows.
//
// Pages are 0-indexed throughout; only Entry.Label is 1-indexed.
// For current page 5 of 10 the window is:
//
//	1 … 4 5 [6] 7 8 … 10
package pagewindow

import (
	"encoding/json"
	"strconv"
)

// Number of pages shown on each side of the current page.
const span = 2

// Kind distinguishes page links from gap markers.
type Kind uint8

const (
	KindPage Kind = iota
	KindEllipsis
)

// Entry is one paginator slot.
type Entry struct {
	Kind Kind
	Page int
}

// PageEntry returns a link entry for page.
func PageEntry(page int) Entry { return Entry{Kind: KindPage, Page: page} }

// EllipsisEntry returns a gap marker.
func EllipsisEntry() Entry { return Entry{Kind: KindEllipsis, Page: -1} }

// IsEllipsis reports whether e is a gap marker.
func (e Entry) IsEllipsis() bool { return e.Kind == KindEllipsis }

// MarshalJSON encodes e as {"kind":"page","page":n} or {"kind":"ellipsis"}.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.IsEllipsis() {
		return json.Marshal(struct {
			Kind string `json:"kind"`
		}{"ellipsis"})
	}
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Page int    `json:"page"`
	}{"page", e.Page})
}

// Label returns the human page number, or "…" for a gap.
func (e Entry) Label() string {
	if e.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(e.Page + 1)
}

// Compute returns the paginator entries for current out of total pages.
//
// The core window spans two pages either side of current. The first page is
// added once current > 2 and preceded by a gap once current > 3. The last
// page is added while current < total-3 with a gap while current < total-4.
func Compute(current, total int) []Entry {
	current, total = guard(current, total)
	if total <= 1 {
		return []Entry{}
	}

	lo := max(0, current-span)
	hi := min(total-1, current+span)

	entries := make([]Entry, 0, max(0, hi-lo+1)+4)
	if current > 2 {
		entries = append(entries, PageEntry(0))
	}
	if current > 3 {
		entries = append(entries, EllipsisEntry())
	}
	for i := lo; i <= hi; i++ {
		entries = append(entries, PageEntry(i))
	}
	if current < total-4 {
		entries = append(entries, EllipsisEntry())
	}
	if current < total-3 {
		entries = append(entries, PageEntry(total-1))
	}
	return entries
}

// HasPrevious reports whether a "previous" control is offered.
func HasPrevious(current int) bool { return current > 0 }

// HasNext reports whether a "next" control is offered.
func HasNext(current, total int) bool { return current < total-1 }

// Window bundles the entries with the navigation flags for rendering.
type Window struct {
	Current     int     `json:"current"`
	Total       int     `json:"total"`
	Entries     []Entry `json:"entries"`
	HasPrevious bool    `json:"hasPrevious"`
	HasNext     bool    `json:"hasNext"`
}

// New computes the window for current out of total pages.
func New(current, total int) Window {
	current, total = guard(current, total)
	return Window{
		Current:     current,
		Total:       total,
		Entries:     Compute(current, total),
		HasPrevious: HasPrevious(current),
		HasNext:     HasNext(current, total),
	}
}

// Visible reports whether a paginator should be rendered at all.
func (w Window) Visible() bool { return w.Total > 1 }

// Previous returns the page behind the "previous" control.
func (w Window) Previous() int { return max(0, w.Current-1) }

// Next returns the page behind the "next" control.
func (w Window) Next() int { return min(w.Total-1, w.Current+1) }

// IsCurrent reports whether e links to the current page.
func (w Window) IsCurrent(e Entry) bool {
	return !e.IsEllipsis() && e.Page == w.Current
}

// guard enforces current >= 0 and total >= 1. Debug builds panic on a
// violation; release builds clamp. A current page past the end comes from
// user input and is moved to the last page in every build.
func guard(current, total int) (int, int) {
	if current < 0 || total < 1 {
		if debugAssertions {
			panic("pagewindow: current must be >= 0 and total >= 1, got " +
				strconv.Itoa(current) + "/" + strconv.Itoa(total))
		}
		current = max(0, current)
		total = max(1, total)
	}
	return min(current, total-1), total
}
