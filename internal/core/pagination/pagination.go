// Package pagination slices ordered results into fixed-size, 1-based pages.
//
// Requested page numbers come straight from the "page" query parameter. Anything that
// is not a positive integer selects the first page, and numbers past the end clamp to
// the last page. An empty result still has exactly one (empty) page.
package pagination

import (
	"strconv"
	"strings"
)

// PerPage is the number of items shown on every paginated view.
const PerPage = 10

// Window describes which slice of an ordered result a page covers.
type Window struct {
	Number   int
	NumPages int
	Offset   int
	Limit    int
	Total    int
}

// HasNext reports whether a page follows this one.
func (w Window) HasNext() bool { return w.Number < w.NumPages }

// HasPrevious reports whether a page precedes this one.
func (w Window) HasPrevious() bool { return w.Number > 1 }

// HasOtherPages reports whether the result spans more than one page.
func (w Window) HasOtherPages() bool { return w.NumPages > 1 }

// NextNumber returns the number of the following page, or the current one on the last page.
func (w Window) NextNumber() int {
	if w.HasNext() {
		return w.Number + 1
	}
	return w.Number
}

// PreviousNumber returns the number of the preceding page, or 1 on the first page.
func (w Window) PreviousNumber() int {
	if w.HasPrevious() {
		return w.Number - 1
	}
	return 1
}

// Resolve computes the window for the requested page over total items.
func Resolve(total int, requested string) Window {
	if total < 0 {
		total = 0
	}

	numPages := (total + PerPage - 1) / PerPage
	if numPages == 0 {
		numPages = 1
	}

	number := ParseNumber(requested)
	if number > numPages {
		number = numPages
	}

	offset := (number - 1) * PerPage
	limit := PerPage
	if remaining := total - offset; remaining < limit {
		limit = remaining
	}
	if limit < 0 {
		limit = 0
	}

	return Window{
		Number:   number,
		NumPages: numPages,
		Offset:   offset,
		Limit:    limit,
		Total:    total,
	}
}

// ParseNumber converts a raw page parameter to a page number, defaulting to 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Page is one window of items together with its metadata.
type Page[T any] struct {
	Items []T
	Window
}

// Len returns the number of items on this page.
func (p Page[T]) Len() int { return len(p.Items) }

// NewPage wraps items that were already fetched for the given window.
func NewPage[T any](items []T, w Window) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Window: w}
}

// Paginate selects the requested page from an in-memory ordered slice.
func Paginate[T any](items []T, requested string) Page[T] {
	w := Resolve(len(items), requested)
	return NewPage(items[w.Offset:w.Offset+w.Limit], w)
}
