// Package page computes the client-side pagination window over a result list.
package page

const (
	// DefaultSize is the page size used when none (or an invalid one) is given.
	DefaultSize = 10
	// Delta is how many neighbours of the current page Range includes on each side.
	Delta = 2
)

// SizeOptions are the page sizes offered to users.
var SizeOptions = []int{5, 10, 20, 50}

// Page is a clamped pagination window.
type Page struct {
	number     int
	size       int
	total      int
	totalPages int
}

// New builds a page for total items. The requested page number is clamped into
// [1, TotalPages]; a non-positive size falls back to DefaultSize.
func New(total, size, requested int) Page {
	if size <= 0 {
		size = DefaultSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	number := min(max(requested, 1), totalPages)
	return Page{number: number, size: size, total: total, totalPages: totalPages}
}

// Number returns the 1-based current page.
func (p Page) Number() int { return p.number }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// Total returns the item count the page was computed for.
func (p Page) Total() int { return p.total }

// TotalPages returns the page count, at least 1.
func (p Page) TotalPages() int { return p.totalPages }

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.number < p.totalPages }

// Bounds returns the half-open [start, end) item window of the current page.
func (p Page) Bounds() (start, end int) {
	start = (p.number - 1) * p.size
	end = min(start+p.size, p.total)
	if start > end {
		start = end
	}
	return start, end
}

// Range returns the page numbers to show in a pager: the first page, the last
// page and every page within Delta of the current one, ascending and unique.
func (p Page) Range() []int {
	out := make([]int, 0, 2*Delta+3)
	for n := 1; n <= p.totalPages; n++ {
		if n == 1 || n == p.totalPages || (n >= p.number-Delta && n <= p.number+Delta) {
			out = append(out, n)
		}
	}
	return out
}

// Slice returns the items of the current page.
func Slice[T any](items []T, p Page) []T {
	start, end := p.Bounds()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		return items[:0]
	}
	return items[start:end]
}

// ValidSize reports whether n is one of SizeOptions.
func ValidSize(n int) bool {
	for _, s := range SizeOptions {
		if s == n {
			return true
		}
	}
	return false
}
