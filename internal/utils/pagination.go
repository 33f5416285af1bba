package utils

import "strconv"

const (
	DefaultPageNo = 0
	DefaultLimit  = 20
)

// Pagination is a zero-based page window over a list endpoint
type Pagination struct {
	PageNo int
	Limit  int
}

// Offset returns the number of items to skip
func (p Pagination) Offset() int {
	return p.PageNo * p.Limit
}

// ParsePagination reads pageNo and limit query values, falling back to the
// defaults when a value is missing, malformed, or negative
func ParsePagination(pageNo, limit string) Pagination {
	p := Pagination{PageNo: DefaultPageNo, Limit: DefaultLimit}

	if n, err := strconv.Atoi(pageNo); err == nil && n >= 0 {
		p.PageNo = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}

	return p
}

// SlicePage returns the window [offset, offset+limit) of a slice, clamped to
// its bounds. Used for paginating over embedded JSONB arrays in Go.
func SlicePage[T any](items []T, p Pagination) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
