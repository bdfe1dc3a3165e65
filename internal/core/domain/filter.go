package domain

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps Offset within int for every allowed page size.
	MaxPage = math.MaxInt/MaxPageSize + 1
)

// ItemFilter selects one page of items, optionally within a single category.
type ItemFilter struct {
	CategoryID *int64
	Page       int
	PageSize   int
}

// Normalize clamps the paging fields into a usable range.
func (f ItemFilter) Normalize() ItemFilter {
	switch {
	case f.Page < 1:
		f.Page = DefaultPage
	case f.Page > MaxPage:
		f.Page = MaxPage
	}
	switch {
	case f.PageSize < 1:
		f.PageSize = DefaultPageSize
	case f.PageSize > MaxPageSize:
		f.PageSize = MaxPageSize
	}
	return f
}

// Offset assumes a normalized filter.
func (f ItemFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
