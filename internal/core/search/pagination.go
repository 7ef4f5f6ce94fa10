package search

import (
	"errors"
	"fmt"
	"strings"
)

// SortDirection enumerates the supported sort orders.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

var (
	// ErrUnknownSortField signals a sort parameter outside the closed field set.
	ErrUnknownSortField = errors.New("search: unknown sort field")
	// ErrUnknownSortDirection signals an order parameter other than ASC or DESC.
	ErrUnknownSortDirection = errors.New("search: unknown sort direction")
)

// PageRequest is a normalized pagination and sort request. Number is 0-based,
// ready for the paged-query executor.
type PageRequest struct {
	Number    int
	Size      int
	SortField Field
	Direction SortDirection
}

// OrderBy renders the ORDER BY clause for the request.
func (p PageRequest) OrderBy() string {
	return columns[p.SortField] + " " + string(p.Direction)
}

// Offset returns the row offset corresponding to the 0-based page number.
func (p PageRequest) Offset() uint64 {
	return uint64(p.Number) * uint64(p.Size)
}

// PageConfig carries the externally configured pagination constants. Pages are
// 1-based at the interface boundary; FirstPage is the lowest accepted value.
type PageConfig struct {
	FirstPage            int
	DefaultPage          int
	DefaultPageSize      int
	PageSizeMax          int
	DefaultSortField     Field
	DefaultSortDirection SortDirection
}

// NormalizePage clamps raw pagination parameters into a canonical PageRequest.
// Raw values are pointers so absent parameters can fall back to defaults.
// Page numbers below FirstPage collapse to the default page, sizes clamp into
// [1, PageSizeMax], and sort parameters fail fast when outside the allowed
// sets so an unsupported field never reaches the data layer.
func NormalizePage(cfg PageConfig, rawPage, rawSize *int, rawSort, rawOrder *string) (PageRequest, error) {
	page := cfg.DefaultPage
	if rawPage != nil && *rawPage >= cfg.FirstPage {
		page = *rawPage
	}

	size := cfg.DefaultPageSize
	if rawSize != nil {
		size = *rawSize
	}
	if size > cfg.PageSizeMax {
		size = cfg.PageSizeMax
	}
	if size < 1 {
		size = 1
	}

	sortField := cfg.DefaultSortField
	if rawSort != nil && *rawSort != "" {
		sortField = Field(*rawSort)
	}
	if _, ok := columns[sortField]; !ok {
		return PageRequest{}, fmt.Errorf("%w: %q", ErrUnknownSortField, sortField)
	}

	direction := cfg.DefaultSortDirection
	if rawOrder != nil && *rawOrder != "" {
		direction = SortDirection(strings.ToUpper(*rawOrder))
	}
	if direction != SortAsc && direction != SortDesc {
		return PageRequest{}, fmt.Errorf("%w: %q", ErrUnknownSortDirection, direction)
	}

	return PageRequest{
		Number:    page - cfg.FirstPage,
		Size:      size,
		SortField: sortField,
		Direction: direction,
	}, nil
}
