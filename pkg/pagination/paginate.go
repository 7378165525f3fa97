// Package pagination slices flat lists into bounded pages with
// navigation metadata. Everything here is a pure function; the session's
// current part number is owned by the engine.
package pagination

import "github.com/bobcode/ussd/pkg/domain"

// Result is one page of items plus navigation metadata.
type Result[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PageSize    int
	HasNext     bool
	HasPrevious bool
}

// Paginate returns the requested 1-based page of items. Out-of-range
// requests never fail: the page number clamps into [1, TotalPages]
// (or to 1 when there are no items, yielding an empty page).
func Paginate[T any](items []T, page, pageSize int) Result[T] {
	total := len(items)
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result[T]{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    pageSize,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Synthetic action keys carried by the navigation controls appended by
// WithControls. The engine treats these as part movements, not menu input.
const (
	ActionNextPage     = "_pagination_next"
	ActionPreviousPage = "_pagination_previous"
)

// WithControls paginates a page's options and appends next/previous
// controls using the given command tokens. A control is only added when
// the corresponding direction exists.
func WithControls(options []domain.Option, page, pageSize int, nextCmd, prevCmd string) []domain.Option {
	res := Paginate(options, page, pageSize)

	out := make([]domain.Option, 0, len(res.Items)+2)
	out = append(out, res.Items...)

	if res.HasNext {
		out = append(out, domain.Option{
			Input:     nextCmd,
			Label:     "Next",
			ActionKey: ActionNextPage,
		})
	}
	if res.HasPrevious {
		out = append(out, domain.Option{
			Input:     prevCmd,
			Label:     "Previous",
			ActionKey: ActionPreviousPage,
		})
	}
	return out
}
