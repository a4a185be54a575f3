package types

import "github.com/pageza/healthyrecipe/backend/internal/store"

// PageResponse is the JSON envelope of every paginated listing.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	Last          bool  `json:"last"`
}

// NewPageResponse converts a store page, mapping each item with fn.
func NewPageResponse[T, U any](p store.Page[T], fn func(T) U) PageResponse[U] {
	mapped := store.MapPage(p, fn)
	return PageResponse[U]{
		Content:       mapped.Items,
		Page:          mapped.Page,
		Size:          mapped.Size,
		TotalElements: mapped.Total,
		TotalPages:    mapped.TotalPages(),
		Last:          mapped.Page+1 >= mapped.TotalPages(),
	}
}
