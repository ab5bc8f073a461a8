package models

import "fmt"

// PaginatedResponse is the envelope every list endpoint returns.
// Data is the only authoritative content; Total and TotalPages drive
// pagination controls and are never recomputed client-side.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Empty returns the placeholder envelope shown before the first fetch completes.
func Empty[T any](pageSize int) PaginatedResponse[T] {
	return PaginatedResponse[T]{
		Data:       []T{},
		Total:      0,
		Page:       1,
		PageSize:   pageSize,
		TotalPages: 1,
	}
}

// Validate checks the envelope invariants.
func (p PaginatedResponse[T]) Validate() error {
	if len(p.Data) > p.PageSize {
		return fmt.Errorf("page holds %d items, more than pageSize %d", len(p.Data), p.PageSize)
	}
	if p.Total > 0 && (p.Page < 1 || p.Page > p.TotalPages) {
		return fmt.Errorf("page %d outside 1..%d", p.Page, p.TotalPages)
	}
	return nil
}

// HasPrev reports whether a previous page exists for cursor page.
func HasPrev(page int) bool {
	return page > 1
}

// HasNext reports whether a next page exists for cursor page.
func HasNext(page, totalPages int) bool {
	return page < totalPages
}
