// Package listcap bounds how many rows of a category are rendered and
// reports how many were left out
package listcap

import (
	"fmt"
	"sort"
)

// DefaultLimit is the row ceiling used when no positive limit is given
const DefaultLimit = 50

// Capped is the visible head of a sorted list plus the omitted count
type Capped[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Omitted int `json:"omitted"`
}

// Apply sorts a copy of items with less, then keeps the first limit entries
func Apply[T any](items []T, limit int, less func(a, b T) bool) Capped[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	if less != nil {
		sort.SliceStable(sorted, func(i, j int) bool {
			return less(sorted[i], sorted[j])
		})
	}

	shown := sorted
	if len(shown) > limit {
		shown = shown[:limit]
	}

	return Capped[T]{
		Items:   shown,
		Total:   len(items),
		Omitted: len(items) - len(shown),
	}
}

// Notice is the text shown under a truncated list; empty when nothing was omitted
func (c Capped[T]) Notice() string {
	if c.Omitted <= 0 {
		return ""
	}
	return fmt.Sprintf("Showing %d of %d (%d more not shown)", len(c.Items), c.Total, c.Omitted)
}
