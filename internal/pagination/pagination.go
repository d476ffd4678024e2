// Package pagination filters in-memory record sets and slices them into pages.
package pagination

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/voclio/admin/internal/model"
)

var (
	ErrInvalidLimit = errors.New("limit must be positive")
	ErrInvalidPage  = errors.New("page must be at least 1")
)

// Predicate reports whether a record passes a filter. A nil Predicate is inactive.
type Predicate[T any] func(T) bool

// Exact matches records whose field equals want.
func Exact[T any, V comparable](field func(T) V, want V) Predicate[T] {
	return func(r T) bool { return field(r) == want }
}

// Contains matches records where any of the given text fields contains
// needle, compared under Unicode case folding. An empty needle is inactive.
func Contains[T any](needle string, fields ...func(T) string) Predicate[T] {
	if needle == "" {
		return nil
	}
	folded := cases.Fold().String(needle)
	return func(r T) bool {
		fold := cases.Fold()
		for _, field := range fields {
			if strings.Contains(fold.String(field(r)), folded) {
				return true
			}
		}
		return false
	}
}

// Between matches records whose time field lies in [from, to].
// A zero bound is open.
func Between[T any](field func(T) time.Time, from, to time.Time) Predicate[T] {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	return func(r T) bool {
		t := field(r)
		if !from.IsZero() && t.Before(from) {
			return false
		}
		if !to.IsZero() && t.After(to) {
			return false
		}
		return true
	}
}

// Filter returns the records that satisfy every active predicate, in order.
func Filter[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if p != nil && !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Paginate filters records and returns the 1-based page of the result.
// Total and TotalPages describe the filtered set. A page past the end
// has empty Data.
func Paginate[T any](records []T, page, limit int, preds ...Predicate[T]) (model.PaginatedResponse[T], error) {
	if limit <= 0 {
		return model.PaginatedResponse[T]{}, ErrInvalidLimit
	}
	if page < 1 {
		return model.PaginatedResponse[T]{}, ErrInvalidPage
	}

	filtered := Filter(records, preds...)
	total := len(filtered)

	// Bounds are derived from the page count so huge page or limit
	// values cannot overflow.
	start := total
	if page <= model.TotalPages(total, limit) {
		start = (page - 1) * limit
	}
	end := start + min(limit, total-start)

	data := make([]T, end-start)
	copy(data, filtered[start:end])
	return model.NewPage(data, total, page, limit), nil
}
