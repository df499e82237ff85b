// Package pagination splits ordered collections into fixed-size numbered pages.
//
// Page requests are untrusted query values; resolving them never fails.
// Anything that is not a positive integer selects the first page, and a
// number past the end selects the last page.
package pagination

import (
	"context"
	"fmt"
)

// DefaultPageSize is the number of items on every listing page.
const DefaultPageSize = 10

// Page is one page of an ordered collection.
type Page[T any] struct {
	Number     int
	Size       int
	Total      int64
	TotalPages int
	Items      []T
	Adjusted   Adjustment
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// HasPrevious reports whether an earlier page exists.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// Paginate selects the requested page from an in-memory ordered slice.
// The result shares backing storage with items but cannot grow into it.
func Paginate[T any](items []T, size int, requested string) Page[T] {
	w := NewWindow(int64(len(items)), size, requested)
	end := w.End()
	return newPage(w, items[w.Offset:end:end])
}

// Sequence is an ordered collection that can be counted and sliced
// without materializing every element, typically a database query.
type Sequence[T any] interface {
	Count(ctx context.Context) (int64, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// SequenceFuncs adapts a pair of functions to Sequence.
type SequenceFuncs[T any] struct {
	CountFunc func(ctx context.Context) (int64, error)
	SliceFunc func(ctx context.Context, offset, limit int) ([]T, error)
}

func (s SequenceFuncs[T]) Count(ctx context.Context) (int64, error) {
	return s.CountFunc(ctx)
}

func (s SequenceFuncs[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	return s.SliceFunc(ctx, offset, limit)
}

// PaginateSequence is Paginate for collections that live outside memory.
// Only the selected window is fetched. Errors come from the sequence only.
func PaginateSequence[T any](ctx context.Context, seq Sequence[T], size int, requested string) (Page[T], error) {
	total, err := seq.Count(ctx)
	if err != nil {
		return Page[T]{}, fmt.Errorf("count: %w", err)
	}

	w := NewWindow(total, size, requested)
	if w.Total == 0 {
		return newPage[T](w, nil), nil
	}

	items, err := seq.Slice(ctx, w.Offset, w.Size)
	if err != nil {
		return Page[T]{}, fmt.Errorf("slice offset=%d limit=%d: %w", w.Offset, w.Size, err)
	}
	return newPage(w, items), nil
}

func newPage[T any](w Window, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Number:     w.Number,
		Size:       w.Size,
		Total:      w.Total,
		TotalPages: w.TotalPages,
		Items:      items,
		Adjusted:   w.Adjusted,
	}
}
