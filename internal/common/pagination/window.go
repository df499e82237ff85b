package pagination

// Adjustment describes how the requested page was corrected.
type Adjustment string

const (
	AdjustNone      Adjustment = ""
	AdjustDefaulted Adjustment = "defaulted" // missing or not a positive integer
	AdjustClamped   Adjustment = "clamped"   // beyond the last page
)

// Window is the resolved position of one page inside a collection of Total items.
type Window struct {
	Number     int // 1-based, always within [1, TotalPages]
	Size       int
	Total      int64
	TotalPages int
	Offset     int
	Adjusted   Adjustment
}

// NewWindow resolves an untrusted page request against a collection size.
// It never fails: bad input degrades to page 1 and overshoot to the last page.
// A non-positive size falls back to DefaultPageSize.
func NewWindow(total int64, size int, requested string) Window {
	if size < 1 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := pageCount(total, size)
	number, ok := parsePage(requested)
	adjusted := AdjustNone
	if !ok && requested != "" {
		adjusted = AdjustDefaulted
	}
	if number > totalPages {
		number = totalPages
		adjusted = AdjustClamped
	}

	return Window{
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		Offset:     (number - 1) * size,
		Adjusted:   adjusted,
	}
}

// End returns the exclusive upper bound of the window, capped at Total.
func (w Window) End() int {
	end := w.Offset + w.Size
	if int64(end) > w.Total {
		end = int(w.Total)
	}
	return end
}

// HasNext reports whether a later page exists.
func (w Window) HasNext() bool { return w.Number < w.TotalPages }

// HasPrevious reports whether an earlier page exists.
func (w Window) HasPrevious() bool { return w.Number > 1 }

// pageCount is ceil(total/size), but never below one: an empty collection
// still renders as a single empty page.
func pageCount(total int64, size int) int {
	n := int(total / int64(size))
	if total%int64(size) != 0 {
		n++
	}
	return max(n, 1)
}
