package pagination

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// QueryParam is the query string key that selects a page on listing routes.
const QueryParam = "page"

// RequestedPage returns the raw, untrusted page value of the request.
func RequestedPage(r *http.Request) string {
	return r.URL.Query().Get(QueryParam)
}

// ParsePage converts an untrusted page value into a 1-based page number.
// Missing, non-numeric, zero and negative values all resolve to page 1.
// Positive values too large for an int resolve to math.MaxInt, so they clamp
// to the last page once the total is known (see NewWindow).
func ParsePage(raw string) int {
	page, _ := parsePage(raw)
	return page
}

func parsePage(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	page, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return math.MaxInt, true
	}
	if err != nil || page < 1 {
		return 1, false
	}
	return page, true
}
