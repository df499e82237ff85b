package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Total       int64 `json:"total"`       // Total number of items across all pages
	Page        int   `json:"page"`        // Current page number (1-based)
	Limit       int   `json:"limit"`       // Items per page
	TotalPages  int   `json:"total_pages"` // Calculated total number of pages
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// MetadataOf describes a resolved page.
func MetadataOf[T any](p Page[T]) Metadata {
	return Metadata{
		Total:       p.Total,
		Page:        p.Number,
		Limit:       p.Size,
		TotalPages:  p.TotalPages,
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
	}
}
