package entity

// Follow records that UserID subscribes to the posts of AuthorID.
// The pair is unique.
type Follow struct {
	ID       int64
	UserID   int64
	AuthorID int64
}

// Validate rejects incomplete pairs and self-subscriptions.
func (f *Follow) Validate() error {
	if f.UserID <= 0 {
		return &ValidationError{Field: "user", Message: "is required"}
	}
	if f.AuthorID <= 0 {
		return &ValidationError{Field: "author", Message: "is required"}
	}
	if f.UserID == f.AuthorID {
		return &ValidationError{Field: "author", Message: "cannot be the same as user"}
	}
	return nil
}
