package entity

import (
	"strings"
	"time"
)

// Comment is a reply to a post. Comments are deleted together with their post.
type Comment struct {
	ID       int64
	PostID   int64
	AuthorID int64
	Text     string
	Created  time.Time
}

// String returns the comment text.
func (c *Comment) String() string {
	return c.Text
}

// Validate checks the comment before it is stored.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if c.PostID <= 0 {
		return &ValidationError{Field: "post", Message: "is required"}
	}
	if c.AuthorID <= 0 {
		return &ValidationError{Field: "author", Message: "is required"}
	}
	return nil
}
