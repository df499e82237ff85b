// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental records of the blog (users, groups, posts, comments and
// follows) along with their validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

// postStringLength is how many characters of the text a Post renders as.
const postStringLength = 15

// Post is a single publication by an author, optionally filed under a group.
// Posts are listed newest first.
type Post struct {
	ID       int64
	Text     string
	PubDate  time.Time
	AuthorID int64
	// GroupID is nil when the post belongs to no group, including after
	// its group has been deleted.
	GroupID *int64
	Image   string
}

// String returns the first characters of the post text.
func (p *Post) String() string {
	if utf8.RuneCountInString(p.Text) <= postStringLength {
		return p.Text
	}
	return string([]rune(p.Text)[:postStringLength])
}

// Validate checks the fields a client can set on a post.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if p.AuthorID <= 0 {
		return &ValidationError{Field: "author", Message: "is required"}
	}
	if p.GroupID != nil && *p.GroupID <= 0 {
		return &ValidationError{Field: "group", Message: "must be positive"}
	}
	return nil
}
