// Package post provides use cases for writing posts and comments and for
// reading a single post with its comments.
package post

import "errors"

// Sentinel errors for post use case operations.
var (
	// ErrPostNotFound indicates that the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrNotAuthor indicates that a user tried to change someone else's post.
	ErrNotAuthor = errors.New("only the author can change this post")

	// ErrGroupNotFound indicates that the post refers to a group that does not exist.
	ErrGroupNotFound = errors.New("group not found")
)
