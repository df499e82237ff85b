// Package listing composes the paginated post listings: the index, a group
// page, an author profile and the follow feed. All of them share one
// pagination policy and differ only in the storage scope they read.
package listing

import "errors"

// Sentinel errors for listing operations.
var (
	// ErrGroupNotFound indicates that no group has the requested slug.
	ErrGroupNotFound = errors.New("group not found")

	// ErrAuthorNotFound indicates that no user has the requested username.
	ErrAuthorNotFound = errors.New("author not found")
)
