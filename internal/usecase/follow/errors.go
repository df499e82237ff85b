// Package follow manages subscriptions of users to authors.
package follow

import "errors"

// Sentinel errors for follow use case operations.
var (
	// ErrAuthorNotFound indicates that the author to (un)follow is unknown.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrSelfFollow indicates that a user tried to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
