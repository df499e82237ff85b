// Package group provides use cases for managing post groups.
package group

import "errors"

// Sentinel errors for group use case operations.
var (
	// ErrGroupNotFound indicates that no group has the requested slug.
	ErrGroupNotFound = errors.New("group not found")

	// ErrSlugTaken indicates that another group already uses the slug.
	ErrSlugTaken = errors.New("group slug already taken")
)
