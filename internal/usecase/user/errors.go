// Package user mirrors accounts of the external identity provider into storage.
package user

import "errors"

// ErrUserNotFound indicates that no user has the requested username.
var ErrUserNotFound = errors.New("user not found")
