package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

type UserRepository interface {
	// GetByUsername returns (nil, nil) when no such user is known.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Ensure inserts the user if absent and returns the stored row.
	Ensure(ctx context.Context, username string) (*entity.User, error)
}
