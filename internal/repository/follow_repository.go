package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

type FollowRepository interface {
	// Create stores the pair; an existing pair is left untouched.
	Create(ctx context.Context, follow *entity.Follow) error
	// Delete removes the pair and reports how many rows were removed.
	Delete(ctx context.Context, userID, authorID int64) (int64, error)
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	// Count returns the number of records for the pair (0 or 1 while the
	// unique constraint holds).
	Count(ctx context.Context, userID, authorID int64) (int64, error)
}
