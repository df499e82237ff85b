package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

type GroupRepository interface {
	// Get and GetBySlug return (nil, nil) when the group does not exist.
	Get(ctx context.Context, id int64) (*entity.Group, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Group, error)
	List(ctx context.Context) ([]*entity.Group, error)
	Create(ctx context.Context, group *entity.Group) error
	// DeleteBySlug removes the group; its posts keep existing with no group.
	// It reports whether a row was deleted.
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}
