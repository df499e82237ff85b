package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

// PostWithRefs is a post joined with the fields listings render next to it.
// Group fields are nil when the post has no group.
type PostWithRefs struct {
	Post           *entity.Post
	AuthorUsername string
	GroupSlug      *string
	GroupTitle     *string
}

// PostRepository stores posts. Every List* method returns rows ordered by
// pub_date DESC, id DESC and is paired with a Count* method over the same
// scope, so callers can request a single page window.
type PostRepository interface {
	CountAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]PostWithRefs, error)

	CountByGroup(ctx context.Context, groupID int64) (int64, error)
	ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]PostWithRefs, error)

	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]PostWithRefs, error)

	// CountFollowed and ListFollowed scope to authors followed by userID.
	CountFollowed(ctx context.Context, userID int64) (int64, error)
	ListFollowed(ctx context.Context, userID int64, offset, limit int) ([]PostWithRefs, error)

	// Get returns (nil, nil) when the post does not exist.
	Get(ctx context.Context, id int64) (*PostWithRefs, error)
	// Create stores the post and sets its ID and PubDate.
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id int64) error
}
