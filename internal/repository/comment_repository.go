package repository

import (
	"context"

	"yatube/internal/domain/entity"
)

// CommentWithAuthor is a comment joined with its author's username.
type CommentWithAuthor struct {
	Comment        *entity.Comment
	AuthorUsername string
}

type CommentRepository interface {
	// ListByPost returns comments newest first.
	ListByPost(ctx context.Context, postID int64) ([]CommentWithAuthor, error)
	// Create stores the comment and sets its ID and Created time.
	Create(ctx context.Context, comment *entity.Comment) error
}
