package sqlite

import (
	"context"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

type CommentRepo struct{ db repository.DBTX }

func NewCommentRepo(db repository.DBTX) repository.CommentRepository {
	return &CommentRepo{db: db}
}

func (repo *CommentRepo) ListByPost(ctx context.Context, postID int64) ([]repository.CommentWithAuthor, error) {
	const query = `
SELECT c.id, c.post_id, c.author_id, c.text, c.created, u.username
FROM comments c
INNER JOIN users u ON u.id = c.author_id
WHERE c.post_id = ?
ORDER BY c.created DESC, c.id DESC`
	rows, err := repo.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ListByPost: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.CommentWithAuthor, 0, 8)
	for rows.Next() {
		var (
			c        entity.Comment
			created  string
			username string
		)
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &created, &username); err != nil {
			return nil, fmt.Errorf("ListByPost: Scan: %w", err)
		}
		if c.Created, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("ListByPost: %w", err)
		}
		result = append(result, repository.CommentWithAuthor{Comment: &c, AuthorUsername: username})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByPost: rows.Err: %w", err)
	}
	return result, nil
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	const query = `
INSERT INTO comments (post_id, author_id, text, created)
VALUES (?, ?, ?, ?)`
	created := now()
	res, err := repo.db.ExecContext(ctx, query, comment.PostID, comment.AuthorID, comment.Text, formatTime(created))
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	comment.ID = id
	comment.Created = created
	return nil
}
