package postgres

import (
	"context"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

type FollowRepo struct{ db repository.DBTX }

func NewFollowRepo(db repository.DBTX) repository.FollowRepository {
	return &FollowRepo{db: db}
}

func (repo *FollowRepo) Create(ctx context.Context, follow *entity.Follow) error {
	const query = `
INSERT INTO follows (user_id, author_id)
VALUES ($1, $2)
ON CONFLICT (user_id, author_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, follow.UserID, follow.AuthorID); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *FollowRepo) Delete(ctx context.Context, userID, authorID int64) (int64, error) {
	const query = `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`
	res, err := repo.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *FollowRepo) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, userID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (repo *FollowRepo) Count(ctx context.Context, userID, authorID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM follows WHERE user_id = $1 AND author_id = $2`
	var n int64
	if err := repo.db.QueryRowContext(ctx, query, userID, authorID).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
