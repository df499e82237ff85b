package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

type UserRepo struct{ db repository.DBTX }

func NewUserRepo(db repository.DBTX) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
SELECT id, username
FROM users
WHERE username = $1
LIMIT 1`
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	return &u, nil
}

// Ensure uses a no-op update on conflict so RETURNING yields the existing row.
func (repo *UserRepo) Ensure(ctx context.Context, username string) (*entity.User, error) {
	const query = `
INSERT INTO users (username)
VALUES ($1)
ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
RETURNING id, username`
	var u entity.User
	if err := repo.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username); err != nil {
		return nil, fmt.Errorf("Ensure: %w", err)
	}
	return &u, nil
}
