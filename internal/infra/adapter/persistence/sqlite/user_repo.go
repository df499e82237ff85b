package sqlite

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
WHERE username = ?
LIMIT 1`
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: QueryRowContext: %w", err)
	}
	return &u, nil
}

func (repo *UserRepo) Ensure(ctx context.Context, username string) (*entity.User, error) {
	const insert = `INSERT INTO users (username) VALUES (?) ON CONFLICT (username) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, insert, username); err != nil {
		return nil, fmt.Errorf("Ensure: %w", err)
	}
	u, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("Ensure: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("Ensure: user %q vanished after insert", username)
	}
	return u, nil
}
