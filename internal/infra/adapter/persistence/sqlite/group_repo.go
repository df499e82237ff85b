package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

type GroupRepo struct{ db repository.DBTX }

func NewGroupRepo(db repository.DBTX) repository.GroupRepository {
	return &GroupRepo{db: db}
}

func (repo *GroupRepo) Get(ctx context.Context, id int64) (*entity.Group, error) {
	const query = `
SELECT id, title, slug, description
FROM post_groups
WHERE id = ?
LIMIT 1`
	return repo.getOne(ctx, "Get", query, id)
}

func (repo *GroupRepo) GetBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	const query = `
SELECT id, title, slug, description
FROM post_groups
WHERE slug = ?
LIMIT 1`
	return repo.getOne(ctx, "GetBySlug", query, slug)
}

func (repo *GroupRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Group, error) {
	var g entity.Group
	err := repo.db.QueryRowContext(ctx, query, arg).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: QueryRowContext: %w", op, err)
	}
	return &g, nil
}

func (repo *GroupRepo) List(ctx context.Context) ([]*entity.Group, error) {
	const query = `
SELECT id, title, slug, description
FROM post_groups
ORDER BY title ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	groups := make([]*entity.Group, 0, 16)
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		groups = append(groups, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return groups, nil
}

func (repo *GroupRepo) Create(ctx context.Context, group *entity.Group) error {
	const query = `
INSERT INTO post_groups (title, slug, description)
VALUES (?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, query, group.Title, group.Slug, group.Description)
	if err != nil {
		return fmt.Errorf("Create: %w", translateError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	group.ID = id
	return nil
}

func (repo *GroupRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	const query = `DELETE FROM post_groups WHERE slug = ?`
	res, err := repo.db.ExecContext(ctx, query, slug)
	if err != nil {
		return false, fmt.Errorf("DeleteBySlug: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteBySlug: RowsAffected: %w", err)
	}
	return n > 0, nil
}
