package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

type PostRepo struct{ db repository.DBTX }

func NewPostRepo(db repository.DBTX) repository.PostRepository {
	return &PostRepo{db: db}
}

func (repo *PostRepo) CountAll(ctx context.Context) (int64, error) {
	return repo.count(ctx, "CountAll", scopeAll())
}

func (repo *PostRepo) ListAll(ctx context.Context, offset, limit int) ([]repository.PostWithRefs, error) {
	return repo.list(ctx, "ListAll", scopeAll(), offset, limit)
}

func (repo *PostRepo) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	return repo.count(ctx, "CountByGroup", scopeGroup(groupID))
}

func (repo *PostRepo) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]repository.PostWithRefs, error) {
	return repo.list(ctx, "ListByGroup", scopeGroup(groupID), offset, limit)
}

func (repo *PostRepo) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return repo.count(ctx, "CountByAuthor", scopeAuthor(authorID))
}

func (repo *PostRepo) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]repository.PostWithRefs, error) {
	return repo.list(ctx, "ListByAuthor", scopeAuthor(authorID), offset, limit)
}

func (repo *PostRepo) CountFollowed(ctx context.Context, userID int64) (int64, error) {
	return repo.count(ctx, "CountFollowed", scopeFollowed(userID))
}

func (repo *PostRepo) ListFollowed(ctx context.Context, userID int64, offset, limit int) ([]repository.PostWithRefs, error) {
	return repo.list(ctx, "ListFollowed", scopeFollowed(userID), offset, limit)
}

func (repo *PostRepo) count(ctx context.Context, op string, scope postScope) (int64, error) {
	var n int64
	if err := repo.db.QueryRowContext(ctx, scope.countQuery(), scope.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (repo *PostRepo) list(ctx context.Context, op string, scope postScope, offset, limit int) ([]repository.PostWithRefs, error) {
	query, args := scope.listQuery(offset, limit)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.PostWithRefs, 0, limit)
	for rows.Next() {
		item, err := scanPostWithRefs(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostWithRefs(row rowScanner) (repository.PostWithRefs, error) {
	var (
		post    entity.Post
		pubDate string
		groupID sql.NullInt64
		item    repository.PostWithRefs
	)
	if err := row.Scan(&post.ID, &post.Text, &pubDate, &post.AuthorID, &groupID, &post.Image,
		&item.AuthorUsername, &item.GroupSlug, &item.GroupTitle); err != nil {
		return repository.PostWithRefs{}, err
	}
	t, err := parseTime(pubDate)
	if err != nil {
		return repository.PostWithRefs{}, err
	}
	post.PubDate = t
	if groupID.Valid {
		post.GroupID = &groupID.Int64
	}
	item.Post = &post
	return item, nil
}

func (repo *PostRepo) Get(ctx context.Context, id int64) (*repository.PostWithRefs, error) {
	query := selectPostWithRefs + "\nWHERE p.id = ?\nLIMIT 1"
	item, err := scanPostWithRefs(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &item, nil
}

func (repo *PostRepo) Create(ctx context.Context, post *entity.Post) error {
	const query = `
INSERT INTO posts (text, pub_date, author_id, group_id, image)
VALUES (?, ?, ?, ?, ?)`
	pubDate := now()
	res, err := repo.db.ExecContext(ctx, query,
		post.Text, formatTime(pubDate), post.AuthorID, nullableID(post.GroupID), post.Image)
	if err != nil {
		return fmt.Errorf("Create: %w", translateError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	post.ID = id
	post.PubDate = pubDate
	return nil
}

func (repo *PostRepo) Update(ctx context.Context, post *entity.Post) error {
	const query = `
UPDATE posts
SET text = ?, group_id = ?, image = ?
WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, post.Text, nullableID(post.GroupID), post.Image, post.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: post %d: %w", post.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *PostRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM posts WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: post %d: %w", id, entity.ErrNotFound)
	}
	return nil
}
