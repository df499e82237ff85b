// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"yatube/internal/repository"
)

const selectPostWithRefs = `
SELECT p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
       u.username, g.slug, g.title
FROM posts p
INNER JOIN users u ON u.id = p.author_id
LEFT JOIN post_groups g ON g.id = p.group_id`

// postScope restricts a post listing. Its condition uses $1 when it takes an argument.
type postScope struct {
	where string
	args  []any
}

func scopeAll() postScope { return postScope{} }

func scopeGroup(groupID int64) postScope {
	return postScope{where: "WHERE p.group_id = $1", args: []any{groupID}}
}

func scopeAuthor(authorID int64) postScope {
	return postScope{where: "WHERE p.author_id = $1", args: []any{authorID}}
}

func scopeFollowed(userID int64) postScope {
	return postScope{
		where: "WHERE p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $1)",
		args:  []any{userID},
	}
}

func (s postScope) countQuery() string {
	return "SELECT COUNT(*) FROM posts p " + s.where
}

// listQuery appends ordering and window placeholders after the scope arguments.
func (s postScope) listQuery(offset, limit int) (string, []any) {
	n := len(s.args)
	query := fmt.Sprintf("%s\n%s\nORDER BY p.pub_date DESC, p.id DESC\nLIMIT $%d OFFSET $%d",
		selectPostWithRefs, s.where, n+1, n+2)
	args := append(append(make([]any, 0, n+2), s.args...), limit, offset)
	return query, args
}

const uniqueViolation = "23505"

// translateError maps driver errors onto repository sentinels.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
