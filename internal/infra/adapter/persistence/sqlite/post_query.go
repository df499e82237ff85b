// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"yatube/internal/repository"
)

// timeLayout is fixed width so that text comparison orders by time.
const timeLayout = "2006-01-02 15:04:05.000000"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

// now is truncated to the stored precision so callers see what a reload returns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

const selectPostWithRefs = `
SELECT p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
       u.username, g.slug, g.title
FROM posts p
INNER JOIN users u ON u.id = p.author_id
LEFT JOIN post_groups g ON g.id = p.group_id`

type postScope struct {
	where string
	args  []any
}

func scopeAll() postScope { return postScope{} }

func scopeGroup(groupID int64) postScope {
	return postScope{where: "WHERE p.group_id = ?", args: []any{groupID}}
}

func scopeAuthor(authorID int64) postScope {
	return postScope{where: "WHERE p.author_id = ?", args: []any{authorID}}
}

func scopeFollowed(userID int64) postScope {
	return postScope{
		where: "WHERE p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = ?)",
		args:  []any{userID},
	}
}

func (s postScope) countQuery() string {
	return "SELECT COUNT(*) FROM posts p " + s.where
}

func (s postScope) listQuery(offset, limit int) (string, []any) {
	query := selectPostWithRefs + "\n" + s.where + "\nORDER BY p.pub_date DESC, p.id DESC\nLIMIT ? OFFSET ?"
	args := append(append(make([]any, 0, len(s.args)+2), s.args...), limit, offset)
	return query, args
}

// translateError maps driver errors onto repository sentinels.
func translateError(err error) error {
	var se *moderncsqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(se.Error(), "UNIQUE") {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}
