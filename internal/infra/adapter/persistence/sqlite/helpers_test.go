package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/adapter/persistence/sqlite"
	"yatube/internal/infra/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yatube.db")
	if err := db.MigrateUp(db.DriverSQLite, path); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	handle, err := db.Open(context.Background(), db.DriverSQLite, path, db.DefaultConnectionConfig())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = handle.Close() })
	return handle
}

func mustUser(t *testing.T, h *db.DB, username string) *entity.User {
	t.Helper()
	u, err := sqlite.NewUserRepo(h).Ensure(context.Background(), username)
	if err != nil {
		t.Fatalf("Ensure(%q): %v", username, err)
	}
	return u
}

func mustGroup(t *testing.T, h *db.DB, title, slug string) *entity.Group {
	t.Helper()
	g := &entity.Group{Title: title, Slug: slug}
	if err := sqlite.NewGroupRepo(h).Create(context.Background(), g); err != nil {
		t.Fatalf("Create group %q: %v", slug, err)
	}
	return g
}

func mustPost(t *testing.T, h *db.DB, author *entity.User, group *entity.Group, text string) *entity.Post {
	t.Helper()
	p := &entity.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		p.GroupID = &group.ID
	}
	if err := sqlite.NewPostRepo(h).Create(context.Background(), p); err != nil {
		t.Fatalf("Create post: %v", err)
	}
	return p
}
