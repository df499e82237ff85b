package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/adapter/persistence/sqlite"
)

func TestCommentRepo_NewestFirstAndCascade(t *testing.T) {
	h := newTestDB(t)
	ctx := context.Background()
	leo := mustUser(t, h, "leo")
	ann := mustUser(t, h, "ann")
	post := mustPost(t, h, leo, nil, "hello")
	repo := sqlite.NewCommentRepo(h)

	for _, c := range []*entity.Comment{
		{PostID: post.ID, AuthorID: ann.ID, Text: "first"},
		{PostID: post.ID, AuthorID: leo.ID, Text: "second"},
	} {
		require.NoError(t, repo.Create(ctx, c))
		assert.NotZero(t, c.ID)
		assert.False(t, c.Created.IsZero())
	}

	got, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Comment.Text)
	assert.Equal(t, "leo", got[0].AuthorUsername)
	assert.Equal(t, "ann", got[1].AuthorUsername)

	require.NoError(t, sqlite.NewPostRepo(h).Delete(ctx, post.ID))
	got, err = repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
