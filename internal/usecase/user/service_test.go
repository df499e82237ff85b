package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domain/entity"
	"yatube/internal/repository/repotest"
	userUC "yatube/internal/usecase/user"
)

func TestService_Ensure(t *testing.T) {
	store := repotest.NewStore()
	svc := &userUC.Service{Repo: store.Users()}
	ctx := context.Background()

	first, err := svc.Ensure(ctx, "leo")
	require.NoError(t, err)
	again, err := svc.Ensure(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	got, err := svc.GetByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestService_Ensure_Invalid(t *testing.T) {
	svc := &userUC.Service{Repo: repotest.NewStore().Users()}

	tests := []struct {
		name     string
		username string
	}{
		{name: "empty", username: ""},
		{name: "too long", username: strings.Repeat("a", 151)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ensure(context.Background(), tt.username)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
		})
	}
}

func TestService_GetByUsername_NotFound(t *testing.T) {
	svc := &userUC.Service{Repo: repotest.NewStore().Users()}

	_, err := svc.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, userUC.ErrUserNotFound)
}

func TestService_StorageError(t *testing.T) {
	store := repotest.NewStore()
	boom := errors.New("db down")
	store.Err = boom
	svc := &userUC.Service{Repo: store.Users()}

	_, err := svc.Ensure(context.Background(), "leo")
	assert.ErrorIs(t, err, boom)
	_, err = svc.GetByUsername(context.Background(), "leo")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, userUC.ErrUserNotFound))
}
