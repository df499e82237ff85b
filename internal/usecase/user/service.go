package user

import (
	"context"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

// Service provides user lookups and first-write registration.
type Service struct {
	Repo repository.UserRepository
}

// Ensure returns the stored user for username, inserting it if absent.
func (s *Service) Ensure(ctx context.Context, username string) (*entity.User, error) {
	if err := entity.ValidateUsername(username); err != nil {
		return nil, err
	}
	u, err := s.Repo.Ensure(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ensure user %q: %w", username, err)
	}
	return u, nil
}

// GetByUsername returns ErrUserNotFound if the user has never been stored.
func (s *Service) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
