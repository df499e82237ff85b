package follow

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
	userUC "yatube/internal/usecase/user"
)

// Service provides follow use cases. Users are addressed by username.
type Service struct {
	Follows  repository.FollowRepository
	Accounts *userUC.Service
}

// Follow subscribes user to author. Following twice leaves one record.
// Returns ErrSelfFollow or ErrAuthorNotFound.
func (s *Service) Follow(ctx context.Context, user, author string) error {
	if user == author {
		return ErrSelfFollow
	}
	a, err := s.author(ctx, author)
	if err != nil {
		return err
	}
	u, err := s.Accounts.Ensure(ctx, user)
	if err != nil {
		return err
	}
	f := &entity.Follow{UserID: u.ID, AuthorID: a.ID}
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.Follows.Create(ctx, f); err != nil {
		return fmt.Errorf("follow %q: %w", author, err)
	}
	return nil
}

// Unfollow removes every subscription of user to author.
// Unfollowing an author that is not followed is not an error.
func (s *Service) Unfollow(ctx context.Context, user, author string) error {
	a, err := s.author(ctx, author)
	if err != nil {
		return err
	}
	u, err := s.Accounts.GetByUsername(ctx, user)
	if errors.Is(err, userUC.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := s.Follows.Delete(ctx, u.ID, a.ID); err != nil {
		return fmt.Errorf("unfollow %q: %w", author, err)
	}
	return nil
}

// IsFollowing reports whether user follows author. Unknown users follow
// nobody and unknown authors have no followers.
func (s *Service) IsFollowing(ctx context.Context, user, author string) (bool, error) {
	if user == "" || user == author {
		return false, nil
	}
	u, err := s.Accounts.GetByUsername(ctx, user)
	if errors.Is(err, userUC.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	a, err := s.Accounts.GetByUsername(ctx, author)
	if errors.Is(err, userUC.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	ok, err := s.Follows.Exists(ctx, u.ID, a.ID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return ok, nil
}

// Status is IsFollowing for an author that must exist: it returns
// ErrAuthorNotFound for an unknown author.
func (s *Service) Status(ctx context.Context, user, author string) (bool, error) {
	if _, err := s.author(ctx, author); err != nil {
		return false, err
	}
	return s.IsFollowing(ctx, user, author)
}

func (s *Service) author(ctx context.Context, username string) (*entity.User, error) {
	a, err := s.Accounts.GetByUsername(ctx, username)
	if errors.Is(err, userUC.ErrUserNotFound) {
		return nil, ErrAuthorNotFound
	}
	return a, err
}
