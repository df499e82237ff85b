package group

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

// CreateInput represents the input parameters for creating a group.
// An empty Slug is derived from the Title.
type CreateInput struct {
	Title       string
	Slug        string
	Description string
}

// Service provides group management use cases.
type Service struct {
	Repo repository.GroupRepository
}

// Create validates and stores a new group.
// Returns ErrSlugTaken if the slug is already in use.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Group, error) {
	g, err := entity.NewGroup(in.Title, in.Slug, in.Description)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrSlugTaken, g.Slug)
		}
		return nil, fmt.Errorf("create group: %w", err)
	}
	return g, nil
}

// Delete removes the group. Its posts remain with no group.
// Returns ErrGroupNotFound if nothing was deleted.
func (s *Service) Delete(ctx context.Context, slug string) error {
	deleted, err := s.Repo.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete group %q: %w", slug, err)
	}
	if !deleted {
		return ErrGroupNotFound
	}
	return nil
}

// Get returns ErrGroupNotFound if no group has the slug.
func (s *Service) Get(ctx context.Context, slug string) (*entity.Group, error) {
	g, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get group %q: %w", slug, err)
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// List returns all groups ordered by title.
func (s *Service) List(ctx context.Context) ([]*entity.Group, error) {
	groups, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
