package listing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"yatube/internal/common/pagination"
	"yatube/internal/domain/entity"
	"yatube/internal/observability/tracing"
	"yatube/internal/repository"
)

// PageSize is the number of posts on every listing page.
const PageSize = 10

// Listing names used as metric labels.
const (
	listingIndex   = "index"
	listingGroup   = "group"
	listingProfile = "profile"
	listingFollow  = "follow"
)

// Service builds listing pages from the post repository.
type Service struct {
	Posts  repository.PostRepository
	Groups repository.GroupRepository
	Users  repository.UserRepository
}

// ListAll returns one page of all posts, newest first.
func (s *Service) ListAll(ctx context.Context, page string) (pagination.Page[PostView], error) {
	p, err := s.paginate(ctx, listingIndex, page, s.Posts.CountAll, s.Posts.ListAll)
	if err != nil {
		return p, fmt.Errorf("list all posts: %w", err)
	}
	return p, nil
}

// ListByGroup returns the group addressed by slug and one page of its posts.
// Returns ErrGroupNotFound if no group has the slug.
func (s *Service) ListByGroup(ctx context.Context, slug, page string) (*entity.Group, pagination.Page[PostView], error) {
	var empty pagination.Page[PostView]
	group, err := s.Groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, empty, fmt.Errorf("get group %q: %w", slug, err)
	}
	if group == nil {
		return nil, empty, ErrGroupNotFound
	}
	p, err := s.paginate(ctx, listingGroup, page,
		func(ctx context.Context) (int64, error) { return s.Posts.CountByGroup(ctx, group.ID) },
		func(ctx context.Context, offset, limit int) ([]repository.PostWithRefs, error) {
			return s.Posts.ListByGroup(ctx, group.ID, offset, limit)
		})
	if err != nil {
		return nil, empty, fmt.Errorf("list group %q posts: %w", slug, err)
	}
	return group, p, nil
}

// ListByAuthor returns the user addressed by username and one page of their posts.
// Returns ErrAuthorNotFound if the username is unknown.
func (s *Service) ListByAuthor(ctx context.Context, username, page string) (*entity.User, pagination.Page[PostView], error) {
	var empty pagination.Page[PostView]
	author, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, empty, fmt.Errorf("get author %q: %w", username, err)
	}
	if author == nil {
		return nil, empty, ErrAuthorNotFound
	}
	p, err := s.paginate(ctx, listingProfile, page,
		func(ctx context.Context) (int64, error) { return s.Posts.CountByAuthor(ctx, author.ID) },
		func(ctx context.Context, offset, limit int) ([]repository.PostWithRefs, error) {
			return s.Posts.ListByAuthor(ctx, author.ID, offset, limit)
		})
	if err != nil {
		return nil, empty, fmt.Errorf("list author %q posts: %w", username, err)
	}
	return author, p, nil
}

// ListFollowed returns one page of posts by authors that username follows.
// A user unknown to storage follows nobody and gets an empty first page.
func (s *Service) ListFollowed(ctx context.Context, username, page string) (pagination.Page[PostView], error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return pagination.Page[PostView]{}, fmt.Errorf("get user %q: %w", username, err)
	}
	if user == nil {
		p := pagination.Paginate[PostView](nil, PageSize, page)
		pagination.RecordPage(listingFollow, p)
		return p, nil
	}
	p, err := s.paginate(ctx, listingFollow, page,
		func(ctx context.Context) (int64, error) { return s.Posts.CountFollowed(ctx, user.ID) },
		func(ctx context.Context, offset, limit int) ([]repository.PostWithRefs, error) {
			return s.Posts.ListFollowed(ctx, user.ID, offset, limit)
		})
	if err != nil {
		return p, fmt.Errorf("list posts followed by %q: %w", username, err)
	}
	return p, nil
}

func (s *Service) paginate(
	ctx context.Context,
	listing, page string,
	count func(context.Context) (int64, error),
	list func(context.Context, int, int) ([]repository.PostWithRefs, error),
) (pagination.Page[PostView], error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, "listing."+listing)
	defer span.End()
	seq := pagination.SequenceFuncs[PostView]{
		CountFunc: count,
		SliceFunc: func(ctx context.Context, offset, limit int) ([]PostView, error) {
			rows, err := list(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			return newPostViews(rows), nil
		},
	}
	p, err := pagination.PaginateSequence[PostView](ctx, seq, PageSize, page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return p, err
	}
	span.SetAttributes(
		attribute.Int("page", p.Number),
		attribute.Int64("total", p.Total),
	)
	pagination.RecordPage(listing, p)
	pagination.RecordDuration(listing, time.Since(start).Seconds())
	return p, nil
}
