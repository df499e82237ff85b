package post

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
	"yatube/internal/usecase/listing"
	userUC "yatube/internal/usecase/user"
)

// CreateInput represents the input parameters for creating a post.
type CreateInput struct {
	Text    string
	GroupID *int64
	Image   string
}

// UpdateInput replaces the editable fields of an existing post.
type UpdateInput struct {
	ID      int64
	Text    string
	GroupID *int64
	Image   string
}

// CommentView is a comment as rendered under a post.
type CommentView struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// Detail is a post with its comments, newest comment first.
type Detail struct {
	Post        listing.PostView `json:"post"`
	AuthorPosts int64            `json:"author_posts"`
	Comments    []CommentView    `json:"comments"`
}

// Service provides post and comment use cases.
// Authors are addressed by username and stored on their first write.
type Service struct {
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Groups   repository.GroupRepository
	Accounts *userUC.Service
}

// Create stores a new post by author.
// Returns ErrGroupNotFound if GroupID does not refer to a stored group.
func (s *Service) Create(ctx context.Context, author string, in CreateInput) (*entity.Post, error) {
	u, err := s.Accounts.Ensure(ctx, author)
	if err != nil {
		return nil, err
	}
	p := &entity.Post{Text: in.Text, AuthorID: u.ID, GroupID: in.GroupID, Image: in.Image}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, p.GroupID); err != nil {
		return nil, err
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// Update replaces text, group and image of a post.
// Returns ErrPostNotFound if the post does not exist and ErrNotAuthor if
// editor did not write it.
func (s *Service) Update(ctx context.Context, editor string, in UpdateInput) (*entity.Post, error) {
	current, err := s.owned(ctx, editor, in.ID)
	if err != nil {
		return nil, err
	}
	p := *current.Post
	p.Text, p.GroupID, p.Image = in.Text, in.GroupID, in.Image
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, p.GroupID); err != nil {
		return nil, err
	}
	if err := s.Posts.Update(ctx, &p); err != nil {
		return nil, fmt.Errorf("update post %d: %w", in.ID, err)
	}
	return &p, nil
}

// Delete removes a post and its comments.
// Returns ErrPostNotFound or ErrNotAuthor like Update.
func (s *Service) Delete(ctx context.Context, editor string, id int64) error {
	if _, err := s.owned(ctx, editor, id); err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

// Get returns ErrPostNotFound if the post does not exist.
func (s *Service) Get(ctx context.Context, id int64) (listing.PostView, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return listing.PostView{}, err
	}
	return listing.NewPostView(*row), nil
}

// Detail reads the post and its comments concurrently, then counts the
// author's posts.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	var (
		row      *repository.PostWithRefs
		comments []repository.CommentWithAuthor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		row, err = s.get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.Comments.ListByPost(gctx, id)
		if err != nil {
			return fmt.Errorf("list comments of post %d: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	count, err := s.Posts.CountByAuthor(ctx, row.Post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}

	d := &Detail{
		Post:        listing.NewPostView(*row),
		AuthorPosts: count,
		Comments:    make([]CommentView, 0, len(comments)),
	}
	for _, c := range comments {
		d.Comments = append(d.Comments, CommentView{
			ID:      c.Comment.ID,
			Author:  c.AuthorUsername,
			Text:    c.Comment.Text,
			Created: c.Comment.Created,
		})
	}
	return d, nil
}

// AddComment stores a comment by author under the post.
// Returns ErrPostNotFound if the post does not exist.
func (s *Service) AddComment(ctx context.Context, author string, postID int64, text string) (*entity.Comment, error) {
	if _, err := s.get(ctx, postID); err != nil {
		return nil, err
	}
	u, err := s.Accounts.Ensure(ctx, author)
	if err != nil {
		return nil, err
	}
	c := &entity.Comment{PostID: postID, AuthorID: u.ID, Text: text}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *Service) get(ctx context.Context, id int64) (*repository.PostWithRefs, error) {
	row, err := s.Posts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	if row == nil {
		return nil, ErrPostNotFound
	}
	return row, nil
}

func (s *Service) owned(ctx context.Context, editor string, id int64) (*repository.PostWithRefs, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.AuthorUsername != editor {
		return nil, ErrNotAuthor
	}
	return row, nil
}

func (s *Service) checkGroup(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	g, err := s.Groups.Get(ctx, *groupID)
	if err != nil {
		return fmt.Errorf("get group %d: %w", *groupID, err)
	}
	if g == nil {
		return ErrGroupNotFound
	}
	return nil
}
