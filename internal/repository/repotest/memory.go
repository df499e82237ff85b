// Package repotest provides in-memory repositories for use case and handler tests.
//
// All repositories created from one Store share its tables, so foreign key
// behavior (group deletion clears post groups, post deletion drops comments)
// matches the SQL adapters.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

// Store is a set of in-memory tables.
type Store struct {
	mu       sync.Mutex
	users    map[int64]*entity.User
	groups   map[int64]*entity.Group
	posts    map[int64]*entity.Post
	comments map[int64]*entity.Comment
	follows  map[int64]*entity.Follow
	nextID   int64
	clock    time.Time

	// Err, when set, is returned by every repository call.
	Err error
}

// NewStore returns empty tables.
func NewStore() *Store {
	return &Store{
		users:    map[int64]*entity.User{},
		groups:   map[int64]*entity.Group{},
		posts:    map[int64]*entity.Post{},
		comments: map[int64]*entity.Comment{},
		follows:  map[int64]*entity.Follow{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// tick returns strictly increasing timestamps so creation order is listing order.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) Users() repository.UserRepository       { return userRepo{s} }
func (s *Store) Groups() repository.GroupRepository     { return groupRepo{s} }
func (s *Store) Posts() repository.PostRepository       { return postRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }
func (s *Store) Follows() repository.FollowRepository   { return followRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.s.userByName(username), nil
}

func (r userRepo) Ensure(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if u := r.s.userByName(username); u != nil {
		return u, nil
	}
	u := &entity.User{ID: r.s.id(), Username: username}
	r.s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *Store) userByName(username string) *entity.User {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp
		}
	}
	return nil
}

type groupRepo struct{ s *Store }

func (r groupRepo) Get(_ context.Context, id int64) (*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if g, ok := r.s.groups[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r groupRepo) GetBySlug(_ context.Context, slug string) (*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if g := r.s.groupBySlug(slug); g != nil {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) groupBySlug(slug string) *entity.Group {
	for _, g := range s.groups {
		if g.Slug == slug {
			return g
		}
	}
	return nil
}

func (r groupRepo) List(_ context.Context) ([]*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*entity.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r groupRepo) Create(_ context.Context, g *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.groupBySlug(g.Slug) != nil {
		return fmt.Errorf("%w: slug %q", repository.ErrDuplicate, g.Slug)
	}
	g.ID = r.s.id()
	cp := *g
	r.s.groups[g.ID] = &cp
	return nil
}

func (r groupRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	g := r.s.groupBySlug(slug)
	if g == nil {
		return false, nil
	}
	delete(r.s.groups, g.ID)
	for _, p := range r.s.posts {
		if p.GroupID != nil && *p.GroupID == g.ID {
			p.GroupID = nil
		}
	}
	return true, nil
}

type postRepo struct{ s *Store }

func (r postRepo) scoped(keep func(*entity.Post) bool) []*entity.Post {
	out := make([]*entity.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PubDate.Equal(out[j].PubDate) {
			return out[i].PubDate.After(out[j].PubDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r postRepo) withRefs(p *entity.Post) repository.PostWithRefs {
	cp := *p
	if p.GroupID != nil {
		id := *p.GroupID
		cp.GroupID = &id
	}
	item := repository.PostWithRefs{Post: &cp}
	if u, ok := r.s.users[p.AuthorID]; ok {
		item.AuthorUsername = u.Username
	}
	if p.GroupID != nil {
		if g, ok := r.s.groups[*p.GroupID]; ok {
			slug, title := g.Slug, g.Title
			item.GroupSlug, item.GroupTitle = &slug, &title
		}
	}
	return item
}

func (r postRepo) count(keep func(*entity.Post) bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return int64(len(r.scoped(keep))), nil
}

func (r postRepo) list(keep func(*entity.Post) bool, offset, limit int) ([]repository.PostWithRefs, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	posts := r.scoped(keep)
	if offset > len(posts) {
		offset = len(posts)
	}
	end := min(offset+limit, len(posts))
	out := make([]repository.PostWithRefs, 0, end-offset)
	for _, p := range posts[offset:end] {
		out = append(out, r.withRefs(p))
	}
	return out, nil
}

func all(*entity.Post) bool { return true }

func inGroup(groupID int64) func(*entity.Post) bool {
	return func(p *entity.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }
}

func byAuthor(authorID int64) func(*entity.Post) bool {
	return func(p *entity.Post) bool { return p.AuthorID == authorID }
}

// followedBy must be called with the store lock held.
func (r postRepo) followedBy(userID int64) func(*entity.Post) bool {
	return func(p *entity.Post) bool {
		for _, f := range r.s.follows {
			if f.UserID == userID && f.AuthorID == p.AuthorID {
				return true
			}
		}
		return false
	}
}

func (r postRepo) CountAll(context.Context) (int64, error) { return r.count(all) }

func (r postRepo) ListAll(_ context.Context, offset, limit int) ([]repository.PostWithRefs, error) {
	return r.list(all, offset, limit)
}

func (r postRepo) CountByGroup(_ context.Context, groupID int64) (int64, error) {
	return r.count(inGroup(groupID))
}

func (r postRepo) ListByGroup(_ context.Context, groupID int64, offset, limit int) ([]repository.PostWithRefs, error) {
	return r.list(inGroup(groupID), offset, limit)
}

func (r postRepo) CountByAuthor(_ context.Context, authorID int64) (int64, error) {
	return r.count(byAuthor(authorID))
}

func (r postRepo) ListByAuthor(_ context.Context, authorID int64, offset, limit int) ([]repository.PostWithRefs, error) {
	return r.list(byAuthor(authorID), offset, limit)
}

func (r postRepo) CountFollowed(_ context.Context, userID int64) (int64, error) {
	return r.count(r.followedBy(userID))
}

func (r postRepo) ListFollowed(_ context.Context, userID int64, offset, limit int) ([]repository.PostWithRefs, error) {
	return r.list(r.followedBy(userID), offset, limit)
}

func (r postRepo) Get(_ context.Context, id int64) (*repository.PostWithRefs, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	item := r.withRefs(p)
	return &item, nil
}

func (r postRepo) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	p.ID = r.s.id()
	p.PubDate = r.s.tick()
	cp := *p
	r.s.posts[p.ID] = &cp
	return nil
}

func (r postRepo) Update(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	stored, ok := r.s.posts[p.ID]
	if !ok {
		return fmt.Errorf("post %d: %w", p.ID, entity.ErrNotFound)
	}
	stored.Text, stored.GroupID, stored.Image = p.Text, p.GroupID, p.Image
	return nil
}

func (r postRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.posts[id]; !ok {
		return fmt.Errorf("post %d: %w", id, entity.ErrNotFound)
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) ListByPost(_ context.Context, postID int64) ([]repository.CommentWithAuthor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]repository.CommentWithAuthor, 0)
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		cp := *c
		item := repository.CommentWithAuthor{Comment: &cp}
		if u, ok := r.s.users[c.AuthorID]; ok {
			item.AuthorUsername = u.Username
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Comment.Created.Equal(out[j].Comment.Created) {
			return out[i].Comment.Created.After(out[j].Comment.Created)
		}
		return out[i].Comment.ID > out[j].Comment.ID
	})
	return out, nil
}

func (r commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	c.ID = r.s.id()
	c.Created = r.s.tick()
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

type followRepo struct{ s *Store }

func (r followRepo) Create(_ context.Context, f *entity.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if f.UserID == f.AuthorID {
		return fmt.Errorf("follow %d->%d: check constraint", f.UserID, f.AuthorID)
	}
	for _, existing := range r.s.follows {
		if existing.UserID == f.UserID && existing.AuthorID == f.AuthorID {
			return nil
		}
	}
	f.ID = r.s.id()
	cp := *f
	r.s.follows[f.ID] = &cp
	return nil
}

func (r followRepo) Delete(_ context.Context, userID, authorID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	for id, f := range r.s.follows {
		if f.UserID == userID && f.AuthorID == authorID {
			delete(r.s.follows, id)
			n++
		}
	}
	return n, nil
}

func (r followRepo) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	n, err := r.Count(ctx, userID, authorID)
	return n > 0, err
}

func (r followRepo) Count(_ context.Context, userID, authorID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	for _, f := range r.s.follows {
		if f.UserID == userID && f.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}
