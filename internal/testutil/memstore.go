// Package testutil provides in-memory repositories for handler tests.
package testutil

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"Yatube/internal/core/comments"
	"Yatube/internal/core/feeds"
	"Yatube/internal/core/groups"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
)

// Store keeps every relation in memory and hands out repositories over it.
// Posts are stamped with a strictly increasing clock so ordering is deterministic.
type Store struct {
	users    map[int64]*users.User
	groups   map[int64]*groups.Group
	posts    map[int64]*posts.Post
	comments []*comments.Comment
	follows  map[[2]int64]time.Time
	clock    time.Time
	nextID   int64
	mu       sync.RWMutex
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]*users.User),
		groups:  make(map[int64]*groups.Group),
		posts:   make(map[int64]*posts.Post),
		follows: make(map[[2]int64]time.Time),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// Users returns a users.Repository backed by the store
func (s *Store) Users() users.Repository { return &userRepo{s} }

// Groups returns a groups.Repository backed by the store
func (s *Store) Groups() groups.Repository { return &groupRepo{s} }

// Posts returns a posts.Repository backed by the store
func (s *Store) Posts() posts.Repository { return &postRepo{s} }

// Comments returns a comments.Repository backed by the store
func (s *Store) Comments() comments.Repository { return &commentRepo{s} }

// Follows returns a follows.Repository backed by the store
func (s *Store) Follows() *FollowRepo { return &FollowRepo{s} }

// Feeds returns a feeds.Repository backed by the store
func (s *Store) Feeds() *FeedRepo { return &FeedRepo{s: s} }

// PostCount returns how many posts exist
func (s *Store) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// CommentCount returns how many comments exist
func (s *Store) CommentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comments)
}

// FollowCount returns how many follow edges exist
func (s *Store) FollowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.follows)
}

// Post returns a hydrated copy of a stored post, or nil
func (s *Store) Post(id int64) *posts.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	return s.hydrate(p)
}

// hydrate copies a post and fills in Author and Group. Caller holds the lock.
func (s *Store) hydrate(p *posts.Post) *posts.Post {
	cp := *p
	if p.GroupID != nil {
		id := *p.GroupID
		cp.GroupID = &id
		if g, ok := s.groups[id]; ok {
			cp.Group = &posts.GroupRef{ID: g.ID, Title: g.Title, Slug: g.Slug}
		}
	}
	if u, ok := s.users[p.AuthorID]; ok {
		cp.Author = &posts.AuthorView{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
	}
	return &cp
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, users.ErrUsernameTaken
		}
	}
	cp := *user
	cp.ID = r.s.id()
	cp.CreatedAt = r.s.tick()
	r.s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, users.ErrUserNotFound
}

type groupRepo struct{ s *Store }

func (r *groupRepo) Create(_ context.Context, group *groups.Group) (*groups.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == group.Slug {
			return nil, groups.ErrSlugTaken
		}
	}
	cp := *group
	cp.ID = r.s.id()
	r.s.groups[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *groupRepo) GetByID(_ context.Context, id int64) (*groups.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, groups.ErrGroupNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *groupRepo) GetBySlug(_ context.Context, slug string) (*groups.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.groups {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, groups.ErrGroupNotFound
}

func (r *groupRepo) List(_ context.Context) ([]*groups.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*groups.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type postRepo struct{ s *Store }

func (r *postRepo) Create(_ context.Context, post *posts.Post) (*posts.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *post
	cp.ID = r.s.id()
	if cp.PubDate.IsZero() {
		cp.PubDate = r.s.tick()
	}
	cp.Author, cp.Group = nil, nil
	r.s.posts[cp.ID] = &cp
	return r.s.hydrate(&cp), nil
}

func (r *postRepo) GetByID(_ context.Context, id int64) (*posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, posts.ErrPostNotFound
	}
	return r.s.hydrate(p), nil
}

func (r *postRepo) Update(_ context.Context, post *posts.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[post.ID]
	if !ok {
		return posts.ErrPostNotFound
	}
	p.Text = post.Text
	p.Image = post.Image
	p.GroupID = nil
	if post.GroupID != nil {
		id := *post.GroupID
		p.GroupID = &id
	}
	return nil
}

func (r *postRepo) CountByAuthor(_ context.Context, authorID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(_ context.Context, comment *comments.Comment) (*comments.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[comment.PostID]; !ok {
		return nil, posts.ErrPostNotFound
	}
	cp := *comment
	cp.ID = r.s.id()
	cp.CreatedAt = r.s.tick()
	r.s.comments = append(r.s.comments, &cp)
	out := cp
	return &out, nil
}

func (r *commentRepo) ListByPost(_ context.Context, postID int64) ([]*comments.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*comments.Comment
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		cp := *c
		if u, ok := r.s.users[c.AuthorID]; ok {
			cp.Author = &posts.AuthorView{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
		}
		out = append(out, &cp)
	}
	return out, nil
}

// FollowRepo is the in-memory follows.Repository
type FollowRepo struct{ s *Store }

func (r *FollowRepo) Create(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{userID, authorID}
	if _, ok := r.s.follows[key]; ok {
		return false, nil
	}
	r.s.follows[key] = r.s.tick()
	return true, nil
}

func (r *FollowRepo) Delete(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{userID, authorID}
	if _, ok := r.s.follows[key]; !ok {
		return false, nil
	}
	delete(r.s.follows, key)
	return true, nil
}

func (r *FollowRepo) Exists(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.follows[[2]int64{userID, authorID}]
	return ok, nil
}

func (r *FollowRepo) ListFollowedAuthorIDs(_ context.Context, userID int64) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := []int64{}
	for key := range r.s.follows {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// FeedRepo is the in-memory feeds.Repository. ListAllCalls counts index reloads.
type FeedRepo struct {
	s            *Store
	listAllCalls int
}

func (r *FeedRepo) filtered(filter feeds.Filter) []*posts.Post {
	out := []*posts.Post{}
	for _, p := range r.s.posts {
		switch {
		case filter.GroupID > 0:
			if p.GroupID == nil || *p.GroupID != filter.GroupID {
				continue
			}
		case filter.AuthorID > 0:
			if p.AuthorID != filter.AuthorID {
				continue
			}
		case len(filter.AuthorIDs) > 0:
			if !slices.Contains(filter.AuthorIDs, p.AuthorID) {
				continue
			}
		}
		out = append(out, r.s.hydrate(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PubDate.Equal(out[j].PubDate) {
			return out[i].PubDate.After(out[j].PubDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *FeedRepo) Count(_ context.Context, filter feeds.Filter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.filtered(filter)), nil
}

func (r *FeedRepo) List(_ context.Context, filter feeds.Filter, offset, limit int) ([]*posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.filtered(filter)
	if offset >= len(all) {
		return []*posts.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *FeedRepo) ListAll(_ context.Context) ([]*posts.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.listAllCalls++
	return r.filtered(feeds.Filter{}), nil
}

// ListAllCalls returns how many times the full feed was loaded
func (r *FeedRepo) ListAllCalls() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.listAllCalls
}
