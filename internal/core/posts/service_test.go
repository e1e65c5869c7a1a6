package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"Yatube/internal/core/groups"
	"Yatube/internal/core/images"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(ctx context.Context, post *Post) (*Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockPostRepo) Update(ctx context.Context, post *Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) Create(ctx context.Context, group *groups.Group) (*groups.Group, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groups.Group), args.Error(1)
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id int64) (*groups.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groups.Group), args.Error(1)
}

func (m *mockGroupRepo) GetBySlug(ctx context.Context, slug string) (*groups.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groups.Group), args.Error(1)
}

func (m *mockGroupRepo) List(ctx context.Context) ([]*groups.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*groups.Group), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, relPath string) error {
	return m.Called(ctx, relPath).Error(0)
}

func int64Ptr(v int64) *int64 { return &v }

func TestCanEdit(t *testing.T) {
	post := &Post{ID: 1, AuthorID: 10}

	assert.True(t, CanEdit(post, 10))
	assert.False(t, CanEdit(post, 11))
	assert.False(t, CanEdit(post, 0))
	assert.False(t, CanEdit(nil, 10))
}

func TestCreatePost_Success(t *testing.T) {
	repo := new(mockPostRepo)
	groupRepo := new(mockGroupRepo)
	store := new(mockImageStore)
	service := NewPostService(repo, groupRepo, store)

	groupRepo.On("GetByID", mock.Anything, int64(2)).Return(&groups.Group{ID: 2, Slug: "first"}, nil)
	store.On("Save", mock.Anything, []byte("gif-bytes")).Return("posts/abc.jpg", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Post) bool {
		return p.AuthorID == 5 && p.Text == "Hello" && *p.GroupID == 2 && p.Image == "posts/abc.jpg"
	})).Return(&Post{ID: 99, AuthorID: 5, Text: "Hello", PubDate: time.Now()}, nil)

	post, err := service.CreatePost(context.Background(), CreatePostRequest{
		AuthorID: 5,
		Text:     "  Hello ",
		GroupID:  int64Ptr(2),
		Image:    &ImageUpload{Filename: "small.gif", Data: []byte("gif-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), post.ID)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCreatePost_ValidationWritesNothing(t *testing.T) {
	tests := []struct {
		name  string
		req   CreatePostRequest
		setup func(*mockGroupRepo, *mockImageStore)
		field string
	}{
		{
			name:  "empty text",
			req:   CreatePostRequest{AuthorID: 5, Text: "   "},
			field: "text",
		},
		{
			name: "unknown group",
			req:  CreatePostRequest{AuthorID: 5, Text: "Hello", GroupID: int64Ptr(404)},
			setup: func(g *mockGroupRepo, _ *mockImageStore) {
				g.On("GetByID", mock.Anything, int64(404)).Return(nil, groups.ErrGroupNotFound)
			},
			field: "group",
		},
		{
			name: "malformed image",
			req:  CreatePostRequest{AuthorID: 5, Text: "Hello", Image: &ImageUpload{Data: []byte("nope")}},
			setup: func(_ *mockGroupRepo, s *mockImageStore) {
				s.On("Save", mock.Anything, []byte("nope")).Return("", images.ErrUnsupportedFormat)
			},
			field: "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockPostRepo)
			groupRepo := new(mockGroupRepo)
			store := new(mockImageStore)
			if tt.setup != nil {
				tt.setup(groupRepo, store)
			}

			_, err := NewPostService(repo, groupRepo, store).CreatePost(context.Background(), tt.req)

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, valErr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreatePost_RemovesImageWhenInsertFails(t *testing.T) {
	repo := new(mockPostRepo)
	store := new(mockImageStore)
	service := NewPostService(repo, new(mockGroupRepo), store)

	store.On("Save", mock.Anything, mock.Anything).Return("posts/tmp.jpg", nil)
	store.On("Delete", mock.Anything, "posts/tmp.jpg").Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := service.CreatePost(context.Background(), CreatePostRequest{
		AuthorID: 5,
		Text:     "Hello",
		Image:    &ImageUpload{Data: []byte("img")},
	})
	require.Error(t, err)
	store.AssertCalled(t, "Delete", mock.Anything, "posts/tmp.jpg")
}

func TestUpdatePost_NonAuthorNeverMutates(t *testing.T) {
	repo := new(mockPostRepo)
	service := NewPostService(repo, new(mockGroupRepo), new(mockImageStore))

	original := &Post{ID: 1, AuthorID: 10, Text: "original"}
	repo.On("GetByID", mock.Anything, int64(1)).Return(original, nil)

	_, err := service.UpdatePost(context.Background(), UpdatePostRequest{
		PostID:   1,
		EditorID: 11,
		Text:     "hijacked",
	})
	assert.ErrorIs(t, err, ErrNotAuthor)
	assert.Equal(t, "original", original.Text)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePost_KeepsImageWhenOmitted(t *testing.T) {
	repo := new(mockPostRepo)
	store := new(mockImageStore)
	service := NewPostService(repo, new(mockGroupRepo), store)

	stored := &Post{ID: 1, AuthorID: 10, Text: "original", Image: "posts/keep.jpg"}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *Post) bool {
		return p.Text == "edited" && p.Image == "posts/keep.jpg" && p.GroupID == nil
	})).Return(nil)

	post, err := service.UpdatePost(context.Background(), UpdatePostRequest{
		PostID:   1,
		EditorID: 10,
		Text:     "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, "posts/keep.jpg", post.Image)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdatePost_ReplacesImage(t *testing.T) {
	repo := new(mockPostRepo)
	store := new(mockImageStore)
	service := NewPostService(repo, new(mockGroupRepo), store)

	stored := &Post{ID: 1, AuthorID: 10, Text: "original", Image: "posts/old.jpg"}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	store.On("Save", mock.Anything, []byte("new")).Return("posts/new.jpg", nil)
	store.On("Delete", mock.Anything, "posts/old.jpg").Return(nil)

	post, err := service.UpdatePost(context.Background(), UpdatePostRequest{
		PostID:   1,
		EditorID: 10,
		Text:     "edited",
		Image:    &ImageUpload{Data: []byte("new")},
	})
	require.NoError(t, err)
	assert.Equal(t, "posts/new.jpg", post.Image)
	store.AssertExpectations(t)
}

func TestUpdatePost_InvalidTextWritesNothing(t *testing.T) {
	repo := new(mockPostRepo)
	service := NewPostService(repo, new(mockGroupRepo), new(mockImageStore))

	repo.On("GetByID", mock.Anything, int64(1)).Return(&Post{ID: 1, AuthorID: 10, Text: "original"}, nil)

	_, err := service.UpdatePost(context.Background(), UpdatePostRequest{PostID: 1, EditorID: 10, Text: ""})
	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePost_NotFound(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, ErrPostNotFound)

	_, err := NewPostService(repo, new(mockGroupRepo), nil).UpdatePost(context.Background(), UpdatePostRequest{PostID: 7, EditorID: 1, Text: "x"})
	assert.True(t, IsNotFound(err))
}

func TestGetPost_InvalidID(t *testing.T) {
	repo := new(mockPostRepo)
	_, err := NewPostService(repo, new(mockGroupRepo), nil).GetPost(context.Background(), 0)
	assert.True(t, IsNotFound(err))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestExcerptAndFullName(t *testing.T) {
	p := &Post{Text: "Тестовый пост номер один"}
	assert.Equal(t, "Тестовый пост н", p.Excerpt())

	a := &AuthorView{Username: "auth"}
	assert.Equal(t, "auth", a.FullName())
	a.FirstName = "Leo"
	assert.Equal(t, "Leo", a.FullName())
}
