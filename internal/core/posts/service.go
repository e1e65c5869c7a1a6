package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"Yatube/internal/core/groups"
	"Yatube/internal/core/images"
)

type postService struct {
	repo       Repository
	groupRepo  groups.Repository
	imageStore images.Store
}

// NewPostService creates a new post service.
// imageStore can be nil, in which case image uploads are rejected.
func NewPostService(repo Repository, groupRepo groups.Repository, imageStore images.Store) Service {
	return &postService{
		repo:       repo,
		groupRepo:  groupRepo,
		imageStore: imageStore,
	}
}

// CreatePost creates a new post
// Flow: Validate text/group -> Store image -> Insert row (image removed again if the insert fails)
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if req.AuthorID <= 0 {
		return nil, fmt.Errorf("author is required")
	}

	// 1. Validate form fields
	text, err := s.validateFields(ctx, req.Text, req.GroupID)
	if err != nil {
		return nil, err
	}

	// 2. Store the image (validation happens before anything touches disk)
	imagePath, err := s.saveImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	// 3. Persist
	post, err := s.repo.Create(ctx, &Post{
		AuthorID: req.AuthorID,
		Text:     text,
		GroupID:  req.GroupID,
		Image:    imagePath,
	})
	if err != nil {
		s.discardImage(ctx, imagePath)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

// UpdatePost edits an existing post
// Flow: Load -> Authorship check -> Validate -> Store new image -> Update row -> Remove replaced image
func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	// 1. Load the post
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	// 2. Only the author may edit
	if !CanEdit(post, req.EditorID) {
		slog.Warn("rejected edit by non-author", "post_id", post.ID, "editor_id", req.EditorID)
		return nil, ErrNotAuthor
	}

	// 3. Validate form fields
	text, err := s.validateFields(ctx, req.Text, req.GroupID)
	if err != nil {
		return nil, err
	}

	// 4. Store a replacement image if one was uploaded
	newImage, err := s.saveImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Text = text
	post.GroupID = req.GroupID
	if newImage != "" {
		post.Image = newImage
	}

	// 5. Persist
	if err := s.repo.Update(ctx, post); err != nil {
		s.discardImage(ctx, newImage)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	// 6. Drop the image that was replaced
	if newImage != "" && oldImage != "" {
		s.discardImage(ctx, oldImage)
	}

	return s.repo.GetByID(ctx, post.ID)
}

// GetPost retrieves a post by id
func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	if id <= 0 {
		return nil, ErrPostNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// CountByAuthor returns the author's post count
func (s *postService) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	return s.repo.CountByAuthor(ctx, authorID)
}

// validateFields checks the text and group fields shared by create and edit.
// Returns the trimmed text.
func (s *postService) validateFields(ctx context.Context, text string, groupID *int64) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewValidationError("text", "This field is required.")
	}

	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			if groups.IsNotFound(err) {
				return "", NewValidationError("group", "Select a valid choice. That choice is not one of the available choices.")
			}
			return "", fmt.Errorf("failed to look up group: %w", err)
		}
	}

	return text, nil
}

// saveImage stores an uploaded image, returning "" when nothing was uploaded
func (s *postService) saveImage(ctx context.Context, upload *ImageUpload) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", nil
	}
	if s.imageStore == nil {
		return "", NewValidationError("image", "Image uploads are disabled.")
	}

	path, err := s.imageStore.Save(ctx, upload.Data)
	if err != nil {
		if images.IsInvalidImage(err) {
			return "", NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		}
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return path, nil
}

// discardImage removes a stored image, logging failures
func (s *postService) discardImage(ctx context.Context, path string) {
	if path == "" || s.imageStore == nil {
		return
	}
	if err := s.imageStore.Delete(ctx, path); err != nil {
		slog.Warn("failed to remove post image", "path", path, "error", err)
	}
}
