// Package images validates and stores the optional picture attached to a post.
// Uploads are normalised to JPEG and written under the media root with random names.
package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// postsDir is the media subdirectory holding post images
const postsDir = "posts"

// Store persists uploaded post images.
type Store interface {
	// Save validates and stores the image, returning its path relative to the media root.
	Save(ctx context.Context, data []byte) (string, error)

	// Delete removes a previously saved image. Missing files are not an error.
	Delete(ctx context.Context, relPath string) error
}

// DiskStore implements Store on the local filesystem.
type DiskStore struct {
	root     string
	maxWidth int
	maxBytes int64
}

// NewDiskStore creates a DiskStore rooted at root.
// maxWidth of 0 disables downscaling; maxBytes of 0 disables the size check.
func NewDiskStore(root string, maxWidth int, maxBytes int64) (*DiskStore, error) {
	if root == "" {
		return nil, errors.New("media root cannot be empty")
	}
	if maxWidth < 0 || maxBytes < 0 {
		return nil, errors.New("image limits cannot be negative")
	}
	return &DiskStore{root: root, maxWidth: maxWidth, maxBytes: maxBytes}, nil
}

// Root returns the directory images are written under.
func (s *DiskStore) Root() string {
	return s.root
}

// Save processes the image and writes it to {root}/posts/{uuid}.jpg
func (s *DiskStore) Save(ctx context.Context, data []byte) (string, error) {
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}

	processed, err := Process(data, s.maxWidth)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, postsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := uuid.New().String() + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, name), processed, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return path.Join(postsDir, name), nil
}

// Delete removes a stored image
func (s *DiskStore) Delete(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}

	cleaned := path.Clean(relPath)
	if strings.Contains(cleaned, "..") || !strings.HasPrefix(cleaned, postsDir+"/") {
		return fmt.Errorf("%w: %s", ErrInvalidPath, relPath)
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(cleaned)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if err == nil {
		slog.Debug("deleted post image", "path", cleaned)
	}
	return nil
}
