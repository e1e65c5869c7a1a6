package images

import "errors"

var (
	// ErrEmptyImage is returned when an upload carries no data.
	ErrEmptyImage = errors.New("empty image data")

	// ErrUnsupportedFormat is returned when the upload is not a decodable JPEG, PNG, GIF or WebP image.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrImageTooLarge is returned when the upload exceeds the byte or pixel limit.
	ErrImageTooLarge = errors.New("image exceeds size limit")

	// ErrInvalidPath is returned when a stored image path escapes the media root.
	ErrInvalidPath = errors.New("invalid image path")
)

// IsInvalidImage reports whether err means the uploaded data itself was rejected.
func IsInvalidImage(err error) bool {
	return errors.Is(err, ErrEmptyImage) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrImageTooLarge)
}
