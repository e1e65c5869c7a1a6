package posts

import (
	"time"
)

// Post is a single entry in the blog. Author is required, Group and Image are optional.
// Author and Group are hydrated by the repository when the post is read.
type Post struct {
	PubDate  time.Time   `json:"pubDate" db:"pub_date"`
	GroupID  *int64      `json:"groupId,omitempty" db:"group_id"`
	Author   *AuthorView `json:"author,omitempty"`
	Group    *GroupRef   `json:"group,omitempty"`
	Text     string      `json:"text" db:"text"`
	Image    string      `json:"image,omitempty" db:"image"`
	ID       int64       `json:"id" db:"id"`
	AuthorID int64       `json:"authorId" db:"author_id"`
}

// HasImage reports whether an image is attached
func (p *Post) HasImage() bool {
	return p.Image != ""
}

// Excerpt returns the first 15 characters of the text, used in page titles
func (p *Post) Excerpt() string {
	runes := []rune(p.Text)
	if len(runes) <= 15 {
		return p.Text
	}
	return string(runes[:15])
}

// AuthorView represents author information shown alongside a post
type AuthorView struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	ID        int64  `json:"id"`
}

// FullName returns "First Last", falling back to the username
func (a *AuthorView) FullName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	default:
		return a.Username
	}
}

// GroupRef represents minimal group info in post views
type GroupRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	ID    int64  `json:"id"`
}

// ImageUpload carries the raw bytes of an uploaded picture
type ImageUpload struct {
	Filename string
	Data     []byte
}

// CreatePostRequest represents the submitted create form
type CreatePostRequest struct {
	GroupID  *int64
	Image    *ImageUpload
	Text     string
	AuthorID int64
}

// UpdatePostRequest represents the submitted edit form.
// A nil Image leaves the stored image unchanged.
type UpdatePostRequest struct {
	GroupID  *int64
	Image    *ImageUpload
	Text     string
	PostID   int64
	EditorID int64
}
