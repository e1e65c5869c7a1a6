package posts

// CanEdit reports whether the user identified by editorID may change the post.
// Only the author may edit; anonymous callers (id 0) never can.
func CanEdit(post *Post, editorID int64) bool {
	return post != nil && editorID > 0 && post.AuthorID == editorID
}
