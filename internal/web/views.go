package web

import (
	"Yatube/internal/core/comments"
	"Yatube/internal/core/feeds"
	"Yatube/internal/core/groups"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
)

// Base carries what the layout needs on every page
type Base struct {
	Viewer  *users.User
	Title   string
	Path    string
	Flashes []string
}

// FeedPageData backs the index and followed feeds
type FeedPageData struct {
	Base
	Page feeds.PostPage
}

// GroupPageData backs a group's feed
type GroupPageData struct {
	Base
	Group *groups.Group
	Page  feeds.PostPage
}

// ProfilePageData backs an author's profile
type ProfilePageData struct {
	Base
	Author    *users.User
	Page      feeds.PostPage
	PostCount int
	Following bool
	CanFollow bool
}

// PostDetailPageData backs the single post view
type PostDetailPageData struct {
	Base
	Post            *posts.Post
	Comments        []*comments.Comment
	AuthorPostCount int
	CanEdit         bool
}

// PostFormPageData backs the create and edit forms
type PostFormPageData struct {
	Base
	GroupID *int64
	Errors  map[string]string
	Text    string
	Groups  []*groups.Group
	PostID  int64
	IsEdit  bool
}

// LoginPageData backs the login form
type LoginPageData struct {
	Base
	Username string
	Next     string
	Error    string
}

// SignupPageData backs the signup form
type SignupPageData struct {
	Base
	Errors map[string]string
	Form   users.SignupRequest
}
