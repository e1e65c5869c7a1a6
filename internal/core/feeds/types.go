package feeds

import (
	"Yatube/internal/core/groups"
	"Yatube/internal/core/pagination"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
)

// Filter narrows the post stream. Zero fields are ignored; at most one is set per feed.
type Filter struct {
	AuthorIDs []int64 // posts by any of these authors
	GroupID   int64
	AuthorID  int64
}

// PostPage is one page of a feed, newest first
type PostPage = pagination.Page[*posts.Post]

// GroupFeed is a page of a group's posts
type GroupFeed struct {
	Group *groups.Group
	Page  PostPage
}

// ProfileFeed is a page of an author's posts plus profile header data
type ProfileFeed struct {
	Author    *users.User
	Page      PostPage
	PostCount int
	Following bool
}
