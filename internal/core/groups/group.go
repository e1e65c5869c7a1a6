package groups

// Group is a named category posts can be filed under
type Group struct {
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
	ID          int64  `json:"id" db:"id"`
}

// String returns the group title, which is how groups are shown in forms and feeds
func (g *Group) String() string {
	return g.Title
}

// CreateGroupRequest represents the input for creating a group
type CreateGroupRequest struct {
	Title       string
	Slug        string
	Description string
}
