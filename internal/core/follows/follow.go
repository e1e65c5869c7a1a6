package follows

import "time"

// Follow is a directed edge: UserID follows AuthorID.
// The pair is unique and a user never follows themselves.
type Follow struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
}
