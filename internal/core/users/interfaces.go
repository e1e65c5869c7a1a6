package users

import "context"

// Repository defines the interface for user persistence
type Repository interface {
	// Create inserts a user. Returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Service defines the interface for account business logic
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)

	// Authenticate checks credentials and returns the matching user.
	// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
