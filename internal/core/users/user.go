package users

import (
	"time"
)

// User is a registered author. Passwords are only ever held as bcrypt hashes.
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"firstName,omitempty" db:"first_name"`
	LastName     string    `json:"lastName,omitempty" db:"last_name"`
	Email        string    `json:"email,omitempty" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
}

// FullName returns "First Last", or the username when no name was given.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// SignupRequest represents the input of the signup form
type SignupRequest struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}
