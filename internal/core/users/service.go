package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Usernames allow letters, digits and @/./+/-/_ only
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

type userService struct {
	repo       Repository
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(repo Repository) Service {
	return &userService{
		repo:       repo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// NewUserServiceWithCost creates a user service with a custom bcrypt cost.
// Tests use bcrypt.MinCost to keep hashing fast.
func NewUserServiceWithCost(repo Repository, cost int) Service {
	return &userService{
		repo:       repo,
		bcryptCost: cost,
	}
}

// Signup validates the form, hashes the password and stores the new user
func (s *userService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := s.validateSignup(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, NewValidationError("username", "A user with that username already exists.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate checks a username/password pair
func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by id
func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username
func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByUsername(ctx, username)
}

func (s *userService) validateSignup(req SignupRequest) error {
	if req.Username == "" {
		return NewValidationError("username", "This field is required.")
	}
	if len(req.Username) > maxUsernameLength {
		return NewValidationError("username", fmt.Sprintf("Ensure this value has at most %d characters.", maxUsernameLength))
	}
	if !usernameRegex.MatchString(req.Username) {
		return NewValidationError("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return NewValidationError("email", "Enter a valid email address.")
		}
	}

	if len(req.Password) < minPasswordLength {
		return NewValidationError("password", fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	}
	if len(req.Password) > maxPasswordLength {
		return NewValidationError("password", fmt.Sprintf("Ensure the password has at most %d bytes.", maxPasswordLength))
	}

	return nil
}
