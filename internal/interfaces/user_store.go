package interfaces

import (
	"context"

	"securehome/server/internal/models"
)

// UserStore manages dashboard logins.
type UserStore interface {
	// CreateUser inserts a new user; duplicate emails are rejected.
	CreateUser(ctx context.Context, email, password string) (*models.User, error)

	// Authenticate returns the matching user, or nil when the credentials
	// are wrong.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}
