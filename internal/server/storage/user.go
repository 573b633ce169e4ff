package storage

import (
	"context"

	"github.com/iudanet/userhub/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage and assigns a generated ID.
	// Returns ErrUserAlreadyExists if the username is already taken,
	// including usernames held by soft-deleted users
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by exact, case-sensitive username.
	// Soft-deleted users are returned as well, callers decide what to do
	// with them. Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListActiveUsers returns all users that are not soft-deleted.
	// The whole set is materialized before return
	ListActiveUsers(ctx context.Context) ([]*models.User, error)

	// SoftDeleteUser marks user as deleted without removing the record
	// Returns ErrUserNotFound if user doesn't exist
	SoftDeleteUser(ctx context.Context, userID string) error
}
