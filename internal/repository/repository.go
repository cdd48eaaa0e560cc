package repository

import (
	"time"

	"github.com/taskboard/taskboard/internal/models"
)

// UserRepository defines the interface for user data access. All lookups
// are scoped to non-deleted rows.
type UserRepository interface {
	// Create creates a new user, rejecting emails already held by a
	// non-deleted user.
	Create(user *models.User) error

	// FindByID finds a non-deleted user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a non-deleted user by email
	FindByEmail(email string) (*models.User, error)

	// FindByResetToken finds a non-deleted user holding the reset token
	FindByResetToken(token string) (*models.User, error)

	// ListAll returns all non-deleted users
	ListAll() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// EmailTaken reports whether a non-deleted user other than excludeID
	// already uses the email.
	EmailTaken(email string, excludeID uint64) (bool, error)

	// SetResetToken stores a reset token and its expiry on a user
	SetResetToken(id uint64, token string, expiresAt time.Time) error

	// ResetPassword writes the new password hash and clears the reset
	// token columns in a single statement.
	ResetPassword(id uint64, passwordHash string) error

	// SoftDelete marks a user deleted, cascading to their tasks
	SoftDelete(id uint64) error
}

// TaskRepository defines the interface for task data access. All lookups
// are scoped to non-deleted rows.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a non-deleted task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByUser returns non-deleted tasks owned by the user, optionally
	// filtered by exact status.
	ListByUser(userID uint64, status *models.TaskStatus) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// SoftDelete marks a task deleted
	SoftDelete(id uint64) error
}
