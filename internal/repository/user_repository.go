package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/database"
	"github.com/taskboard/taskboard/internal/models"
)

// ErrEmailExists is returned when a non-deleted user already holds the email.
var ErrEmailExists = errors.New("user repository: email already in use")

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user. The duplicate check and the insert run in one
// transaction; uniqueness is scoped to non-deleted rows so an email freed by
// a soft delete can be registered again.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Scopes(database.NotDeleted).
			Where("email = ?", user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailExists
		}

		return tx.Create(user).Error
	})
}

// FindByID finds a non-deleted user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Scopes(database.NotDeleted).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a non-deleted user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Scopes(database.NotDeleted).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetToken finds a non-deleted user holding the reset token
func (r *GormUserRepository) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	if err := r.db.Scopes(database.NotDeleted).
		Where("reset_token = ?", token).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAll returns all non-deleted users
func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Scopes(database.NotDeleted).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// EmailTaken reports whether a non-deleted user other than excludeID uses the email
func (r *GormUserRepository) EmailTaken(email string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Scopes(database.NotDeleted).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetResetToken stores a reset token and its expiry on a user
func (r *GormUserRepository) SetResetToken(id uint64, token string, expiresAt time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
		}).Error
}

// ResetPassword writes the new hash and clears the reset token columns in a
// single statement so a used token cannot be replayed.
func (r *GormUserRepository) ResetPassword(id uint64, passwordHash string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":          passwordHash,
			"reset_token":            nil,
			"reset_token_expires_at": nil,
		}).Error
}

// SoftDelete marks a user deleted and cascades the flag to their tasks.
func (r *GormUserRepository) SoftDelete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Scopes(database.OwnedBy(id)).
			Update("is_deleted", true).Error
	})
}
