package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/mailer"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/repository"
	"github.com/taskboard/taskboard/internal/utils"
)

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email is already in use by another user")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoFieldsToUpdate   = errors.New("at least one field (name or email) must be provided")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrSamePassword       = errors.New("new password must be different from the current one")
	ErrResetMailFailed    = errors.New("failed to send password reset email")
)

// UserService handles user lifecycle and authentication business logic.
type UserService struct {
	userRepo repository.UserRepository
	issuer   *auth.TokenIssuer
	mailer   mailer.Mailer
	baseURL  string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, issuer *auth.TokenIssuer, m mailer.Mailer, baseURL string) *UserService {
	return &UserService{
		userRepo: userRepo,
		issuer:   issuer,
		mailer:   m,
		baseURL:  baseURL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register validates input, hashes the password and persists a new user.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	if name == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user and a signed bearer token.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// UpdateUserInput represents a partial user update. Nil fields keep their
// previous values.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// Update applies a partial update to a user.
func (s *UserService) Update(userID uint64, input UpdateUserInput) (*models.User, error) {
	if input.Name == nil && input.Email == nil {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrMissingFields
		}
		user.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !utils.IsValidEmail(email) {
			return nil, ErrInvalidEmail
		}

		taken, err := s.userRepo.EmailTaken(email, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// SoftDelete marks a user deleted. Their tasks become invisible as well.
func (s *UserService) SoftDelete(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.SoftDelete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// GetByID retrieves a non-deleted user by ID.
func (s *UserService) GetByID(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a non-deleted user by email.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListAll returns all non-deleted users.
func (s *UserService) ListAll() ([]models.User, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// RequestPasswordReset generates a reset token for the user and mails them
// a reset link.
func (s *UserService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, expiresAt := auth.GenerateResetToken()
	if err := s.userRepo.SetResetToken(user.ID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf("Hi %s,\n\nA password reset was requested for your account. "+
		"Use the link below within the next hour to choose a new password:\n\n%s\n\n"+
		"If you did not request this, you can ignore this email.", user.Name, link)

	if err := s.mailer.Send(user.Email, "Password reset", body); err != nil {
		zap.L().Error("Failed to send reset mail", zap.Uint64("user_id", user.ID), zap.Error(err))
		return ErrResetMailFailed
	}

	return nil
}

// ResetPassword exchanges a valid reset token for a new password. The hash
// update and the token clear are applied as one write.
func (s *UserService) ResetPassword(token, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.ResetTokenExpiresAt == nil || auth.ResetTokenExpired(*user.ResetTokenExpiresAt) {
		return ErrInvalidResetToken
	}

	if auth.CheckPassword(newPassword, user.PasswordHash) {
		return ErrSamePassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.ResetPassword(user.ID, hash); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}
