package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/repository"
	"github.com/taskboard/taskboard/internal/utils"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStatus = errors.New("status must be pending or completed")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	ExpirationDate *time.Time
	UserID         uint64
}

// UpdateTaskInput represents a partial task update. Nil fields keep their
// previous values.
type UpdateTaskInput struct {
	Title               *string
	Description         *string
	Status              *models.TaskStatus
	ExpirationDate      *time.Time
	ClearExpirationDate bool
}

// Create creates a task for an existing, non-deleted user.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if utils.IsBlank(input.Title) {
		return nil, ErrTitleRequired
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	task := &models.Task{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Status:         models.TaskStatusPending,
		ExpirationDate: input.ExpirationDate,
		UserID:         input.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update applies a partial update to a task.
func (s *TaskService) Update(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if utils.IsBlank(*input.Title) {
			return nil, ErrTitleRequired
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearExpirationDate {
		task.ExpirationDate = nil
	} else if input.ExpirationDate != nil {
		task.ExpirationDate = input.ExpirationDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// SoftDelete marks a task deleted.
func (s *TaskService) SoftDelete(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.SoftDelete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GetByID retrieves a non-deleted task.
func (s *TaskService) GetByID(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListByUser returns all non-deleted tasks owned by an existing user.
func (s *TaskService) ListByUser(userID uint64) ([]models.Task, error) {
	return s.listByUser(userID, nil)
}

// FilterByStatus returns the user's non-deleted tasks with an exact status
// match. An empty result is a valid outcome, not an error.
func (s *TaskService) FilterByStatus(userID uint64, status models.TaskStatus) ([]models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.listByUser(userID, &status)
}

func (s *TaskService) listByUser(userID uint64, status *models.TaskStatus) ([]models.Task, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	tasks, err := s.taskRepo.ListByUser(userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
