package repository

import (
	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/database"
	"github.com/taskboard/taskboard/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a non-deleted task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(database.NotDeleted).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns non-deleted tasks owned by the user, optionally
// filtered by exact status. An empty result is not an error.
func (r *GormTaskRepository) ListByUser(userID uint64, status *models.TaskStatus) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Scopes(database.NotDeleted, database.OwnedBy(userID))
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// SoftDelete marks a task deleted
func (r *GormTaskRepository) SoftDelete(id uint64) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
