package repository

import (
	"fmt"

	"github.com/vholenko/it-task-manager/internal/models"
	"gorm.io/gorm"
)

// GormTaskTypeRepository is a GORM implementation of TaskTypeRepository
type GormTaskTypeRepository struct {
	db *gorm.DB
}

// NewTaskTypeRepository creates a new TaskTypeRepository
func NewTaskTypeRepository(db *gorm.DB) TaskTypeRepository {
	return &GormTaskTypeRepository{db: db}
}

// Create creates a new task type
func (r *GormTaskTypeRepository) Create(taskType *models.TaskType) error {
	return r.db.Create(taskType).Error
}

// FindByID finds a task type by ID
func (r *GormTaskTypeRepository) FindByID(id uint64) (*models.TaskType, error) {
	var taskType models.TaskType
	if err := r.db.First(&taskType, id).Error; err != nil {
		return nil, err
	}
	return &taskType, nil
}

// List returns all task types ordered by name
func (r *GormTaskTypeRepository) List() ([]models.TaskType, error) {
	var taskTypes []models.TaskType
	if err := r.db.Order("name ASC").Find(&taskTypes).Error; err != nil {
		return nil, err
	}
	return taskTypes, nil
}

// Delete removes a task type unless a task still references it, checked and
// deleted within one transaction.
func (r *GormTaskTypeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.TaskType{}, id).Error; err != nil {
			return err
		}

		var dependents int64
		if err := tx.Model(&models.Task{}).
			Where("task_type_id = ?", id).
			Count(&dependents).Error; err != nil {
			return fmt.Errorf("failed to count dependent tasks: %w", err)
		}
		if dependents > 0 {
			return fmt.Errorf("%w: %d tasks use this type", ErrDependentRows, dependents)
		}

		return tx.Delete(&models.TaskType{}, id).Error
	})
}
