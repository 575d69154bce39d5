package repository

import (
	"strings"

	"github.com/vholenko/it-task-manager/internal/database"
	"github.com/vholenko/it-task-manager/internal/models"
	"gorm.io/gorm"
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

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering, sorting and pagination. A name filter
// takes precedence over the sort key: the filtered listing keeps the default
// ordering, matching the behavior callers of the search form rely on.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Name != "" {
		pattern := "%" + strings.ToLower(filter.Name) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	if len(filter.Priorities) > 0 {
		query = query.Where("priority IN ?", filter.Priorities)
	}
	if filter.IsCompleted != nil {
		query = query.Where("is_completed = ?", *filter.IsCompleted)
	}
	if filter.AssignedWorkerID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.worker_id = ?", *filter.AssignedWorkerID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	if filter.DueBefore != nil {
		query = query.Where("deadline <= ?", *filter.DueBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderClause(filter)).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.
		Preload("TaskType").
		Preload("Assignments").
		Preload("Assignments.Worker").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// orderClause resolves the ordering for a listing. Sorting applies only when
// no name filter is present; everything else falls back to the default of
// deadline ascending, then the priority word.
func orderClause(filter TaskFilter) string {
	if filter.Name == "" {
		switch filter.SortBy {
		case SortByName:
			return "name ASC"
		case SortByDeadline:
			return "deadline ASC"
		case SortByPriority:
			// Descending by the priority label, as displayed
			return "priority DESC"
		case SortByCompleted:
			return "is_completed DESC"
		}
	}
	return "deadline ASC, priority ASC"
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task and its assignment rows in one transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Task{}, id).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// ReplaceAssignees atomically replaces the task's full assignee set. Workers
// absent from workerIDs are unassigned; the whole swap commits or none of it
// does, so concurrent replacements serialize to last-committed-wins.
func (r *GormTaskRepository) ReplaceAssignees(taskID uint64, workerIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		if len(workerIDs) == 0 {
			return nil
		}

		assignments := make([]models.TaskAssignment, len(workerIDs))
		for i, workerID := range workerIDs {
			assignments[i] = models.TaskAssignment{
				TaskID:   taskID,
				WorkerID: workerID,
			}
		}

		return tx.Create(&assignments).Error
	})
}

// ListAssignees returns the workers currently assigned to a task, ordered by
// username
func (r *GormTaskRepository) ListAssignees(taskID uint64) ([]models.Worker, error) {
	var workers []models.Worker
	err := r.db.Model(&models.Worker{}).
		Joins("JOIN task_assignments ON task_assignments.worker_id = workers.id").
		Where("task_assignments.task_id = ?", taskID).
		Order("workers.username ASC").
		Find(&workers).Error
	if err != nil {
		return nil, err
	}
	return workers, nil
}

// Count returns the total number of tasks
func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}

// CountCompleted returns the number of completed tasks
func (r *GormTaskRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("is_completed = ?", true).Count(&count).Error
	return count, err
}

// CountOpenByPriority returns the number of not-completed tasks with the
// given priority
func (r *GormTaskRepository) CountOpenByPriority(priority models.TaskPriority) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("priority = ? AND is_completed = ?", priority, false).
		Count(&count).Error
	return count, err
}
