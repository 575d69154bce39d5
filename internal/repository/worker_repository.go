package repository

import (
	"strings"

	"github.com/vholenko/it-task-manager/internal/database"
	"github.com/vholenko/it-task-manager/internal/models"
	"gorm.io/gorm"
)

// GormWorkerRepository is a GORM implementation of WorkerRepository
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Create creates a new worker
func (r *GormWorkerRepository) Create(worker *models.Worker) error {
	return r.db.Create(worker).Error
}

// FindByID finds a worker by ID with optional preloading
func (r *GormWorkerRepository) FindByID(id uint64, preload ...string) (*models.Worker, error) {
	var worker models.Worker
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&worker, id).Error; err != nil {
		return nil, err
	}

	return &worker, nil
}

// FindByUsername finds a worker by username
func (r *GormWorkerRepository) FindByUsername(username string) (*models.Worker, error) {
	var worker models.Worker
	if err := r.db.Where("username = ?", username).First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

// List retrieves workers ordered by username then position, with an optional
// case-insensitive username substring filter and pagination.
func (r *GormWorkerRepository) List(filter WorkerFilter) ([]models.Worker, int64, error) {
	var workers []models.Worker

	query := r.db.Model(&models.Worker{})

	if filter.Username != "" {
		pattern := "%" + strings.ToLower(filter.Username) + "%"
		query = query.Where("LOWER(username) LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("username ASC, position_id ASC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Position").Find(&workers).Error; err != nil {
		return nil, 0, err
	}

	return workers, total, nil
}

// ListAll returns every worker ordered by username
func (r *GormWorkerRepository) ListAll() ([]models.Worker, error) {
	var workers []models.Worker
	if err := r.db.Preload("Position").
		Order("username ASC").
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// UpdatePosition sets (or clears) a worker's position. The existence check
// is explicit: affected-row counts stay at zero when the position does not
// change, so they cannot distinguish a no-op from a missing worker.
func (r *GormWorkerRepository) UpdatePosition(workerID uint64, positionID *uint64) error {
	if err := r.db.First(&models.Worker{}, workerID).Error; err != nil {
		return err
	}

	return r.db.Model(&models.Worker{}).
		Where("id = ?", workerID).
		Update("position_id", positionID).Error
}

// Delete removes a worker and their assignment rows in one transaction so no
// task is left referencing a nonexistent worker.
func (r *GormWorkerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Worker{}, id).Error; err != nil {
			return err
		}

		if err := tx.Where("worker_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Worker{}, id).Error
	})
}

// MissingIDs returns the subset of ids with no matching worker row
func (r *GormWorkerRepository) MissingIDs(ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint64
	if err := r.db.Model(&models.Worker{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	present := make(map[uint64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []uint64
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

// Count returns the total number of workers
func (r *GormWorkerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Worker{}).Count(&count).Error
	return count, err
}
