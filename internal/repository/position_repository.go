package repository

import (
	"fmt"

	"github.com/vholenko/it-task-manager/internal/models"
	"gorm.io/gorm"
)

// GormPositionRepository is a GORM implementation of PositionRepository
type GormPositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new PositionRepository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &GormPositionRepository{db: db}
}

// Create creates a new position
func (r *GormPositionRepository) Create(position *models.Position) error {
	return r.db.Create(position).Error
}

// FindByID finds a position by ID
func (r *GormPositionRepository) FindByID(id uint64) (*models.Position, error) {
	var position models.Position
	if err := r.db.First(&position, id).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// List returns all positions ordered by name
func (r *GormPositionRepository) List() ([]models.Position, error) {
	var positions []models.Position
	if err := r.db.Order("name ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Delete removes a position unless a worker still references it. The
// dependent count and the delete run in one transaction so a concurrent
// worker creation cannot slip between them.
func (r *GormPositionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Position{}, id).Error; err != nil {
			return err
		}

		var dependents int64
		if err := tx.Model(&models.Worker{}).
			Where("position_id = ?", id).
			Count(&dependents).Error; err != nil {
			return fmt.Errorf("failed to count dependent workers: %w", err)
		}
		if dependents > 0 {
			return fmt.Errorf("%w: %d workers hold this position", ErrDependentRows, dependents)
		}

		return tx.Delete(&models.Position{}, id).Error
	})
}
