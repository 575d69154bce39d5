package services

import (
	"errors"
	"fmt"

	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/repository"
	"github.com/vholenko/it-task-manager/internal/validation"
	"gorm.io/gorm"
)

// WorkerService handles worker listing and lifecycle beyond registration.
type WorkerService struct {
	workerRepo   repository.WorkerRepository
	positionRepo repository.PositionRepository
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(workerRepo repository.WorkerRepository, positionRepo repository.PositionRepository) *WorkerService {
	return &WorkerService{
		workerRepo:   workerRepo,
		positionRepo: positionRepo,
	}
}

// ListWorkersInput represents filters for listing workers
type ListWorkersInput struct {
	Username string
	Page     int
	PageSize int
}

// ListWorkers returns workers ordered by username then position, optionally
// narrowed by a case-insensitive username substring.
func (s *WorkerService) ListWorkers(input ListWorkersInput) ([]models.Worker, int64, error) {
	workers, total, err := s.workerRepo.List(repository.WorkerFilter{
		Username: input.Username,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}

	return workers, total, nil
}

// GetWorker returns a worker with their position
func (s *WorkerService) GetWorker(id uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(id, "Position")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	return worker, nil
}

// UpdatePosition moves a worker to a new position (or clears it). Existing
// task assignments are untouched.
func (s *WorkerService) UpdatePosition(workerID uint64, positionID *uint64) (*models.Worker, error) {
	result, err := validation.PositionRef(s.positionRepo, positionID)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, newValidationError(result)
	}

	if err := s.workerRepo.UpdatePosition(workerID, positionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to update position: %w", err)
	}

	return s.workerRepo.FindByID(workerID, "Position")
}

// DeleteWorker removes a worker together with their assignment rows
func (s *WorkerService) DeleteWorker(id uint64) error {
	if err := s.workerRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	return nil
}
