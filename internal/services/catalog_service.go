package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPositionNotFound = errors.New("position not found")
	ErrTaskTypeNotFound = errors.New("task type not found")
	ErrPositionInUse    = errors.New("position is still held by workers")
	ErrTaskTypeInUse    = errors.New("task type is still used by tasks")
	ErrNameRequired     = errors.New("name is required")
)

// CatalogService manages the reference entities: positions and task types.
type CatalogService struct {
	positionRepo repository.PositionRepository
	taskTypeRepo repository.TaskTypeRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(positionRepo repository.PositionRepository, taskTypeRepo repository.TaskTypeRepository) *CatalogService {
	return &CatalogService{
		positionRepo: positionRepo,
		taskTypeRepo: taskTypeRepo,
	}
}

// CreatePosition creates a new position
func (s *CatalogService) CreatePosition(name string) (*models.Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	position := &models.Position{Name: name}
	if err := s.positionRepo.Create(position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	return position, nil
}

// ListPositions returns all positions ordered by name
func (s *CatalogService) ListPositions() ([]models.Position, error) {
	positions, err := s.positionRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

// DeletePosition removes a position; blocked while workers hold it
func (s *CatalogService) DeletePosition(id uint64) error {
	if err := s.positionRepo.Delete(id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrPositionNotFound
		case errors.Is(err, repository.ErrDependentRows):
			return ErrPositionInUse
		default:
			return fmt.Errorf("failed to delete position: %w", err)
		}
	}

	return nil
}

// CreateTaskType creates a new task type
func (s *CatalogService) CreateTaskType(name string) (*models.TaskType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	taskType := &models.TaskType{Name: name}
	if err := s.taskTypeRepo.Create(taskType); err != nil {
		return nil, fmt.Errorf("failed to create task type: %w", err)
	}

	return taskType, nil
}

// ListTaskTypes returns all task types ordered by name
func (s *CatalogService) ListTaskTypes() ([]models.TaskType, error) {
	taskTypes, err := s.taskTypeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list task types: %w", err)
	}
	return taskTypes, nil
}

// DeleteTaskType removes a task type; blocked while tasks use it
func (s *CatalogService) DeleteTaskType(id uint64) error {
	if err := s.taskTypeRepo.Delete(id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrTaskTypeNotFound
		case errors.Is(err, repository.ErrDependentRows):
			return ErrTaskTypeInUse
		default:
			return fmt.Errorf("failed to delete task type: %w", err)
		}
	}

	return nil
}
