package dto

import (
	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/utils"
)

// PositionDTO represents a position in API responses
type PositionDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// WorkerDTO represents a worker in API responses
type WorkerDTO struct {
	ID          uint64       `json:"id"`
	Username    string       `json:"username"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email"`
	IsSuperuser bool         `json:"is_superuser"`
	Position    *PositionDTO `json:"position,omitempty"`
}

// WorkerListResponse represents a paginated list of workers
type WorkerListResponse struct {
	Workers    []WorkerDTO              `json:"workers"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToPositionDTO converts a Position model to PositionDTO
func ToPositionDTO(position models.Position) PositionDTO {
	return PositionDTO{
		ID:   position.ID,
		Name: position.Name,
	}
}

// ToWorkerDTO converts a Worker model to WorkerDTO
func ToWorkerDTO(worker models.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:          worker.ID,
		Username:    worker.Username,
		FirstName:   worker.FirstName,
		LastName:    worker.LastName,
		Email:       worker.Email,
		IsSuperuser: worker.IsSuperuser,
	}

	// Include position if preloaded
	if worker.Position != nil {
		position := ToPositionDTO(*worker.Position)
		dto.Position = &position
	}

	return dto
}

// ToWorkerDTOs converts a slice of workers
func ToWorkerDTOs(workers []models.Worker) []WorkerDTO {
	dtos := make([]WorkerDTO, len(workers))
	for i, worker := range workers {
		dtos[i] = ToWorkerDTO(worker)
	}
	return dtos
}

// ToWorkerListResponse builds the paginated worker listing response
func ToWorkerListResponse(workers []models.Worker, page, pageSize int, total int64) WorkerListResponse {
	return WorkerListResponse{
		Workers: ToWorkerDTOs(workers),
		Pagination: utils.PaginationResponse{
			Page:  page,
			Limit: pageSize,
			Total: total,
		},
	}
}
