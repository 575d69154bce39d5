package services

import (
	"fmt"

	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/repository"
)

// DashboardSummary aggregates the home page counters for one request.
type DashboardSummary struct {
	NumWorkers        int64
	NumTasks          int64
	NumTasksCompleted int64
	NumHighOpen       int64
	NumUrgentOpen     int64
	UrgentAndHigh     int64
	Workers           []models.Worker
	MyTasks           []models.Task
}

// DashboardService computes the read-only home page aggregate.
type DashboardService struct {
	workerRepo  repository.WorkerRepository
	taskRepo    repository.TaskRepository
	taskService *TaskService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(workerRepo repository.WorkerRepository, taskRepo repository.TaskRepository, taskService *TaskService) *DashboardService {
	return &DashboardService{
		workerRepo:  workerRepo,
		taskRepo:    taskRepo,
		taskService: taskService,
	}
}

// Summary computes the dashboard counters and the caller's own task list.
func (s *DashboardService) Summary(workerID uint64) (*DashboardSummary, error) {
	numWorkers, err := s.workerRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count workers: %w", err)
	}

	numTasks, err := s.taskRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	numCompleted, err := s.taskRepo.CountCompleted()
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	numHigh, err := s.taskRepo.CountOpenByPriority(models.PriorityHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to count high priority tasks: %w", err)
	}

	numUrgent, err := s.taskRepo.CountOpenByPriority(models.PriorityUrgent)
	if err != nil {
		return nil, fmt.Errorf("failed to count urgent priority tasks: %w", err)
	}

	workers, err := s.workerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	myTasks, err := s.taskService.TasksAssignedTo(workerID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		NumWorkers:        numWorkers,
		NumTasks:          numTasks,
		NumTasksCompleted: numCompleted,
		NumHighOpen:       numHigh,
		NumUrgentOpen:     numUrgent,
		UrgentAndHigh:     numHigh + numUrgent,
		Workers:           workers,
		MyTasks:           myTasks,
	}, nil
}
