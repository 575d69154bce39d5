package dto

import "github.com/vholenko/it-task-manager/internal/services"

// DashboardDTO represents the home page aggregate
type DashboardDTO struct {
	NumWorkers        int64       `json:"num_workers"`
	NumTasks          int64       `json:"num_tasks"`
	NumTasksCompleted int64       `json:"num_tasks_completed"`
	NumHighOpen       int64       `json:"num_tasks_high_priority"`
	NumUrgentOpen     int64       `json:"num_tasks_urgent_priority"`
	UrgentAndHigh     int64       `json:"urgent_and_high"`
	NumVisits         int         `json:"num_visits"`
	Workers           []WorkerDTO `json:"workers"`
	MyTasks           []TaskDTO   `json:"my_tasks"`
}

// ToDashboardDTO converts a dashboard summary and visit count to the response
func ToDashboardDTO(summary *services.DashboardSummary, visits int) DashboardDTO {
	return DashboardDTO{
		NumWorkers:        summary.NumWorkers,
		NumTasks:          summary.NumTasks,
		NumTasksCompleted: summary.NumTasksCompleted,
		NumHighOpen:       summary.NumHighOpen,
		NumUrgentOpen:     summary.NumUrgentOpen,
		UrgentAndHigh:     summary.UrgentAndHigh,
		NumVisits:         visits,
		Workers:           ToWorkerDTOs(summary.Workers),
		MyTasks:           ToTaskDTOs(summary.MyTasks),
	}
}
