package models

import "time"

// TaskAssignment is a row of the Task↔Worker many-to-many relation. The
// composite primary key makes duplicate assignments impossible.
type TaskAssignment struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	WorkerID  uint64    `gorm:"primarykey" json:"worker_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task   Task   `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Worker Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}
