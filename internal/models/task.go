package models

import "time"

// TaskPriority is a closed set of priority labels, stored as the full word.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "Urgent"
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// Valid reports whether p is one of the defined priority labels.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Deadline    time.Time    `gorm:"type:date;not null" json:"deadline"`
	IsCompleted bool         `gorm:"not null;default:false" json:"is_completed"`
	Priority    TaskPriority `gorm:"type:varchar(6);not null" json:"priority"`
	TaskTypeID  uint64       `gorm:"not null" json:"task_type_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	TaskType    TaskType         `gorm:"foreignKey:TaskTypeID" json:"task_type,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
