package models

import "time"

// TaskType is a task category. Deleting a type is blocked while any task
// still references it.
type TaskType struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:TaskTypeID" json:"tasks,omitempty"`
}
