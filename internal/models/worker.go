package models

import "time"

// Worker is an authenticated user of the task manager. The position is
// optional; a worker without one is still valid.
type Worker struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsSuperuser  bool      `gorm:"not null;default:false" json:"is_superuser"`
	PositionID   *uint64   `json:"position_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Position    *Position        `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:WorkerID" json:"-"`
}
