package models

import "time"

// Position is a job title a worker can hold. Deleting a position is blocked
// while any worker still references it.
type Position struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Workers []Worker `gorm:"foreignKey:PositionID" json:"workers,omitempty"`
}
