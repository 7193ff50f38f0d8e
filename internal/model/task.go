package model

import "time"

// TaskItem is a single persisted task.
type TaskItem struct {
	ID          uint `gorm:"primaryKey"`
	Title       string
	Description *string
	IsCompleted bool       `gorm:"default:false"`
	DueDate     *time.Time `gorm:"index"`
	Priority    Priority   `gorm:"default:0"`
	// Version is bumped on every update and checked by the repository.
	Version   uint `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
