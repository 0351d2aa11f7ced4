package models

import (
	"time"

	"github.com/google/uuid"
)

// RewardTask is an action a customer can complete for loyalty points.
type RewardTask struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Points      int    `gorm:"not null" json:"points"`
	URL         string `json:"url"`
}

// UserTask records that a user completed a task. A task counts once per user.
type UserTask struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_task" json:"task_id"`
	Task        RewardTask `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	CompletedAt time.Time  `json:"completed_at"`
}
