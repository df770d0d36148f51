package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"

	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

var ValidTaskStatuses = map[string]struct{}{
	TaskStatusPending:    {},
	TaskStatusInProgress: {},
	TaskStatusCompleted:  {},
}

var ValidEnergyLevels = map[string]struct{}{
	EnergyLow:    {},
	EnergyMedium: {},
	EnergyHigh:   {},
}

var ValidTaskCategories = map[string]struct{}{
	"personal": {},
	"work":     {},
	"health":   {},
	"social":   {},
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null;column:user_id" json:"userId"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	DueDate     *time.Time `gorm:"column:due_date" json:"dueDate"`
	EnergyLevel string     `gorm:"column:energy_level" json:"energyLevel"`
	Category    string     `gorm:"column:category" json:"category"`
	Status      string     `gorm:"column:status;default:pending" json:"status"`
	Priority    int        `gorm:"column:priority;default:0" json:"priority"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	EnergyLevel *string    `json:"energyLevel"`
	Category    *string    `json:"category"`
	Status      *string    `json:"status"`
	Priority    *int       `json:"priority"`
}

// TaskFilter mirrors the original list query parameters. Zero values mean
// "no constraint".
type TaskFilter struct {
	Status    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}
