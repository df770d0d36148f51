package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TimelineEvent has its own lifecycle; the task link is optional and is not
// cleaned up when a task is deleted.
type TimelineEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"userId"`
	TaskID    *uuid.UUID     `gorm:"type:uuid;column:task_id" json:"taskId"`
	StartTime time.Time      `gorm:"not null;column:start_time" json:"startTime"`
	EndTime   time.Time      `gorm:"not null;column:end_time" json:"endTime"`
	Color     string         `gorm:"column:color" json:"color"`
	Reminders datatypes.JSON `gorm:"type:jsonb;column:reminders" json:"reminders"`
}

func (TimelineEvent) TableName() string {
	return "timeline_events"
}
