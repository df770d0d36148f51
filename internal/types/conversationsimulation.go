package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationSimulation struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"userId"`
	ScenarioType     string         `gorm:"column:scenario_type" json:"scenarioType"`
	ConversationData datatypes.JSON `gorm:"type:jsonb;column:conversation_data" json:"conversationData"`
	Feedback         string         `gorm:"column:feedback" json:"feedback"`
	DifficultyLevel  int            `gorm:"column:difficulty_level" json:"difficultyLevel"`
	CompletedAt      time.Time      `gorm:"column:completed_at" json:"completedAt"`
}

func (ConversationSimulation) TableName() string {
	return "conversation_simulations"
}
