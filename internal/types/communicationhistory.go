package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CommunicationHistory is an append-only log of tone analyses and message
// rewrites. Rows are never updated or deleted.
type CommunicationHistory struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"userId"`
	OriginalText     string         `gorm:"not null;column:original_text" json:"originalText"`
	AnalyzedTone     datatypes.JSON `gorm:"type:jsonb;column:analyzed_tone" json:"analyzedTone"`
	FormattedMessage string         `gorm:"column:formatted_message" json:"formattedMessage"`
	Context          string         `gorm:"column:context" json:"context"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"timestamp"`
}

func (CommunicationHistory) TableName() string {
	return "communication_history"
}
