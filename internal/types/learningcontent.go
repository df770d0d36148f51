package types

import (
	"time"

	"github.com/google/uuid"
)

type LearningContent struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"userId"`
	OriginalContent   string    `gorm:"not null;column:original_content" json:"originalContent"`
	SimplifiedContent string    `gorm:"column:simplified_content" json:"simplifiedContent"`
	ReadingLevel      int       `gorm:"column:reading_level" json:"readingLevel"`
	DomainType        string    `gorm:"column:domain_type" json:"domainType"`
	VisualSummaryURL  string    `gorm:"column:visual_summary_url" json:"visualSummaryUrl"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (LearningContent) TableName() string {
	return "learning_content"
}
