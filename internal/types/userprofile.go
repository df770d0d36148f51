package types

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserProfile holds the neurodivergence-specific profile, split from User so
// the auth payloads stay small.
type UserProfile struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"userId"`
	DiagnosisTypes      datatypes.JSON `gorm:"type:jsonb;column:diagnosis_types" json:"diagnosisTypes"`
	SensoryPreferences  datatypes.JSON `gorm:"type:jsonb;column:sensory_preferences" json:"sensoryPreferences"`
	CommunicationStyle  string         `gorm:"column:communication_style" json:"communicationStyle"`
	LearningPreferences datatypes.JSON `gorm:"type:jsonb;column:learning_preferences" json:"learningPreferences"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func DefaultUserProfile(userID uuid.UUID) *UserProfile {
	return &UserProfile{
		ID:                  uuid.New(),
		UserID:              userID,
		DiagnosisTypes:      datatypes.JSON([]byte("[]")),
		SensoryPreferences:  datatypes.JSON([]byte("{}")),
		LearningPreferences: datatypes.JSON([]byte("{}")),
	}
}
