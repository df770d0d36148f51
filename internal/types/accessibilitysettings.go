package types

import (
	"time"

	"github.com/google/uuid"
)

// ValidThemes are the display themes the client offers.
var ValidThemes = map[string]bool{
	"light":         true,
	"dark":          true,
	"high-contrast": true,
}

// AccessibilitySettings is one row per user, enforced by the unique index
// on user_id.
type AccessibilitySettings struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"userId"`
	Theme            string    `gorm:"column:theme;default:light" json:"theme"`
	FontFamily       string    `gorm:"column:font_family;default:professional" json:"fontFamily"`
	FontSize         int       `gorm:"column:font_size;default:100" json:"fontSize"`
	MotionReduced    bool      `gorm:"column:motion_reduced;default:false" json:"motionReduced"`
	HighContrast     bool      `gorm:"column:high_contrast;default:false" json:"highContrast"`
	ScreenReaderMode bool      `gorm:"column:screen_reader_mode;default:false" json:"screenReaderMode"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (AccessibilitySettings) TableName() string {
	return "accessibility_settings"
}

func DefaultAccessibilitySettings(userID uuid.UUID) *AccessibilitySettings {
	return &AccessibilitySettings{
		ID:         uuid.New(),
		UserID:     userID,
		Theme:      "light",
		FontFamily: "professional",
		FontSize:   100,
	}
}
