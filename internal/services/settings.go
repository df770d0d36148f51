package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/repos"
	"github.com/yungbote/divergex-backend/internal/types"
)

// SettingsUpdate carries only the fields the client sent; nil means leave
// the stored value alone.
type SettingsUpdate struct {
	Theme            *string `json:"theme"`
	FontFamily       *string `json:"fontFamily"`
	FontSize         *int    `json:"fontSize"`
	MotionReduced    *bool   `json:"motionReduced"`
	HighContrast     *bool   `json:"highContrast"`
	ScreenReaderMode *bool   `json:"screenReaderMode"`
}

type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.AccessibilitySettings, error)
	Update(ctx context.Context, userID uuid.UUID, update SettingsUpdate) (*types.AccessibilitySettings, error)
}

type settingsService struct {
	db           *gorm.DB
	log          *logger.Logger
	settingsRepo repos.SettingsRepo
}

func NewSettingsService(db *gorm.DB, baseLog *logger.Logger, settingsRepo repos.SettingsRepo) SettingsService {
	return &settingsService{
		db:           db,
		log:          baseLog.With("service", "SettingsService"),
		settingsRepo: settingsRepo,
	}
}

// Get returns stored settings, or the defaults when the row is missing.
// Registration creates the row, but accounts predating that behavior may
// not have one.
func (ss *settingsService) Get(ctx context.Context, userID uuid.UUID) (*types.AccessibilitySettings, error) {
	settings, err := ss.settingsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("fetch settings: %w", err))
	}
	if settings == nil {
		return types.DefaultAccessibilitySettings(userID), nil
	}
	return settings, nil
}

func (ss *settingsService) Update(ctx context.Context, userID uuid.UUID, update SettingsUpdate) (*types.AccessibilitySettings, error) {
	if update.Theme != nil && !types.ValidThemes[*update.Theme] {
		return nil, apierr.Validation("invalid_theme", fmt.Errorf("unknown theme %q", *update.Theme))
	}
	if update.FontSize != nil && (*update.FontSize < 50 || *update.FontSize > 200) {
		return nil, apierr.Validation("invalid_font_size", fmt.Errorf("font size %d out of range", *update.FontSize))
	}

	current, err := ss.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The insert candidate gets a fresh id; when the user already has a row
	// the user_id conflict turns the statement into an update and the stored
	// id survives.
	current.ID = uuid.New()
	if update.Theme != nil {
		current.Theme = *update.Theme
	}
	if update.FontFamily != nil {
		current.FontFamily = *update.FontFamily
	}
	if update.FontSize != nil {
		current.FontSize = *update.FontSize
	}
	if update.MotionReduced != nil {
		current.MotionReduced = *update.MotionReduced
	}
	if update.HighContrast != nil {
		current.HighContrast = *update.HighContrast
	}
	if update.ScreenReaderMode != nil {
		current.ScreenReaderMode = *update.ScreenReaderMode
	}

	if err := ss.settingsRepo.Upsert(ctx, nil, current); err != nil {
		return nil, apierr.Internal(fmt.Errorf("upsert settings: %w", err))
	}
	stored, err := ss.settingsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("fetch settings after upsert: %w", err))
	}
	return stored, nil
}
