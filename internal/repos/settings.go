package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type SettingsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, settings *types.AccessibilitySettings) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AccessibilitySettings, error)
	Upsert(ctx context.Context, tx *gorm.DB, settings *types.AccessibilitySettings) error
}

type settingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	return &settingsRepo{db: db, log: baseLog.With("repo", "SettingsRepo")}
}

func (sr *settingsRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

func (sr *settingsRepo) Create(ctx context.Context, tx *gorm.DB, settings *types.AccessibilitySettings) error {
	return sr.conn(tx).WithContext(ctx).Create(settings).Error
}

func (sr *settingsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AccessibilitySettings, error) {
	var settings types.AccessibilitySettings
	err := sr.conn(tx).WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert is a single atomic statement keyed on the user_id unique index, so
// concurrent first saves cannot create duplicate rows.
func (sr *settingsRepo) Upsert(ctx context.Context, tx *gorm.DB, settings *types.AccessibilitySettings) error {
	return sr.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"theme", "font_family", "font_size",
				"motion_reduced", "high_contrast", "screen_reader_mode",
				"updated_at",
			}),
		}).
		Create(settings).Error
}
