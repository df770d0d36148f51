package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type TimelineEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.TimelineEvent) error
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TimelineEvent, error)
}

type timelineEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTimelineEventRepo(db *gorm.DB, baseLog *logger.Logger) TimelineEventRepo {
	return &timelineEventRepo{db: db, log: baseLog.With("repo", "TimelineEventRepo")}
}

func (er *timelineEventRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

func (er *timelineEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.TimelineEvent) error {
	return er.conn(tx).WithContext(ctx).Create(event).Error
}

func (er *timelineEventRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TimelineEvent, error) {
	var events []*types.TimelineEvent
	if err := er.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
