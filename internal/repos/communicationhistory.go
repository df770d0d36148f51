package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type CommunicationHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.CommunicationHistory) error
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CommunicationHistory, error)
}

type communicationHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunicationHistoryRepo(db *gorm.DB, baseLog *logger.Logger) CommunicationHistoryRepo {
	return &communicationHistoryRepo{db: db, log: baseLog.With("repo", "CommunicationHistoryRepo")}
}

func (hr *communicationHistoryRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return hr.db
}

func (hr *communicationHistoryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.CommunicationHistory) error {
	return hr.conn(tx).WithContext(ctx).Create(entry).Error
}

func (hr *communicationHistoryRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CommunicationHistory, error) {
	var entries []*types.CommunicationHistory
	q := hr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
