package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type LearningContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, content *types.LearningContent) error
	GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.LearningContent, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.LearningContent, error)
	SetVisualSummaryURL(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, url string) error
}

type learningContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningContentRepo(db *gorm.DB, baseLog *logger.Logger) LearningContentRepo {
	return &learningContentRepo{db: db, log: baseLog.With("repo", "LearningContentRepo")}
}

func (cr *learningContentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *learningContentRepo) Create(ctx context.Context, tx *gorm.DB, content *types.LearningContent) error {
	return cr.conn(tx).WithContext(ctx).Create(content).Error
}

func (cr *learningContentRepo) GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.LearningContent, error) {
	var content types.LearningContent
	err := cr.conn(tx).WithContext(ctx).Where("id = ?", contentID).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (cr *learningContentRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.LearningContent, error) {
	var rows []*types.LearningContent
	q := cr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (cr *learningContentRepo) SetVisualSummaryURL(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, url string) error {
	return cr.conn(tx).WithContext(ctx).
		Model(&types.LearningContent{}).
		Where("id = ?", contentID).
		Update("visual_summary_url", url).Error
}
