package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type ConversationSimulationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sim *types.ConversationSimulation) error
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ConversationSimulation, error)
}

type conversationSimulationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationSimulationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationSimulationRepo {
	return &conversationSimulationRepo{db: db, log: baseLog.With("repo", "ConversationSimulationRepo")}
}

func (sr *conversationSimulationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

func (sr *conversationSimulationRepo) Create(ctx context.Context, tx *gorm.DB, sim *types.ConversationSimulation) error {
	return sr.conn(tx).WithContext(ctx).Create(sim).Error
}

func (sr *conversationSimulationRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ConversationSimulation, error) {
	var sims []*types.ConversationSimulation
	q := sr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&sims).Error; err != nil {
		return nil, err
	}
	return sims, nil
}
