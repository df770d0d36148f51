package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, task *types.Task) error
	GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.Task, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter types.TaskFilter) ([]*types.Task, error)
	Update(ctx context.Context, tx *gorm.DB, task *types.Task) error
	Delete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (tr *taskRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return tr.db
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.Task) error {
	return tr.conn(tx).WithContext(ctx).Create(task).Error
}

func (tr *taskRepo) GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.Task, error) {
	var task types.Task
	err := tr.conn(tx).WithContext(ctx).Where("id = ?", taskID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tr *taskRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter types.TaskFilter) ([]*types.Task, error) {
	q := tr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		q = q.Where("due_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("due_date <= ?", *filter.EndDate)
	}

	var tasks []*types.Task
	if err := q.Order("priority DESC").Order("due_date").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (tr *taskRepo) Update(ctx context.Context, tx *gorm.DB, task *types.Task) error {
	return tr.conn(tx).WithContext(ctx).Save(task).Error
}

func (tr *taskRepo) Delete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error {
	return tr.conn(tx).WithContext(ctx).Where("id = ?", taskID).Delete(&types.Task{}).Error
}
