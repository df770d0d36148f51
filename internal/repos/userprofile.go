package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type UserProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error)
	Update(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error
}

type userProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return &userProfileRepo{db: db, log: baseLog.With("repo", "UserProfileRepo")}
}

func (pr *userProfileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *userProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error {
	return pr.conn(tx).WithContext(ctx).Create(profile).Error
}

func (pr *userProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error) {
	var profile types.UserProfile
	err := pr.conn(tx).WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (pr *userProfileRepo) Update(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error {
	return pr.conn(tx).WithContext(ctx).Save(profile).Error
}
