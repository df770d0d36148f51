package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/repos"
	"github.com/yungbote/divergex-backend/internal/types"
)

// ProfileUpdate is the PUT /profile payload; nil fields are left untouched.
type ProfileUpdate struct {
	Username    *string        `json:"username"`
	Preferences datatypes.JSON `json:"preferences"`
	ProfileData *ProfileData   `json:"profileData"`
}

type ProfileData struct {
	DiagnosisTypes      datatypes.JSON `json:"diagnosisTypes"`
	SensoryPreferences  datatypes.JSON `json:"sensoryPreferences"`
	CommunicationStyle  *string        `json:"communicationStyle"`
	LearningPreferences datatypes.JSON `json:"learningPreferences"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, *types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, *types.UserProfile, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	profileRepo repos.UserProfileRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, profileRepo repos.UserProfileRepo) UserService {
	return &userService{
		db:          db,
		log:         baseLog.With("service", "UserService"),
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, *types.UserProfile, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, nil, apierr.Internal(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return nil, nil, apierr.NotFound("user_not_found", fmt.Errorf("user %s not found", userID))
	}
	profile, err := us.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, nil, apierr.Internal(fmt.Errorf("fetch profile: %w", err))
	}
	if profile == nil {
		profile = types.DefaultUserProfile(userID)
	}
	return user, profile, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, *types.UserProfile, error) {
	user, profile, err := us.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if update.Username != nil {
		trimmed := strings.TrimSpace(*update.Username)
		if trimmed == "" {
			return nil, nil, apierr.Validation("invalid_username", fmt.Errorf("username cannot be blank"))
		}
		user.Username = trimmed
	}
	if update.Preferences != nil {
		user.Preferences = update.Preferences
	}

	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if update.Username != nil || update.Preferences != nil {
			if err := us.userRepo.Update(ctx, tx, user); err != nil {
				return fmt.Errorf("update user: %w", err)
			}
		}
		if pd := update.ProfileData; pd != nil {
			if pd.DiagnosisTypes != nil {
				profile.DiagnosisTypes = pd.DiagnosisTypes
			}
			if pd.SensoryPreferences != nil {
				profile.SensoryPreferences = pd.SensoryPreferences
			}
			if pd.CommunicationStyle != nil {
				profile.CommunicationStyle = *pd.CommunicationStyle
			}
			if pd.LearningPreferences != nil {
				profile.LearningPreferences = pd.LearningPreferences
			}
			if err := us.profileRepo.Update(ctx, tx, profile); err != nil {
				return fmt.Errorf("update profile: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, nil, apierr.Internal(err)
	}
	return user, profile, nil
}
