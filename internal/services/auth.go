package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/repos"
	"github.com/yungbote/divergex-backend/internal/requestdata"
	"github.com/yungbote/divergex-backend/internal/types"
)

type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, email, password, username string) (*types.User, string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	profileRepo  repos.UserProfileRepo
	settingsRepo repos.SettingsRepo
	jwtSecretKey string
	tokenTTL     time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	profileRepo repos.UserProfileRepo,
	settingsRepo repos.SettingsRepo,
	jwtSecretKey string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		settingsRepo: settingsRepo,
		jwtSecretKey: jwtSecretKey,
		tokenTTL:     tokenTTL,
	}
}

// Register creates the user row together with its empty profile and default
// accessibility settings in one transaction, so a half-registered account
// cannot exist.
func (as *authService) Register(ctx context.Context, email, password, username string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || password == "" {
		return nil, "", apierr.Validation("missing_fields", fmt.Errorf("email and password are required"))
	}
	if len(password) < 8 {
		return nil, "", apierr.Validation("weak_password", fmt.Errorf("password must be at least 8 characters"))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("check email: %w", err))
	}
	if exists {
		return nil, "", apierr.Validation("email_taken", fmt.Errorf("email already registered"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
	}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := as.profileRepo.Create(ctx, tx, types.DefaultUserProfile(user.ID)); err != nil {
			return fmt.Errorf("create user profile: %w", err)
		}
		settings := types.DefaultAccessibilitySettings(user.ID)
		if err := as.settingsRepo.Create(ctx, tx, settings); err != nil {
			return fmt.Errorf("create default settings: %w", err)
		}
		return nil
	}); err != nil {
		return nil, "", apierr.Internal(err)
	}

	token, err := as.generateToken(user)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("sign token: %w", err))
	}
	as.log.Info("user registered", "user_id", user.ID.String())
	return user, token, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apierr.Validation("missing_fields", fmt.Errorf("email and password are required"))
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return nil, "", apierr.Auth("invalid_credentials", fmt.Errorf("invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apierr.Auth("invalid_credentials", fmt.Errorf("invalid email or password"))
	}

	token, err := as.generateToken(user)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("sign token: %w", err))
	}
	as.log.Info("user logged in", "user_id", user.ID.String())
	return user, token, nil
}

func (as *authService) generateToken(user *types.User) (string, error) {
	claims := JWTClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, apierr.Auth("invalid_token", fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Auth("invalid_token", fmt.Errorf("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ctx, apierr.Auth("invalid_token", fmt.Errorf("invalid user id in token: %w", err))
	}
	rd := &requestdata.RequestData{
		UserID:      userID,
		Email:       claims.Email,
		TokenString: tokenString,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
