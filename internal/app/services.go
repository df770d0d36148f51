package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/clients/gemini"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/platform/storage"
	"github.com/yungbote/divergex-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	User          services.UserService
	Settings      services.SettingsService
	Planning      services.PlanningService
	Communication services.CommunicationService
	Learning      services.LearningService
	Gateway       services.AIGatewayService
}

func wireServices(ctx context.Context, db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	var gen gemini.Generator
	client, err := gemini.NewClient(ctx, log)
	if err != nil {
		log.Warn("Gemini client unavailable, AI features will serve fallbacks", "error", err)
		gen = gemini.Disabled{}
	} else {
		gen = client
	}
	gateway := services.NewAIGatewayService(gen, log)

	renderer, err := services.NewSummaryRenderer(log)
	if err != nil {
		return Services{}, fmt.Errorf("init summary renderer: %w", err)
	}
	store, err := storage.New(ctx, log)
	if err != nil {
		return Services{}, fmt.Errorf("init storage: %w", err)
	}

	return Services{
		Auth:          services.NewAuthService(db, log, r.User, r.UserProfile, r.Settings, cfg.JWTSecretKey, cfg.TokenTTL),
		User:          services.NewUserService(db, log, r.User, r.UserProfile),
		Settings:      services.NewSettingsService(db, log, r.Settings),
		Planning:      services.NewPlanningService(db, log, r.Task, r.Timeline),
		Communication: services.NewCommunicationService(db, log, gateway, r.CommHistory, r.Simulation),
		Learning:      services.NewLearningService(db, log, gateway, renderer, store, r.LearningItem),
		Gateway:       gateway,
	}, nil
}
