package app

import (
	"github.com/yungbote/divergex-backend/internal/http/handlers"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Accessibility *handlers.AccessibilityHandler
	Planning      *handlers.PlanningHandler
	Communication *handlers.CommunicationHandler
	Learning      *handlers.LearningHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Health:        handlers.NewHealthHandler(),
		Auth:          handlers.NewAuthHandler(s.Auth, s.User),
		Accessibility: handlers.NewAccessibilityHandler(s.Settings),
		Planning:      handlers.NewPlanningHandler(s.Planning),
		Communication: handlers.NewCommunicationHandler(s.Communication),
		Learning:      handlers.NewLearningHandler(s.Learning),
	}
}
