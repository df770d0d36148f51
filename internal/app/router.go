package app

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/divergex-backend/internal/http/middleware"
	"github.com/yungbote/divergex-backend/internal/platform/envutil"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, h Handlers, m Middleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("divergex-backend"))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	router.GET("/", h.Health.HealthCheck)
	router.GET("/health", h.Health.HealthCheck)

	// Locally rendered mind maps are served straight off disk.
	if envutil.GetEnv("STORAGE_MODE", "local") == "local" {
		router.Static("/media", envutil.GetEnv("MEDIA_ROOT", "./media"))
	}

	api := router.Group("/api")
	api.Use(m.RateLimit.Limit())

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		authed := auth.Group("")
		authed.Use(m.Auth.RequireAuth())
		authed.GET("/profile", h.Auth.GetProfile)
		authed.PUT("/profile", h.Auth.UpdateProfile)
	}

	communication := api.Group("/communication")
	communication.Use(m.Auth.RequireAuth())
	{
		communication.POST("/analyze-tone", h.Communication.AnalyzeTone)
		communication.POST("/format-message", h.Communication.FormatMessage)
		communication.POST("/simulate-conversation", h.Communication.SimulateConversation)
		communication.POST("/save-conversation", h.Communication.SaveConversation)
		communication.GET("/conversation-history", h.Communication.ConversationHistory)
	}

	learning := api.Group("/learning")
	learning.Use(m.Auth.RequireAuth())
	{
		learning.POST("/process-text", h.Learning.ProcessText)
		learning.POST("/generate-visual-summary", h.Learning.GenerateVisualSummary)
		learning.GET("/learning-history", h.Learning.History)
		learning.GET("/content/:id", h.Learning.ContentByID)
	}

	planning := api.Group("/planning")
	planning.Use(m.Auth.RequireAuth())
	{
		planning.GET("/tasks", h.Planning.ListTasks)
		planning.POST("/tasks", h.Planning.CreateTask)
		planning.PUT("/tasks/:id", h.Planning.UpdateTask)
		planning.DELETE("/tasks/:id", h.Planning.DeleteTask)
		planning.GET("/timeline", h.Planning.ListTimeline)
		planning.POST("/timeline/events", h.Planning.CreateTimelineEvent)
	}

	accessibility := api.Group("/accessibility")
	accessibility.Use(m.Auth.RequireAuth())
	{
		accessibility.GET("/settings", h.Accessibility.GetSettings)
		accessibility.PUT("/settings", h.Accessibility.UpdateSettings)
	}

	return router
}
