package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	UserProfile  repos.UserProfileRepo
	Settings     repos.SettingsRepo
	Task         repos.TaskRepo
	Timeline     repos.TimelineEventRepo
	CommHistory  repos.CommunicationHistoryRepo
	Simulation   repos.ConversationSimulationRepo
	LearningItem repos.LearningContentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:         repos.NewUserRepo(db, log),
		UserProfile:  repos.NewUserProfileRepo(db, log),
		Settings:     repos.NewSettingsRepo(db, log),
		Task:         repos.NewTaskRepo(db, log),
		Timeline:     repos.NewTimelineEventRepo(db, log),
		CommHistory:  repos.NewCommunicationHistoryRepo(db, log),
		Simulation:   repos.NewConversationSimulationRepo(db, log),
		LearningItem: repos.NewLearningContentRepo(db, log),
	}
}
