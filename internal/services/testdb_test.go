package services

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/divergex-backend/internal/repos"
	"github.com/yungbote/divergex-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserProfile{},
		&types.AccessibilitySettings{},
		&types.Task{},
		&types.TimelineEvent{},
		&types.CommunicationHistory{},
		&types.ConversationSimulation{},
		&types.LearningContent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testEnv wires the repo and service layers the way the app does, against a
// throwaway sqlite database.
type testEnv struct {
	db       *gorm.DB
	auth     AuthService
	planning PlanningService
	settings SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := openTestDB(t)
	log := testLogger(t)

	userRepo := repos.NewUserRepo(db, log)
	profileRepo := repos.NewUserProfileRepo(db, log)
	settingsRepo := repos.NewSettingsRepo(db, log)
	taskRepo := repos.NewTaskRepo(db, log)
	eventRepo := repos.NewTimelineEventRepo(db, log)

	return &testEnv{
		db:       db,
		auth:     NewAuthService(db, log, userRepo, profileRepo, settingsRepo, "test-secret", time.Hour),
		planning: NewPlanningService(db, log, taskRepo, eventRepo),
		settings: NewSettingsService(db, log, settingsRepo),
	}
}
