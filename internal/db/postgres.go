package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/envutil"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.GetEnv("POSTGRES_HOST", "localhost")
	port := envutil.GetEnv("POSTGRES_PORT", "5432")
	user := envutil.GetEnv("POSTGRES_USER", "postgres")
	password := envutil.GetEnv("POSTGRES_PASSWORD", "")
	name := envutil.GetEnv("POSTGRES_NAME", "divergex")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: conn, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.User{},
		&types.UserProfile{},
		&types.AccessibilitySettings{},
		&types.Task{},
		&types.TimelineEvent{},
		&types.CommunicationHistory{},
		&types.ConversationSimulation{},
		&types.LearningContent{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	fks := []struct {
		table      string
		constraint string
		column     string
		refTable   string
	}{
		{"user_profiles", "fk_user_profiles_user_id", "user_id", "users"},
		{"accessibility_settings", "fk_accessibility_settings_user_id", "user_id", "users"},
		{"tasks", "fk_tasks_user_id", "user_id", "users"},
		{"timeline_events", "fk_timeline_events_user_id", "user_id", "users"},
		{"communication_history", "fk_communication_history_user_id", "user_id", "users"},
		{"conversation_simulations", "fk_conversation_simulations_user_id", "user_id", "users"},
		{"learning_content", "fk_learning_content_user_id", "user_id", "users"},
	}
	for _, fk := range fks {
		stmt := fmt.Sprintf(`
			DO $$ BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
					ALTER TABLE "%s" ADD CONSTRAINT "%s"
					FOREIGN KEY ("%s") REFERENCES "%s"("id") ON DELETE CASCADE;
				END IF;
			END $$;
		`, fk.constraint, fk.table, fk.constraint, fk.column, fk.refTable)
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.constraint, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
