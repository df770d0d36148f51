package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/repos"
	"github.com/yungbote/divergex-backend/internal/types"
)

// NewTask is the POST /tasks payload.
type NewTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	EnergyLevel string     `json:"energyLevel"`
	Category    string     `json:"category"`
	Priority    int        `json:"priority"`
}

// NewTimelineEvent is the POST /timeline/events payload.
type NewTimelineEvent struct {
	TaskID    *uuid.UUID     `json:"taskId"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Color     string         `json:"color"`
	Reminders datatypes.JSON `json:"reminders"`
}

type PlanningService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, in NewTask) (*types.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, filter types.TaskFilter) ([]*types.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, update types.TaskUpdate) (*types.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
	CreateTimelineEvent(ctx context.Context, userID uuid.UUID, in NewTimelineEvent) (*types.TimelineEvent, error)
	ListTimeline(ctx context.Context, userID uuid.UUID) ([]*types.TimelineEvent, error)
}

type planningService struct {
	db        *gorm.DB
	log       *logger.Logger
	taskRepo  repos.TaskRepo
	eventRepo repos.TimelineEventRepo
}

func NewPlanningService(db *gorm.DB, baseLog *logger.Logger, taskRepo repos.TaskRepo, eventRepo repos.TimelineEventRepo) PlanningService {
	return &planningService{
		db:        db,
		log:       baseLog.With("service", "PlanningService"),
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
	}
}

func (ps *planningService) CreateTask(ctx context.Context, userID uuid.UUID, in NewTask) (*types.Task, error) {
	if in.Title == "" {
		return nil, apierr.Validation("missing_title", fmt.Errorf("title is required"))
	}
	if in.EnergyLevel != "" {
		if _, ok := types.ValidEnergyLevels[in.EnergyLevel]; !ok {
			return nil, apierr.Validation("invalid_energy_level", fmt.Errorf("unknown energy level %q", in.EnergyLevel))
		}
	}
	if in.Category != "" {
		if _, ok := types.ValidTaskCategories[in.Category]; !ok {
			return nil, apierr.Validation("invalid_category", fmt.Errorf("unknown category %q", in.Category))
		}
	}

	task := &types.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		EnergyLevel: in.EnergyLevel,
		Category:    in.Category,
		Status:      types.TaskStatusPending,
		Priority:    in.Priority,
	}
	if err := ps.taskRepo.Create(ctx, nil, task); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create task: %w", err))
	}
	return task, nil
}

func (ps *planningService) ListTasks(ctx context.Context, userID uuid.UUID, filter types.TaskFilter) ([]*types.Task, error) {
	if filter.Status != "" {
		if _, ok := types.ValidTaskStatuses[filter.Status]; !ok {
			return nil, apierr.Validation("invalid_status", fmt.Errorf("unknown status %q", filter.Status))
		}
	}
	tasks, err := ps.taskRepo.ListByUserID(ctx, nil, userID, filter)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list tasks: %w", err))
	}
	return tasks, nil
}

// ownedTask loads a task and hides its existence from other users.
func (ps *planningService) ownedTask(ctx context.Context, userID, taskID uuid.UUID) (*types.Task, error) {
	task, err := ps.taskRepo.GetByID(ctx, nil, taskID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("fetch task: %w", err))
	}
	if task == nil || task.UserID != userID {
		return nil, apierr.NotFound("task_not_found", fmt.Errorf("task %s not found", taskID))
	}
	return task, nil
}

func (ps *planningService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, update types.TaskUpdate) (*types.Task, error) {
	task, err := ps.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if update.Status != nil {
		if _, ok := types.ValidTaskStatuses[*update.Status]; !ok {
			return nil, apierr.Validation("invalid_status", fmt.Errorf("unknown status %q", *update.Status))
		}
		task.Status = *update.Status
	}
	if update.EnergyLevel != nil {
		if _, ok := types.ValidEnergyLevels[*update.EnergyLevel]; !ok {
			return nil, apierr.Validation("invalid_energy_level", fmt.Errorf("unknown energy level %q", *update.EnergyLevel))
		}
		task.EnergyLevel = *update.EnergyLevel
	}
	if update.Category != nil {
		if _, ok := types.ValidTaskCategories[*update.Category]; !ok {
			return nil, apierr.Validation("invalid_category", fmt.Errorf("unknown category %q", *update.Category))
		}
		task.Category = *update.Category
	}
	if update.Title != nil {
		if *update.Title == "" {
			return nil, apierr.Validation("missing_title", fmt.Errorf("title cannot be blank"))
		}
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}

	if err := ps.taskRepo.Update(ctx, nil, task); err != nil {
		return nil, apierr.Internal(fmt.Errorf("update task: %w", err))
	}
	return task, nil
}

func (ps *planningService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := ps.ownedTask(ctx, userID, taskID); err != nil {
		return err
	}
	if err := ps.taskRepo.Delete(ctx, nil, taskID); err != nil {
		return apierr.Internal(fmt.Errorf("delete task: %w", err))
	}
	return nil
}

func (ps *planningService) CreateTimelineEvent(ctx context.Context, userID uuid.UUID, in NewTimelineEvent) (*types.TimelineEvent, error) {
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, apierr.Validation("missing_times", fmt.Errorf("startTime and endTime are required"))
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, apierr.Validation("invalid_times", fmt.Errorf("endTime must be after startTime"))
	}
	if in.TaskID != nil {
		if _, err := ps.ownedTask(ctx, userID, *in.TaskID); err != nil {
			return nil, err
		}
	}
	reminders := in.Reminders
	if reminders == nil {
		reminders = datatypes.JSON([]byte("[]"))
	}
	event := &types.TimelineEvent{
		ID:        uuid.New(),
		UserID:    userID,
		TaskID:    in.TaskID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Color:     in.Color,
		Reminders: reminders,
	}
	if err := ps.eventRepo.Create(ctx, nil, event); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create timeline event: %w", err))
	}
	return event, nil
}

func (ps *planningService) ListTimeline(ctx context.Context, userID uuid.UUID) ([]*types.TimelineEvent, error) {
	events, err := ps.eventRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list timeline: %w", err))
	}
	return events, nil
}
