package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/divergex-backend/internal/http/response"
	"github.com/yungbote/divergex-backend/internal/services"
	"github.com/yungbote/divergex-backend/internal/types"
)

type PlanningHandler struct {
	planningService services.PlanningService
}

func NewPlanningHandler(planningService services.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

// GET /tasks?status=&category=&startDate=&endDate=
func (h *PlanningHandler) ListTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter := types.TaskFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.RespondError(c, 400, "invalid_start_date", err)
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.RespondError(c, 400, "invalid_end_date", err)
			return
		}
		filter.EndDate = &t
	}
	tasks, err := h.planningService.ListTasks(c.Request.Context(), userID, filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, tasks)
}

// POST /tasks
func (h *PlanningHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.NewTask
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	task, err := h.planningService.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, task)
}

// PUT /tasks/:id
func (h *PlanningHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_task_id", err)
		return
	}
	var req types.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	task, err := h.planningService.UpdateTask(c.Request.Context(), userID, taskID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, task)
}

// DELETE /tasks/:id
func (h *PlanningHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_task_id", err)
		return
	}
	if err := h.planningService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Task deleted successfully"})
}

// GET /timeline
func (h *PlanningHandler) ListTimeline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := h.planningService.ListTimeline(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, events)
}

// POST /timeline/events
func (h *PlanningHandler) CreateTimelineEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.NewTimelineEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	event, err := h.planningService.CreateTimelineEvent(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, event)
}
