package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/divergex-backend/internal/http/response"
	"github.com/yungbote/divergex-backend/internal/services"
)

type LearningHandler struct {
	learningService services.LearningService
}

func NewLearningHandler(learningService services.LearningService) *LearningHandler {
	return &LearningHandler{learningService: learningService}
}

// POST /process-text
func (h *LearningHandler) ProcessText(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Text         string `json:"text"`
		ReadingLevel int    `json:"readingLevel"`
		DomainType   string `json:"domainType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	processed, err := h.learningService.ProcessText(c.Request.Context(), userID, req.Text, req.ReadingLevel, req.DomainType)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, processed)
}

// POST /generate-visual-summary
func (h *LearningHandler) GenerateVisualSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Text      string     `json:"text"`
		ContentID *uuid.UUID `json:"contentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	visual, err := h.learningService.GenerateVisualSummary(c.Request.Context(), userID, req.Text, req.ContentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, visual)
}

// GET /learning-history
func (h *LearningHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	history, err := h.learningService.History(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, history)
}

// GET /content/:id
func (h *LearningHandler) ContentByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_content_id", err)
		return
	}
	content, err := h.learningService.ContentByID(c.Request.Context(), userID, contentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, content)
}
