package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/divergex-backend/internal/http/response"
	"github.com/yungbote/divergex-backend/internal/services"
	"github.com/yungbote/divergex-backend/internal/types"
)

type CommunicationHandler struct {
	commService services.CommunicationService
}

func NewCommunicationHandler(commService services.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{commService: commService}
}

// POST /analyze-tone
func (h *CommunicationHandler) AnalyzeTone(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Text    string `json:"text"`
		Context string `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	analysis, err := h.commService.AnalyzeTone(c.Request.Context(), userID, req.Text, req.Context)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, analysis)
}

// POST /format-message
func (h *CommunicationHandler) FormatMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Text       string `json:"text"`
		TargetTone string `json:"targetTone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	formatted, err := h.commService.FormatMessage(c.Request.Context(), userID, req.Text, req.TargetTone)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, formatted)
}

// POST /simulate-conversation
func (h *CommunicationHandler) SimulateConversation(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	var req struct {
		Scenario string                      `json:"scenario"`
		Message  string                      `json:"message"`
		History  []types.ConversationMessage `json:"conversationHistory"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	turn := h.commService.SimulateConversation(c.Request.Context(), req.Scenario, req.Message, req.History)
	response.RespondOK(c, turn)
}

// POST /save-conversation
func (h *CommunicationHandler) SaveConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.SavedConversation
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	if err := h.commService.SaveConversation(c.Request.Context(), userID, req); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Conversation saved successfully"})
}

// GET /conversation-history
func (h *CommunicationHandler) ConversationHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	history, err := h.commService.ConversationHistory(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, history)
}
