package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/divergex-backend/internal/http/response"
	"github.com/yungbote/divergex-backend/internal/services"
)

type AccessibilityHandler struct {
	settingsService services.SettingsService
}

func NewAccessibilityHandler(settingsService services.SettingsService) *AccessibilityHandler {
	return &AccessibilityHandler{settingsService: settingsService}
}

// GET /settings
func (h *AccessibilityHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, settings)
}

// PUT /settings
func (h *AccessibilityHandler) UpdateSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	settings, err := h.settingsService.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, settings)
}
