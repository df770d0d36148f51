package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/divergex-backend/internal/http/response"
	"github.com/yungbote/divergex-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandler(authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// POST /register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	user, token, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": token, "user": user.Public()})
}

// POST /login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	user, token, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": token, "user": user.Public()})
}

// GET /profile
func (ah *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, profile, err := ah.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"username":    user.Username,
			"preferences": user.Preferences,
		},
		"profile": profile,
	})
}

// PUT /profile
func (ah *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	user, profile, err := ah.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"username":    user.Username,
			"preferences": user.Preferences,
		},
		"profile": profile,
	})
}
