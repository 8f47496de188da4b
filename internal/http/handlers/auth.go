package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/http/middleware"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/http/response"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ah.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		response.RespondError(c, http.StatusBadRequest, "registration_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Admin registered successfully"})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	accessToken, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": accessToken,
		"expires_in":   int(ah.authService.GetAccessTTL().Seconds()),
	})
}

// Logout is stateless: tokens simply expire. Kept for client symmetry.
func (ah *AuthHandler) Logout(c *gin.Context) {
	response.RespondOK(c, gin.H{"message": "Admin logged out successfully"})
}

func (ah *AuthHandler) Profile(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing admin identity"))
		return
	}
	admin, err := ah.authService.Profile(c.Request.Context(), adminID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "admin_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{
		"username": admin.Username,
		"email":    admin.Email,
		"role":     admin.Role,
		"status":   admin.Status,
	})
}

func (ah *AuthHandler) UpdateProfile(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing admin identity"))
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ah.authService.UpdateProfile(c.Request.Context(), adminID, fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Admin profile updated"})
}
