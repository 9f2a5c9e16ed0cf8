package handlers

import (
	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/internal/validators"
	"vehicle-rental/pkg/logger"
)

type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req validators.UserRegistrationRequest
	if !bindJSON(c, &req, validators.ValidateUserRegistration) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &services.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
		City:     req.City,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validators.UserLoginRequest
	if !bindJSON(c, &req, validators.ValidateUserLogin) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req validators.RefreshTokenRequest
	if !bindJSON(c, &req, validators.ValidateRefreshToken) {
		return
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Token refreshed successfully", resp)
}

// Logout is an acknowledgement only; tokens are stateless and expire on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	if p, ok := principal(c); ok {
		h.logger.LogUserAction(p.UserID, "user.logout", nil)
		utils.SuccessResponse(c, "Logged out successfully", nil)
	}
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), p.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "User retrieved successfully", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req validators.UserUpdateRequest
	if !bindJSON(c, &req, validators.ValidateUserUpdate) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), p.UserID, req.City)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated successfully", user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req validators.PasswordChangeRequest
	if !bindJSON(c, &req, validators.ValidatePasswordChange) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), p.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Password changed successfully", nil)
}
