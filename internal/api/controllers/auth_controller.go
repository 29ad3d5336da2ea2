package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/response_models"
	"github.com/davidsodrelins/comunyCAR/internal/services"
	"github.com/davidsodrelins/comunyCAR/pkg/middleware"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type AuthController struct {
	authService  services.AuthServiceInterface
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, auditService services.AuditServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		auditService: auditService,
		logger:       logger,
	}
}

func userResponse(u *db_models.User) response_models.UserResponse {
	return response_models.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		CNPJ:          u.CNPJ,
		EmailVerified: u.EmailVerified,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and send the email verification link
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	uid := user.ID
	a.auditService.Record(c.Request.Context(), &uid, "user.register", "user", &uid, nil, c.ClientIP())

	utils.RespondSuccess(c, userResponse(user), "Account created. Check your email to verify it.")
}

// Login godoc
// @Summary Login
// @Description Authenticate a user and return a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, user, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	uid := user.ID
	a.auditService.Record(c.Request.Context(), &uid, "user.login", "user", &uid, nil, c.ClientIP())

	utils.RespondSuccess(c, response_models.LoginResponse{
		Token: token,
		User:  userResponse(user),
	}, "Login successful")
}

// VerifyEmail godoc
// @Summary Verify email address
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.VerifyEmailRequest true "Verification payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/verify-email [post]
func (a *AuthController) VerifyEmail(c *gin.Context) {
	var req request_models.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	utils.RespondSuccess(c, nil, "Email verified")
}

// RequestPasswordReset godoc
// @Summary Request a password reset
// @Description Sends a reset link when the email exists, always answers 200
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RequestPasswordResetRequest true "Reset request payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/request-password-reset [post]
func (a *AuthController) RequestPasswordReset(c *gin.Context) {
	var req request_models.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the email exists, a reset link was sent")
}

// ResetPassword godoc
// @Summary Reset password with a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/reset-password [post]
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password updated")
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /auth/me [get]
func (a *AuthController) GetProfile(c *gin.Context) {
	user, err := a.authService.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, userResponse(user), "")
}

// UpdateProfile godoc
// @Summary Update name or phone
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/me [put]
func (a *AuthController) UpdateProfile(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.authService.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, userResponse(user), "Profile updated")
}

// ChangePassword godoc
// @Summary Change the password of the signed-in user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.ChangePasswordRequest true "Password payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me/password [put]
func (a *AuthController) ChangePassword(c *gin.Context) {
	var req request_models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password changed")
}
