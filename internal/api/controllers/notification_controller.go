package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/response_models"
	"github.com/davidsodrelins/comunyCAR/internal/services"
	"github.com/davidsodrelins/comunyCAR/pkg/middleware"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	whatsappService     services.WhatsappServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(
	notificationService services.NotificationServiceInterface,
	whatsappService services.WhatsappServiceInterface,
	logger *zap.Logger,
) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		whatsappService:     whatsappService,
		logger:              logger,
	}
}

// GetPreferences godoc
// @Summary Get notification channel preferences
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /notifications/preferences [get]
func (n *NotificationController) GetPreferences(c *gin.Context) {
	prefs, err := n.notificationService.GetPreferences(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.PreferencesResponse{
		EmailEnabled:    prefs.EmailEnabled,
		WhatsappEnabled: prefs.WhatsappEnabled,
		PushEnabled:     prefs.PushEnabled,
	}, "")
}

// UpdatePreferences godoc
// @Summary Update notification channel preferences
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpdatePreferencesRequest true "Preferences payload"
// @Success 200 {object} utils.APIResponse
// @Router /notifications/preferences [put]
func (n *NotificationController) UpdatePreferences(c *gin.Context) {
	var req request_models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	prefs, err := n.notificationService.UpdatePreferences(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.PreferencesResponse{
		EmailEnabled:    prefs.EmailEnabled,
		WhatsappEnabled: prefs.WhatsappEnabled,
		PushEnabled:     prefs.PushEnabled,
	}, "Preferences updated")
}

// RegisterPushToken godoc
// @Summary Register a device push token
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.RegisterPushTokenRequest true "Token payload"
// @Success 200 {object} utils.APIResponse
// @Router /notifications/push-tokens [post]
func (n *NotificationController) RegisterPushToken(c *gin.Context) {
	var req request_models.RegisterPushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := n.notificationService.RegisterPushToken(c.Request.Context(), middleware.CurrentUserID(c), req); err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Push token registered")
}

// ListPushTokens godoc
// @Summary List registered device push tokens
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /notifications/push-tokens [get]
func (n *NotificationController) ListPushTokens(c *gin.Context) {
	tokens, err := n.notificationService.ListPushTokens(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}

	out := make([]response_models.PushTokenResponse, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, response_models.PushTokenResponse{
			Token:     t.Token,
			Platform:  string(t.Platform),
			CreatedAt: t.CreatedAt,
		})
	}
	utils.RespondSuccess(c, out, "")
}

// RemovePushToken godoc
// @Summary Remove a device push token
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param token path string true "Push token"
// @Success 200 {object} utils.APIResponse
// @Router /notifications/push-tokens/{token} [delete]
func (n *NotificationController) RemovePushToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, "Invalid token")
		return
	}

	if err := n.notificationService.RemovePushToken(c.Request.Context(), middleware.CurrentUserID(c), token); err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Push token removed")
}

// WhatsappConnect godoc
// @Summary Start a WhatsApp session
// @Description Returns a QR code to scan while the session is connecting
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.WhatsappConnectRequest false "Session payload"
// @Success 200 {object} utils.APIResponse
// @Router /notifications/whatsapp/connect [post]
func (n *NotificationController) WhatsappConnect(c *gin.Context) {
	// The body is optional, the number on file is kept when absent.
	var req request_models.WhatsappConnectRequest
	_ = c.ShouldBindJSON(&req)

	cfg, err := n.whatsappService.Connect(c.Request.Context(), middleware.CurrentUserID(c), req.PhoneNumber)
	if err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.WhatsappStatusResponse{
		State:           string(cfg.State),
		PhoneNumber:     cfg.PhoneNumber,
		QRCode:          cfg.QRCode,
		LastConnectedAt: cfg.LastConnectedAt,
	}, "")
}

// WhatsappDisconnect godoc
// @Summary End the WhatsApp session
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /notifications/whatsapp/disconnect [post]
func (n *NotificationController) WhatsappDisconnect(c *gin.Context) {
	if err := n.whatsappService.Disconnect(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "WhatsApp disconnected")
}

// WhatsappCallback godoc
// @Summary WhatsApp gateway session callback
// @Description Called by the gateway once the QR code is scanned
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /webhooks/whatsapp [post]
func (n *NotificationController) WhatsappCallback(c *gin.Context) {
	var req request_models.WhatsappCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := n.whatsappService.ConfirmConnected(c.Request.Context(), req.UserID, req.SessionData); err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session confirmed")
}

// WhatsappStatus godoc
// @Summary Get the WhatsApp session state
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /notifications/whatsapp/status [get]
func (n *NotificationController) WhatsappStatus(c *gin.Context) {
	cfg, err := n.whatsappService.Status(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, n.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.WhatsappStatusResponse{
		State:           string(cfg.State),
		PhoneNumber:     cfg.PhoneNumber,
		QRCode:          cfg.QRCode,
		LastConnectedAt: cfg.LastConnectedAt,
	}, "")
}
