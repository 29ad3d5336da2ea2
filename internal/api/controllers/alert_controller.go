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

type AlertController struct {
	alertService services.AlertServiceInterface
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAlertController(alertService services.AlertServiceInterface, auditService services.AuditServiceInterface, logger *zap.Logger) *AlertController {
	return &AlertController{
		alertService: alertService,
		auditService: auditService,
		logger:       logger,
	}
}

func fixedAlertResponse(a *db_models.FixedAlert) response_models.FixedAlertResponse {
	return response_models.FixedAlertResponse{
		ID:      a.ID,
		Title:   a.Title,
		Message: a.Message,
		Icon:    a.Icon,
	}
}

// ListFixed godoc
// @Summary List the fixed alert catalog
// @Tags Alerts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /alerts/fixed [get]
func (a *AlertController) ListFixed(c *gin.Context) {
	alerts, err := a.alertService.ListFixedAlerts(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	out := make([]response_models.FixedAlertResponse, 0, len(alerts))
	for i := range alerts {
		out = append(out, fixedAlertResponse(&alerts[i]))
	}
	utils.RespondSuccess(c, out, "")
}

// SendFixed godoc
// @Summary Send a fixed alert to a vehicle
// @Description Free. Works for anonymous and authenticated senders.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param request body request_models.SendFixedAlertRequest true "Alert payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /alerts/fixed [post]
func (a *AlertController) SendFixed(c *gin.Context) {
	var req request_models.SendFixedAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	var senderID *uint
	if id := middleware.CurrentUserID(c); id != 0 {
		senderID = &id
	}

	message, summary, err := a.alertService.SendFixed(c.Request.Context(), senderID, req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	mid := message.ID
	a.auditService.Record(c.Request.Context(), senderID, "alert.send_fixed", "message", &mid,
		map[string]interface{}{"recipients": summary.Recipients}, c.ClientIP())

	utils.RespondSuccess(c, response_models.SendAlertResponse{
		MessageID:   message.ID,
		Status:      string(message.Status),
		CreditsUsed: 0,
	}, "Alert sent")
}

// SendPersonalized godoc
// @Summary Send a custom message to a vehicle
// @Description Costs credits. Refunded when no channel delivers.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SendPersonalizedAlertRequest true "Message payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Router /alerts/personalized [post]
func (a *AlertController) SendPersonalized(c *gin.Context) {
	var req request_models.SendPersonalizedAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	senderID := middleware.CurrentUserID(c)
	message, summary, balance, err := a.alertService.SendPersonalized(c.Request.Context(), senderID, req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	mid := message.ID
	a.auditService.Record(c.Request.Context(), &senderID, "alert.send_personalized", "message", &mid,
		map[string]interface{}{"recipients": summary.Recipients, "credits_used": message.CreditsUsed}, c.ClientIP())

	utils.RespondSuccess(c, response_models.SendAlertResponse{
		MessageID:   message.ID,
		Status:      string(message.Status),
		CreditsUsed: message.CreditsUsed,
		Balance:     balance,
	}, "Message sent")
}

// CreateFixed godoc
// @Summary Add a catalog alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpsertFixedAlertRequest true "Alert payload"
// @Success 200 {object} utils.APIResponse
// @Router /admin/alerts/fixed [post]
func (a *AlertController) CreateFixed(c *gin.Context) {
	var req request_models.UpsertFixedAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	alert, err := a.alertService.CreateFixedAlert(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, fixedAlertResponse(alert), "Alert created")
}

// UpdateFixed godoc
// @Summary Update a catalog alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alert id"
// @Param request body request_models.UpsertFixedAlertRequest true "Alert payload"
// @Success 200 {object} utils.APIResponse
// @Router /admin/alerts/fixed/{id} [put]
func (a *AlertController) UpdateFixed(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpsertFixedAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	alert, err := a.alertService.UpdateFixedAlert(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, fixedAlertResponse(alert), "Alert updated")
}

// DeleteFixed godoc
// @Summary Remove a catalog alert
// @Tags Alerts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alert id"
// @Success 200 {object} utils.APIResponse
// @Router /admin/alerts/fixed/{id} [delete]
func (a *AlertController) DeleteFixed(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.alertService.DeleteFixedAlert(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Alert removed")
}
