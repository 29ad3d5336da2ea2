package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/response_models"
	"github.com/davidsodrelins/comunyCAR/internal/services"
	"github.com/davidsodrelins/comunyCAR/pkg/middleware"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type MessageController struct {
	messageService services.MessageServiceInterface
	logger         *zap.Logger
}

func NewMessageController(messageService services.MessageServiceInterface, logger *zap.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func messageResponse(m *db_models.Message) response_models.MessageResponse {
	content := m.Content
	if m.FixedAlert != nil {
		content = utils.RenderPlate(m.FixedAlert.Message, m.Vehicle.Plate)
	}

	reactions := make([]response_models.ReactionResponse, 0, len(m.Reactions))
	for _, r := range m.Reactions {
		reactions = append(reactions, response_models.ReactionResponse{
			UserID:       r.UserID,
			ReactionType: string(r.ReactionType),
			CreatedAt:    r.CreatedAt,
		})
	}

	return response_models.MessageResponse{
		ID:          m.ID,
		Plate:       utils.FormatPlate(m.Vehicle.Plate),
		MessageType: string(m.MessageType),
		Content:     content,
		CreditsUsed: m.CreditsUsed,
		Status:      string(m.Status),
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
		Reactions:   reactions,
	}
}

// ListReceived godoc
// @Summary List messages received for the user's vehicles
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /messages/received [get]
func (m *MessageController) ListReceived(c *gin.Context) {
	page, pageSize := pagination(c)
	messages, err := m.messageService.ListReceived(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	out := make([]response_models.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, messageResponse(&messages[i]))
	}
	utils.RespondSuccess(c, out, "")
}

// ListSent godoc
// @Summary List messages the user sent
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /messages/sent [get]
func (m *MessageController) ListSent(c *gin.Context) {
	page, pageSize := pagination(c)
	messages, err := m.messageService.ListSent(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	out := make([]response_models.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, messageResponse(&messages[i]))
	}
	utils.RespondSuccess(c, out, "")
}

// Get godoc
// @Summary Get a single message with its reactions
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message id"
// @Success 200 {object} utils.APIResponse
// @Router /messages/{id} [get]
func (m *MessageController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	message, err := m.messageService.GetDetails(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}
	utils.RespondSuccess(c, messageResponse(message), "")
}

// React godoc
// @Summary Toggle a reaction on a received message
// @Description An existing reaction of the same type is removed, otherwise added. The seen reaction also marks the message read.
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message id"
// @Param request body request_models.ReactionRequest true "Reaction payload"
// @Success 200 {object} utils.APIResponse
// @Router /messages/{id}/reactions [post]
func (m *MessageController) React(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	action, err := m.messageService.React(c.Request.Context(), middleware.CurrentUserID(c), id, db_models.ReactionType(req.ReactionType))
	if err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}

	utils.RespondSuccess(c, response_models.ReactionToggleResponse{
		MessageID:    id,
		ReactionType: req.ReactionType,
		Action:       action,
	}, "")
}

// MarkRead godoc
// @Summary Mark a received message as read
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message id"
// @Success 200 {object} utils.APIResponse
// @Router /messages/{id}/read [post]
func (m *MessageController) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := m.messageService.MarkRead(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		utils.HandleServiceError(c, m.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Message marked as read")
}
