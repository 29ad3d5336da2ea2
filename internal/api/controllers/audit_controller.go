package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/services"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type AuditController struct {
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAuditController(auditService services.AuditServiceInterface, logger *zap.Logger) *AuditController {
	return &AuditController{
		auditService: auditService,
		logger:       logger,
	}
}

// List godoc
// @Summary List audit entries
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /admin/audit [get]
func (a *AuditController) List(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, err := a.auditService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, rows, "")
}
