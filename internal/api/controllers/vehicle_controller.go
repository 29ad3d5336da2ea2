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

type VehicleController struct {
	vehicleService services.VehicleServiceInterface
	logger         *zap.Logger
}

func NewVehicleController(vehicleService services.VehicleServiceInterface, logger *zap.Logger) *VehicleController {
	return &VehicleController{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

func vehicleResponse(v *db_models.Vehicle, role string) response_models.VehicleResponse {
	return response_models.VehicleResponse{
		ID:    v.ID,
		Plate: utils.FormatPlate(v.Plate),
		Brand: v.Brand,
		Model: v.Model,
		Color: v.Color,
		Year:  v.Year,
		Role:  role,
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(v), true
}

// Create godoc
// @Summary Register a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateVehicleRequest true "Vehicle payload"
// @Success 200 {object} utils.APIResponse
// @Router /vehicles [post]
func (v *VehicleController) Create(c *gin.Context) {
	var req request_models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	vehicle, err := v.vehicleService.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}
	utils.RespondSuccess(c, vehicleResponse(vehicle, db_models.VehicleRoleOwner), "Vehicle registered")
}

// Update godoc
// @Summary Update a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle id"
// @Param request body request_models.UpdateVehicleRequest true "Vehicle payload"
// @Success 200 {object} utils.APIResponse
// @Router /vehicles/{id} [put]
func (v *VehicleController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	vehicle, err := v.vehicleService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}
	utils.RespondSuccess(c, vehicleResponse(vehicle, db_models.VehicleRoleOwner), "Vehicle updated")
}

// ListMine godoc
// @Summary List the authenticated user's vehicles
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /vehicles [get]
func (v *VehicleController) ListMine(c *gin.Context) {
	links, err := v.vehicleService.ListMine(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}

	out := make([]response_models.VehicleResponse, 0, len(links))
	for _, link := range links {
		out = append(out, vehicleResponse(&link.Vehicle, link.Role))
	}
	utils.RespondSuccess(c, out, "")
}

// Get godoc
// @Summary Get one vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle id"
// @Success 200 {object} utils.APIResponse
// @Router /vehicles/{id} [get]
func (v *VehicleController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	vehicle, role, err := v.vehicleService.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}
	utils.RespondSuccess(c, vehicleResponse(vehicle, role), "")
}

// GetByPlate godoc
// @Summary Check whether a plate is registered
// @Description Public lookup used before sending an alert. No owner data is returned.
// @Tags Vehicles
// @Produce json
// @Param plate path string true "License plate"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /vehicles/plate/{plate} [get]
func (v *VehicleController) GetByPlate(c *gin.Context) {
	vehicle, err := v.vehicleService.GetByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.VehicleLookupResponse{
		Plate: utils.FormatPlate(vehicle.Plate),
		Brand: vehicle.Brand,
		Model: vehicle.Model,
		Color: vehicle.Color,
	}, "")
}

// AddSecondaryUser godoc
// @Summary Link another account to the vehicle
// @Description Owner only. The account is found by email.
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle id"
// @Param request body request_models.AddSecondaryUserRequest true "User email"
// @Success 200 {object} utils.APIResponse
// @Router /vehicles/{id}/users [post]
func (v *VehicleController) AddSecondaryUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.AddSecondaryUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := v.vehicleService.AddSecondaryUser(c.Request.Context(), middleware.CurrentUserID(c), id, req.Email)
	if err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}

	utils.RespondSuccess(c, response_models.VehicleUserResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   db_models.VehicleRoleSecondary,
	}, "User linked to vehicle")
}

// RemoveSecondaryUser godoc
// @Summary Unlink a secondary user from the vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle id"
// @Param userId path int true "User id"
// @Success 200 {object} utils.APIResponse
// @Router /vehicles/{id}/users/{userId} [delete]
func (v *VehicleController) RemoveSecondaryUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := v.vehicleService.RemoveSecondaryUser(c.Request.Context(), middleware.CurrentUserID(c), id, userID); err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "User unlinked from vehicle")
}

// ListUsers godoc
// @Summary List users linked to the vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle id"
// @Success 200 {object} utils.APIResponse
// @Router /vehicles/{id}/users [get]
func (v *VehicleController) ListUsers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	links, err := v.vehicleService.ListUsers(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		utils.HandleServiceError(c, v.logger, err)
		return
	}

	out := make([]response_models.VehicleUserResponse, 0, len(links))
	for _, link := range links {
		out = append(out, response_models.VehicleUserResponse{
			UserID: link.UserID,
			Name:   link.User.Name,
			Email:  link.User.Email,
			Role:   link.Role,
		})
	}
	utils.RespondSuccess(c, out, "")
}
