package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type VehicleServiceInterface interface {
	Create(ctx context.Context, userID uint, req request_models.CreateVehicleRequest) (*db_models.Vehicle, error)
	Update(ctx context.Context, userID, vehicleID uint, req request_models.UpdateVehicleRequest) (*db_models.Vehicle, error)
	ListMine(ctx context.Context, userID uint) ([]db_models.VehicleUser, error)
	Get(ctx context.Context, userID, vehicleID uint) (*db_models.Vehicle, string, error)
	// GetByPlate is the public lookup a sender uses to confirm a plate is
	// registered before sending an alert.
	GetByPlate(ctx context.Context, plate string) (*db_models.Vehicle, error)
	// AddSecondaryUser links an existing account to the vehicle by email.
	// Only the owner may do this.
	AddSecondaryUser(ctx context.Context, ownerID, vehicleID uint, email string) (*db_models.User, error)
	RemoveSecondaryUser(ctx context.Context, ownerID, vehicleID, userID uint) error
	ListUsers(ctx context.Context, requesterID, vehicleID uint) ([]db_models.VehicleUser, error)
}

type VehicleService struct {
	vehicleRepo repositories.VehicleRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

func NewVehicleService(vehicleRepo repositories.VehicleRepository, userRepo repositories.UserRepository, logger *zap.Logger) VehicleServiceInterface {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (v *VehicleService) Create(ctx context.Context, userID uint, req request_models.CreateVehicleRequest) (*db_models.Vehicle, error) {
	plate := utils.NormalizePlate(req.Plate)
	if !utils.IsValidPlate(plate) {
		return nil, utils.ErrInvalidInput
	}

	existing, err := v.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrPlateAlreadyExists
	}

	vehicle := &db_models.Vehicle{
		Plate: plate,
		Brand: req.Brand,
		Model: req.Model,
		Color: req.Color,
		Year:  req.Year,
	}
	if err := v.vehicleRepo.Insert(ctx, vehicle); err != nil {
		return nil, utils.ErrDatabaseError
	}

	link := &db_models.VehicleUser{
		UserID:    userID,
		VehicleID: vehicle.ID,
		Role:      db_models.VehicleRoleOwner,
	}
	if err := v.vehicleRepo.LinkUser(ctx, link); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return vehicle, nil
}

func (v *VehicleService) Update(ctx context.Context, userID, vehicleID uint, req request_models.UpdateVehicleRequest) (*db_models.Vehicle, error) {
	vehicle, err := v.requireOwner(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Brand != "" {
		vehicle.Brand = req.Brand
	}
	if req.Model != "" {
		vehicle.Model = req.Model
	}
	if req.Color != "" {
		vehicle.Color = req.Color
	}
	if req.Year != 0 {
		vehicle.Year = req.Year
	}

	if err := v.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return vehicle, nil
}

func (v *VehicleService) ListMine(ctx context.Context, userID uint) ([]db_models.VehicleUser, error) {
	links, err := v.vehicleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return links, nil
}

func (v *VehicleService) Get(ctx context.Context, userID, vehicleID uint) (*db_models.Vehicle, string, error) {
	link, err := v.vehicleRepo.FindLink(ctx, vehicleID, userID)
	if err != nil {
		return nil, "", utils.ErrDatabaseError
	}
	if link == nil {
		return nil, "", utils.ErrForbidden
	}

	vehicle, err := v.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, "", utils.ErrDatabaseError
	}
	if vehicle == nil {
		return nil, "", utils.ErrVehicleNotFound
	}
	return vehicle, link.Role, nil
}

func (v *VehicleService) GetByPlate(ctx context.Context, plate string) (*db_models.Vehicle, error) {
	normalized := utils.NormalizePlate(plate)
	if !utils.IsValidPlate(normalized) {
		return nil, utils.ErrInvalidInput
	}

	vehicle, err := v.vehicleRepo.FindByPlate(ctx, normalized)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if vehicle == nil {
		return nil, utils.ErrVehicleNotFound
	}
	return vehicle, nil
}

func (v *VehicleService) AddSecondaryUser(ctx context.Context, ownerID, vehicleID uint, email string) (*db_models.User, error) {
	if _, err := v.requireOwner(ctx, ownerID, vehicleID); err != nil {
		return nil, err
	}

	user, err := v.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	existing, err := v.vehicleRepo.FindLink(ctx, vehicleID, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrAlreadyLinked
	}

	link := &db_models.VehicleUser{
		UserID:    user.ID,
		VehicleID: vehicleID,
		Role:      db_models.VehicleRoleSecondary,
	}
	if err := v.vehicleRepo.LinkUser(ctx, link); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (v *VehicleService) RemoveSecondaryUser(ctx context.Context, ownerID, vehicleID, userID uint) error {
	if _, err := v.requireOwner(ctx, ownerID, vehicleID); err != nil {
		return err
	}

	link, err := v.vehicleRepo.FindLink(ctx, vehicleID, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if link == nil {
		return utils.ErrUserNotFound
	}
	if link.Role == db_models.VehicleRoleOwner {
		return utils.ErrForbidden
	}

	if err := v.vehicleRepo.UnlinkUser(ctx, vehicleID, userID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (v *VehicleService) ListUsers(ctx context.Context, requesterID, vehicleID uint) ([]db_models.VehicleUser, error) {
	link, err := v.vehicleRepo.FindLink(ctx, vehicleID, requesterID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if link == nil {
		return nil, utils.ErrForbidden
	}

	links, err := v.vehicleRepo.ListUsers(ctx, vehicleID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return links, nil
}

func (v *VehicleService) requireOwner(ctx context.Context, userID, vehicleID uint) (*db_models.Vehicle, error) {
	vehicle, err := v.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if vehicle == nil {
		return nil, utils.ErrVehicleNotFound
	}

	link, err := v.vehicleRepo.FindLink(ctx, vehicleID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if link == nil || link.Role != db_models.VehicleRoleOwner {
		return nil, utils.ErrForbidden
	}
	return vehicle, nil
}
