package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type VehicleRepository interface {
	Insert(ctx context.Context, vehicle *db_models.Vehicle) error
	FindByID(ctx context.Context, id uint) (*db_models.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*db_models.Vehicle, error)
	Update(ctx context.Context, vehicle *db_models.Vehicle) error
	LinkUser(ctx context.Context, link *db_models.VehicleUser) error
	UnlinkUser(ctx context.Context, vehicleID, userID uint) error
	FindLink(ctx context.Context, vehicleID, userID uint) (*db_models.VehicleUser, error)
	ListByUser(ctx context.Context, userID uint) ([]db_models.VehicleUser, error)
	ListUsers(ctx context.Context, vehicleID uint) ([]db_models.VehicleUser, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Insert(ctx context.Context, vehicle *db_models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*db_models.Vehicle, error) {
	var vehicle db_models.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByPlate(ctx context.Context, plate string) (*db_models.Vehicle, error) {
	var vehicle db_models.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "plate = ?", plate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *db_models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) LinkUser(ctx context.Context, link *db_models.VehicleUser) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *vehicleRepository) UnlinkUser(ctx context.Context, vehicleID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("vehicle_id = ? AND user_id = ?", vehicleID, userID).
		Delete(&db_models.VehicleUser{}).Error
}

func (r *vehicleRepository) FindLink(ctx context.Context, vehicleID, userID uint) (*db_models.VehicleUser, error) {
	var link db_models.VehicleUser
	err := r.db.WithContext(ctx).
		First(&link, "vehicle_id = ? AND user_id = ?", vehicleID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *vehicleRepository) ListByUser(ctx context.Context, userID uint) ([]db_models.VehicleUser, error) {
	var links []db_models.VehicleUser
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}

func (r *vehicleRepository) ListUsers(ctx context.Context, vehicleID uint) ([]db_models.VehicleUser, error) {
	var links []db_models.VehicleUser
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("vehicle_id = ?", vehicleID).
		Find(&links).Error
	return links, err
}
