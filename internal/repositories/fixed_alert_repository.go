package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type FixedAlertRepository interface {
	List(ctx context.Context) ([]db_models.FixedAlert, error)
	FindByID(ctx context.Context, id uint) (*db_models.FixedAlert, error)
	Insert(ctx context.Context, alert *db_models.FixedAlert) error
	Update(ctx context.Context, alert *db_models.FixedAlert) error
	Delete(ctx context.Context, id uint) error
	SeedDefaults(ctx context.Context) error
}

type fixedAlertRepository struct {
	db *gorm.DB
}

func NewFixedAlertRepository(db *gorm.DB) FixedAlertRepository {
	return &fixedAlertRepository{db: db}
}

var defaultFixedAlerts = []db_models.FixedAlert{
	{Title: "Faróis Acesos", Message: "Os faróis do veículo {{PLATE}} estão acesos.", Icon: "headlight"},
	{Title: "Pneu Furado/Baixo", Message: "O veículo {{PLATE}} está com um pneu furado ou baixo.", Icon: "tire"},
	{Title: "Porta Aberta", Message: "O veículo {{PLATE}} está com uma porta aberta.", Icon: "door"},
	{Title: "Vazamento de Fluido", Message: "O veículo {{PLATE}} está com vazamento de fluido.", Icon: "fluid"},
	{Title: "Alarme Disparado", Message: "O alarme do veículo {{PLATE}} está disparado.", Icon: "alarm"},
	{Title: "Obstrução de Via", Message: "O veículo {{PLATE}} está obstruindo uma via ou saída.", Icon: "road"},
	{Title: "Outro Problema", Message: "O veículo {{PLATE}} precisa de atenção do proprietário.", Icon: "other"},
}

func (r *fixedAlertRepository) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&db_models.FixedAlert{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	alerts := make([]db_models.FixedAlert, len(defaultFixedAlerts))
	copy(alerts, defaultFixedAlerts)
	return r.db.WithContext(ctx).Create(&alerts).Error
}

func (r *fixedAlertRepository) List(ctx context.Context) ([]db_models.FixedAlert, error) {
	var alerts []db_models.FixedAlert
	err := r.db.WithContext(ctx).Order("id ASC").Find(&alerts).Error
	return alerts, err
}

func (r *fixedAlertRepository) FindByID(ctx context.Context, id uint) (*db_models.FixedAlert, error) {
	var alert db_models.FixedAlert
	err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *fixedAlertRepository) Insert(ctx context.Context, alert *db_models.FixedAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *fixedAlertRepository) Update(ctx context.Context, alert *db_models.FixedAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *fixedAlertRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&db_models.FixedAlert{}, id).Error
}
