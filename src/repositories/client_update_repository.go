package repositories

import (
	"context"

	"securities/src/models"
	"securities/src/utils"

	"gorm.io/gorm"
)

type ClientUpdateRepository interface {
	GetAll(ctx context.Context) ([]models.ClientUpdate, error)
	Create(ctx context.Context, update *models.ClientUpdate) error
	Delete(ctx context.Context, id uint) error
}

type clientUpdateRepo struct {
	db *gorm.DB
}

func NewClientUpdateRepository(db *gorm.DB) ClientUpdateRepository {
	return &clientUpdateRepo{db: db}
}

func (r *clientUpdateRepo) GetAll(ctx context.Context) ([]models.ClientUpdate, error) {
	var updates []models.ClientUpdate
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&updates).Error; err != nil {
		return nil, utils.NewStorageError("list client updates", err)
	}
	return updates, nil
}

func (r *clientUpdateRepo) Create(ctx context.Context, update *models.ClientUpdate) error {
	if err := r.db.WithContext(ctx).Create(update).Error; err != nil {
		return utils.NewStorageError("create client update", err)
	}
	return nil
}

func (r *clientUpdateRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientUpdate{}, id)
	if result.Error != nil {
		return utils.NewStorageError("delete client update", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError("ClientUpdate", id)
	}
	return nil
}
