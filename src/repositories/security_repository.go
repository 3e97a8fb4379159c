package repositories

import (
	"context"
	"errors"

	"securities/src/models"
	"securities/src/utils"

	"gorm.io/gorm"
)

type SecurityRepository interface {
	GetAll(ctx context.Context) ([]models.Security, error)
	GetByID(ctx context.Context, id uint) (*models.Security, error)
	Create(ctx context.Context, security *models.Security) error
	Update(ctx context.Context, security *models.Security) error
	Delete(ctx context.Context, id uint) error
}

type securityRepo struct {
	db        *gorm.DB
	integrity *integrity
}

func NewSecurityRepository(db *gorm.DB, schema *models.Schema) SecurityRepository {
	return &securityRepo{db: db, integrity: newIntegrity(schema)}
}

func (r *securityRepo) GetAll(ctx context.Context) ([]models.Security, error) {
	var securities []models.Security
	if err := r.db.WithContext(ctx).Find(&securities).Error; err != nil {
		return nil, utils.NewStorageError("list securities", err)
	}
	return securities, nil
}

// GetByID loads a security together with its markets and events.
func (r *securityRepo) GetByID(ctx context.Context, id uint) (*models.Security, error) {
	var security models.Security
	err := r.db.WithContext(ctx).
		Preload("Markets").
		Preload("Events").
		First(&security, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Security", id)
	} else if err != nil {
		return nil, utils.NewStorageError("load security", err)
	}
	return &security, nil
}

func (r *securityRepo) Create(ctx context.Context, security *models.Security) error {
	if err := r.db.WithContext(ctx).Create(security).Error; err != nil {
		return utils.NewStorageError("create security", err)
	}
	return nil
}

func (r *securityRepo) Update(ctx context.Context, security *models.Security) error {
	if err := r.db.WithContext(ctx).Save(security).Error; err != nil {
		return utils.NewStorageError("update security", err)
	}
	return nil
}

// Delete removes the security and, through the declared edges, all of its
// markets, events and the prices beneath those markets, atomically.
func (r *securityRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Security{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return utils.NewStorageError("load security", err)
		}
		if count == 0 {
			return utils.NewNotFoundError("Security", id)
		}
		return r.integrity.deleteCascade(tx, models.Security{}.TableName(), "id = ?", id)
	})
}
