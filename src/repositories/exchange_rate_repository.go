package repositories

import (
	"context"
	"errors"

	"securities/src/models"
	"securities/src/utils"

	"gorm.io/gorm"
)

type ExchangeRateRepository interface {
	GetAll(ctx context.Context) ([]models.ExchangeRate, error)
	GetByID(ctx context.Context, id uint) (*models.ExchangeRate, error)
	Create(ctx context.Context, rate *models.ExchangeRate) error
	Delete(ctx context.Context, id uint) error
	AppendPrices(ctx context.Context, rateID uint, prices []models.ExchangeRatePrice) error
}

type exchangeRateRepo struct {
	db        *gorm.DB
	integrity *integrity
}

func NewExchangeRateRepository(db *gorm.DB, schema *models.Schema) ExchangeRateRepository {
	return &exchangeRateRepo{db: db, integrity: newIntegrity(schema)}
}

func (r *exchangeRateRepo) GetAll(ctx context.Context) ([]models.ExchangeRate, error) {
	var rates []models.ExchangeRate
	if err := r.db.WithContext(ctx).Find(&rates).Error; err != nil {
		return nil, utils.NewStorageError("list exchange rates", err)
	}
	return rates, nil
}

// GetByID loads an exchange rate with its history under the prices alias.
func (r *exchangeRateRepo) GetByID(ctx context.Context, id uint) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := r.db.WithContext(ctx).Preload("Prices").First(&rate, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("ExchangeRate", id)
	} else if err != nil {
		return nil, utils.NewStorageError("load exchange rate", err)
	}
	return &rate, nil
}

func (r *exchangeRateRepo) Create(ctx context.Context, rate *models.ExchangeRate) error {
	if err := r.db.WithContext(ctx).Create(rate).Error; err != nil {
		return utils.NewStorageError("create exchange rate", err)
	}
	return nil
}

// Delete removes the exchange rate and all of its price rows atomically.
func (r *exchangeRateRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ExchangeRate{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return utils.NewStorageError("load exchange rate", err)
		}
		if count == 0 {
			return utils.NewNotFoundError("ExchangeRate", id)
		}
		return r.integrity.deleteCascade(tx, models.ExchangeRate{}.TableName(), "id = ?", id)
	})
}

// AppendPrices adds dated values to an exchange rate, rejecting duplicate
// dates and rolling back the whole batch on any failure.
func (r *exchangeRateRepo) AppendPrices(ctx context.Context, rateID uint, prices []models.ExchangeRatePrice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.integrity.requireParent(tx, models.ExchangeRatePrice{}.TableName(), rateID); err != nil {
			return err
		}

		for i := range prices {
			prices[i].ExchangeRateID = rateID

			var count int64
			err := tx.Model(&models.ExchangeRatePrice{}).
				Where("exchangerate_id = ? AND date = ?", rateID, prices[i].Date).
				Count(&count).Error
			if err != nil {
				return utils.NewStorageError("check exchange rate price date", err)
			}
			if count > 0 {
				return utils.NewValidationError("date", "value already recorded for "+prices[i].Date.String())
			}

			if err := tx.Create(&prices[i]).Error; err != nil {
				return utils.NewStorageError("append exchange rate price", err)
			}
		}
		return nil
	})
}
