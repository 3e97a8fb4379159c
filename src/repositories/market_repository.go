package repositories

import (
	"context"
	"errors"

	"securities/src/models"
	"securities/src/utils"

	"gorm.io/gorm"
)

type MarketRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Market, error)
	Create(ctx context.Context, market *models.Market) error
	Delete(ctx context.Context, id uint) error
	AppendPrices(ctx context.Context, marketID uint, prices []models.Price) error
	ListForPriceUpdate(ctx context.Context) ([]models.Market, error)
	RefreshPriceDates(ctx context.Context, marketID uint) error
}

type marketRepo struct {
	db        *gorm.DB
	integrity *integrity
}

func NewMarketRepository(db *gorm.DB, schema *models.Schema) MarketRepository {
	return &marketRepo{db: db, integrity: newIntegrity(schema)}
}

// GetByID loads a market together with its price history.
func (r *marketRepo) GetByID(ctx context.Context, id uint) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).Preload("Prices").First(&market, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Market", id)
	} else if err != nil {
		return nil, utils.NewStorageError("load market", err)
	}
	return &market, nil
}

// Create inserts a market after verifying its owning security exists. The
// check and the insert share one transaction so a concurrent security delete
// cannot leave an orphan behind.
func (r *marketRepo) Create(ctx context.Context, market *models.Market) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.integrity.requireParent(tx, models.Market{}.TableName(), market.SecurityID); err != nil {
			return err
		}
		if err := tx.Create(market).Error; err != nil {
			return utils.NewStorageError("create market", err)
		}
		return nil
	})
}

// Delete removes the market and all of its prices atomically.
func (r *marketRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Market{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return utils.NewStorageError("load market", err)
		}
		if count == 0 {
			return utils.NewNotFoundError("Market", id)
		}
		return r.integrity.deleteCascade(tx, models.Market{}.TableName(), "id = ?", id)
	})
}

// AppendPrices adds dated closing values to a market. Prices are append-only,
// a second row for an already recorded date is rejected and the whole batch
// is rolled back. First/last price dates on the market are refreshed in the
// same transaction.
func (r *marketRepo) AppendPrices(ctx context.Context, marketID uint, prices []models.Price) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.integrity.requireParent(tx, models.Price{}.TableName(), marketID); err != nil {
			return err
		}

		for i := range prices {
			prices[i].MarketID = marketID

			var count int64
			err := tx.Model(&models.Price{}).
				Where("market_id = ? AND date = ?", marketID, prices[i].Date).
				Count(&count).Error
			if err != nil {
				return utils.NewStorageError("check price date", err)
			}
			if count > 0 {
				return utils.NewValidationError("date", "price already recorded for "+prices[i].Date.String())
			}

			if err := tx.Create(&prices[i]).Error; err != nil {
				return utils.NewStorageError("append price", err)
			}
		}
		return refreshPriceDates(tx, marketID)
	})
}

// ListForPriceUpdate returns the markets flagged for automatic price updates.
func (r *marketRepo) ListForPriceUpdate(ctx context.Context) ([]models.Market, error) {
	var markets []models.Market
	if err := r.db.WithContext(ctx).Where("update_prices = ?", true).Find(&markets).Error; err != nil {
		return nil, utils.NewStorageError("list markets for price update", err)
	}
	return markets, nil
}

// RefreshPriceDates recomputes the market's first and last price date from
// its stored prices.
func (r *marketRepo) RefreshPriceDates(ctx context.Context, marketID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return refreshPriceDates(tx, marketID)
	})
}

func refreshPriceDates(tx *gorm.DB, marketID uint) error {
	var bounds struct {
		First *utils.Date
		Last  *utils.Date
	}
	err := tx.Model(&models.Price{}).
		Select("MIN(date) AS first, MAX(date) AS last").
		Where("market_id = ?", marketID).
		Scan(&bounds).Error
	if err != nil {
		return utils.NewStorageError("compute price date bounds", err)
	}

	err = tx.Model(&models.Market{}).
		Where("id = ?", marketID).
		Updates(map[string]interface{}{
			"first_price_date": bounds.First,
			"last_price_date":  bounds.Last,
		}).Error
	if err != nil {
		return utils.NewStorageError("update price dates", err)
	}
	return nil
}
