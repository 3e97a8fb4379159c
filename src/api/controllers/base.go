package controllers

import (
	"context"
	"errors"

	"securities/src/config"
	"securities/src/models"
	"securities/src/repositories"
	"securities/src/sessions"
	"securities/src/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Controller struct {
	SecurityRepo     repositories.SecurityRepository
	MarketRepo       repositories.MarketRepository
	EventRepo        repositories.EventRepository
	ExchangeRateRepo repositories.ExchangeRateRepository
	ClientUpdateRepo repositories.ClientUpdateRepository
	Sessions         sessions.Store
	Auth             config.AuthConfig

	rateCache *utils.Cache[[]models.ExchangeRate]
}

func NewController(db *gorm.DB, store sessions.Store, cfg *config.Config) *Controller {
	schema := models.BuildSchema()
	return &Controller{
		SecurityRepo:     repositories.NewSecurityRepository(db, schema),
		MarketRepo:       repositories.NewMarketRepository(db, schema),
		EventRepo:        repositories.NewEventRepository(db, schema),
		ExchangeRateRepo: repositories.NewExchangeRateRepository(db, schema),
		ClientUpdateRepo: repositories.NewClientUpdateRepository(db),
		Sessions:         store,
		Auth:             cfg.Auth,
		rateCache:        utils.NewCache[[]models.ExchangeRate](),
	}
}

// logStorageFailure records persistence failures on the request logger.
// Client-side errors (validation, referential, not found) stay unlogged,
// they are the caller's problem and already travel back in the response.
func logStorageFailure(ctx context.Context, err error, msg string) {
	var storageErr *utils.StorageError
	if errors.As(err, &storageErr) {
		utils.LoggerFromContext(ctx).WithError(err).Error(msg)
	}
}

// requireScale rejects decimals carrying more fractional digits than the
// column stores, instead of rounding them.
func requireScale(value decimal.Decimal, places int32, field string) error {
	if !value.Equal(value.Truncate(places)) {
		return utils.NewValidationError(field, "must have at most "+decimal.NewFromInt32(places).String()+" decimal places")
	}
	return nil
}
