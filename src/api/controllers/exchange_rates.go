package controllers

import (
	"context"
	"time"

	"securities/src/models"
	"securities/src/schemas"
)

const rateListCacheTTL = 5 * time.Minute

// GetAllExchangeRates lists the currency pairs. The list changes rarely, so
// it is served from a short-lived cache.
func (c *Controller) GetAllExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	if rates, ok := c.rateCache.Get(); ok {
		return rates, nil
	}

	rates, err := c.ExchangeRateRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.rateCache.Set(rates, rateListCacheTTL)
	return rates, nil
}

// GetExchangeRateByID returns the pair with its history under the prices
// alias.
func (c *Controller) GetExchangeRateByID(ctx context.Context, id uint) (*models.ExchangeRate, error) {
	return c.ExchangeRateRepo.GetByID(ctx, id)
}

func (c *Controller) CreateExchangeRate(ctx context.Context, req *schemas.CreateExchangeRateRequest) (*models.ExchangeRate, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, err
	}

	rate := models.ExchangeRate{
		BaseCurrencyCode:  req.BaseCurrencyCode,
		QuoteCurrencyCode: req.QuoteCurrencyCode,
	}
	if err := c.ExchangeRateRepo.Create(ctx, &rate); err != nil {
		return nil, err
	}
	c.rateCache.Clear()
	return &rate, nil
}

// DeleteExchangeRate removes the pair and all of its price rows.
func (c *Controller) DeleteExchangeRate(ctx context.Context, id uint) error {
	if err := c.ExchangeRateRepo.Delete(ctx, id); err != nil {
		logStorageFailure(ctx, err, "exchange rate cascade delete failed")
		return err
	}
	c.rateCache.Clear()
	return nil
}

// AppendExchangeRatePrices validates and appends a batch of dated values.
func (c *Controller) AppendExchangeRatePrices(ctx context.Context, rateID uint, reqs []schemas.ExchangeRatePriceRequest) ([]models.ExchangeRatePrice, error) {
	prices := make([]models.ExchangeRatePrice, 0, len(reqs))
	for i := range reqs {
		if err := schemas.Validate(&reqs[i]); err != nil {
			return nil, err
		}
		if err := requireScale(*reqs[i].Value, 6, "value"); err != nil {
			return nil, err
		}
		prices = append(prices, models.ExchangeRatePrice{
			Date:  reqs[i].Date,
			Value: *reqs[i].Value,
		})
	}

	if err := c.ExchangeRateRepo.AppendPrices(ctx, rateID, prices); err != nil {
		logStorageFailure(ctx, err, "exchange rate price batch append failed")
		return nil, err
	}
	return prices, nil
}
