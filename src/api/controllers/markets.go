package controllers

import (
	"context"

	"securities/src/models"
	"securities/src/schemas"
)

func (c *Controller) CreateMarket(ctx context.Context, securityID uint, req *schemas.CreateMarketRequest) (*models.Market, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, err
	}

	market := models.Market{
		SecurityID:   securityID,
		MarketCode:   req.MarketCode,
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		UpdatePrices: true,
	}
	if req.UpdatePrices != nil {
		market.UpdatePrices = *req.UpdatePrices
	}

	if err := c.MarketRepo.Create(ctx, &market); err != nil {
		return nil, err
	}
	return &market, nil
}

// GetMarketByID returns the market together with its price history.
func (c *Controller) GetMarketByID(ctx context.Context, id uint) (*models.Market, error) {
	return c.MarketRepo.GetByID(ctx, id)
}

// DeleteMarket removes the market and all of its prices.
func (c *Controller) DeleteMarket(ctx context.Context, id uint) error {
	if err := c.MarketRepo.Delete(ctx, id); err != nil {
		logStorageFailure(ctx, err, "market cascade delete failed")
		return err
	}
	return nil
}

// AppendPrices validates and appends a batch of dated closing values to a
// market. A close of zero is a valid observation. The batch is
// all-or-nothing.
func (c *Controller) AppendPrices(ctx context.Context, marketID uint, reqs []schemas.PriceRequest) ([]models.Price, error) {
	prices := make([]models.Price, 0, len(reqs))
	for i := range reqs {
		if err := schemas.Validate(&reqs[i]); err != nil {
			return nil, err
		}
		if err := requireScale(*reqs[i].Close, 4, "close"); err != nil {
			return nil, err
		}
		prices = append(prices, models.Price{
			Date:  reqs[i].Date,
			Close: *reqs[i].Close,
		})
	}

	if err := c.MarketRepo.AppendPrices(ctx, marketID, prices); err != nil {
		logStorageFailure(ctx, err, "price batch append failed")
		return nil, err
	}
	return prices, nil
}
