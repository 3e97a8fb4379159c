package controllers

import (
	"context"

	"securities/src/models"
	"securities/src/schemas"
)

func (c *Controller) CreateEvent(ctx context.Context, securityID uint, req *schemas.CreateEventRequest) (*models.Event, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if err := requireScale(*req.Amount, 4, "amount"); err != nil {
			return nil, err
		}
	}

	event := models.Event{
		SecurityID:   securityID,
		Date:         req.Date,
		Type:         req.Type,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Ratio:        req.Ratio,
	}
	if err := c.EventRepo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Controller) DeleteEvent(ctx context.Context, id uint) error {
	return c.EventRepo.Delete(ctx, id)
}
