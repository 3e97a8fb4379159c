package controllers

import (
	"context"
	"time"

	"securities/src/models"
	"securities/src/schemas"
)

// RecordClientUpdate appends one telemetry row for a client update check.
// The user agent comes from the request headers, not the payload.
func (c *Controller) RecordClientUpdate(ctx context.Context, req *schemas.ClientUpdateRequest, useragent *string) (*models.ClientUpdate, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, err
	}

	update := models.ClientUpdate{
		Timestamp: time.Now().UTC(),
		Version:   req.Version,
		Country:   req.Country,
		Useragent: useragent,
	}
	if err := c.ClientUpdateRepo.Create(ctx, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

func (c *Controller) ListClientUpdates(ctx context.Context) ([]models.ClientUpdate, error) {
	return c.ClientUpdateRepo.GetAll(ctx)
}

func (c *Controller) DeleteClientUpdate(ctx context.Context, id uint) error {
	return c.ClientUpdateRepo.Delete(ctx, id)
}
