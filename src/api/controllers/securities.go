package controllers

import (
	"context"

	"securities/src/models"
	"securities/src/schemas"
)

func (c *Controller) GetAllSecurities(ctx context.Context) ([]models.Security, error) {
	return c.SecurityRepo.GetAll(ctx)
}

// GetSecurityByID returns the security together with its markets and events.
func (c *Controller) GetSecurityByID(ctx context.Context, id uint) (*models.Security, error) {
	return c.SecurityRepo.GetByID(ctx, id)
}

func (c *Controller) CreateSecurity(ctx context.Context, req *schemas.CreateSecurityRequest) (*models.Security, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, err
	}

	security := models.Security{
		UUID:         req.UUID,
		Name:         req.Name,
		ISIN:         req.ISIN,
		WKN:          req.WKN,
		SymbolXfra:   req.SymbolXfra,
		SymbolXnas:   req.SymbolXnas,
		SymbolXnys:   req.SymbolXnys,
		SecurityType: req.SecurityType,
	}
	if err := c.SecurityRepo.Create(ctx, &security); err != nil {
		return nil, err
	}
	return &security, nil
}

// UpdateSecurity changes only the fields present in the request.
func (c *Controller) UpdateSecurity(ctx context.Context, id uint, req *schemas.UpdateSecurityRequest) (*models.Security, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, err
	}

	security, err := c.SecurityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UUID != nil {
		security.UUID = req.UUID
	}
	if req.Name != nil {
		security.Name = req.Name
	}
	if req.ISIN != nil {
		security.ISIN = req.ISIN
	}
	if req.WKN != nil {
		security.WKN = req.WKN
	}
	if req.SymbolXfra != nil {
		security.SymbolXfra = req.SymbolXfra
	}
	if req.SymbolXnas != nil {
		security.SymbolXnas = req.SymbolXnas
	}
	if req.SymbolXnys != nil {
		security.SymbolXnys = req.SymbolXnys
	}
	if req.SecurityType != nil {
		security.SecurityType = req.SecurityType
	}

	// Children are preloaded on the fetched row, save only the security's own
	// columns.
	security.Markets = nil
	security.Events = nil
	if err := c.SecurityRepo.Update(ctx, security); err != nil {
		return nil, err
	}
	return security, nil
}

// DeleteSecurity removes the security and, transitively, its markets, events
// and prices.
func (c *Controller) DeleteSecurity(ctx context.Context, id uint) error {
	if err := c.SecurityRepo.Delete(ctx, id); err != nil {
		logStorageFailure(ctx, err, "security cascade delete failed")
		return err
	}
	return nil
}
