package schemas

import (
	"securities/src/utils"

	"github.com/shopspring/decimal"
)

type CreateSecurityRequest struct {
	UUID         *string `json:"uuid" validate:"omitempty,uuid"`
	Name         *string `json:"name"`
	ISIN         *string `json:"isin" validate:"omitempty,max=12"`
	WKN          *string `json:"wkn" validate:"omitempty,max=6"`
	SymbolXfra   *string `json:"symbolXfra" validate:"omitempty,max=10"`
	SymbolXnas   *string `json:"symbolXnas" validate:"omitempty,max=10"`
	SymbolXnys   *string `json:"symbolXnys" validate:"omitempty,max=10"`
	SecurityType *string `json:"securityType" validate:"omitempty,oneof=share fund bond index"`
}

// UpdateSecurityRequest carries only the fields to change, nil fields are
// left untouched.
type UpdateSecurityRequest struct {
	UUID         *string `json:"uuid" validate:"omitempty,uuid"`
	Name         *string `json:"name"`
	ISIN         *string `json:"isin" validate:"omitempty,max=12"`
	WKN          *string `json:"wkn" validate:"omitempty,max=6"`
	SymbolXfra   *string `json:"symbolXfra" validate:"omitempty,max=10"`
	SymbolXnas   *string `json:"symbolXnas" validate:"omitempty,max=10"`
	SymbolXnys   *string `json:"symbolXnys" validate:"omitempty,max=10"`
	SecurityType *string `json:"securityType" validate:"omitempty,oneof=share fund bond index"`
}

type CreateMarketRequest struct {
	MarketCode   string  `json:"marketCode" validate:"required,len=4"`
	CurrencyCode *string `json:"currencyCode" validate:"omitempty,len=3"`
	Symbol       *string `json:"symbol" validate:"omitempty,max=10"`
	// UpdatePrices defaults to true when absent.
	UpdatePrices *bool `json:"updatePrices"`
}

// PriceRequest uses a pointer for the close so that an explicit zero, a
// legitimate observation, is distinguishable from an absent field.
type PriceRequest struct {
	Date  utils.Date       `json:"date" validate:"required"`
	Close *decimal.Decimal `json:"close" validate:"required"`
}

type CreateEventRequest struct {
	Date         utils.Date       `json:"date" validate:"required"`
	Type         string           `json:"type" validate:"required,max=10"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode *string          `json:"currencyCode" validate:"omitempty,len=3"`
	Ratio        *string          `json:"ratio" validate:"omitempty,max=10"`
}
