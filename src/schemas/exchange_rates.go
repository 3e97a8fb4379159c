package schemas

import (
	"securities/src/utils"

	"github.com/shopspring/decimal"
)

type CreateExchangeRateRequest struct {
	BaseCurrencyCode  string `json:"baseCurrencyCode" validate:"required,len=3"`
	QuoteCurrencyCode string `json:"quoteCurrencyCode" validate:"required,len=3"`
}

// ExchangeRatePriceRequest uses a pointer for the value so that an explicit
// zero is distinguishable from an absent field.
type ExchangeRatePriceRequest struct {
	Date  utils.Date       `json:"date" validate:"required"`
	Value *decimal.Decimal `json:"value" validate:"required"`
}
