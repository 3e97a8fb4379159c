package models

import (
	"securities/src/utils"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a currency pair whose history lives in ExchangeRatePrice
// rows, exposed under the "prices" collection alias.
type ExchangeRate struct {
	ID                uint   `gorm:"primaryKey;column:id" json:"id"`
	BaseCurrencyCode  string `gorm:"column:base_currency_code;type:varchar(3);not null" json:"baseCurrencyCode"`
	QuoteCurrencyCode string `gorm:"column:quote_currency_code;type:varchar(3);not null" json:"quoteCurrencyCode"`

	Prices []ExchangeRatePrice `gorm:"foreignKey:ExchangeRateID;constraint:OnDelete:CASCADE" json:"prices,omitempty"`
}

func (ExchangeRate) TableName() string {
	return "exchangerates"
}

// ExchangeRatePrice is one dated observation of an ExchangeRate. Values carry
// up to 6 fractional digits.
type ExchangeRatePrice struct {
	ID             uint            `gorm:"primaryKey;column:id" json:"id"`
	ExchangeRateID uint            `gorm:"column:exchangerate_id;not null;uniqueIndex:idx_exchangerates_prices_rate_date" json:"exchangeRateId"`
	Date           utils.Date      `gorm:"column:date;not null;uniqueIndex:idx_exchangerates_prices_rate_date" json:"date"`
	Value          decimal.Decimal `gorm:"column:value;type:decimal(12,6);not null" json:"value"`
}

func (ExchangeRatePrice) TableName() string {
	return "exchangerates_prices"
}
