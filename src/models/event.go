package models

import (
	"securities/src/utils"

	"github.com/shopspring/decimal"
)

// Event is a corporate action (dividend, split, ...) recorded against a
// Security on a calendar date. Amount carries up to 4 fractional digits.
type Event struct {
	ID           uint             `gorm:"primaryKey;column:id" json:"id"`
	SecurityID   uint             `gorm:"column:security_id;not null;uniqueIndex:idx_events_security_date_type" json:"securityId"`
	Date         utils.Date       `gorm:"column:date;not null;uniqueIndex:idx_events_security_date_type" json:"date"`
	Type         string           `gorm:"column:type;type:varchar(10);not null;uniqueIndex:idx_events_security_date_type" json:"type"`
	Amount       *decimal.Decimal `gorm:"column:amount;type:decimal(10,4)" json:"amount"`
	CurrencyCode *string          `gorm:"column:currency_code;type:varchar(3)" json:"currencyCode"`
	Ratio        *string          `gorm:"column:ratio;type:varchar(10)" json:"ratio"`
}

func (Event) TableName() string {
	return "events"
}
