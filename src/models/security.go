package models

import (
	"securities/src/utils"

	"github.com/shopspring/decimal"
)

// Security types form a closed set, any other value is rejected at write time.
const (
	SecurityTypeShare = "share"
	SecurityTypeFund  = "fund"
	SecurityTypeBond  = "bond"
	SecurityTypeIndex = "index"
)

var securityTypes = map[string]bool{
	SecurityTypeShare: true,
	SecurityTypeFund:  true,
	SecurityTypeBond:  true,
	SecurityTypeIndex: true,
}

// IsValidSecurityType reports whether t belongs to the closed security type set.
func IsValidSecurityType(t string) bool {
	return securityTypes[t]
}

// Security is a financial instrument identified by standard codes (ISIN, WKN)
// and optional per-venue ticker symbols.
type Security struct {
	ID           uint    `gorm:"primaryKey;column:id" json:"id"`
	UUID         *string `gorm:"column:uuid;type:varchar(36)" json:"uuid"`
	Name         *string `gorm:"column:name" json:"name"`
	ISIN         *string `gorm:"column:isin;type:varchar(12)" json:"isin"`
	WKN          *string `gorm:"column:wkn;type:varchar(6)" json:"wkn"`
	SymbolXfra   *string `gorm:"column:symbol_xfra;type:varchar(10)" json:"symbolXfra"`
	SymbolXnas   *string `gorm:"column:symbol_xnas;type:varchar(10)" json:"symbolXnas"`
	SymbolXnys   *string `gorm:"column:symbol_xnys;type:varchar(10)" json:"symbolXnys"`
	SecurityType *string `gorm:"column:security_type;type:varchar(5)" json:"securityType"`

	Markets []Market `gorm:"foreignKey:SecurityID;constraint:OnDelete:CASCADE" json:"markets,omitempty"`
	Events  []Event  `gorm:"foreignKey:SecurityID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
}

func (Security) TableName() string {
	return "securities"
}

// Market is one trading venue listing of a Security, with its own currency
// and price update policy.
type Market struct {
	ID             uint        `gorm:"primaryKey;column:id" json:"id"`
	SecurityID     uint        `gorm:"column:security_id;not null" json:"securityId"`
	MarketCode     string      `gorm:"column:market_code;type:varchar(4);not null" json:"marketCode"`
	CurrencyCode   *string     `gorm:"column:currency_code;type:varchar(3)" json:"currencyCode"`
	FirstPriceDate *utils.Date `gorm:"column:first_price_date" json:"firstPriceDate"`
	LastPriceDate  *utils.Date `gorm:"column:last_price_date" json:"lastPriceDate"`
	Symbol         *string     `gorm:"column:symbol;type:varchar(10)" json:"symbol"`
	// The true default is applied when the request omits the flag, a gorm
	// default tag would silently drop an explicit false.
	UpdatePrices bool `gorm:"column:update_prices;not null" json:"updatePrices"`

	Prices []Price `gorm:"foreignKey:MarketID;constraint:OnDelete:CASCADE" json:"prices,omitempty"`
}

func (Market) TableName() string {
	return "markets"
}

// Price is a single closing value observation for a Market on a calendar date.
// Rows are append-only, one per market and date.
type Price struct {
	ID       uint            `gorm:"primaryKey;column:id" json:"id"`
	MarketID uint            `gorm:"column:market_id;not null;uniqueIndex:idx_prices_market_date" json:"marketId"`
	Date     utils.Date      `gorm:"column:date;not null;uniqueIndex:idx_prices_market_date" json:"date"`
	Close    decimal.Decimal `gorm:"column:close;type:decimal(10,4);not null" json:"close"`
}

func (Price) TableName() string {
	return "prices"
}
