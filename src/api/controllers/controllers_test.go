package controllers_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"securities/src/api/controllers"
	"securities/src/config"
	"securities/src/models"
	"securities/src/schemas"
	"securities/src/sessions"
	"securities/src/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupController(t *testing.T, auth config.AuthConfig) *controllers.Controller {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(models.Entities()...))

	cfg := &config.Config{Auth: auth}
	return controllers.NewController(db, sessions.NewMemoryStore(), cfg)
}

func adminAuth() config.AuthConfig {
	return config.AuthConfig{
		Admin: config.AdminCredentials{Username: "admin", Password: "secret"},
	}
}

func strPtr(s string) *string {
	return &s
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// unavailableStore fails every operation, standing in for a session store
// whose backend is unreachable.
type unavailableStore struct{}

var errStoreDown = fmt.Errorf("connection refused")

func (unavailableStore) Create(context.Context, string) (*sessions.Session, error) {
	return nil, errStoreDown
}

func (unavailableStore) Get(context.Context, string) (*sessions.Session, error) {
	return nil, errStoreDown
}

func (unavailableStore) Delete(context.Context, string) error {
	return errStoreDown
}

func (unavailableStore) List(context.Context) ([]sessions.Session, error) {
	return nil, errStoreDown
}

func TestLoginWithUnsetCredentialAlwaysFails(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, config.AuthConfig{})

	for _, req := range []schemas.LoginRequest{
		{Username: "", Password: ""},
		{Username: "admin", Password: "secret"},
		{Username: "anything", Password: "goes"},
	} {
		_, _, err := c.Login(ctx, &req)
		assert.ErrorIs(t, err, utils.ErrUnauthorized)
	}

	all, err := c.Sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLoginWrongCredentials(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	_, _, err := c.Login(ctx, &schemas.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, _, err = c.Login(ctx, &schemas.LoginRequest{Username: "somebody", Password: "secret"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	user, session, err := c.Login(ctx, &schemas.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	require.NotNil(t, session)

	got, err := c.Sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	require.NoError(t, c.Logout(ctx, session))

	_, err = c.Sessions.Get(ctx, session.ID)
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestListSessionsRestrictedToAdminIdentity(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	_, session, err := c.Login(ctx, &schemas.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	all, err := c.ListSessions(ctx, session)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// A session bound to any other identity must not see the listing.
	intruder := &sessions.Session{ID: "x", Username: "intruder"}
	_, err = c.ListSessions(ctx, intruder)
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestCreateSecurityRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	_, err := c.CreateSecurity(ctx, &schemas.CreateSecurityRequest{
		Name:         strPtr("Acme"),
		SecurityType: strPtr("etf"),
	})

	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "securityType", validationErr.Field)
}

func TestCreateSecurityRejectsOverlongISIN(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	_, err := c.CreateSecurity(ctx, &schemas.CreateSecurityRequest{
		ISIN: strPtr("DE00012345678901"),
	})

	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "isin", validationErr.Field)
}

func TestUpdateSecurityPartial(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	security, err := c.CreateSecurity(ctx, &schemas.CreateSecurityRequest{
		Name: strPtr("Acme"),
		ISIN: strPtr("DE0001234567"),
	})
	require.NoError(t, err)

	updated, err := c.UpdateSecurity(ctx, security.ID, &schemas.UpdateSecurityRequest{
		Name: strPtr("Acme Corp"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", *updated.Name)
	require.NotNil(t, updated.ISIN)
	assert.Equal(t, "DE0001234567", *updated.ISIN)
}

func TestCreateMarketDefaultsUpdatePrices(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	security, err := c.CreateSecurity(ctx, &schemas.CreateSecurityRequest{Name: strPtr("Acme")})
	require.NoError(t, err)

	market, err := c.CreateMarket(ctx, security.ID, &schemas.CreateMarketRequest{MarketCode: "XFRA"})
	require.NoError(t, err)
	assert.True(t, market.UpdatePrices)

	off := false
	market, err = c.CreateMarket(ctx, security.ID, &schemas.CreateMarketRequest{
		MarketCode:   "XNYS",
		UpdatePrices: &off,
	})
	require.NoError(t, err)
	assert.False(t, market.UpdatePrices)
}

func TestCreateEventRetrievableUnderSecurity(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	security, err := c.CreateSecurity(ctx, &schemas.CreateSecurityRequest{
		Name:         strPtr("Acme"),
		SecurityType: strPtr(models.SecurityTypeShare),
	})
	require.NoError(t, err)

	date, err := utils.ParseDate("2024-05-10")
	require.NoError(t, err)
	amount := decimal.RequireFromString("1.2500")

	_, err = c.CreateEvent(ctx, security.ID, &schemas.CreateEventRequest{
		Date:         date,
		Type:         "dividend",
		Amount:       &amount,
		CurrencyCode: strPtr("EUR"),
	})
	require.NoError(t, err)

	got, err := c.GetSecurityByID(ctx, security.ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "dividend", got.Events[0].Type)
	assert.Equal(t, "2024-05-10", got.Events[0].Date.String())
}

func TestAppendPricesRejectsExcessScale(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	security, err := c.CreateSecurity(ctx, &schemas.CreateSecurityRequest{Name: strPtr("Acme")})
	require.NoError(t, err)
	market, err := c.CreateMarket(ctx, security.ID, &schemas.CreateMarketRequest{MarketCode: "XFRA"})
	require.NoError(t, err)

	_, err = c.AppendPrices(ctx, market.ID, []schemas.PriceRequest{
		{Date: utils.NewDate(2024, 1, 2), Close: decPtr("101.23456")},
	})

	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "close", validationErr.Field)
}

func TestAppendPricesAcceptsZeroClose(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	security, err := c.CreateSecurity(ctx, &schemas.CreateSecurityRequest{Name: strPtr("Acme")})
	require.NoError(t, err)
	market, err := c.CreateMarket(ctx, security.ID, &schemas.CreateMarketRequest{MarketCode: "XFRA"})
	require.NoError(t, err)

	// Zero is a valid close, only an absent field fails.
	prices, err := c.AppendPrices(ctx, market.ID, []schemas.PriceRequest{
		{Date: utils.NewDate(2024, 1, 2), Close: decPtr("0.0000")},
	})
	require.NoError(t, err)
	require.Len(t, prices, 1)

	_, err = c.AppendPrices(ctx, market.ID, []schemas.PriceRequest{
		{Date: utils.NewDate(2024, 1, 3)},
	})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "close", validationErr.Field)
}

func TestLoginStoreFailureSurfacesAsStorageError(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	ctx := utils.WithLogger(context.Background(), logger)

	c := setupController(t, adminAuth())
	c.Sessions = unavailableStore{}

	_, _, err := c.Login(ctx, &schemas.LoginRequest{Username: "admin", Password: "secret"})

	var storageErr *utils.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.NotErrorIs(t, err, utils.ErrUnauthorized)

	// The failure lands on the request logger.
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestAppendExchangeRatePricesScale(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	rate, err := c.CreateExchangeRate(ctx, &schemas.CreateExchangeRateRequest{
		BaseCurrencyCode:  "EUR",
		QuoteCurrencyCode: "USD",
	})
	require.NoError(t, err)

	// 6 fractional digits are the column's scale
	_, err = c.AppendExchangeRatePrices(ctx, rate.ID, []schemas.ExchangeRatePriceRequest{
		{Date: utils.NewDate(2024, 1, 2), Value: decPtr("1.093251")},
	})
	require.NoError(t, err)

	_, err = c.AppendExchangeRatePrices(ctx, rate.ID, []schemas.ExchangeRatePriceRequest{
		{Date: utils.NewDate(2024, 1, 3), Value: decPtr("1.0932517")},
	})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "value", validationErr.Field)
}

func TestCreateExchangeRateValidatesCurrencyCodes(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	_, err := c.CreateExchangeRate(ctx, &schemas.CreateExchangeRateRequest{
		BaseCurrencyCode:  "EURO",
		QuoteCurrencyCode: "USD",
	})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "baseCurrencyCode", validationErr.Field)
}

func TestExchangeRateListCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	_, err := c.CreateExchangeRate(ctx, &schemas.CreateExchangeRateRequest{
		BaseCurrencyCode:  "EUR",
		QuoteCurrencyCode: "USD",
	})
	require.NoError(t, err)

	rates, err := c.GetAllExchangeRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 1)

	_, err = c.CreateExchangeRate(ctx, &schemas.CreateExchangeRateRequest{
		BaseCurrencyCode:  "EUR",
		QuoteCurrencyCode: "CHF",
	})
	require.NoError(t, err)

	rates, err = c.GetAllExchangeRates(ctx)
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestRecordClientUpdate(t *testing.T) {
	ctx := context.Background()
	c := setupController(t, adminAuth())

	ua := "PortfolioClient/1.2.3"
	update, err := c.RecordClientUpdate(ctx, &schemas.ClientUpdateRequest{
		Version: "1.2.3",
		Country: strPtr("DE"),
	}, &ua)
	require.NoError(t, err)
	assert.NotZero(t, update.ID)

	all, err := c.ListClientUpdates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "1.2.3", all[0].Version)

	_, err = c.RecordClientUpdate(ctx, &schemas.ClientUpdateRequest{
		Version: "a-version-string-way-longer-than-twenty",
	}, nil)
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "version", validationErr.Field)
}
