package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"securities/src/api"
	"securities/src/config"
	"securities/src/models"
	"securities/src/sessions"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServerWith(t *testing.T, store sessions.Store, log *logrus.Logger) *httptest.Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(models.Entities()...))

	cfg := &config.Config{
		Service: config.ServiceConfig{Port: "0"},
		Auth: config.AuthConfig{
			Admin: config.AdminCredentials{Username: "admin", Password: "secret"},
		},
	}

	server := api.NewServer(cfg, db, store, log)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts
}

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	log, _ := logrustest.NewNullLogger()
	return setupServerWith(t, sessions.NewMemoryStore(), log)
}

// unavailableStore stands in for a session store whose backend is down.
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

func doJSON(t *testing.T, method, url, body string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, ts *httptest.Server) *http.Cookie {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/login", `{"username":"admin","password":"secret"}`, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := setupServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/login", `{"username":"admin","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Empty(t, resp.Cookies())
}

func TestGateBlocksAnonymousCallers(t *testing.T) {
	ts := setupServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/auth/logout"},
		{http.MethodGet, "/auth/sessions"},
		{http.MethodGet, "/api/securities"},
		{http.MethodPost, "/api/securities"},
		{http.MethodDelete, "/api/securities/1"},
		{http.MethodGet, "/api/exchangerates"},
		{http.MethodGet, "/api/stats/updates"},
	} {
		resp := doJSON(t, route.method, ts.URL+route.path, `{}`, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route.method+" "+route.path)
		resp.Body.Close()
	}
}

func TestGateReportsStoreFailureAsServerError(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	ts := setupServerWith(t, unavailableStore{}, log)

	// A dead session store is not an authentication failure. The caller's
	// session may well be valid, so the gate must not tell them to re-login.
	cookie := &http.Cookie{Name: "session_id", Value: "some-live-session"}
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/securities", "", cookie)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Internal Server Error", body["error"])

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLoginMeLogoutFlow(t *testing.T) {
	ts := setupServer(t)
	cookie := login(t, ts)

	resp := doJSON(t, http.MethodGet, ts.URL+"/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]string
	decodeBody(t, resp, &me)
	assert.Equal(t, "admin", me["username"])

	resp = doJSON(t, http.MethodPost, ts.URL+"/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]string
	decodeBody(t, resp, &status)
	assert.Equal(t, "ok", status["status"])

	// The destroyed session no longer passes the gate.
	resp = doJSON(t, http.MethodGet, ts.URL+"/auth/me", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSessionListing(t *testing.T) {
	ts := setupServer(t)
	cookie := login(t, ts)

	resp := doJSON(t, http.MethodGet, ts.URL+"/auth/sessions", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []map[string]interface{}
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "admin", listed[0]["username"])
	assert.NotEmpty(t, listed[0]["id"])
}

func TestSecurityCRUDOverHTTP(t *testing.T) {
	ts := setupServer(t)
	cookie := login(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/securities",
		`{"name":"Acme Corp","isin":"DE0001234567","securityType":"share"}`, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]interface{}
	decodeBody(t, resp, &created)
	id := int(created["id"].(float64))
	require.NotZero(t, id)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/securities/%d/markets", ts.URL, id),
		`{"marketCode":"XFRA","currencyCode":"EUR"}`, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var market map[string]interface{}
	decodeBody(t, resp, &market)
	marketID := int(market["id"].(float64))
	assert.Equal(t, true, market["updatePrices"])

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/markets/%d/prices", ts.URL, marketID),
		`[{"date":"2024-01-02","close":"101.25"},{"date":"2024-01-03","close":"102.5"}]`, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/securities/%d", ts.URL, id), "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched map[string]interface{}
	decodeBody(t, resp, &fetched)
	require.Len(t, fetched["markets"], 1)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/securities/%d", ts.URL, id), "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/securities/%d", ts.URL, id), "", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestValidationErrorNamesField(t *testing.T) {
	ts := setupServer(t)
	cookie := login(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/securities",
		`{"name":"Acme","securityType":"warrant"}`, cookie)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "securityType", body["field"])
}

func TestClientUpdateIngestIsPublic(t *testing.T) {
	ts := setupServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/stats/update",
		`{"version":"1.2.3","country":"DE"}`, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Reading the telemetry stays gated.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/stats/updates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
