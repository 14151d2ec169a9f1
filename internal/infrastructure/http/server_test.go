package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jumper1221/Sber-test-task/internal/app"
	"github.com/Jumper1221/Sber-test-task/internal/config"
	"github.com/Jumper1221/Sber-test-task/internal/infrastructure/database/dbtest"
	httpServer "github.com/Jumper1221/Sber-test-task/internal/infrastructure/http"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Service.Name = "payment"
	cfg.Server.HTTP.BodyLimit = "1M"
	cfg.Server.HTTP.CORSOrigins = []string{"*"}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "payment-service"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute
	cfg.JWT.RefreshTokenTTL = time.Hour
	cfg.Auth.PasswordMinLength = 1
	cfg.Auth.HashCost = 4
	cfg.Redis.EventsChannel = "payments.events"
	return cfg
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	cfg := testConfig()
	logger := zap.NewNop()
	db := dbtest.NewSQLite(t)

	srv := httpServer.NewServer(cfg, logger, app.NewServices(cfg, db, nil, logger))
	return &apiClient{t: t, handler: srv.Handler()}
}

func (a *apiClient) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (a *apiClient) registerAndLogin(login, password string) (string, string) {
	a.t.Helper()
	status, _ := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{"login": login, "password": password})
	require.Equal(a.t, http.StatusCreated, status)

	status, body := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"login": login, "password": password})
	require.Equal(a.t, http.StatusOK, status)
	return body["access_token"].(string), body["refresh_token"].(string)
}

func TestAPI_ConfirmFlow(t *testing.T) {
	api := newAPI(t)
	token, _ := api.registerAndLogin("a", "p")

	status, body := api.do(http.MethodPost, "/api/payments", token, map[string]interface{}{
		"amount": 100, "card_last4": "4000", "payee_name": "X",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "100.00", body["amount"])

	status, body = api.do(http.MethodPost, "/api/payments/1/confirm", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "confirmed", body["payment"].(map[string]interface{})["status"])
	assert.Equal(t, "100.00", body["balance"])

	status, body = api.do(http.MethodPost, "/api/payments/1/confirm", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])

	status, body = api.do(http.MethodPost, "/api/payments/1/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = api.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100.00", body["balance"])

	status, body = api.do(http.MethodGet, "/api/payments/1/logs", token, nil)
	require.Equal(t, http.StatusOK, status)
	logs := body["logs"].([]interface{})
	require.Len(t, logs, 1)
	assert.Equal(t, "confirmed", logs[0].(map[string]interface{})["new_status"])
}

func TestAPI_DuplicateRegistration(t *testing.T) {
	api := newAPI(t)
	api.registerAndLogin("alice", "secret")

	status, body := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{"login": "Alice", "password": "other"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestAPI_UsersSeeOnlyTheirOwnPayments(t *testing.T) {
	api := newAPI(t)
	alice, _ := api.registerAndLogin("alice", "pw")
	bob, _ := api.registerAndLogin("bob", "pw")

	status, _ := api.do(http.MethodPost, "/api/payments", alice, map[string]interface{}{
		"amount": "12.50", "card_last4": "1234", "payee_name": "Shop",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := api.do(http.MethodGet, "/api/payments", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])

	for _, path := range []string{"/api/payments/1", "/api/payments/1/logs"} {
		status, body = api.do(http.MethodGet, path, bob, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "NOT_FOUND", body["code"])
	}
	status, _ = api.do(http.MethodPost, "/api/payments/1/confirm", bob, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(http.MethodGet, "/api/payments?status=pending", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
}

func TestAPI_CancelAndDelete(t *testing.T) {
	api := newAPI(t)
	token, _ := api.registerAndLogin("carol", "pw")

	for i := 0; i < 2; i++ {
		status, _ := api.do(http.MethodPost, "/api/payments", token, map[string]interface{}{
			"amount": 40, "card_last4": "0000", "payee_name": "Cafe",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := api.do(http.MethodPost, "/api/payments/1/cancel", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0.00", body["balance"])

	status, _ = api.do(http.MethodDelete, "/api/payments/1", token, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do(http.MethodDelete, "/api/payments/2", token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = api.do(http.MethodGet, "/api/payments", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
}

func TestAPI_ValidationErrors(t *testing.T) {
	api := newAPI(t)
	token, _ := api.registerAndLogin("dave", "pw")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"zero amount", map[string]interface{}{"amount": 0, "card_last4": "1234", "payee_name": "X"}},
		{"too many decimals", map[string]interface{}{"amount": "1.005", "card_last4": "1234", "payee_name": "X"}},
		{"short card", map[string]interface{}{"amount": 5, "card_last4": "12", "payee_name": "X"}},
		{"missing payee", map[string]interface{}{"amount": 5, "card_last4": "1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := api.do(http.MethodPost, "/api/payments", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "INVALID_ARGUMENT", body["code"])
		})
	}

	status, body := api.do(http.MethodPost, "/api/payments/abc/confirm", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid payment id", body["error"])

	status, _ = api.do(http.MethodGet, "/api/payments?status=unknown", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Authentication(t *testing.T) {
	api := newAPI(t)
	api.registerAndLogin("erin", "pw")

	status, body := api.do(http.MethodGet, "/api/payments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", body["code"])

	status, _ = api.do(http.MethodGet, "/api/payments", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"login": "erin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid login or password", body["error"])
}

func TestAPI_RefreshAndLogout(t *testing.T) {
	api := newAPI(t)
	token, refresh := api.registerAndLogin("frank", "pw")

	status, body := api.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, status)
	newRefresh := body["refresh_token"].(string)
	assert.NotEqual(t, refresh, newRefresh)

	// the rotated token is single use
	status, _ = api.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodPost, "/api/auth/logout", token, map[string]string{"refresh_token": newRefresh})
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = api.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": newRefresh})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_HealthAndUnknownRoute(t *testing.T) {
	api := newAPI(t)

	status, body := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	status, body = api.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
