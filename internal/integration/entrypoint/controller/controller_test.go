package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthController(t *testing.T) {
	up := func() bool { return true }
	down := func() bool { return false }

	tests := []struct {
		name       string
		db, cache  func() bool
		wantCode   int
		wantStatus string
		wantCache  string
	}{
		{"all up", up, up, http.StatusOK, "ok", "connected"},
		{"no cache configured", up, nil, http.StatusOK, "ok", "disabled"},
		{"cache down", up, down, http.StatusOK, "ok", "disconnected"},
		{"database down", down, up, http.StatusServiceUnavailable, "degraded", "connected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthController(tt.db, tt.cache).Check)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.wantCode, w.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantCache, resp.Cache)
			assert.NotEmpty(t, resp.Timestamp)
		})
	}
}

func TestErrorHandlers(t *testing.T) {
	tests := []struct {
		name     string
		handle   func(*gin.Context, error)
		err      error
		wantCode int
		wantBody string
	}{
		{
			"transaction not found",
			handleTransactionError,
			domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "transaction not found", nil),
			http.StatusNotFound, "TXN-010004",
		},
		{
			"foreign transaction",
			handleTransactionError,
			domainerror.NewTransactionError(domainerror.ErrCodeNotAuthorizedTransaction, "not yours", nil),
			http.StatusForbidden, "TXN-010005",
		},
		{
			"category outside the kind",
			handleTransactionError,
			domainerror.NewTransactionError(domainerror.ErrCodeCategoryNotAllowed, "bad category", nil),
			http.StatusBadRequest, "TXN-010006",
		},
		{
			"unknown granularity",
			handleSummaryError,
			domainerror.NewSummaryError(domainerror.ErrCodeInvalidGranularity, "bad granularity", nil),
			http.StatusBadRequest, "SUM-010001",
		},
		{
			"mailer down",
			handleSummaryError,
			domainerror.NewSummaryError(domainerror.ErrCodeMailerUnavailable, "no mailer", nil),
			http.StatusServiceUnavailable, "SUM-020002",
		},
		{
			"savings target missing",
			handleHouseholdError,
			domainerror.NewHouseholdError(domainerror.ErrCodeSavingsTargetNotFound, "no target", nil),
			http.StatusNotFound, "HHD-030001",
		},
		{
			"advice rate limited",
			handleAdviceError,
			domainerror.NewAdviceError(domainerror.ErrCodeAdviceRateLimited, "slow down", nil),
			http.StatusTooManyRequests, "ADV-010002",
		},
		{
			"duplicate email",
			handleAuthError,
			domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "taken", nil),
			http.StatusConflict, "AUTH-010001",
		},
		{
			"reused refresh token",
			handleAuthError,
			domainerror.NewAuthError(domainerror.ErrCodeTokenReused, "sessions revoked", domainerror.ErrRefreshTokenReused),
			http.StatusUnauthorized, "AUTH-030004",
		},
		{
			"uncoded error",
			handleTransactionError,
			errors.New("connection reset"),
			http.StatusInternalServerError, "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { tt.handle(c, tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestRequireUser(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		if _, ok := requireUser(c); ok {
			c.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domainerror.ErrCodeMissingToken), resp.Code)
}
