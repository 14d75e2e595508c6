// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ivkonovalov/shopdesk/internal/config"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/internal/service"
	"github.com/ivkonovalov/shopdesk/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "shopdesk"
)

func newAuthedTestHandler(t *testing.T) *Handler {
	t.Helper()

	svcs := &service.Services{
		CatalogService: &mockCatalogService{},
		RecordService:  &mockRecordService{},
	}
	cfg := config.App{
		TokenSignKey: testSignKey,
		TokenIssuer:  testIssuer,
	}

	return NewHandler(svcs, cfg, logger.Nop())
}

func mintToken(t *testing.T, issuer, signKey string, duration time.Duration) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(issuer, "operator", duration, signKey)
	require.NoError(t, err)
	return token.SignedString
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func TestAuth_MissingHeaderReturns401(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_HeaderWithoutTokenReturns401(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_EmptyTokenReturns401(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_GarbageTokenReturns401(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongIssuerReturns401(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	token := mintToken(t, "someone-else", testSignKey, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSignKeyReturns401(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	token := mintToken(t, testIssuer, "some-other-key", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidTokenPassesThrough(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	token := mintToken(t, testIssuer, testSignKey, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_VersionRouteStaysOpen(t *testing.T) {
	router := newAuthedTestHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_DisabledWithoutSignKey(t *testing.T) {
	// no TokenSignKey configured: the middleware is never attached
	router := newTestHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ─────────────────────────────────────────────
// getTokenFromAuthHeader
// ─────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token part", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tc.header)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
