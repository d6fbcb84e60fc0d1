package handler

import (
	"catalog-service/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAuth(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthenticated.", decode(t, w)["message"])

	w = s.do(t, http.MethodGet, "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user, bearer := s.user(t, "viewer@example.com", constant.RoleSubscriber)
	w = s.do(t, http.MethodGet, "/api/me", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, user.Email, me["email"])
}

func TestLogoutRevokesBearer(t *testing.T) {
	s := newTestServer(t, false)
	_, bearer := s.user(t, "viewer@example.com", constant.RoleSubscriber)

	w := s.do(t, http.MethodPost, "/api/logout", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/me", bearer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireCapability(t *testing.T) {
	s := newTestServer(t, false)
	_, subscriber := s.user(t, "viewer@example.com", constant.RoleSubscriber)
	_, admin := s.user(t, "admin@example.com", constant.RoleAdmin)

	w := s.do(t, http.MethodPost, "/api/genres", subscriber, map[string]any{"name": "Drama"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied.", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/genres", admin, map[string]any{"name": "Drama"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/wishlist", admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/genres", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/genres", "garbage", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = s.do(t, http.MethodGet, "/api/genres", "", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/contents", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}
