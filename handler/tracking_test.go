package handler

import (
	"catalog-service/constant"
	"catalog-service/repository/repotest"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

func TestVideoTrackingRoundTrip(t *testing.T) {
	s := newTestServer(t, false)
	user, bearer := s.user(t, "viewer@example.com", constant.RoleSubscriber)
	content := repotest.Content(t, s.repo, repotest.Genre(t, s.repo, "Drama"), "Night Train", constant.PublishPublic)

	w := s.do(t, http.MethodPost, "/api/video-tracking", bearer, map[string]any{
		"user_id":      user.ID,
		"device_id":    10,
		"content_id":   content.ID,
		"status":       "not completed",
		"elapsed_time": "120",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Video tracking stored and user stats updated successfully.", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "120", data["elapsed_time"])

	path := fmt.Sprintf("/api/video-tracking/%d/%d", user.ID, content.ID)
	w = s.do(t, http.MethodGet, path, bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Duration fetched successfully.", body["message"])
	assert.Equal(t, float64(120), body["duration"])

	w = s.do(t, http.MethodPut, "/api/video-tracking", bearer, map[string]any{
		"user_id": user.ID, "content_id": content.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(120), decode(t, w)["duration"])

	w = s.do(t, http.MethodDelete, path, bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Duration record deleted successfully.", decode(t, w)["message"])

	w = s.do(t, http.MethodGet, path, bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "No duration record found yet for this user and content.", body["message"])
	assert.Equal(t, float64(0), body["duration"])

	w = s.do(t, http.MethodDelete, path, bearer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Failed to delete duration.", decode(t, w)["message"])
}

func TestVideoTrackingUnknownContent(t *testing.T) {
	s := newTestServer(t, false)
	user, bearer := s.user(t, "viewer@example.com", constant.RoleSubscriber)

	w := s.do(t, http.MethodPost, "/api/video-tracking", bearer, map[string]any{
		"user_id":      user.ID,
		"device_id":    10,
		"content_id":   4242,
		"status":       "completed",
		"elapsed_time": "5",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to store video tracking.", body["message"])
	assert.NotEmpty(t, body["error"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/video-tracking/%d/4242", user.ID), bearer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideoTrackingOtherUserForbidden(t *testing.T) {
	s := newTestServer(t, false)
	_, bearer := s.user(t, "viewer@example.com", constant.RoleSubscriber)
	other, _ := s.user(t, "other@example.com", constant.RoleSubscriber)
	_, adminBearer := s.user(t, "admin@example.com", constant.RoleAdmin)
	content := repotest.Content(t, s.repo, repotest.Genre(t, s.repo, "Drama"), "Night Train", constant.PublishPublic)

	path := fmt.Sprintf("/api/video-tracking/%d/%d", other.ID, content.ID)
	w := s.do(t, http.MethodGet, path, bearer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, path, adminBearer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVideoTrackingValidation(t *testing.T) {
	s := newTestServer(t, false)
	user, bearer := s.user(t, "viewer@example.com", constant.RoleSubscriber)

	w := s.do(t, http.MethodPost, "/api/video-tracking", bearer, map[string]any{
		"user_id":      user.ID,
		"content_id":   1,
		"status":       "paused",
		"elapsed_time": "1m30s",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed.", body["message"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "device_id")
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "elapsed_time")
	assert.Equal(t, "The device id field is required.", errs["device_id"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/video-tracking/%d/abc", user.ID), bearer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductionHidesErrorDetail(t *testing.T) {
	s := newTestServer(t, true)
	user, bearer := s.user(t, "viewer@example.com", constant.RoleSubscriber)

	w := s.do(t, http.MethodPost, "/api/video-tracking", bearer, map[string]any{
		"user_id":      user.ID,
		"device_id":    10,
		"content_id":   4242,
		"status":       "completed",
		"elapsed_time": "5",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.NotContains(t, body, "error")
	assert.Equal(t, "Failed to store video tracking.", body["message"])

	w = s.do(t, http.MethodPost, "/api/video-tracking", bearer, map[string]any{"user_id": user.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decode(t, w)
	assert.NotContains(t, body, "error")
	assert.Contains(t, body["errors"], "content_id")
}
