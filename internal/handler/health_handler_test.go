package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mishasvintus/teams_api/internal/middleware"
)

func TestHealthHandler_Check(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s := newTestServer(t)
		s.storage.EXPECT().Ping().Return(nil)

		w := s.do(t, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
	})

	t.Run("database unreachable", func(t *testing.T) {
		s := newTestServer(t)
		s.storage.EXPECT().Ping().Return(assert.AnError)

		w := s.do(t, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status": "unavailable"}`, w.Body.String())
	})
}

func TestRouter_RequestIDAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.storage.EXPECT().Ping().Return(nil)

	w := s.do(t, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `teams_api_http_requests_total{method="GET",route="/health",status="200"}`)
}
