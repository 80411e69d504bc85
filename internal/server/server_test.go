package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ziadkadry99/string-analyzer/internal/db"
	"github.com/ziadkadry99/string-analyzer/internal/metrics"
	"github.com/ziadkadry99/string-analyzer/internal/records"
)

func setupServer(t *testing.T, cfg Config, m *metrics.Metrics) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	svc := records.NewService(records.NewStore(database), records.WithMetrics(m))
	return New(cfg, svc, m, zaptest.NewLogger(t))
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer(t, Config{}, nil)
	_, err := srv.Service().Create(context.Background(), "one")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["strings"])
}

func TestCORSHeaders(t *testing.T) {
	srv := setupServer(t, Config{AllowAll: true}, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStringRoutesMounted(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	req := httptest.NewRequest("POST", "/strings", strings.NewReader(`{"value":"mounted"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/strings/mounted", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	srv := setupServer(t, Config{}, m)

	req := httptest.NewRequest("POST", "/strings", strings.NewReader(`{"value":"counted"}`))
	srv.Router().ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stranalyzer_strings_created_total 1")
}

func TestMetricsDisabled(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDefaultRequestTimeout(t *testing.T) {
	srv := setupServer(t, Config{}, nil)
	assert.Positive(t, srv.ServerConfig().RequestTimeout)
}
