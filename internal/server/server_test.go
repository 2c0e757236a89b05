package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeboard/internal/config"
	"github.com/lifeboard/internal/database"
	"github.com/lifeboard/internal/events"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Port:             0,
		DevMode:          true,
		DefaultAdherence: 1.0,
		StreakLookback:   30,
	}

	return New(Config{
		Port:   0,
		Log:    zerolog.Nop(),
		DB:     db,
		Config: cfg,
		Events: events.NewManager(zerolog.Nop()),
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "lifeboard", body["service"])
}

func TestSystemStatusEndpoint(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest("GET", "/api/system/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "running", body["status"])
}

func TestRouteWiring(t *testing.T) {
	srv := setupServer(t)

	// Log a weight through the full stack, then read it back
	body := `{"date": "2024-03-01", "weight_kg": 90.5}`
	req := httptest.NewRequest("POST", "/api/weights/", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/weights/", nil)
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "90.5")

	// Analytics endpoints answer even with no data, as null payloads
	for _, path := range []string{
		"/api/projection",
		"/api/goal/eta",
		"/api/goal/trajectory",
		"/api/trend",
	} {
		req = httptest.NewRequest("GET", path, nil)
		w = httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	req = httptest.NewRequest("GET", "/api/streak/", nil)
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
