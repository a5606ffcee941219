package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Health(t *testing.T) {
	s := NewServer(0, "v1.2.3")
	s.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	s.RegisterCheck("providers", ProvidersCheck(2, nil))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var status Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "v1.2.3", status.Version)
	assert.Equal(t, "2025-01-02T03:04:05Z", status.Timestamp)
	assert.Equal(t, Check{Healthy: true, Message: "2 providers configured"}, status.Checks["providers"])
}

func TestServer_Degraded(t *testing.T) {
	s := NewServer(0, "dev")
	s.RegisterCheck("providers", ProvidersCheck(0, nil))

	health := httptest.NewRecorder()
	s.Handler().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	ready := httptest.NewRecorder()
	s.Handler().ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/ready", nil))
	live := httptest.NewRecorder()
	s.Handler().ServeHTTP(live, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusServiceUnavailable, health.Code)
	assert.Contains(t, health.Body.String(), `"degraded"`)
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
	assert.Equal(t, "not ready", ready.Body.String())
	assert.Equal(t, http.StatusOK, live.Code)
}

func TestProvidersCheck(t *testing.T) {
	tests := []struct {
		name       string
		configured int
		states     map[string]string
		wantOK     bool
		wantMsg    string
	}{
		{
			name:       "breakers_disabled",
			configured: 2,
			wantOK:     true,
			wantMsg:    "2 providers configured",
		},
		{
			name:       "one_open",
			configured: 2,
			states:     map[string]string{"provider-b": "open", "provider-a": "closed"},
			wantOK:     true,
			wantMsg:    "2 providers configured; circuits: provider-a=closed, provider-b=open",
		},
		{
			name:       "all_open",
			configured: 1,
			states:     map[string]string{"provider-a": "open"},
			wantOK:     false,
			wantMsg:    "1 providers configured; circuits: provider-a=open",
		},
		{
			name:    "none_configured",
			wantOK:  false,
			wantMsg: "no providers configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var states func() map[string]string
			if tt.states != nil {
				states = func() map[string]string { return tt.states }
			}
			ok, msg := ProvidersCheck(tt.configured, states)(context.Background())
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer(0, "dev")
	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
