package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cfg := DefaultConfig("provider-a")
	cfg.MaxFailures = 2
	cfg.Timeout = time.Hour
	cb := New[int](cfg)

	boom := errors.New("boom")
	for range 2 {
		_, err := cb.Execute(func() (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
	}

	assert.Equal(t, "open", cb.State())

	called := false
	_, err := cb.Execute(func() (int, error) {
		called = true
		return 1, nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := New[string](DefaultConfig("provider-b"))

	got, err := cb.Execute(func() (string, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, "closed", cb.State())
	assert.Equal(t, "provider-b", cb.Name())
}
