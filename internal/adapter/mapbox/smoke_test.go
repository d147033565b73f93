//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/nordic-etl/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return NewClient(token, 10*time.Second, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_ReverseGeocode(t *testing.T) {
	c := smokeClient(t)

	// Tenerife, Canary Islands
	result, err := c.ReverseGeocode(context.Background(), 28.25, -16.54)
	require.NoError(t, err)

	assert.NotEmpty(t, result.FormattedAddress)
	assert.NotEmpty(t, result.PlaceName)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestSmoke_ReverseGeocode_Offshore(t *testing.T) {
	c := smokeClient(t)

	// Norwegian Sea; may or may not resolve, but must not error.
	_, err := c.ReverseGeocode(context.Background(), 66.5, 2.0)
	require.NoError(t, err)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	// Bergen, Norway. First call misses the cache, second call hits it.
	r1, err := cached.ReverseGeocode(context.Background(), 60.39, 5.32)
	require.NoError(t, err)
	assert.Contains(t, r1.FormattedAddress, "Bergen")

	r2, err := cached.ReverseGeocode(context.Background(), 60.39, 5.32)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
