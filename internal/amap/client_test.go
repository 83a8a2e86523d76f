package amap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/foodmap/internal/cache"
	"github.com/lepinkainen/foodmap/internal/testutil"
)

func setupCache(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	env := testutil.NewTestEnv(t)
	viper.Set("cache.dbfile", filepath.Join(env.RootDir(), "cache.db"))
	viper.Set("cache.ttl", "1h")

	require.NoError(t, cache.ResetGlobalCache())
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })
}

func TestGeocode(t *testing.T) {
	setupCache(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/geocode/geo", r.URL.Path)
		assert.Equal(t, "amap-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Chengdu 12 Jinli St", r.URL.Query().Get("address"))
		assert.Equal(t, "Chengdu", r.URL.Query().Get("city"))

		_, _ = w.Write([]byte(`{"status":"1","geocodes":[{"location":"104.081534,30.655822"}]}`))
	}))
	defer server.Close()

	client := NewClient("amap-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	coords, err := client.Geocode(context.Background(), "12 Jinli St", "Chengdu")
	require.NoError(t, err)
	assert.InDelta(t, 104.081534, coords.Lng, 1e-9)
	assert.InDelta(t, 30.655822, coords.Lat, 1e-9)
}

func TestGeocodeCityOnlyQuery(t *testing.T) {
	setupCache(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Chengdu", r.URL.Query().Get("address"))
		_, _ = w.Write([]byte(`{"status":"1","geocodes":[{"location":"104.06,30.57"}]}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.Geocode(context.Background(), "", "Chengdu")
	require.NoError(t, err)
}

func TestGeocodeNoResult(t *testing.T) {
	setupCache(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0","geocodes":[]}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.Geocode(context.Background(), "nowhere", "atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResult))
}

func TestParseLocation(t *testing.T) {
	coords, err := parseLocation("116.397128,39.916527")
	require.NoError(t, err)
	assert.InDelta(t, 116.397128, coords.Lng, 1e-9)
	assert.InDelta(t, 39.916527, coords.Lat, 1e-9)

	_, err = parseLocation("not-a-pair")
	require.Error(t, err)

	_, err = parseLocation("x,39.9")
	require.Error(t, err)
}
