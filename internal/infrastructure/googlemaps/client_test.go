package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/location-quest/internal/config"
	"github.com/location-quest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL, key string) *client {
	cfg := &config.GeocodingConfig{
		APIKey:         key,
		BaseURL:        baseURL,
		Language:       "zh-TW",
		Region:         "tw",
		RequestTimeout: 5 * time.Second,
	}
	return NewGeocodingClient(cfg, zap.NewNop()).(*client)
}

func serveJSON(t *testing.T, status int, body interface{}, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestClient_ReverseGeocode(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := serveJSON(t, http.StatusOK, geocodeResponse{
			Status: "OK",
			Results: []geocodeResult{{
				AddressComponents: []addressComponent{
					{LongName: "大安區", Types: []string{"administrative_area_level_2", "political"}},
					{LongName: "台北市", Types: []string{"administrative_area_level_1", "political"}},
				},
				FormattedAddress: "106台灣台北市大安區",
			}},
		}, func(r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "25.033,121.5654", q.Get("latlng"))
			assert.Equal(t, "test_key", q.Get("key"))
			assert.Equal(t, "zh-TW", q.Get("language"))
			assert.Equal(t, "tw", q.Get("region"))
		})
		defer server.Close()

		c := newTestClient(server.URL, "test_key")
		area, err := c.ReverseGeocode(context.Background(), 25.033, 121.5654)
		require.NoError(t, err)
		assert.Equal(t, "台北市大安區", area)
	})

	t.Run("zero results", func(t *testing.T) {
		server := serveJSON(t, http.StatusOK, geocodeResponse{Status: "ZERO_RESULTS"}, nil)
		defer server.Close()

		_, err := newTestClient(server.URL, "k").ReverseGeocode(context.Background(), 0, 0)
		assert.ErrorIs(t, err, domain.ErrNoGeocodeResult)
	})

	statuses := map[string]string{
		"REQUEST_DENIED":   domain.GeocodeRequestDenied,
		"OVER_QUERY_LIMIT": domain.GeocodeOverQueryLimit,
		"INVALID_REQUEST":  domain.GeocodeInvalidRequest,
		"UNKNOWN_ERROR":    "UNKNOWN_ERROR",
	}
	for status, category := range statuses {
		t.Run("status "+status, func(t *testing.T) {
			server := serveJSON(t, http.StatusOK, geocodeResponse{Status: status, ErrorMessage: "boom"}, nil)
			defer server.Close()

			_, err := newTestClient(server.URL, "k").ReverseGeocode(context.Background(), 25, 121)
			var geoErr *domain.GeocodeError
			require.True(t, errors.As(err, &geoErr))
			assert.Equal(t, category, geoErr.Category)
		})
	}

	t.Run("http error", func(t *testing.T) {
		server := serveJSON(t, http.StatusInternalServerError, map[string]string{}, nil)
		defer server.Close()

		_, err := newTestClient(server.URL, "k").ReverseGeocode(context.Background(), 25, 121)
		var geoErr *domain.GeocodeError
		require.True(t, errors.As(err, &geoErr))
		assert.Equal(t, domain.GeocodeHTTPError, geoErr.Category)
		assert.Contains(t, geoErr.Error(), "HTTP 500")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "k").ReverseGeocode(context.Background(), 25, 121)
		var geoErr *domain.GeocodeError
		require.True(t, errors.As(err, &geoErr))
		assert.Equal(t, domain.GeocodeDecodeError, geoErr.Category)
	})
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, newTestClient("http://localhost", "").Configured())
	assert.True(t, newTestClient("http://localhost", "key").Configured())
}
