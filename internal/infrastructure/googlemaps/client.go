package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/location-quest/internal/config"
	"github.com/location-quest/internal/domain"
	"github.com/location-quest/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusRequestDenied  = "REQUEST_DENIED"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
	statusInvalidRequest = "INVALID_REQUEST"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	region     string
	logger     *zap.Logger
}

// NewGeocodingClient creates a reverse geocoding client for the Google Maps
// Geocoding API.
func NewGeocodingClient(cfg *config.GeocodingConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		region:   cfg.Region,
		logger:   logger,
	}
}

func (c *client) Configured() bool {
	return c.apiKey != ""
}

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	AddressComponents []addressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// ReverseGeocode resolves lat/lon into a "<city><district>" label.
func (c *client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	coords := fmt.Sprintf("(%s, %s)", strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base url: %w", err)
	}
	q := u.Query()
	q.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("key", c.apiKey)
	q.Set("language", c.language)
	q.Set("region", c.region)
	u.RawQuery = q.Encode()

	c.logger.Debug("Calling Google Geocoding API",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &domain.GeocodeError{Category: domain.GeocodeTransportError, Detail: coords, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &domain.GeocodeError{
			Category: domain.GeocodeHTTPError,
			Detail:   fmt.Sprintf("HTTP %d for coordinates %s", resp.StatusCode, coords),
		}
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &domain.GeocodeError{Category: domain.GeocodeDecodeError, Detail: coords, Err: err}
	}

	switch body.Status {
	case statusOK:
	case statusZeroResults:
		return "", domain.ErrNoGeocodeResult
	case statusRequestDenied:
		return "", &domain.GeocodeError{
			Category: domain.GeocodeRequestDenied,
			Detail: fmt.Sprintf("API key may be invalid or Geocoding API not enabled. Error: %s. Coordinates: %s",
				orUnknown(body.ErrorMessage), coords),
		}
	case statusOverQueryLimit:
		return "", &domain.GeocodeError{
			Category: domain.GeocodeOverQueryLimit,
			Detail:   "API quota exceeded. Coordinates: " + coords,
		}
	case statusInvalidRequest:
		return "", &domain.GeocodeError{
			Category: domain.GeocodeInvalidRequest,
			Detail:   "Invalid request parameters. Coordinates: " + coords,
		}
	default:
		return "", &domain.GeocodeError{
			Category: body.Status,
			Detail: fmt.Sprintf("Unexpected API status. Error: %s. Coordinates: %s",
				orUnknown(body.ErrorMessage), coords),
		}
	}

	area, ok := ExtractArea(body.Results)
	if !ok {
		return "", domain.ErrNoGeocodeResult
	}
	return area, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
