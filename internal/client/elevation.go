// Package client holds the outbound clients for the external lookup services:
// Google elevation and geolocation, Kakao reverse geocoding and the Gemini model.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"running-course-api/internal/httpx"
	"running-course-api/internal/models"
)

// ErrBatchLimitExceeded is returned when more coordinates are requested than one
// elevation call may carry.
var ErrBatchLimitExceeded = errors.New("client: elevation batch limit exceeded")

// ErrMissingAPIKey is returned by clients constructed without a credential.
var ErrMissingAPIKey = errors.New("client: api key not configured")

// GoogleElevationClient calls the Google Maps Elevation API.
type GoogleElevationClient struct {
	baseURL    string
	apiKey     string
	maxBatch   int
	httpClient *http.Client
	retry      httpx.RetryConfig
}

// NewGoogleElevationClient creates an elevation client. maxBatch is the number of
// coordinates a single request may carry.
func NewGoogleElevationClient(baseURL, apiKey string, maxBatch int) *GoogleElevationClient {
	return &GoogleElevationClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxBatch:   maxBatch,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry:      httpx.DefaultRetryConfig(),
	}
}

// MaxBatch returns the per-request coordinate ceiling.
func (c *GoogleElevationClient) MaxBatch() int {
	return c.maxBatch
}

type googleElevationResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Elevation float64 `json:"elevation"`
		Location  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
		Resolution float64 `json:"resolution"`
	} `json:"results"`
}

// GetElevations returns one elevation per coordinate, in request order.
func (c *GoogleElevationClient) GetElevations(ctx context.Context, coords []models.Coordinate) ([]models.ElevationPoint, error) {
	if len(coords) == 0 {
		return []models.ElevationPoint{}, nil
	}
	if len(coords) > c.maxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchLimitExceeded, len(coords), c.maxBatch)
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	locations := make([]string, len(coords))
	for i, p := range coords {
		locations[i] = strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
	}
	params := url.Values{
		"locations": {strings.Join(locations, "|")},
		"key":       {c.apiKey},
	}
	endpoint := c.baseURL + "?" + params.Encode()

	var data googleElevationResponse
	err := httpx.DoJSON(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, &data, c.retry)
	if err != nil {
		return nil, fmt.Errorf("client: elevation request: %w", err)
	}

	if data.Status != "OK" {
		return nil, fmt.Errorf("client: elevation status %s: %s", data.Status, data.ErrorMessage)
	}
	if len(data.Results) != len(coords) {
		return nil, fmt.Errorf("client: elevation returned %d results for %d locations", len(data.Results), len(coords))
	}

	points := make([]models.ElevationPoint, len(data.Results))
	for i, r := range data.Results {
		points[i] = models.ElevationPoint{
			Latitude:  r.Location.Lat,
			Longitude: r.Location.Lng,
			Elevation: r.Elevation,
		}
	}
	return points, nil
}
