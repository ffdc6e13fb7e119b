package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"running-course-api/internal/httpx"
	"running-course-api/internal/models"
)

// GoogleGeolocationClient estimates a device position with the Google Geolocation API.
type GoogleGeolocationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleGeolocationClient creates a geolocation client.
func NewGoogleGeolocationClient(baseURL, apiKey string) *GoogleGeolocationClient {
	return &GoogleGeolocationClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type geolocateRequest struct {
	ConsiderIP       bool                     `json:"considerIp"`
	WifiAccessPoints []models.WifiAccessPoint `json:"wifiAccessPoints,omitempty"`
	CellTowers       []models.CellTower       `json:"cellTowers,omitempty"`
}

type geolocateResponse struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
}

// Locate returns the estimated position, using the caller's IP plus any hints.
func (c *GoogleGeolocationClient) Locate(ctx context.Context, hints models.GeolocationRequest) (*models.Position, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(geolocateRequest{
		ConsiderIP:       true,
		WifiAccessPoints: hints.WifiAccessPoints,
		CellTowers:       hints.CellTowers,
	})
	if err != nil {
		return nil, fmt.Errorf("client: encode geolocate request: %w", err)
	}
	endpoint := c.baseURL + "?" + url.Values{"key": {c.apiKey}}.Encode()

	var data geolocateResponse
	// single attempt: geolocate is a POST
	err = httpx.DoJSON(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, &data, httpx.NoRetry())
	if err != nil {
		return nil, fmt.Errorf("client: geolocate: %w", err)
	}

	return &models.Position{
		Latitude:  data.Location.Lat,
		Longitude: data.Location.Lng,
		Accuracy:  data.Accuracy,
	}, nil
}
