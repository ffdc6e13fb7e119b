package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"running-course-api/internal/httpx"
	"running-course-api/internal/models"
)

// KakaoClient calls the Kakao Local API for reverse geocoding and address search.
type KakaoClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      httpx.RetryConfig
}

// NewKakaoClient creates a Kakao Local API client authenticated with a REST API key.
func NewKakaoClient(baseURL, apiKey string) *KakaoClient {
	return &KakaoClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		retry:      httpx.DefaultRetryConfig(),
	}
}

type kakaoRegion struct {
	AddressName  string `json:"address_name"`
	Region1Depth string `json:"region_1depth_name"`
	Region2Depth string `json:"region_2depth_name"`
	Region3Depth string `json:"region_3depth_name"`
}

type kakaoCoord2AddressResponse struct {
	Documents []struct {
		Address     kakaoRegion `json:"address"`
		RoadAddress *struct {
			kakaoRegion
			RoadName     string `json:"road_name"`
			BuildingName string `json:"building_name"`
		} `json:"road_address"`
	} `json:"documents"`
	Meta struct {
		TotalCount int `json:"total_count"`
	} `json:"meta"`
}

type kakaoSearchAddressResponse struct {
	Documents []struct {
		AddressName string       `json:"address_name"`
		X           string       `json:"x"`
		Y           string       `json:"y"`
		Address     *kakaoRegion `json:"address"`
	} `json:"documents"`
}

func (c *KakaoClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	endpoint := c.baseURL + path + "?" + params.Encode()
	return httpx.DoJSON(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
		return req, nil
	}, out, c.retry)
}

// ReverseGeocode resolves a coordinate to an address. It returns nil, nil when
// Kakao knows no address there.
func (c *KakaoClient) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.AddressInfo, error) {
	params := url.Values{
		"x": {strconv.FormatFloat(lon, 'f', -1, 64)},
		"y": {strconv.FormatFloat(lat, 'f', -1, 64)},
	}

	var data kakaoCoord2AddressResponse
	if err := c.get(ctx, "/v2/local/geo/coord2address.json", params, &data); err != nil {
		return nil, fmt.Errorf("client: kakao coord2address: %w", err)
	}
	if len(data.Documents) == 0 {
		return nil, nil
	}

	doc := data.Documents[0]
	info := &models.AddressInfo{
		AddressName:  doc.Address.AddressName,
		Region1Depth: doc.Address.Region1Depth,
		Region2Depth: doc.Address.Region2Depth,
		Region3Depth: doc.Address.Region3Depth,
	}
	if doc.RoadAddress != nil {
		info.RoadAddress = &models.RoadAddress{
			AddressName:  doc.RoadAddress.AddressName,
			Region1Depth: doc.RoadAddress.Region1Depth,
			Region2Depth: doc.RoadAddress.Region2Depth,
			Region3Depth: doc.RoadAddress.Region3Depth,
			RoadName:     doc.RoadAddress.RoadName,
			BuildingName: doc.RoadAddress.BuildingName,
		}
	}
	return info, nil
}

// SearchAddress looks up places matching a free-text address.
func (c *KakaoClient) SearchAddress(ctx context.Context, query string) ([]models.Place, error) {
	params := url.Values{"query": {query}, "size": {"10"}}

	var data kakaoSearchAddressResponse
	if err := c.get(ctx, "/v2/local/search/address.json", params, &data); err != nil {
		return nil, fmt.Errorf("client: kakao search address: %w", err)
	}

	places := make([]models.Place, 0, len(data.Documents))
	for _, doc := range data.Documents {
		lon, err := strconv.ParseFloat(doc.X, 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(doc.Y, 64)
		if err != nil {
			continue
		}
		p := models.Place{AddressName: doc.AddressName, Latitude: lat, Longitude: lon}
		if doc.Address != nil {
			p.Region1 = doc.Address.Region1Depth
			p.Region2 = doc.Address.Region2Depth
			p.Region3 = doc.Address.Region3Depth
		}
		places = append(places, p)
	}
	return places, nil
}
