package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"running-course-api/internal/apperr"
	"running-course-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGeoCodeService is a mock implementation of the GeoCodeService interface
type MockGeoCodeService struct {
	mock.Mock
}

func (m *MockGeoCodeService) Geocode(ctx context.Context, address string) ([]models.Place, error) {
	args := m.Called(ctx, address)
	places, _ := args.Get(0).([]models.Place)
	return places, args.Error(1)
}

func TestGeoCodeHandler_Geocode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		forwarded      string
		mockPlaces     []models.Place
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "missing query parameter",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing required query parameter 'q'"},
		},
		{
			name:           "blank query parameter",
			query:          "   ",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing required query parameter 'q'"},
		},
		{
			name:           "query too long",
			query:          strings.Repeat("가", maxQueryRunes+1),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "query parameter 'q' must be at most 200 characters"},
		},
		{
			name:  "successful geocoding with results",
			query:     "  세종대로 110 ",
			forwarded: "세종대로 110",
			mockPlaces: []models.Place{
				{
					ID:          1,
					AddressName: "서울 중구 세종대로 110",
					Region1:     "서울",
					Region2:     "중구",
					Latitude:    37.5665,
					Longitude:   126.978,
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody: []interface{}{
				map[string]interface{}{
					"id":                 float64(1),
					"address_name":       "서울 중구 세종대로 110",
					"region_1depth_name": "서울",
					"region_2depth_name": "중구",
					"latitude":           37.5665,
					"longitude":          126.978,
				},
			},
		},
		{
			name:           "successful geocoding with no results",
			query:          "nonexistent address",
			forwarded:      "nonexistent address",
			mockPlaces:     []models.Place{},
			expectedStatus: http.StatusOK,
			expectedBody:   []interface{}{},
		},
		{
			name:           "service error",
			query:          "세종대로 110",
			forwarded:      "세종대로 110",
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
		{
			name:           "backend unavailable",
			query:          "세종대로 110",
			forwarded:      "세종대로 110",
			mockError:      apperr.New(apperr.KindUpstream, "geocode", assert.AnError),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "an external lookup service failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockGeoCodeService)
			handler := NewGeoCodeHandler(mockSvc)

			if tt.forwarded != "" {
				mockSvc.On("Geocode", mock.Anything, tt.forwarded).Return(tt.mockPlaces, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/api/geocode", nil)
			if tt.query != "" {
				q := req.URL.Query()
				q.Add("q", tt.query)
				req.URL.RawQuery = q.Encode()
			}
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.GeoCode(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			if tt.forwarded != "" {
				mockSvc.AssertExpectations(t)
			} else {
				mockSvc.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
			}
		})
	}
}
