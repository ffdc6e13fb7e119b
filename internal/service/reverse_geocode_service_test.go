package service

import (
	"context"
	"testing"

	"running-course-api/internal/apperr"
	"running-course-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReverseGeoCodeService_ReverseGeocode(t *testing.T) {
	cityHall := &models.AddressInfo{
		AddressName:  "서울 중구 태평로1가 31",
		Region1Depth: "서울",
		Region2Depth: "중구",
		Region3Depth: "태평로1가",
		RoadAddress: &models.RoadAddress{
			AddressName: "서울특별시 중구 세종대로 110",
			RoadName:    "세종대로",
		},
	}

	tests := []struct {
		name        string
		lat         float64
		lon         float64
		callsRepo   bool
		mockInfo    *models.AddressInfo
		mockError   error
		expected    *models.AddressInfo
		expectKind  apperr.Kind
		expectError bool
	}{
		{
			name:        "latitude out of range",
			lat:         91,
			lon:         126.978,
			expectKind:  apperr.KindValidation,
			expectError: true,
		},
		{
			name:        "longitude out of range",
			lat:         37.5665,
			lon:         -181,
			expectKind:  apperr.KindValidation,
			expectError: true,
		},
		{
			name:      "address found",
			lat:       37.5665,
			lon:       126.978,
			callsRepo: true,
			mockInfo:  cityHall,
			expected:  cityHall,
		},
		{
			name:      "no address near coordinates",
			lat:       37.5665,
			lon:       126.978,
			callsRepo: true,
			expected:  nil,
		},
		{
			name:        "repository error",
			lat:         37.5665,
			lon:         126.978,
			callsRepo:   true,
			mockError:   assert.AnError,
			expectKind:  apperr.KindUpstream,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockAddressRepository)
			service := NewReverseGeoCodeService(mockRepo)

			if tt.callsRepo {
				mockRepo.On("ReverseGeocode", mock.Anything, tt.lat, tt.lon).Return(tt.mockInfo, tt.mockError)
			}

			// Execute
			result, err := service.ReverseGeocode(context.Background(), tt.lat, tt.lon)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.expectKind, apperr.KindOf(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
