package service

import (
	"context"
	"fmt"

	"running-course-api/internal/apperr"
	"running-course-api/internal/models"
)

// ReverseGeoCodeService contains the core business logic for reverse geocoding operations
type ReverseGeoCodeService struct {
	repo ReverseGeocoder
}

// NewReverseGeoCodeService creates a new reverse geo code service
func NewReverseGeoCodeService(repo ReverseGeocoder) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{repo: repo}
}

// ReverseGeocode finds the address of the given coordinates. It returns nil when
// the backend knows no address there.
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.AddressInfo, error) {
	if lat < -90 || lat > 90 {
		return nil, apperr.Errorf(apperr.KindValidation, "reverse_geocode", "invalid latitude: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, apperr.Errorf(apperr.KindValidation, "reverse_geocode", "invalid longitude: %f", lon)
	}

	info, err := s.repo.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return nil, apperr.New(apperr.KindUpstream, "reverse_geocode", fmt.Errorf("service: failed to find address: %w", err))
	}

	return info, nil
}
