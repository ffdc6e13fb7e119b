package service

import (
	"context"
	"fmt"
	"strings"

	"running-course-api/internal/apperr"
	"running-course-api/internal/models"
)

// GeoCodeService contains the core business logic for address search
type GeoCodeService struct {
	repo GeoCodeRepository
}

// GeoCodeRepository is the address search backend: Kakao or PostGIS.
type GeoCodeRepository interface {
	SearchAddress(ctx context.Context, query string) ([]models.Place, error)
}

// NewGeoCodeService creates a new geo code service
func NewGeoCodeService(repo GeoCodeRepository) *GeoCodeService {
	return &GeoCodeService{repo: repo}
}

// Geocode searches for places matching a free-text address
func (s *GeoCodeService) Geocode(ctx context.Context, address string) ([]models.Place, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperr.Errorf(apperr.KindValidation, "geocode", "address cannot be empty")
	}

	places, err := s.repo.SearchAddress(ctx, address)
	if err != nil {
		return nil, apperr.New(apperr.KindUpstream, "geocode", fmt.Errorf("service: failed to search addresses: %w", err))
	}
	if places == nil {
		places = []models.Place{}
	}

	return places, nil
}
