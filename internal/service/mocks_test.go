package service

import (
	"context"

	"running-course-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAddressRepository is a mock implementation of both address backend interfaces
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) SearchAddress(ctx context.Context, query string) ([]models.Place, error) {
	args := m.Called(ctx, query)
	places, _ := args.Get(0).([]models.Place)
	return places, args.Error(1)
}

func (m *MockAddressRepository) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.AddressInfo, error) {
	args := m.Called(ctx, lat, lon)
	info, _ := args.Get(0).(*models.AddressInfo)
	return info, args.Error(1)
}

// MockElevationProvider is a mock implementation of ElevationProvider
type MockElevationProvider struct {
	mock.Mock
	maxBatch int
}

func (m *MockElevationProvider) GetElevations(ctx context.Context, coords []models.Coordinate) ([]models.ElevationPoint, error) {
	args := m.Called(ctx, coords)
	if fn, ok := args.Get(0).(func([]models.Coordinate) []models.ElevationPoint); ok {
		return fn(coords), args.Error(1)
	}
	points, _ := args.Get(0).([]models.ElevationPoint)
	return points, args.Error(1)
}

func (m *MockElevationProvider) MaxBatch() int {
	if m.maxBatch == 0 {
		return 512
	}
	return m.maxBatch
}

// MockTextGenerator is a mock implementation of TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// elevationsBy answers every coordinate with f(index).
func elevationsBy(f func(i int) float64) func([]models.Coordinate) []models.ElevationPoint {
	return func(coords []models.Coordinate) []models.ElevationPoint {
		out := make([]models.ElevationPoint, len(coords))
		for i, c := range coords {
			out[i] = models.ElevationPoint{Latitude: c.Lat, Longitude: c.Lon, Elevation: f(i)}
		}
		return out
	}
}
