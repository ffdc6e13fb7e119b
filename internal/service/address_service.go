package service

import (
	"context"
	"fmt"
	"time"

	"running-course-api/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ReverseGeocoder resolves a coordinate to an address. A nil address with a nil
// error means nothing was found.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*models.AddressInfo, error)
}

// AddressService resolves display addresses for course endpoints.
type AddressService struct {
	geocoder ReverseGeocoder
	delay    time.Duration
}

// NewAddressService creates an address service that pauses for delay after each
// lookup of one request finishes before starting the next.
func NewAddressService(geocoder ReverseGeocoder, delay time.Duration) *AddressService {
	return &AddressService{geocoder: geocoder, delay: delay}
}

// pauseFromNow returns a limiter with no token left, so a reservation made on it
// is due a full delay after this call.
func (s *AddressService) pauseFromNow() *rate.Limiter {
	if s.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	l := rate.NewLimiter(rate.Every(s.delay), 1)
	l.Allow()
	return l
}

// LookupAll reverse-geocodes each distinct coordinate once, one call at a time,
// waiting the configured delay after each call completes.
// A failed or empty lookup leaves Address nil for that coordinate; only context
// cancellation aborts the run.
func (s *AddressService) LookupAll(ctx context.Context, coords []models.Coordinate) ([]models.CoordinateWithAddress, error) {
	logger := zerolog.Ctx(ctx)
	var pause *rate.Limiter

	seen := make(map[string]struct{}, len(coords))
	out := make([]models.CoordinateWithAddress, 0, len(coords))
	for _, c := range coords {
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if pause != nil {
			if err := sleepCtx(ctx, pause.Reserve().Delay()); err != nil {
				return nil, fmt.Errorf("service: address lookup: %w", err)
			}
		}

		info, err := s.geocoder.ReverseGeocode(ctx, c.Lat, c.Lon)
		pause = s.pauseFromNow()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("service: address lookup: %w", ctx.Err())
			}
			logger.Warn().Err(err).Str("coordinate", key).Msg("reverse geocoding failed, continuing without address")
			info = nil
		}
		out = append(out, models.CoordinateWithAddress{Coordinate: c, Address: info})
	}
	return out, nil
}

// ResolveCourseAddresses looks up the shared start and every course end and
// returns address names keyed by models.Coordinate.Key. Coordinates without an
// address are absent from the map.
func (s *AddressService) ResolveCourseAddresses(ctx context.Context, set *models.CourseSet) (map[string]string, error) {
	started := time.Now()

	coords := make([]models.Coordinate, 0, len(set.Courses)+1)
	coords = append(coords, set.Base)
	for _, course := range set.Courses {
		coords = append(coords, course.Start, course.End)
	}

	resolved, err := s.LookupAll(ctx, coords)
	if err != nil {
		return nil, err
	}

	addresses := make(map[string]string, len(resolved))
	for _, r := range resolved {
		if name := displayName(r.Address); name != "" {
			addresses[r.Key()] = name
		}
	}

	zerolog.Ctx(ctx).Info().
		Int("lookups", len(resolved)).
		Int("resolved", len(addresses)).
		Dur("elapsed", time.Since(started)).
		Msg("address enrichment finished")
	return addresses, nil
}

func displayName(info *models.AddressInfo) string {
	if info == nil {
		return ""
	}
	if info.AddressName != "" {
		return info.AddressName
	}
	if info.RoadAddress != nil {
		return info.RoadAddress.AddressName
	}
	return ""
}
