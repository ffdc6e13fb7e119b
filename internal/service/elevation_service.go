package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"running-course-api/internal/apperr"
	"running-course-api/internal/client"
	"running-course-api/internal/models"

	"github.com/rs/zerolog"
)

// ElevationProvider is the elevation lookup collaborator. Results come back in
// request order.
type ElevationProvider interface {
	GetElevations(ctx context.Context, coords []models.Coordinate) ([]models.ElevationPoint, error)
	MaxBatch() int
}

// ElevationService attaches elevations to generated courses.
type ElevationService struct {
	provider ElevationProvider
}

// NewElevationService creates a new elevation service
func NewElevationService(provider ElevationProvider) *ElevationService {
	return &ElevationService{provider: provider}
}

// midpointTag remembers where a flattened coordinate came from.
type midpointTag struct {
	courseIdx  int
	courseID   int
	pointIndex int
}

// EnrichCourses fills every midpoint elevation of set using a single batch lookup.
// On any failure the set is left untouched.
func (s *ElevationService) EnrichCourses(ctx context.Context, set *models.CourseSet) error {
	const op = "elevation.enrich"
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	tags := make([]midpointTag, 0, len(set.Courses)*models.MidpointsPerCourse)
	coords := make([]models.Coordinate, 0, cap(tags))
	for ci, course := range set.Courses {
		for pi, mp := range course.Midpoints {
			tags = append(tags, midpointTag{courseIdx: ci, courseID: course.ID, pointIndex: pi})
			coords = append(coords, mp.Coordinate())
		}
	}

	points, err := s.lookup(ctx, op, coords)
	if err != nil {
		return err
	}

	for i, tag := range tags {
		set.Courses[tag.courseIdx].Midpoints[tag.pointIndex].Elevation = roundElevation(points[i].Elevation)
	}

	logger.Info().
		Int("courses", len(set.Courses)).
		Int("points", len(coords)).
		Dur("elapsed", time.Since(started)).
		Msg("elevation enrichment finished")
	return nil
}

// Lookup returns rounded elevations for arbitrary coordinates, in input order.
func (s *ElevationService) Lookup(ctx context.Context, coords []models.Coordinate) ([]models.ElevationPoint, error) {
	const op = "elevation.lookup"
	for _, c := range coords {
		if !c.Valid() {
			return nil, apperr.Errorf(apperr.KindValidation, op, "coordinate out of range: %s", c.Key())
		}
	}

	points, err := s.lookup(ctx, op, coords)
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Elevation = roundElevation(points[i].Elevation)
	}
	return points, nil
}

func (s *ElevationService) lookup(ctx context.Context, op string, coords []models.Coordinate) ([]models.ElevationPoint, error) {
	if limit := s.provider.MaxBatch(); len(coords) > limit {
		return nil, apperr.Errorf(apperr.KindBatchLimitExceeded, op, "%d coordinates exceeds batch limit of %d", len(coords), limit)
	}

	points, err := s.provider.GetElevations(ctx, coords)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("service: elevation lookup: %w", ctx.Err())
		}
		if errors.Is(err, client.ErrBatchLimitExceeded) {
			return nil, apperr.New(apperr.KindBatchLimitExceeded, op, err)
		}
		return nil, apperr.New(apperr.KindUpstream, op, err)
	}
	if len(points) != len(coords) {
		return nil, apperr.Errorf(apperr.KindUpstream, op, "elevation service returned %d points for %d coordinates", len(points), len(coords))
	}
	return points, nil
}

func roundElevation(v float64) float64 {
	return math.Round(v*100) / 100
}
