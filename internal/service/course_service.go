package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"running-course-api/internal/apperr"
	"running-course-api/internal/deadline"
	"running-course-api/internal/geo"
	"running-course-api/internal/models"

	"github.com/rs/zerolog"
)

// MaxDistanceKm is the longest round trip a client may ask for.
const MaxDistanceKm = 100

// Dump names written when debug dumps are enabled.
const (
	DumpCompleteCourses = "output-complete"
	DumpRecommendations = "course-recommendations"
)

const (
	defaultPaceMinPerKm   = 5.0
	defaultPipelineBudget = 25 * time.Second
)

// CourseElevationEnricher fills midpoint elevations in place.
type CourseElevationEnricher interface {
	EnrichCourses(ctx context.Context, set *models.CourseSet) error
}

// CourseAddressResolver maps coordinate keys to address names.
type CourseAddressResolver interface {
	ResolveCourseAddresses(ctx context.Context, set *models.CourseSet) (map[string]string, error)
}

// CourseRecommender ranks an enriched course set.
type CourseRecommender interface {
	Recommend(ctx context.Context, set models.AnnotatedCourseSet) (*models.RecommendationSet, error)
}

// Dumper persists intermediate results for debugging.
type Dumper interface {
	Enabled() bool
	Write(name string, v any) error
}

// CourseOptions tunes the pipeline.
type CourseOptions struct {
	PipelineTimeout time.Duration
	PaceMinPerKm    float64
	Dumper          Dumper
}

// CourseService runs the whole generation pipeline for one request.
type CourseService struct {
	elevation   CourseElevationEnricher
	addresses   CourseAddressResolver
	recommender CourseRecommender
	opts        CourseOptions
	now         func() time.Time
}

// NewCourseService wires the pipeline stages together.
func NewCourseService(elevation CourseElevationEnricher, addresses CourseAddressResolver, recommender CourseRecommender, opts CourseOptions) *CourseService {
	if opts.PipelineTimeout <= 0 {
		opts.PipelineTimeout = defaultPipelineBudget
	}
	if opts.PaceMinPerKm <= 0 {
		opts.PaceMinPerKm = defaultPaceMinPerKm
	}
	return &CourseService{
		elevation:   elevation,
		addresses:   addresses,
		recommender: recommender,
		opts:        opts,
		now:         time.Now,
	}
}

// Generate builds twelve radial courses around (lat, lon) for a round trip of
// distanceKm, enriches them and returns the ranked course cards.
//
// The whole pipeline shares one deadline. When it expires the in-flight stage is
// abandoned and a PipelineTimeout error is returned, whatever stage was running.
func (s *CourseService) Generate(ctx context.Context, lat, lon, distanceKm float64) (*models.CourseGenerationResponse, error) {
	const op = "courses.generate"

	center := models.Coordinate{Lat: lat, Lon: lon}
	if err := validateGenerateInput(center, distanceKm); err != nil {
		return nil, apperr.New(apperr.KindValidation, op, err)
	}

	started := s.now()
	logger := zerolog.Ctx(ctx).With().
		Float64("lat", lat).
		Float64("lon", lon).
		Float64("distance_km", distanceKm).
		Logger()
	ctx = logger.WithContext(ctx)

	resp, err := deadline.Race(ctx, s.opts.PipelineTimeout, func(ctx context.Context) (*models.CourseGenerationResponse, error) {
		return s.run(ctx, center, distanceKm)
	})
	elapsed := s.now().Sub(started)
	if err != nil {
		if errors.Is(err, deadline.ErrExpired) {
			err = apperr.Errorf(apperr.KindPipelineTimeout, op, "course generation exceeded %s", s.opts.PipelineTimeout)
		} else if !errors.As(err, new(*apperr.Error)) {
			err = apperr.New(apperr.KindInternal, op, err)
		}
		logger.Error().
			Err(err).
			Str("kind", string(apperr.KindOf(err))).
			Dur("elapsed", elapsed).
			Msg("course generation failed")
		return nil, err
	}

	resp.Metadata.ElapsedMs = elapsed.Milliseconds()
	logger.Info().
		Int("courses", len(resp.Courses)).
		Dur("elapsed", elapsed).
		Msg("course generation finished")
	return resp, nil
}

func (s *CourseService) run(ctx context.Context, center models.Coordinate, distanceKm float64) (*models.CourseGenerationResponse, error) {
	logger := zerolog.Ctx(ctx)

	set, err := geo.NewCourseSet(center, distanceKm)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "courses.build", err)
	}
	logger.Info().Int("courses", len(set.Courses)).Float64("radius_m", set.RadiusM).Msg("courses generated")

	if err := s.elevation.EnrichCourses(ctx, set); err != nil {
		return nil, err
	}

	addresses, err := s.addresses.ResolveCourseAddresses(ctx, set)
	if err != nil {
		return nil, err
	}
	annotated := set.Annotate(addresses)
	s.dump(ctx, DumpCompleteCourses, annotated)

	recs, err := s.recommender.Recommend(ctx, annotated)
	if err != nil {
		return nil, err
	}
	s.dump(ctx, DumpRecommendations, recs)

	return &models.CourseGenerationResponse{
		Success:      true,
		Courses:      s.buildCards(set, recs, distanceKm),
		BasePosition: models.Waypoint{Latitude: center.Lat, Longitude: center.Lon},
		Metadata: models.GenerationMetadata{
			TotalCourses: len(set.Courses),
			RadiusKm:     set.RadiusKm,
			GeneratedAt:  s.now().UTC(),
		},
	}, nil
}

func (s *CourseService) buildCards(set *models.CourseSet, recs *models.RecommendationSet, distanceKm float64) []models.CourseCard {
	distance := strconv.FormatFloat(distanceKm, 'f', -1, 64) + " km"
	minutes := int(math.Round(distanceKm * s.opts.PaceMinPerKm))

	cards := make([]models.CourseCard, 0, len(recs.Recommendations))
	for _, rec := range recs.Recommendations {
		card := models.CourseCard{
			CourseID:          rec.CourseID,
			Rank:              rec.Rank,
			Name:              fmt.Sprintf("Course %d", rec.Rank),
			Distance:          distance,
			EstimatedTime:     fmt.Sprintf("%d min", minutes),
			Summary:           rec.Summary,
			Reason:            rec.Reason,
			ElevationAnalysis: rec.ElevationAnalysis,
			Scores:            rec.Scores,
			Waypoints:         []models.Waypoint{},
		}
		if course, ok := set.Find(rec.CourseID); ok {
			card.Waypoints = append(card.Waypoints, models.Waypoint{Latitude: course.End.Lat, Longitude: course.End.Lon})
		}
		cards = append(cards, card)
	}
	return cards
}

func (s *CourseService) dump(ctx context.Context, name string, v any) {
	if s.opts.Dumper == nil || !s.opts.Dumper.Enabled() {
		return
	}
	if err := s.opts.Dumper.Write(name, v); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("dump", name).Msg("debug dump failed")
	}
}

func validateGenerateInput(center models.Coordinate, distanceKm float64) error {
	if !center.Valid() {
		return fmt.Errorf("coordinate out of range: %s", center.Key())
	}
	if math.IsNaN(distanceKm) || distanceKm <= 0 || distanceKm > MaxDistanceKm {
		return fmt.Errorf("distance must be in (0, %d] km, got %v", MaxDistanceKm, distanceKm)
	}
	return nil
}
