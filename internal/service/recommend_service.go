package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"running-course-api/internal/apperr"
	"running-course-api/internal/deadline"
	"running-course-api/internal/models"

	"github.com/rs/zerolog"
)

// TextGenerator is the generative model collaborator.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RecommendOptions bounds the model stage.
type RecommendOptions struct {
	// Timeout applies to each model call on its own.
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// RecommendationService ranks enriched courses with a generative model.
type RecommendationService struct {
	model TextGenerator
	opts  RecommendOptions
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(model TextGenerator, opts RecommendOptions) *RecommendationService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &RecommendationService{model: model, opts: opts}
}

// Recommend asks the model to rank the courses of set and returns at most
// models.MaxRecommendations entries, in the order the model gave them. Every
// attempt runs prompt, call, extraction, parsing and validation from scratch.
func (s *RecommendationService) Recommend(ctx context.Context, set models.AnnotatedCourseSet) (*models.RecommendationSet, error) {
	const op = "recommend"
	logger := zerolog.Ctx(ctx)

	prompt, err := BuildRankingPrompt(set)
	if err != nil {
		return nil, apperr.New(apperr.KindInternal, op, err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, s.opts.Backoff); err != nil {
				return nil, fmt.Errorf("service: recommendation backoff: %w", err)
			}
		}

		started := time.Now()
		result, err := s.attempt(ctx, prompt, set)
		if err == nil {
			logger.Info().
				Int("attempt", attempt).
				Int("recommendations", len(result.Recommendations)).
				Dur("elapsed", time.Since(started)).
				Msg("recommendation finished")
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("service: recommendation: %w", ctx.Err())
		}

		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("kind", string(apperr.KindOf(err))).
			Dur("elapsed", time.Since(started)).
			Msg("recommendation attempt failed")
		lastErr = err
	}
	return nil, lastErr
}

func (s *RecommendationService) attempt(ctx context.Context, prompt string, set models.AnnotatedCourseSet) (*models.RecommendationSet, error) {
	const op = "recommend.attempt"

	text, err := deadline.Race(ctx, s.opts.Timeout, func(ctx context.Context) (string, error) {
		return s.model.Complete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, deadline.ErrExpired) {
			return nil, apperr.Errorf(apperr.KindLLMTimeout, op, "model did not answer within %s", s.opts.Timeout)
		}
		return nil, apperr.New(apperr.KindModelUnavailable, op, err)
	}

	return ParseRecommendations(text, set)
}

// ParseRecommendations extracts the recommendation object from raw model text,
// caps it at models.MaxRecommendations and checks it against set.
func ParseRecommendations(text string, set models.AnnotatedCourseSet) (*models.RecommendationSet, error) {
	const op = "recommend.parse"

	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, apperr.New(apperr.KindMalformedModelOutput, op, err)
	}

	var result models.RecommendationSet
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, apperr.New(apperr.KindMalformedModelOutput, op, err)
	}

	if len(result.Recommendations) > models.MaxRecommendations {
		result.Recommendations = result.Recommendations[:models.MaxRecommendations]
	}
	if err := validateRecommendations(result.Recommendations, set); err != nil {
		return nil, apperr.New(apperr.KindMalformedModelOutput, op, err)
	}
	return &result, nil
}

func validateRecommendations(recs []models.Recommendation, set models.AnnotatedCourseSet) error {
	if len(recs) == 0 {
		return errors.New("no recommendations")
	}

	known := make(map[int]bool, len(set.Courses))
	for _, c := range set.Courses {
		known[c.ID] = true
	}

	ranks := make(map[int]bool, len(recs))
	seen := make(map[int]bool, len(recs))
	for _, r := range recs {
		if !known[r.CourseID] {
			return fmt.Errorf("unknown courseId %d", r.CourseID)
		}
		if seen[r.CourseID] {
			return fmt.Errorf("duplicate courseId %d", r.CourseID)
		}
		seen[r.CourseID] = true
		if r.Rank < 1 || r.Rank > models.MaxRecommendations {
			return fmt.Errorf("rank %d out of range", r.Rank)
		}
		if ranks[r.Rank] {
			return fmt.Errorf("duplicate rank %d", r.Rank)
		}
		ranks[r.Rank] = true
	}
	return nil
}

const rankingInstructions = `You are a running course recommendation expert.
Below are %d candidate running courses around (%.6f, %.6f), each %.1f km from start to turnaround.
Every course lists its start, its end and three midpoints at 25%%, 50%% and 75%% of the way, each with an elevation in meters.

Rank the %d courses that are easiest to run:
- Look at the elevation change between consecutive points (start, midpoints in order), not only the net difference between start and end.
- Prefer a low average change, low total ascent and total descent, and few switches between climbing and descending.
- Give each course an elevation score and an overall score from 0 to 10.

Respond with ONLY a single JSON object, without markdown fences or any other text, in exactly this shape:
{"recommendations":[{"courseId":<course id>,"rank":<1-%d>,"summary":"<one sentence>","reason":"<why this course>","elevationAnalysis":{"averageChange":<meters>,"totalAscent":<meters>,"totalDescent":<meters>},"scores":{"elevation":<0-10>,"overall":<0-10>}}]}

Courses:
%s
`

// BuildRankingPrompt renders the ranking instructions followed by the courses as JSON.
func BuildRankingPrompt(set models.AnnotatedCourseSet) (string, error) {
	data, err := json.MarshalIndent(set.Courses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("service: encode courses for prompt: %w", err)
	}

	return strings.TrimSpace(fmt.Sprintf(rankingInstructions,
		len(set.Courses), set.Base.Lat, set.Base.Lon, set.RadiusKm,
		models.MaxRecommendations, models.MaxRecommendations,
		data,
	)), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
