package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"running-course-api/internal/apperr"
	"running-course-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// modelAnswer renders a recommendations object for the given (courseId, rank) pairs.
func modelAnswer(t *testing.T, pairs ...[2]int) string {
	t.Helper()
	set := models.RecommendationSet{}
	for _, p := range pairs {
		set.Recommendations = append(set.Recommendations, models.Recommendation{
			CourseID: p[0],
			Rank:     p[1],
			Summary:  fmt.Sprintf("course %d summary", p[0]),
			Reason:   "gentle slope",
			ElevationAnalysis: models.ElevationAnalysis{
				AverageChange: 1.5,
				TotalAscent:   3,
				TotalDescent:  2,
			},
			Scores: models.Scores{Elevation: 9, Overall: 8.5},
		})
	}
	data, err := json.Marshal(set)
	require.NoError(t, err)
	return string(data)
}

func courseIDs(set *models.RecommendationSet) []int {
	ids := make([]int, len(set.Recommendations))
	for i, r := range set.Recommendations {
		ids[i] = r.CourseID
	}
	return ids
}

func fastOptions() RecommendOptions {
	return RecommendOptions{Timeout: time.Second, MaxAttempts: 2, Backoff: time.Millisecond}
}

func TestRecommendationService_Recommend(t *testing.T) {
	tests := []struct {
		name        string
		answers     []string
		expectedIDs []int
		expectKind  apperr.Kind
		expectCalls int
	}{
		{
			name:        "fenced answer",
			answers:     []string{"```json\n" + modelAnswer(t, [2]int{4, 1}, [2]int{9, 2}, [2]int{1, 3}) + "\n```"},
			expectedIDs: []int{4, 9, 1},
			expectCalls: 1,
		},
		{
			name:        "answer wrapped in prose",
			answers:     []string{"Here is my ranking: " + modelAnswer(t, [2]int{2, 1}) + " Good luck!"},
			expectedIDs: []int{2},
			expectCalls: 1,
		},
		{
			name: "seven entries are capped to the first three",
			answers: []string{modelAnswer(t,
				[2]int{5, 2}, [2]int{3, 1}, [2]int{12, 3}, [2]int{1, 4}, [2]int{2, 5}, [2]int{7, 6}, [2]int{8, 7},
			)},
			expectedIDs: []int{5, 3, 12},
			expectCalls: 1,
		},
		{
			name:        "malformed then valid",
			answers:     []string{"I think course 3 is best.", modelAnswer(t, [2]int{3, 1})},
			expectedIDs: []int{3},
			expectCalls: 2,
		},
		{
			name:        "malformed on every attempt",
			answers:     []string{"no json here", `{"recommendations": [`},
			expectKind:  apperr.KindMalformedModelOutput,
			expectCalls: 2,
		},
		{
			name:        "unknown course id",
			answers:     []string{modelAnswer(t, [2]int{13, 1}), modelAnswer(t, [2]int{0, 1})},
			expectKind:  apperr.KindMalformedModelOutput,
			expectCalls: 2,
		},
		{
			name:        "duplicate rank",
			answers:     []string{modelAnswer(t, [2]int{1, 1}, [2]int{2, 1}), modelAnswer(t, [2]int{1, 1}, [2]int{2, 4})},
			expectKind:  apperr.KindMalformedModelOutput,
			expectCalls: 2,
		},
		{
			name:        "duplicate course id",
			answers:     []string{modelAnswer(t, [2]int{4, 1}, [2]int{4, 2}, [2]int{4, 3}), modelAnswer(t, [2]int{4, 1}, [2]int{7, 2}, [2]int{4, 3})},
			expectKind:  apperr.KindMalformedModelOutput,
			expectCalls: 2,
		},
		{
			name:        "duplicate course id then valid",
			answers:     []string{modelAnswer(t, [2]int{4, 1}, [2]int{4, 2}), modelAnswer(t, [2]int{4, 1}, [2]int{7, 2})},
			expectedIDs: []int{4, 7},
			expectCalls: 2,
		},
		{
			name:        "empty recommendations",
			answers:     []string{`{"recommendations": []}`, `{}`},
			expectKind:  apperr.KindMalformedModelOutput,
			expectCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newSeoulCourseSet(t).Annotate(nil)
			model := new(MockTextGenerator)
			for _, answer := range tt.answers {
				model.On("Complete", mock.Anything, mock.Anything).Return(answer, nil).Once()
			}

			result, err := NewRecommendationService(model, fastOptions()).Recommend(context.Background(), set)

			if tt.expectKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectKind, apperr.KindOf(err))
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedIDs, courseIDs(result))
			}
			model.AssertNumberOfCalls(t, "Complete", tt.expectCalls)
		})
	}
}

func TestRecommendationService_Recommend_TimeoutIsDistinctKind(t *testing.T) {
	set := newSeoulCourseSet(t).Annotate(nil)
	model := new(MockTextGenerator)
	model.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return("", context.DeadlineExceeded)

	svc := NewRecommendationService(model, RecommendOptions{
		Timeout:     30 * time.Millisecond,
		MaxAttempts: 2,
		Backoff:     5 * time.Millisecond,
	})
	_, err := svc.Recommend(context.Background(), set)

	require.Error(t, err)
	assert.Equal(t, apperr.KindLLMTimeout, apperr.KindOf(err))
	assert.True(t, apperr.ModelUnavailable(err))
	model.AssertNumberOfCalls(t, "Complete", 2)
}

func TestRecommendationService_Recommend_ModelError(t *testing.T) {
	tests := []struct {
		name     string
		modelErr error
	}{
		{name: "transport failure", modelErr: assert.AnError},
		{name: "empty candidate", modelErr: errors.New("client: gemini returned no content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newSeoulCourseSet(t).Annotate(nil)
			model := new(MockTextGenerator)
			model.On("Complete", mock.Anything, mock.Anything).Return("", tt.modelErr)

			_, err := NewRecommendationService(model, fastOptions()).Recommend(context.Background(), set)

			assert.ErrorIs(t, err, tt.modelErr)
			assert.Equal(t, apperr.KindModelUnavailable, apperr.KindOf(err))
			assert.True(t, apperr.ModelUnavailable(err))
			assert.Equal(t, http.StatusServiceUnavailable, apperr.HTTPStatus(apperr.KindOf(err)))
			model.AssertNumberOfCalls(t, "Complete", 2)
		})
	}
}

func TestRecommendationService_Recommend_StopsWhenCallerGivesUp(t *testing.T) {
	set := newSeoulCourseSet(t).Annotate(nil)
	ctx, cancel := context.WithCancel(context.Background())
	model := new(MockTextGenerator)
	model.On("Complete", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return("garbage", nil)

	_, err := NewRecommendationService(model, fastOptions()).Recommend(ctx, set)

	assert.ErrorIs(t, err, context.Canceled)
	model.AssertNumberOfCalls(t, "Complete", 1)
}

func TestBuildRankingPrompt(t *testing.T) {
	set := newSeoulCourseSet(t)
	set.Courses[0].Midpoints[1].Elevation = 42.5
	annotated := set.Annotate(map[string]string{seoulCityHall.Key(): "서울 중구 태평로1가 31"})

	prompt, err := BuildRankingPrompt(annotated)
	require.NoError(t, err)

	assert.Contains(t, prompt, "12 candidate running courses")
	assert.Contains(t, prompt, `"recommendations"`)
	assert.Contains(t, prompt, `"elevation": 42.5`)
	assert.Contains(t, prompt, "서울 중구 태평로1가 31")
	assert.Equal(t, 12, strings.Count(prompt, `"angle"`))
}
