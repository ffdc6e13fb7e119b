package models

// MaxRecommendations caps the number of ranked courses returned to a client.
const MaxRecommendations = 3

// ElevationAnalysis holds the model's elevation statistics for a course, in meters.
type ElevationAnalysis struct {
	AverageChange float64 `json:"averageChange"`
	TotalAscent   float64 `json:"totalAscent"`
	TotalDescent  float64 `json:"totalDescent"`
}

// Scores are 0-10 ratings.
type Scores struct {
	Elevation float64 `json:"elevation"`
	Overall   float64 `json:"overall"`
}

// Recommendation is a single ranked judgement about one course.
type Recommendation struct {
	CourseID          int               `json:"courseId"`
	Rank              int               `json:"rank"`
	Summary           string            `json:"summary"`
	Reason            string            `json:"reason"`
	ElevationAnalysis ElevationAnalysis `json:"elevationAnalysis"`
	Scores            Scores            `json:"scores"`
}

// RecommendationSet is the parsed output of the model stage.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
}
