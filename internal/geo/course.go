package geo

import (
	"errors"

	"running-course-api/internal/models"
)

// SectorDeg is the angular spacing between generated course endpoints.
const SectorDeg = 360.0 / models.CoursesPerSet

// ErrInvalidRadius is returned when a course radius is not strictly positive.
var ErrInvalidRadius = errors.New("geo: radius must be positive")

var segmentFractions = [models.MidpointsPerCourse]float64{0.25, 0.5, 0.75}

// TwelveEndpoints returns the points radiusM meters from center at bearings
// 0, 30, ..., 330 degrees, in that order.
func TwelveEndpoints(center models.Coordinate, radiusM float64) [models.CoursesPerSet]models.Coordinate {
	var out [models.CoursesPerSet]models.Coordinate
	for k := range out {
		out[k] = Destination(center, radiusM, float64(k)*SectorDeg)
	}
	return out
}

// DivideSegment returns the points at 25%, 50% and 75% of the great-circle
// segment from start to end.
func DivideSegment(start, end models.Coordinate) [models.MidpointsPerCourse]models.Coordinate {
	bearing := Bearing(start, end)
	dist := Distance(start, end)

	var out [models.MidpointsPerCourse]models.Coordinate
	for i, f := range segmentFractions {
		out[i] = Destination(start, dist*f, bearing)
	}
	return out
}

// BuildCourses generates the twelve radial courses around center. radiusM is the
// one-way radius; halving a round-trip distance is the caller's job.
func BuildCourses(center models.Coordinate, radiusM float64) ([]models.Course, error) {
	if !(radiusM > 0) {
		return nil, ErrInvalidRadius
	}

	endpoints := TwelveEndpoints(center, radiusM)
	courses := make([]models.Course, len(endpoints))
	for i, end := range endpoints {
		c := models.Course{
			ID:    i + 1,
			Angle: float64(i) * SectorDeg,
			Start: center,
			End:   end,
		}
		for j, p := range DivideSegment(center, end) {
			c.Midpoints[j] = models.Midpoint{Lat: p.Lat, Lon: p.Lon}
		}
		courses[i] = c
	}
	return courses, nil
}

// NewCourseSet builds the course set for a round trip of distanceKm kilometers
// starting and ending at center.
func NewCourseSet(center models.Coordinate, distanceKm float64) (*models.CourseSet, error) {
	radiusKm := distanceKm / 2
	radiusM := radiusKm * 1000

	courses, err := BuildCourses(center, radiusM)
	if err != nil {
		return nil, err
	}

	return &models.CourseSet{
		Base:     center,
		RadiusKm: radiusKm,
		RadiusM:  radiusM,
		Courses:  courses,
	}, nil
}
