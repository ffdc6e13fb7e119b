package models

// CoursesPerSet is the number of radial courses generated around a center, one per 30° sector.
const CoursesPerSet = 12

// MidpointsPerCourse is the number of elevation sample points along each course.
const MidpointsPerCourse = 3

// Midpoint is a sample point on a course's straight-line path.
type Midpoint struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Elevation float64 `json:"elevation"`
}

// Coordinate returns the midpoint position without its elevation.
func (m Midpoint) Coordinate() Coordinate {
	return Coordinate{Lat: m.Lat, Lon: m.Lon}
}

// Course is one radial out-and-back candidate. Midpoints sit at 25%, 50% and 75%
// of the Start->End segment.
type Course struct {
	ID        int                          `json:"id"`
	Angle     float64                      `json:"angle"`
	Start     Coordinate                   `json:"start"`
	End       Coordinate                   `json:"end"`
	Midpoints [MidpointsPerCourse]Midpoint `json:"midpoints"`
}

// CourseSet holds the courses generated for a single request.
type CourseSet struct {
	Base     Coordinate `json:"base"`
	RadiusKm float64    `json:"radiusKm"`
	RadiusM  float64    `json:"radiusM"`
	Courses  []Course   `json:"courses"`
}

// Find returns the course with the given id.
func (s *CourseSet) Find(id int) (*Course, bool) {
	for i := range s.Courses {
		if s.Courses[i].ID == id {
			return &s.Courses[i], true
		}
	}
	return nil, false
}

// Endpoint is a course start or end with its resolved address name, if any.
type Endpoint struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	AddressName string  `json:"address_name,omitempty"`
}

// AnnotatedCourse is the read-only view of a Course handed to the recommendation
// stage. It carries address names for the start and end without mutating the course.
type AnnotatedCourse struct {
	ID        int                          `json:"id"`
	Angle     float64                      `json:"angle"`
	Start     Endpoint                     `json:"start"`
	End       Endpoint                     `json:"end"`
	Midpoints [MidpointsPerCourse]Midpoint `json:"midpoints"`
}

// AnnotatedCourseSet is the fully enriched course set.
type AnnotatedCourseSet struct {
	Base     Coordinate        `json:"base"`
	RadiusKm float64           `json:"radiusKm"`
	RadiusM  float64           `json:"radiusM"`
	Courses  []AnnotatedCourse `json:"courses"`
}

// Annotate merges address names from addresses (keyed by Coordinate.Key) into a
// view of the set. Coordinates missing from the map get no address name.
func (s *CourseSet) Annotate(addresses map[string]string) AnnotatedCourseSet {
	out := AnnotatedCourseSet{
		Base:     s.Base,
		RadiusKm: s.RadiusKm,
		RadiusM:  s.RadiusM,
		Courses:  make([]AnnotatedCourse, len(s.Courses)),
	}
	for i, c := range s.Courses {
		out.Courses[i] = AnnotatedCourse{
			ID:        c.ID,
			Angle:     c.Angle,
			Start:     Endpoint{Lat: c.Start.Lat, Lon: c.Start.Lon, AddressName: addresses[c.Start.Key()]},
			End:       Endpoint{Lat: c.End.Lat, Lon: c.End.Lon, AddressName: addresses[c.End.Key()]},
			Midpoints: c.Midpoints,
		}
	}
	return out
}
