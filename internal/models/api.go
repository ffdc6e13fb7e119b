package models

import "time"

// CourseGenerationRequest is the body of POST /api/courses/generate.
// DistanceKm is the full round-trip distance; DistanceKmAlt accepts the
// "distance_km" spelling used by some clients.
type CourseGenerationRequest struct {
	Latitude      *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude     *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	DistanceKm    *float64 `json:"distance,omitempty" binding:"omitempty,gt=0,lte=100"`
	DistanceKmAlt *float64 `json:"distance_km,omitempty" binding:"omitempty,gt=0,lte=100"`
}

// Distance returns the requested round-trip distance in kilometers.
func (r CourseGenerationRequest) Distance() (float64, bool) {
	if r.DistanceKm != nil {
		return *r.DistanceKm, true
	}
	if r.DistanceKmAlt != nil {
		return *r.DistanceKmAlt, true
	}
	return 0, false
}

// Waypoint is a client-facing position.
type Waypoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CourseCard is a recommendation joined with its source course, shaped for the client.
type CourseCard struct {
	CourseID          int               `json:"courseId"`
	Rank              int               `json:"rank"`
	Name              string            `json:"name"`
	Distance          string            `json:"distance"`
	EstimatedTime     string            `json:"estimatedTime"`
	Summary           string            `json:"summary"`
	Reason            string            `json:"reason"`
	ElevationAnalysis ElevationAnalysis `json:"elevationAnalysis"`
	Scores            Scores            `json:"scores"`
	Waypoints         []Waypoint        `json:"waypoints"`
}

// GenerationMetadata describes how a course generation response was produced.
type GenerationMetadata struct {
	TotalCourses int       `json:"totalCourses"`
	RadiusKm     float64   `json:"radiusKm"`
	GeneratedAt  time.Time `json:"generatedAt"`
	ElapsedMs    int64     `json:"elapsedMs"`
}

// CourseGenerationResponse is the success body of POST /api/courses/generate.
type CourseGenerationResponse struct {
	Success      bool               `json:"success"`
	Courses      []CourseCard       `json:"courses"`
	BasePosition Waypoint           `json:"basePosition"`
	Metadata     GenerationMetadata `json:"metadata"`
}

// FailureResponse is the body returned for any failed course request.
type FailureResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorKind string `json:"errorKind,omitempty"`
	ElapsedMs int64  `json:"elapsedMs,omitempty"`
}

// ElevationRequest is the body of POST /api/elevation.
type ElevationRequest struct {
	Locations []Coordinate `json:"locations" binding:"required,min=1"`
}

// ElevationResponse is the success body of POST /api/elevation.
type ElevationResponse struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Elevations []ElevationPoint `json:"elevations"`
}

// WifiAccessPoint is a geolocation hint forwarded to the geolocation service.
type WifiAccessPoint struct {
	MacAddress     string `json:"macAddress"`
	SignalStrength int    `json:"signalStrength"`
}

// CellTower is a geolocation hint forwarded to the geolocation service.
type CellTower struct {
	CellID            int `json:"cellId"`
	LocationAreaCode  int `json:"locationAreaCode"`
	MobileCountryCode int `json:"mobileCountryCode"`
	MobileNetworkCode int `json:"mobileNetworkCode"`
}

// GeolocationRequest is the optional body of POST /api/geolocation.
type GeolocationRequest struct {
	WifiAccessPoints []WifiAccessPoint `json:"wifiAccessPoints,omitempty"`
	CellTowers       []CellTower       `json:"cellTowers,omitempty"`
}
