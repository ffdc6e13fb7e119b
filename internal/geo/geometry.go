// Package geo implements spherical geometry on a sphere of Earth's mean radius
// and the radial course generator built on top of it.
package geo

import (
	"math"

	"running-course-api/internal/models"
)

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6371000.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great-circle distance between a and b in meters (haversine).
func Distance(a, b models.Coordinate) float64 {
	φ1 := toRad(a.Lat)
	φ2 := toRad(b.Lat)
	Δφ := toRad(b.Lat - a.Lat)
	Δλ := toRad(b.Lon - a.Lon)

	h := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusM * c
}

// Bearing returns the initial compass bearing from a to b in degrees, [0, 360),
// clockwise from north. When a == b the result is 0.
func Bearing(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}
	φ1 := toRad(a.Lat)
	φ2 := toRad(b.Lat)
	Δλ := toRad(b.Lon - a.Lon)

	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)

	θ := math.Mod(toDeg(math.Atan2(y, x))+360, 360)
	if θ >= 360 {
		θ -= 360
	}
	return θ
}

// Destination returns the point reached by travelling distanceM meters from origin
// along the initial bearing bearingDeg. Longitude is normalized into (-180, 180].
func Destination(origin models.Coordinate, distanceM, bearingDeg float64) models.Coordinate {
	φ1 := toRad(origin.Lat)
	λ1 := toRad(origin.Lon)
	θ := toRad(bearingDeg)
	δ := distanceM / EarthRadiusM

	φ2 := math.Asin(math.Sin(φ1)*math.Cos(δ) + math.Cos(φ1)*math.Sin(δ)*math.Cos(θ))
	λ2 := λ1 + math.Atan2(
		math.Sin(θ)*math.Sin(δ)*math.Cos(φ1),
		math.Cos(δ)-math.Sin(φ1)*math.Sin(φ2),
	)

	return models.Coordinate{Lat: toDeg(φ2), Lon: normalizeLon(toDeg(λ2))}
}

func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	lon -= 180
	if lon == -180 {
		return 180
	}
	return lon
}
