package models

import "strconv"

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key returns the canonical "lat,lon" identity of the coordinate.
// Both components use the shortest decimal form that round-trips to the same
// float64, so two coordinates share a key only when they are bit-identical.
func (c Coordinate) Key() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Valid reports whether the coordinate lies in the latitude/longitude ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// RoadAddress is the road-name variant of an address, when the lookup service knows one.
type RoadAddress struct {
	AddressName  string `json:"address_name"`
	Region1Depth string `json:"region_1depth_name"`
	Region2Depth string `json:"region_2depth_name"`
	Region3Depth string `json:"region_3depth_name"`
	RoadName     string `json:"road_name"`
	BuildingName string `json:"building_name"`
}

// AddressInfo is the reverse-geocoded address of a coordinate: the lot-number
// address with its region hierarchy (province, district, neighbourhood) and an
// optional road address.
type AddressInfo struct {
	AddressName  string       `json:"address_name"`
	Region1Depth string       `json:"region_1depth_name"`
	Region2Depth string       `json:"region_2depth_name"`
	Region3Depth string       `json:"region_3depth_name"`
	RoadAddress  *RoadAddress `json:"road_address,omitempty"`
}

// CoordinateWithAddress pairs a looked-up coordinate with its address. Address is nil
// when the lookup found nothing or failed.
type CoordinateWithAddress struct {
	Coordinate
	Address *AddressInfo `json:"address,omitempty"`
}

// Place is a forward-geocoding hit.
type Place struct {
	ID          int64   `json:"id,omitempty"`
	AddressName string  `json:"address_name"`
	Region1     string  `json:"region_1depth_name,omitempty"`
	Region2     string  `json:"region_2depth_name,omitempty"`
	Region3     string  `json:"region_3depth_name,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// ElevationPoint is one elevation sample returned by the elevation service.
type ElevationPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// Position is a device position estimate from the geolocation service.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}
