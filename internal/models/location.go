package models

import "strconv"

// Coordinate is a latitude/longitude pair in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseCoordinate parses the string lat/lon pair the geocoder returns.
// Both values must parse for the coordinate to count as resolved.
func ParseCoordinate(lat, lon string) (Coordinate, bool) {
	if lat == "" || lon == "" {
		return Coordinate{}, false
	}
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Coordinate{}, false
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: latF, Longitude: lonF}, true
}

// Country is the outermost administrative level
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// State is a first-level administrative division nested inside its country
type State struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Country Country `json:"country"`
}

// City is the innermost administrative level nested inside its state
type City struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	State State  `json:"state"`
}

// TimezoneInfo carries an IANA zone identifier and a speakable name
type TimezoneInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// LocationRecord is the canonical normalized place record. A nil
// Coordinate means the lookup produced no usable position. Records are
// built fresh per resolution and not mutated afterwards.
type LocationRecord struct {
	Address    string       `json:"address"`
	City       City         `json:"city"`
	Coordinate *Coordinate  `json:"coordinate,omitempty"`
	Timezone   TimezoneInfo `json:"timezone"`
}

// LocationResult is the flattened projection handed to skill clients
type LocationResult struct {
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Flatten projects the canonical record into the client-facing shape
func (r *LocationRecord) Flatten() *LocationResult {
	result := &LocationResult{
		City:     r.City.Name,
		Region:   r.City.State.Name,
		Country:  r.City.State.Country.Name,
		Timezone: r.Timezone.Code,
	}
	if r.Coordinate != nil {
		result.Latitude = r.Coordinate.Latitude
		result.Longitude = r.Coordinate.Longitude
	}
	return result
}
