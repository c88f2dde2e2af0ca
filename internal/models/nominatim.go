package models

import (
	"bytes"
	"encoding/json"
)

// TagMap holds Nominatim key/value tag objects. The details endpoint
// serializes empty tag sets as a JSON array instead of an object, so
// decoding accepts both.
type TagMap map[string]string

// UnmarshalJSON implements json.Unmarshaler
func (t *TagMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = nil
		return nil
	}
	if trimmed[0] == '[' {
		*t = nil
		return nil
	}
	m := make(map[string]string)
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*t = m
	return nil
}

// Get returns the tag value, or empty when the key or map is absent
func (t TagMap) Get(key string) string {
	return t[key]
}

// SearchResult is one entry of the forward geocoding response.
// Latitude and longitude arrive as strings and may be absent.
type SearchResult struct {
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Class       string `json:"class"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
}

// DetailsResponse is the place-details response used when a forward
// match carries no usable coordinate
type DetailsResponse struct {
	Category           string `json:"category"`
	LocalName          string `json:"localname"`
	CountryCode        string `json:"country_code"`
	CalculatedPostcode string `json:"calculated_postcode"`
	Names              TagMap `json:"names"`
	AddressTags        TagMap `json:"addresstags"`
	ExtraTags          TagMap `json:"extratags"`
}

// ReverseAddress is the address block of a reverse geocoding response
type ReverseAddress struct {
	City        string `json:"city"`
	Village     string `json:"village"`
	Town        string `json:"town"`
	Hamlet      string `json:"hamlet"`
	County      string `json:"county"`
	Postcode    string `json:"postcode"`
	State       string `json:"state"`
	StateCode   string `json:"state_code"`
	ISO3166Lvl4 string `json:"ISO3166-2-lvl4"`
	ISO3166Lvl6 string `json:"ISO3166-2-lvl6"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// ReverseResponse is the reverse geocoding response
type ReverseResponse struct {
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	DisplayName string         `json:"display_name"`
	Address     ReverseAddress `json:"address"`
}
