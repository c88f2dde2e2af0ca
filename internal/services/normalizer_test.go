package services

import (
	"testing"

	"github.com/voxatlas/weather-location-backend/internal/models"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "first wins", values: []string{"a", "b", "c"}, want: "a"},
		{name: "skips empties", values: []string{"", "", "c"}, want: "c"},
		{name: "all empty", values: []string{"", "", ""}, want: ""},
		{name: "no values", values: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRecordFromReverse(t *testing.T) {
	tests := []struct {
		name     string
		resp     models.ReverseResponse
		queried  models.Coordinate
		validate func(t *testing.T, record *models.LocationRecord)
	}{
		{
			name: "full address",
			resp: models.ReverseResponse{
				Lat:         "39.0051095",
				Lon:         "-94.6905839",
				DisplayName: "Mission, Johnson County, Kansas, United States",
				Address: models.ReverseAddress{
					City:        "Mission",
					County:      "Johnson County",
					Postcode:    "66202",
					State:       "Kansas",
					ISO3166Lvl4: "US-KS",
					Country:     "United States",
					CountryCode: "us",
				},
			},
			queried: models.Coordinate{Latitude: 39.005, Longitude: -94.69},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.Name != "Mission" {
					t.Errorf("Expected city Mission, got %q", record.City.Name)
				}
				if record.City.Code != "66202" {
					t.Errorf("Expected postcode city code, got %q", record.City.Code)
				}
				if record.City.State.Name != "Kansas" {
					t.Errorf("Expected state Kansas, got %q", record.City.State.Name)
				}
				if record.City.State.Code != "US-KS" {
					t.Errorf("Expected state code US-KS, got %q", record.City.State.Code)
				}
				if record.City.State.Country.Code != "US" {
					t.Errorf("Expected uppercased country code, got %q", record.City.State.Country.Code)
				}
				if record.Coordinate == nil || record.Coordinate.Latitude != 39.0051095 {
					t.Errorf("Expected response coordinate, got %+v", record.Coordinate)
				}
			},
		},
		{
			name: "county backstops the city name",
			resp: models.ReverseResponse{
				DisplayName: "Johnson County, Kansas, United States",
				Address: models.ReverseAddress{
					County:      "Johnson County",
					State:       "Kansas",
					Country:     "United States",
					CountryCode: "us",
				},
			},
			queried: models.Coordinate{Latitude: 38.9, Longitude: -94.8},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.Name != "Johnson County" {
					t.Errorf("Expected county as city name, got %q", record.City.Name)
				}
			},
		},
		{
			name: "village and hamlet precedence",
			resp: models.ReverseResponse{
				Address: models.ReverseAddress{
					Village: "Grasberg",
					Hamlet:  "Rautendorf",
					County:  "Osterholz",
				},
			},
			queried: models.Coordinate{Latitude: 53.2, Longitude: 8.9},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.Name != "Grasberg" {
					t.Errorf("Expected village before hamlet, got %q", record.City.Name)
				}
			},
		},
		{
			name: "state falls back to county and code walks the ISO chain",
			resp: models.ReverseResponse{
				Address: models.ReverseAddress{
					City:        "Luleå",
					County:      "Norrbotten County",
					ISO3166Lvl6: "SE-BD-LL",
					CountryCode: "se",
				},
			},
			queried: models.Coordinate{Latitude: 65.58, Longitude: 22.15},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.State.Name != "Norrbotten County" {
					t.Errorf("Expected county as state name, got %q", record.City.State.Name)
				}
				if record.City.State.Code != "SE-BD-LL" {
					t.Errorf("Expected lvl6 code, got %q", record.City.State.Code)
				}
			},
		},
		{
			name: "queried coordinate backstops a response without one",
			resp: models.ReverseResponse{
				Address: models.ReverseAddress{City: "Somewhere"},
			},
			queried: models.Coordinate{Latitude: 10.5, Longitude: 20.25},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.Coordinate == nil {
					t.Fatal("Expected coordinate backstop")
				}
				if record.Coordinate.Latitude != 10.5 || record.Coordinate.Longitude != 20.25 {
					t.Errorf("Expected queried coordinate, got %+v", record.Coordinate)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := recordFromReverse(&tt.resp, tt.queried)
			tt.validate(t, record)
		})
	}
}

func TestRecordFromDetails(t *testing.T) {
	tests := []struct {
		name     string
		search   models.SearchResult
		details  models.DetailsResponse
		validate func(t *testing.T, record *models.LocationRecord)
	}{
		{
			name: "linked place outranks category for the name level",
			search: models.SearchResult{
				Class:       "boundary",
				Type:        "administrative",
				DisplayName: "Kansas, United States",
			},
			details: models.DetailsResponse{
				Category:  "place",
				LocalName: "Kansas",
				ExtraTags: models.TagMap{"linked_place": "state"},
			},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.State.Name != "Kansas" {
					t.Errorf("Expected name on state level, got %q", record.City.State.Name)
				}
				if record.City.Name != "" {
					t.Errorf("Expected empty city name, got %q", record.City.Name)
				}
			},
		},
		{
			name: "category decides when no linked place exists",
			search: models.SearchResult{
				Type:        "administrative",
				DisplayName: "Springfield, Illinois",
			},
			details: models.DetailsResponse{
				Category:  "city",
				LocalName: "Springfield",
			},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.Name != "Springfield" {
					t.Errorf("Expected name on city level, got %q", record.City.Name)
				}
			},
		},
		{
			name: "name lands on the country level",
			search: models.SearchResult{
				DisplayName: "France",
			},
			details: models.DetailsResponse{
				Category:    "country",
				LocalName:   "France",
				CountryCode: "fr",
			},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.State.Country.Name != "France" {
					t.Errorf("Expected name on country level, got %q", record.City.State.Country.Name)
				}
				if record.City.State.Country.Code != "FR" {
					t.Errorf("Expected uppercased code, got %q", record.City.State.Country.Code)
				}
			},
		},
		{
			name: "name precedence walks localname then names then display name",
			search: models.SearchResult{
				DisplayName: "München, Bayern, Deutschland",
			},
			details: models.DetailsResponse{
				Category: "city",
				Names:    models.TagMap{"official_name": "München"},
			},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.Name != "München" {
					t.Errorf("Expected official_name fallback, got %q", record.City.Name)
				}
			},
		},
		{
			name: "address tag country outranks the details country code",
			search: models.SearchResult{
				DisplayName: "Ottawa, Ontario, Canada",
			},
			details: models.DetailsResponse{
				Category:    "city",
				LocalName:   "Ottawa",
				CountryCode: "us",
				AddressTags: models.TagMap{"country": "ca"},
			},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.State.Country.Code != "CA" {
					t.Errorf("Expected address tag country, got %q", record.City.State.Country.Code)
				}
			},
		},
		{
			name: "state fields come from address tags for a city match",
			search: models.SearchResult{
				Lat:         "38.9822282",
				Lon:         "-94.6707917",
				DisplayName: "Overland Park, Johnson County, Kansas, United States",
			},
			details: models.DetailsResponse{
				Category:           "city",
				LocalName:          "Overland Park",
				CountryCode:        "us",
				CalculatedPostcode: "66212",
				AddressTags:        models.TagMap{"state": "Kansas", "state_code": "KS"},
			},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.City.Name != "Overland Park" {
					t.Errorf("Expected city name, got %q", record.City.Name)
				}
				if record.City.State.Name != "Kansas" {
					t.Errorf("Expected tag state name, got %q", record.City.State.Name)
				}
				if record.City.State.Code != "KS" {
					t.Errorf("Expected tag state code, got %q", record.City.State.Code)
				}
				if record.City.Code != "66212" {
					t.Errorf("Expected calculated postcode fallback, got %q", record.City.Code)
				}
				if record.Coordinate == nil || record.Coordinate.Longitude != -94.6707917 {
					t.Errorf("Expected search coordinate, got %+v", record.Coordinate)
				}
			},
		},
		{
			name: "no coordinate leaves the record unresolved",
			search: models.SearchResult{
				DisplayName: "Nowhere in particular",
			},
			details: models.DetailsResponse{
				Category: "place",
			},
			validate: func(t *testing.T, record *models.LocationRecord) {
				if record.Coordinate != nil {
					t.Errorf("Expected nil coordinate, got %+v", record.Coordinate)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := recordFromDetails(&tt.search, &tt.details)
			tt.validate(t, record)
		})
	}
}
