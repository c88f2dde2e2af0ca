package services

import (
	"context"
	"time"

	"github.com/voxatlas/weather-location-backend/internal/models"
)

// GeocodingProvider is the upstream geocoder surface the resolution
// pipeline depends on
type GeocodingProvider interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Details(ctx context.Context, osmID int64, osmType string) (*models.DetailsResponse, error)
	Reverse(ctx context.Context, lat, lon float64) (*models.ReverseResponse, error)
}

// ZoneIndex maps coordinates to IANA timezone identifiers without
// network access
type ZoneIndex interface {
	Lookup(lat, lon float64) (zone string, ok bool)
}

// DateTimeExtractor pulls a date/time concept out of a natural-language
// utterance, interpreted relative to an anchor time. ok is false when
// the text contains no such concept.
type DateTimeExtractor interface {
	ExtractDateTime(text string, anchor time.Time, language string) (result time.Time, matched string, ok bool)
}
