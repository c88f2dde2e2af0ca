package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/cache"
	"github.com/voxatlas/weather-location-backend/internal/models"
	pkgerrors "github.com/voxatlas/weather-location-backend/pkg/errors"
	"github.com/voxatlas/weather-location-backend/pkg/metrics"
)

// GeolocationService resolves free-text place descriptions and
// coordinate pairs into canonical location records. Forward lookups
// and reverse lookups carry independent caches so a device asking
// about its own position every few minutes does not re-query the
// upstream geocoder.
type GeolocationService struct {
	provider     GeocodingProvider
	tz           *TimezoneService
	searchCache  *cache.TTLCache[string, *models.LocationRecord]
	reverseCache *cache.TTLCache[models.Coordinate, *models.LocationRecord]
	metrics      *metrics.Metrics
	logger       *logrus.Logger
}

// NewGeolocationService creates the resolution pipeline
func NewGeolocationService(provider GeocodingProvider, tz *TimezoneService, cacheTTL time.Duration, m *metrics.Metrics, logger *logrus.Logger) *GeolocationService {
	return newGeolocationService(provider, tz, cacheTTL, m, logger, time.Now)
}

func newGeolocationService(provider GeocodingProvider, tz *TimezoneService, cacheTTL time.Duration, m *metrics.Metrics, logger *logrus.Logger, now func() time.Time) *GeolocationService {
	return &GeolocationService{
		provider:     provider,
		tz:           tz,
		searchCache:  cache.NewWithClock[string, *models.LocationRecord](cacheTTL, now),
		reverseCache: cache.NewWithClock[models.Coordinate, *models.LocationRecord](cacheTTL, now),
		metrics:      m,
		logger:       logger,
	}
}

// Resolve turns a spoken location description into the canonical
// record. When the best forward match carries a usable coordinate the
// reverse endpoint is authoritative for administrative naming; a match
// without one falls back to the place-details endpoint.
func (s *GeolocationService) Resolve(ctx context.Context, location string) (*models.LocationRecord, error) {
	if record, ok := s.searchCache.Get(location); ok {
		s.metrics.RecordCacheEvent("search", "hit")
		return record, nil
	}
	s.metrics.RecordCacheEvent("search", "miss")

	start := time.Now()
	results, err := s.provider.Search(ctx, location)
	s.metrics.RecordGeocodeRequest("search", err == nil, time.Since(start))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "forward geocode failed")
	}
	if len(results) == 0 {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrLocationNotFound, "no geocoding results for %q", location)
	}

	best := results[0]
	var record *models.LocationRecord
	if coord, ok := models.ParseCoordinate(best.Lat, best.Lon); ok {
		record, err = s.ReverseResolve(ctx, coord.Latitude, coord.Longitude)
	} else {
		record, err = s.resolveDetails(ctx, &best)
	}
	if err != nil {
		return nil, err
	}

	s.searchCache.Set(location, record)
	s.metrics.UpdateCacheEntries("search", s.searchCache.Len())

	s.logger.WithFields(logrus.Fields{
		"location": location,
		"city":     record.City.Name,
		"country":  record.City.State.Country.Name,
		"timezone": record.Timezone.Code,
	}).Debug("Resolved location")

	return record, nil
}

// ReverseResolve turns a coordinate pair into the canonical record.
// Results are cached independently of forward lookups, keyed on the
// exact pair.
func (s *GeolocationService) ReverseResolve(ctx context.Context, lat, lon float64) (*models.LocationRecord, error) {
	key := models.Coordinate{Latitude: lat, Longitude: lon}
	if record, ok := s.reverseCache.Get(key); ok {
		s.metrics.RecordCacheEvent("reverse", "hit")
		return record, nil
	}
	s.metrics.RecordCacheEvent("reverse", "miss")

	start := time.Now()
	resp, err := s.provider.Reverse(ctx, lat, lon)
	s.metrics.RecordGeocodeRequest("reverse", err == nil, time.Since(start))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "reverse geocode failed")
	}

	record := recordFromReverse(resp, key)
	record.Timezone = s.tz.Resolve(record.Coordinate)

	s.reverseCache.Set(key, record)
	s.metrics.UpdateCacheEntries("reverse", s.reverseCache.Len())

	s.logger.WithFields(logrus.Fields{
		"latitude":  lat,
		"longitude": lon,
		"city":      record.City.Name,
		"country":   record.City.State.Country.Name,
	}).Debug("Resolved reverse geolocation")

	return record, nil
}

func (s *GeolocationService) resolveDetails(ctx context.Context, best *models.SearchResult) (*models.LocationRecord, error) {
	start := time.Now()
	details, err := s.provider.Details(ctx, best.OsmID, best.OsmType)
	s.metrics.RecordGeocodeRequest("details", err == nil, time.Since(start))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "place details lookup failed")
	}

	record := recordFromDetails(best, details)
	record.Timezone = s.tz.Resolve(record.Coordinate)
	return record, nil
}

// PruneCaches removes expired entries from both caches and returns how
// many were dropped
func (s *GeolocationService) PruneCaches() (searchPruned, reversePruned int) {
	searchPruned = s.searchCache.Prune()
	reversePruned = s.reverseCache.Prune()
	s.metrics.UpdateCacheEntries("search", s.searchCache.Len())
	s.metrics.UpdateCacheEntries("reverse", s.reverseCache.Len())
	return searchPruned, reversePruned
}

// CacheStats reports entry counts for the health endpoint
func (s *GeolocationService) CacheStats() (searchTotal, searchFresh, reverseTotal, reverseFresh int) {
	searchTotal, searchFresh = s.searchCache.Stats()
	reverseTotal, reverseFresh = s.reverseCache.Stats()
	return
}
