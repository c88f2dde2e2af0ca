package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/models"
)

// LocationService is the skill-facing facade over the resolution
// pipeline. It flattens the canonical record down to the handful of
// fields a weather intent needs.
type LocationService struct {
	geo    *GeolocationService
	logger *logrus.Logger
}

// NewLocationService creates the facade
func NewLocationService(geo *GeolocationService, logger *logrus.Logger) *LocationService {
	return &LocationService{
		geo:    geo,
		logger: logger,
	}
}

// GetLocation resolves a spoken location description into the
// flattened result. ErrLocationNotFound passes through untouched so
// the caller can tell "I don't know that place" apart from "I couldn't
// reach the geocoder".
func (s *LocationService) GetLocation(ctx context.Context, location string) (*models.LocationResult, error) {
	record, err := s.geo.Resolve(ctx, location)
	if err != nil {
		return nil, err
	}
	return record.Flatten(), nil
}
