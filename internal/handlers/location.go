package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/models"
	"github.com/voxatlas/weather-location-backend/internal/services"
	pkgerrors "github.com/voxatlas/weather-location-backend/pkg/errors"
)

type LocationHandler struct {
	location *services.LocationService
	geo      *services.GeolocationService
	tz       *services.TimezoneService
	logger   *logrus.Logger
}

func NewLocationHandler(location *services.LocationService, geo *services.GeolocationService, tz *services.TimezoneService, logger *logrus.Logger) *LocationHandler {
	return &LocationHandler{
		location: location,
		geo:      geo,
		tz:       tz,
		logger:   logger,
	}
}

// GetGeolocation resolves a spoken location description
func (h *LocationHandler) GetGeolocation(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		writeError(c, h.logger, models.NewBadRequestError("location query parameter is required"))
		return
	}

	result, err := h.location.GetLocation(c.Request.Context(), location)
	if err != nil {
		if pkgerrors.IsLocationNotFound(err) {
			writeError(c, h.logger, models.NewLocationNotFoundError(location, err))
			return
		}
		h.logger.WithError(err).WithField("location", location).Error("Failed to resolve location")
		writeError(c, h.logger, models.NewUpstreamError("resolve", err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetReverseGeolocation resolves a coordinate pair into the full record
func (h *LocationHandler) GetReverseGeolocation(c *gin.Context) {
	lat, lon, appErr := parseCoordinateParams(c)
	if appErr != nil {
		writeError(c, h.logger, appErr)
		return
	}

	record, err := h.geo.ReverseResolve(c.Request.Context(), lat, lon)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"latitude":  lat,
			"longitude": lon,
		}).Error("Failed to reverse geocode")
		writeError(c, h.logger, models.NewUpstreamError("reverse", err))
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetTimezone resolves the timezone for a coordinate pair. Without
// coordinates the configured device location answers.
func (h *LocationHandler) GetTimezone(c *gin.Context) {
	if c.Query("latitude") == "" && c.Query("longitude") == "" {
		c.JSON(http.StatusOK, h.tz.Resolve(nil))
		return
	}

	lat, lon, appErr := parseCoordinateParams(c)
	if appErr != nil {
		writeError(c, h.logger, appErr)
		return
	}

	info := h.tz.Resolve(&models.Coordinate{Latitude: lat, Longitude: lon})
	c.JSON(http.StatusOK, info)
}

func parseCoordinateParams(c *gin.Context) (float64, float64, *models.AppError) {
	latParam := c.Query("latitude")
	lonParam := c.Query("longitude")
	if latParam == "" || lonParam == "" {
		return 0, 0, models.NewBadRequestError("latitude and longitude query parameters are required")
	}

	lat, err := strconv.ParseFloat(latParam, 64)
	if err != nil {
		return 0, 0, models.NewInvalidCoordinateError("latitude is not a number")
	}
	lon, err := strconv.ParseFloat(lonParam, 64)
	if err != nil {
		return 0, 0, models.NewInvalidCoordinateError("longitude is not a number")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, models.NewInvalidCoordinateError("coordinate out of range")
	}

	return lat, lon, nil
}

// writeError renders a structured error response. Wrapped AppErrors
// keep their own status code.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError("Unexpected error", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.WithError(appErr).Error("Request failed")
	}

	c.JSON(appErr.StatusCode, gin.H{"error": appErr})
}
