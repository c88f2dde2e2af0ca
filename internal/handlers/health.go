package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/services"
)

type HealthHandler struct {
	geo     *services.GeolocationService
	logger  *logrus.Logger
	version string
}

func NewHealthHandler(geo *services.GeolocationService, logger *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		geo:     geo,
		logger:  logger,
		version: version,
	}
}

// Health reports process liveness and cache occupancy. The upstream
// geocoder is never probed; Nominatim's usage policy caps traffic at
// one request per second.
func (h *HealthHandler) Health(c *gin.Context) {
	searchTotal, searchFresh, reverseTotal, reverseFresh := h.geo.CacheStats()

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   h.version,
		"caches": gin.H{
			"search": gin.H{
				"entries": searchTotal,
				"fresh":   searchFresh,
			},
			"reverse": gin.H{
				"entries": reverseTotal,
				"fresh":   reverseFresh,
			},
		},
	})
}
