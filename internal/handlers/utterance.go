package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/models"
	"github.com/voxatlas/weather-location-backend/internal/services"
	pkgerrors "github.com/voxatlas/weather-location-backend/pkg/errors"
)

type UtteranceHandler struct {
	utterance *services.UtteranceTimeService
	logger    *logrus.Logger
}

func NewUtteranceHandler(utterance *services.UtteranceTimeService, logger *logrus.Logger) *UtteranceHandler {
	return &UtteranceHandler{
		utterance: utterance,
		logger:    logger,
	}
}

// GetDatetime extracts the date/time an utterance refers to
func (h *UtteranceHandler) GetDatetime(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		writeError(c, h.logger, models.NewBadRequestError("text query parameter is required"))
		return
	}
	timezone := c.Query("timezone")
	language := c.Query("language")

	result, err := h.utterance.GetUtteranceDatetime(text, timezone, language)
	if err != nil {
		if pkgerrors.IsNoDatetimeFound(err) {
			writeError(c, h.logger, models.NewDatetimeNotFoundError(text))
			return
		}
		// the only other failure mode is a bad timezone identifier
		writeError(c, h.logger, models.NewInvalidTimezoneError(timezone, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"datetime": result.Format(time.RFC3339),
	})
}

// GetDayPeriod generalizes a datetime into its period of day
func (h *UtteranceHandler) GetDayPeriod(c *gin.Context) {
	dt, appErr := parseDatetimeParam(c)
	if appErr != nil {
		writeError(c, h.logger, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period": services.GetTimePeriod(dt),
	})
}

// GetDayOfWeek renders the speakable weekday for a forecast date
func (h *UtteranceHandler) GetDayOfWeek(c *gin.Context) {
	dt, appErr := parseDatetimeParam(c)
	if appErr != nil {
		writeError(c, h.logger, appErr)
		return
	}
	language := c.Query("language")

	c.JSON(http.StatusOK, gin.H{
		"day_of_week": h.utterance.GetSpeakableDayOfWeek(dt, language),
	})
}

func parseDatetimeParam(c *gin.Context) (time.Time, *models.AppError) {
	param := c.Query("datetime")
	if param == "" {
		return time.Time{}, models.NewBadRequestError("datetime query parameter is required")
	}

	dt, err := services.ParseTimestamp(param)
	if err != nil {
		return time.Time{}, models.NewValidationError("datetime is not a recognized timestamp", param)
	}
	return dt, nil
}
