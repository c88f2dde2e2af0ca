package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/config"
	"github.com/voxatlas/weather-location-backend/internal/services"
)

func setupUtteranceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests

	svc := services.NewUtteranceTimeService(config.LocationConfig{TimezoneCode: "UTC"}, logger)
	handler := NewUtteranceHandler(svc, logger)

	router := gin.New()
	router.GET("/api/v1/utterance/datetime", handler.GetDatetime)
	router.GET("/api/v1/utterance/day-period", handler.GetDayPeriod)
	router.GET("/api/v1/utterance/day-of-week", handler.GetDayOfWeek)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()

	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error envelope, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestGetDatetimeEndpoint(t *testing.T) {
	router := setupUtteranceRouter()

	status, body := doRequest(t, router, "/api/v1/utterance/datetime?text=weather+tomorrow")
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%v)", status, body)
	}
	if _, ok := body["datetime"].(string); !ok {
		t.Errorf("Expected a datetime field, got %v", body)
	}
}

func TestGetDatetimeEndpointNoDatetime(t *testing.T) {
	router := setupUtteranceRouter()

	status, body := doRequest(t, router, "/api/v1/utterance/datetime?text=what+is+the+humidity")
	if status != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d (%v)", status, body)
	}
	if code := errorCode(t, body); code != "DATETIME_NOT_FOUND" {
		t.Errorf("Expected DATETIME_NOT_FOUND, got %q", code)
	}
}

func TestGetDatetimeEndpointBadTimezone(t *testing.T) {
	router := setupUtteranceRouter()

	status, body := doRequest(t, router, "/api/v1/utterance/datetime?text=weather+tomorrow&timezone=Not%2FAZone")
	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d (%v)", status, body)
	}
	if code := errorCode(t, body); code != "INVALID_TIMEZONE" {
		t.Errorf("Expected INVALID_TIMEZONE, got %q", code)
	}
}

func TestGetDatetimeEndpointMissingText(t *testing.T) {
	router := setupUtteranceRouter()

	status, body := doRequest(t, router, "/api/v1/utterance/datetime")
	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d (%v)", status, body)
	}
}

func TestGetDayPeriodEndpoint(t *testing.T) {
	router := setupUtteranceRouter()

	tests := []struct {
		datetime string
		expected string
	}{
		{"2025-06-04T06:30:00", "morning"},
		{"2025-06-04T14:00:00", "afternoon"},
		{"2025-06-04T18:00:00", "evening"},
		{"2025-06-04T22:00:00", "overnight"},
	}

	for _, tt := range tests {
		status, body := doRequest(t, router, "/api/v1/utterance/day-period?datetime="+tt.datetime)
		if status != http.StatusOK {
			t.Fatalf("Expected 200, got %d (%v)", status, body)
		}
		if period := body["period"]; period != tt.expected {
			t.Errorf("Datetime %s: expected %q, got %v", tt.datetime, tt.expected, period)
		}
	}
}

func TestGetDayPeriodEndpointBadDatetime(t *testing.T) {
	router := setupUtteranceRouter()

	status, body := doRequest(t, router, "/api/v1/utterance/day-period?datetime=yesterday")
	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d (%v)", status, body)
	}
	if code := errorCode(t, body); code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %q", code)
	}
}

func TestGetDayOfWeekEndpoint(t *testing.T) {
	router := setupUtteranceRouter()

	// far enough out that the answer is a weekday, not "today"
	status, body := doRequest(t, router, "/api/v1/utterance/day-of-week?datetime=2030-01-07")
	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%v)", status, body)
	}
	if day := body["day_of_week"]; day != "Monday" {
		t.Errorf("Expected Monday, got %v", day)
	}
}
