package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Geocoder GeocoderConfig
	Location LocationConfig
	Limits   LimitsConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type GeocoderConfig struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	CacheTTL      time.Duration
	PruneInterval time.Duration
}

// LocationConfig is the device fallback used when a lookup carries no
// coordinates of its own
type LocationConfig struct {
	Latitude      float64
	Longitude     float64
	HasCoordinate bool
	TimezoneName  string
	TimezoneCode  string
}

type LimitsConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env file doesn't exist in production
	}

	serverPort, _ := strconv.Atoi(getEnv("SERVER_PORT", "4680"))

	geocoderTimeout, _ := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "10s"))
	cacheTTL, _ := time.ParseDuration(getEnv("GEOCODE_CACHE_TTL", "600s"))
	pruneInterval, _ := time.ParseDuration(getEnv("CACHE_PRUNE_INTERVAL", "10m"))

	rateLimitRequests, _ := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "60"))
	rateLimitWindow, _ := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	requestTimeout, _ := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))

	location := LocationConfig{
		TimezoneName: getEnv("LOCATION_TIMEZONE_NAME", ""),
		TimezoneCode: getEnv("LOCATION_TIMEZONE_CODE", ""),
	}
	latStr := getEnv("LOCATION_LATITUDE", "")
	lonStr := getEnv("LOCATION_LONGITUDE", "")
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr == nil && lonErr == nil {
			location.Latitude = lat
			location.Longitude = lon
			location.HasCoordinate = true
		}
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: serverPort,
		},
		Geocoder: GeocoderConfig{
			BaseURL:       getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:     getEnv("GEOCODER_USER_AGENT", "weather-location-backend/1.0"),
			Timeout:       geocoderTimeout,
			CacheTTL:      cacheTTL,
			PruneInterval: pruneInterval,
		},
		Location: location,
		Limits: LimitsConfig{
			RateLimitRequests: rateLimitRequests,
			RateLimitWindow:   rateLimitWindow,
			RequestTimeout:    requestTimeout,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
