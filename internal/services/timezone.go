package services

import (
	"strings"
	"sync"

	"github.com/ringsaturn/tzf"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/config"
	"github.com/voxatlas/weather-location-backend/internal/models"
	"github.com/voxatlas/weather-location-backend/pkg/metrics"
)

// TimezoneService derives timezone info for resolved locations. It
// prefers the offline polygon index and degrades to the configured
// device timezone, then UTC. Resolution never touches the network and
// never fails.
type TimezoneService struct {
	index   ZoneIndex
	device  config.LocationConfig
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

type tzfIndex struct {
	finder tzf.F
}

// Lookup implements ZoneIndex. tzf takes longitude before latitude.
func (i *tzfIndex) Lookup(lat, lon float64) (string, bool) {
	zone := i.finder.GetTimezoneName(lon, lat)
	return zone, zone != ""
}

var (
	finderOnce sync.Once
	finder     tzf.F
	finderErr  error
)

// newDefaultZoneIndex loads the embedded timezone polygon data. The
// load costs tens of megabytes of memory, so one finder serves the
// whole process.
func newDefaultZoneIndex() (ZoneIndex, error) {
	finderOnce.Do(func() {
		finder, finderErr = tzf.NewDefaultFinder()
	})
	if finderErr != nil {
		return nil, finderErr
	}
	return &tzfIndex{finder: finder}, nil
}

// NewTimezoneService creates the resolver. A failed index load is not
// fatal: the service keeps working through its fallbacks.
func NewTimezoneService(device config.LocationConfig, m *metrics.Metrics, logger *logrus.Logger) *TimezoneService {
	index, err := newDefaultZoneIndex()
	if err != nil {
		logger.WithError(err).Warn("Timezone index unavailable, falling back to configured timezone")
		index = nil
	}
	return newTimezoneService(index, device, m, logger)
}

func newTimezoneService(index ZoneIndex, device config.LocationConfig, m *metrics.Metrics, logger *logrus.Logger) *TimezoneService {
	return &TimezoneService{
		index:   index,
		device:  device,
		metrics: m,
		logger:  logger,
	}
}

// Resolve maps a coordinate to timezone info. A nil coordinate falls
// back to the device coordinate before the index lookup; when neither
// the index nor the configured timezone can answer, UTC is returned.
func (s *TimezoneService) Resolve(coord *models.Coordinate) models.TimezoneInfo {
	if s.index != nil {
		if lat, lon, ok := s.effectiveCoordinate(coord); ok {
			if zone, found := s.index.Lookup(lat, lon); found {
				s.metrics.RecordTimezoneLookup("index")
				return models.TimezoneInfo{
					Name: speakableZoneName(zone),
					Code: zone,
				}
			}
			s.logger.WithFields(logrus.Fields{
				"latitude":  lat,
				"longitude": lon,
			}).Debug("Coordinate outside timezone index coverage")
		}
	}

	if s.device.TimezoneCode != "" {
		s.metrics.RecordTimezoneLookup("config")
		name := s.device.TimezoneName
		if name == "" {
			name = speakableZoneName(s.device.TimezoneCode)
		}
		return models.TimezoneInfo{Name: name, Code: s.device.TimezoneCode}
	}

	s.metrics.RecordTimezoneLookup("default")
	return models.TimezoneInfo{Name: "UTC", Code: "UTC"}
}

func (s *TimezoneService) effectiveCoordinate(coord *models.Coordinate) (float64, float64, bool) {
	if coord != nil {
		return coord.Latitude, coord.Longitude, true
	}
	if s.device.HasCoordinate {
		return s.device.Latitude, s.device.Longitude, true
	}
	return 0, 0, false
}

// speakableZoneName turns an IANA id into something a voice assistant
// can say ("America/New_York" -> "America New_York")
func speakableZoneName(zone string) string {
	return strings.ReplaceAll(zone, "/", " ")
}
