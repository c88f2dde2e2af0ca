package services

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/config"
	pkgerrors "github.com/voxatlas/weather-location-backend/pkg/errors"
)

// UtteranceTimeService translates spoken utterances and forecast
// timestamps into the local date/time concepts a weather reply speaks
type UtteranceTimeService struct {
	extractor DateTimeExtractor
	device    config.LocationConfig
	logger    *logrus.Logger
	now       func() time.Time
}

// NewUtteranceTimeService creates the service with the default
// natural-language extractor
func NewUtteranceTimeService(device config.LocationConfig, logger *logrus.Logger) *UtteranceTimeService {
	return newUtteranceTimeService(newWhenExtractor(), device, logger, time.Now)
}

func newUtteranceTimeService(extractor DateTimeExtractor, device config.LocationConfig, logger *logrus.Logger, now func() time.Time) *UtteranceTimeService {
	return &UtteranceTimeService{
		extractor: extractor,
		device:    device,
		logger:    logger,
		now:       now,
	}
}

// GetUtteranceDatetime extracts the date or time an utterance refers
// to. When a timezone is given the utterance is anchored to the
// current moment in that zone, otherwise to the device zone. Returns
// ErrNoDatetimeFound when the utterance carries no date/time concept.
func (s *UtteranceTimeService) GetUtteranceDatetime(text, timezone, language string) (time.Time, error) {
	anchor := s.now()
	if timezone != "" {
		loc, err := GetTzInfo(timezone)
		if err != nil {
			return time.Time{}, err
		}
		anchor = anchor.In(loc)
	} else {
		anchor = anchor.In(s.deviceLocation())
	}

	result, matched, ok := s.extractor.ExtractDateTime(text, anchor, language)
	if !ok {
		return time.Time{}, pkgerrors.Wrapf(pkgerrors.ErrNoDatetimeFound, "utterance %q", text)
	}

	s.logger.WithFields(logrus.Fields{
		"matched":  matched,
		"datetime": result.Format(time.RFC3339),
	}).Debug("Extracted datetime from utterance")

	return result, nil
}

// GetTzInfo loads the IANA zone for a timezone identifier
func GetTzInfo(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "unknown timezone %q", timezone)
	}
	return loc, nil
}

// ConvertToLocalDatetime interprets a forecast timestamp and returns
// the instant in the device zone, which is the zone replies are spoken
// in. Timestamps without an offset are assumed to be UTC. The report's
// own timezone is validated so a bogus upstream value surfaces here
// rather than in a later formatting step.
func (s *UtteranceTimeService) ConvertToLocalDatetime(isoTimestamp, timezone string) (time.Time, error) {
	t, err := ParseTimestamp(isoTimestamp)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := GetTzInfo(timezone); err != nil {
		return time.Time{}, err
	}
	return t.In(s.deviceLocation()), nil
}

// GetSpeakableDayOfWeek renders the day a forecast belongs to the way
// it should be spoken. The anchor is nudged back a day when speaking
// tomorrow's forecast so the reply names the weekday instead of saying
// "tomorrow" twice in one sentence.
func (s *UtteranceTimeService) GetSpeakableDayOfWeek(dateToSpeak time.Time, language string) string {
	now := s.now().In(s.deviceLocation())
	tomorrow := now.AddDate(0, 0, 1)

	anchor := now
	if sameDate(dateToSpeak, tomorrow) {
		anchor = now.AddDate(0, 0, -1)
	}

	speakableDate := niceDate(dateToSpeak, anchor, language)
	return strings.Split(speakableDate, ",")[0]
}

// GetTimePeriod generalizes a clock time into the period of day used
// in forecast phrasing
func GetTimePeriod(intentDatetime time.Time) string {
	hour := intentDatetime.Hour()
	switch {
	case hour >= 1 && hour < 5:
		return "early morning"
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 20:
		return "evening"
	default:
		return "overnight"
	}
}

// ChunkList splits items into consecutive chunks of at most size
// elements, preserving order. The final chunk may be shorter. Empty
// input or a non-positive size yields no chunks.
func ChunkList[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

func (s *UtteranceTimeService) deviceLocation() *time.Location {
	if s.device.TimezoneCode != "" {
		if loc, err := time.LoadLocation(s.device.TimezoneCode); err == nil {
			return loc
		}
	}
	return time.Local
}

// niceDate renders a date for speech. The anchor's own date renders as
// "today", one day ahead as "tomorrow", anything else as the localized
// weekday and date.
func niceDate(dt, anchor time.Time, language string) string {
	switch {
	case sameDate(dt, anchor):
		return relativeDayWord(language, 0)
	case sameDate(dt, anchor.AddDate(0, 0, 1)):
		return relativeDayWord(language, 1)
	default:
		return monday.Format(dt, "Monday, January 2", mondayLocale(language))
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// relativeDayWords holds the spoken words for today and tomorrow in
// the languages the skill ships voices for
var relativeDayWords = map[string][2]string{
	"en": {"today", "tomorrow"},
	"de": {"heute", "morgen"},
	"fr": {"aujourd'hui", "demain"},
	"es": {"hoy", "mañana"},
	"it": {"oggi", "domani"},
	"nl": {"vandaag", "morgen"},
	"pt": {"hoje", "amanhã"},
	"sv": {"idag", "imorgon"},
	"da": {"i dag", "i morgen"},
}

func relativeDayWord(language string, offset int) string {
	words, ok := relativeDayWords[languagePrefix(language)]
	if !ok {
		words = relativeDayWords["en"]
	}
	return words[offset]
}

func mondayLocale(language string) monday.Locale {
	prefix := languagePrefix(language)
	switch prefix {
	case "de":
		return monday.LocaleDeDE
	case "fr":
		return monday.LocaleFrFR
	case "es":
		return monday.LocaleEsES
	case "it":
		return monday.LocaleItIT
	case "nl":
		return monday.LocaleNlNL
	case "pt":
		if strings.Contains(strings.ToLower(language), "br") {
			return monday.LocalePtBR
		}
		return monday.LocalePtPT
	case "sv":
		return monday.LocaleSvSE
	case "da":
		return monday.LocaleDaDK
	case "pl":
		return monday.LocalePlPL
	case "ru":
		return monday.LocaleRuRU
	case "ja":
		return monday.LocaleJaJP
	case "zh":
		return monday.LocaleZhCN
	default:
		return monday.LocaleEnUS
	}
}

// languagePrefix normalizes tags like "en-US" or "de_DE" to their
// primary subtag
func languagePrefix(language string) string {
	lower := strings.ToLower(strings.TrimSpace(language))
	for i, r := range lower {
		if r == '-' || r == '_' {
			return lower[:i]
		}
	}
	return lower
}

// ParseTimestamp accepts the timestamp shapes weather providers emit:
// full RFC3339, offset-less date-times and bare dates. Offset-less
// values are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pkgerrors.Newf("unparseable timestamp %q", value)
}

// whenExtractor wraps the when natural-language parser. Only the
// English rule set ships; utterances in other languages still parse
// when they contain recognizable absolute dates.
type whenExtractor struct {
	parser *when.Parser
}

func newWhenExtractor() *whenExtractor {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &whenExtractor{parser: w}
}

// ExtractDateTime implements DateTimeExtractor
func (e *whenExtractor) ExtractDateTime(text string, anchor time.Time, language string) (time.Time, string, bool) {
	if anchor.IsZero() {
		anchor = time.Now()
	}
	result, err := e.parser.Parse(text, anchor)
	if err != nil || result == nil {
		return time.Time{}, "", false
	}
	return result.Time, result.Text, true
}
