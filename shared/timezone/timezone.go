package timezone

import (
	"sync/atomic"
	"time"

	"roombooking/config"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

func init() {
	location.Store(Load(config.Get().App.Timezone))
}

// Load resolves an IANA name, falling back to UTC when it is empty or unknown.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("APP_TIMEZONE not set, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown APP_TIMEZONE, using UTC")

		return time.UTC
	}

	log.Debug().Str("timezone", loc.String()).Msg("application timezone loaded")

	return loc
}

// SetLocation overrides the application timezone. Intended for tests.
func SetLocation(loc *time.Location) {
	location.Store(loc)
}

func GetLocation() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today is midnight of the current local day.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay truncates t to midnight in its own location, which differs from
// t.Truncate(24*time.Hour) outside UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads a wall-clock value as local to the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
