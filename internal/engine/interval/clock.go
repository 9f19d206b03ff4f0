package interval

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidClock = errors.New("interval: invalid time of day")

// Clock is a wall-clock time of day in seconds after midnight.
type Clock int

const (
	clockLayout        = "15:04"
	clockLayoutSeconds = "15:04:05"
	secondsPerDay      = 24 * 60 * 60
)

// ParseClock accepts "15:04" and "15:04:05".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		t, err = time.Parse(clockLayoutSeconds, s)
	}

	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return NewClock(t.Hour(), t.Minute(), t.Second()), nil
}

// MustClock panics on malformed input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}

	return c
}

func NewClock(hour, minute, second int) Clock {
	return Clock(hour*3600 + minute*60 + second)
}

// ClockOf returns the wall-clock time of t in t's location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute(), t.Second())
}

func (c Clock) Valid() bool {
	return c >= 0 && c < secondsPerDay
}

func (c Clock) Hour() int   { return int(c) / 3600 }
func (c Clock) Minute() int { return int(c) % 3600 / 60 }
func (c Clock) Second() int { return int(c) % 60 }

// On places the clock on the calendar date of day, in day's location.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()

	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, day.Location())
}

func (c Clock) String() string {
	if c.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
	}

	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidClock, string(data))
	}

	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Value stores the clock in a TIME column.
func (c Clock) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second()), nil
}

// Scan reads TIME columns, which the driver returns as text or as a time on year zero.
func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = ClockOf(v)

		return nil
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	}

	return fmt.Errorf("%w: unsupported column type %T", ErrInvalidClock, src)
}

func (c *Clock) scanString(s string) error {
	if len(s) > len(clockLayoutSeconds) {
		s = s[:len(clockLayoutSeconds)]
	}

	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Span builds the interval [day@start, day@end).
func Span(day time.Time, start, end Clock) Interval {
	return Interval{Start: start.On(day), End: end.On(day)}
}
