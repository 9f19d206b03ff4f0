// Package interval models half-open time ranges and wall-clock times of day.
package interval

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval does not start before it ends.
var ErrInvalidInterval = errors.New("interval: start must be before end")

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New builds an interval and rejects empty or inverted ranges.
func New(start, end time.Time) (Interval, error) {
	i := Interval{Start: start, End: end}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}

	return i, nil
}

// Validate reports ErrInvalidInterval unless Start is strictly before End.
func (i Interval) Validate() error {
	if !i.Start.Before(i.End) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval, i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
	}

	return nil
}

// Valid is the boolean form of Validate.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether a and b share at least one instant. Touching
// intervals do not overlap and degenerate intervals never overlap anything.
func Overlaps(a, b Interval) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}

	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i, o)
}

// ContainsTime reports whether t lies in window, both boundaries included.
func ContainsTime(window Interval, t time.Time) bool {
	if !window.Valid() {
		return false
	}

	return !t.Before(window.Start) && !t.After(window.End)
}

// Contains reports whether o lies entirely inside i, boundaries included.
func (i Interval) Contains(o Interval) bool {
	return o.Valid() && ContainsTime(i, o.Start) && ContainsTime(i, o.End)
}

// Day returns midnight of the start date in the start's location.
func (i Interval) Day() time.Time {
	return DateOf(i.Start)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WholeDays spans every calendar day from first to last inclusive.
func WholeDays(first, last time.Time) Interval {
	return Interval{Start: DateOf(first), End: DateOf(last).AddDate(0, 0, 1)}
}
