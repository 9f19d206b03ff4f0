// Package recurrence turns a booking request into its concrete occurrences.
package recurrence

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"roombooking/internal/engine/interval"

	"github.com/teambition/rrule-go"
)

// ErrInvalidRequest marks malformed requests. Nothing is expanded when it is returned.
var ErrInvalidRequest = errors.New("recurrence: invalid request")

// Kind is the repetition rule of a request.
type Kind string

const (
	KindNone    Kind = "none"
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

// DefaultMaxOccurrences bounds expansion when the expander is built without a limit.
const DefaultMaxOccurrences = 5000

var weekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Request describes what to expand. StartDate and EndDate are read as
// calendar dates in Location; their clock part is ignored.
type Request struct {
	StartDate time.Time
	EndDate   time.Time
	Kind      Kind
	// Interval repeats every N days, weeks or months. Zero means 1.
	Interval  int
	Weekdays  []time.Weekday
	StartTime interval.Clock
	EndTime   interval.Clock
	Location  *time.Location
}

func (r Request) location() *time.Location {
	if r.Location != nil {
		return r.Location
	}

	return r.StartDate.Location()
}

func (r Request) firstDay() time.Time {
	y, m, d := r.StartDate.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, r.location())
}

func (r Request) lastDay() time.Time {
	y, m, d := r.EndDate.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, r.location())
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Validate checks the request without expanding it.
func (r Request) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return invalid("start and end dates are required")
	}

	if r.lastDay().Before(r.firstDay()) {
		return invalid("end date %s is before start date %s", r.lastDay().Format(time.DateOnly), r.firstDay().Format(time.DateOnly))
	}

	if !r.StartTime.Valid() || !r.EndTime.Valid() {
		return invalid("time of day out of range")
	}

	if r.EndTime <= r.StartTime {
		return invalid("end time %s must be after start time %s", r.EndTime, r.StartTime)
	}

	if r.Interval < 0 {
		return invalid("interval must be positive")
	}

	switch r.Kind {
	case KindNone, KindDaily, KindMonthly:
	case KindWeekly:
		if len(r.Weekdays) == 0 {
			return invalid("weekly repetition needs at least one weekday")
		}

		for _, day := range r.Weekdays {
			if day < time.Sunday || day > time.Saturday {
				return invalid("unknown weekday %d", day)
			}
		}
	default:
		return invalid("unknown repetition %q", r.Kind)
	}

	return nil
}

// Expander materializes requests into ascending, duplicate free occurrences.
type Expander struct {
	maxOccurrences int
}

func NewExpander(maxOccurrences int) *Expander {
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}

	return &Expander{maxOccurrences: maxOccurrences}
}

// Expand returns every occurrence of req. A request producing more than the
// configured maximum is rejected as a whole.
func (e *Expander) Expand(req Request) ([]interval.Interval, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Kind == KindNone {
		return []interval.Interval{{
			Start: req.StartTime.On(req.firstDay()),
			End:   req.EndTime.On(req.lastDay()),
		}}, nil
	}

	rule, err := rrule.NewRRule(e.option(req))
	if err != nil {
		return nil, invalid("%v", err)
	}

	occurrences := make([]interval.Interval, 0)
	next := rule.Iterator()

	for start, ok := next(); ok; start, ok = next() {
		if len(occurrences) == e.maxOccurrences {
			return nil, invalid("more than %d occurrences", e.maxOccurrences)
		}

		day := interval.DateOf(start)
		occurrences = append(occurrences, interval.Interval{
			Start: req.StartTime.On(day),
			End:   req.EndTime.On(day),
		})
	}

	return normalize(occurrences), nil
}

func (e *Expander) option(req Request) rrule.ROption {
	opt := rrule.ROption{
		Dtstart:  req.StartTime.On(req.firstDay()),
		Until:    req.StartTime.On(req.lastDay()),
		Interval: max(req.Interval, 1),
		Wkst:     rrule.MO,
	}

	switch req.Kind {
	case KindDaily:
		opt.Freq = rrule.DAILY
	case KindWeekly:
		opt.Freq = rrule.WEEKLY
		for _, day := range req.Weekdays {
			opt.Byweekday = append(opt.Byweekday, weekdays[day])
		}
	case KindMonthly:
		// Months without the anchor day produce nothing.
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{req.firstDay().Day()}
	}

	return opt
}

func normalize(occurrences []interval.Interval) []interval.Interval {
	slices.SortFunc(occurrences, func(a, b interval.Interval) int {
		return a.Start.Compare(b.Start)
	})

	return slices.CompactFunc(occurrences, func(a, b interval.Interval) bool {
		return a.Start.Equal(b.Start) && a.End.Equal(b.End)
	})
}
