// Package lifecycle holds the per-occurrence state machine and the derived
// reservation state.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roombooking/internal/engine/interval"
)

var (
	ErrInvalidTransition       = errors.New("lifecycle: invalid transition")
	ErrRejectionReasonRequired = errors.New("lifecycle: rejection reason required")
	ErrOccurrenceEnded         = errors.New("lifecycle: occurrence already ended")
)

type State string

const (
	Pending   State = "pending"
	Accepted  State = "accepted"
	Rejected  State = "rejected"
	Cancelled State = "cancelled"
)

// Terminal states never change again.
func (s State) Terminal() bool {
	return s == Rejected || s == Cancelled
}

// Active states hold the room.
func (s State) Active() bool {
	return s == Pending || s == Accepted
}

func (s State) Valid() bool {
	switch s {
	case Pending, Accepted, Rejected, Cancelled:
		return true
	}

	return false
}

// ReservationState is derived from the occurrence states.
type ReservationState string

const (
	ReservationPending   ReservationState = "pending"
	ReservationAccepted  ReservationState = "accepted"
	ReservationRejected  ReservationState = "rejected"
	ReservationCancelled ReservationState = "cancelled"
	ReservationPartial   ReservationState = "partial"
)

type Occurrence struct {
	Interval        interval.Interval
	State           State
	RejectionReason string
}

// Initial picks the creation state. Any problem rejects the occurrence with
// the problems joined as reason.
func Initial(autoAccept bool, problems []string) (State, string) {
	if len(problems) > 0 {
		return Rejected, strings.Join(problems, "; ")
	}

	if autoAccept {
		return Accepted, ""
	}

	return Pending, ""
}

func transitionError(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Accept moves a pending occurrence to accepted.
func Accept(o *Occurrence) error {
	if o.State != Pending {
		return transitionError(o.State, Accepted)
	}

	o.State = Accepted

	return nil
}

// Reject moves a pending occurrence to rejected with a non-empty reason.
func Reject(o *Occurrence, reason string) error {
	if o.State != Pending {
		return transitionError(o.State, Rejected)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}

	o.State = Rejected
	o.RejectionReason = reason

	return nil
}

// Cancel moves a pending or accepted occurrence to cancelled as long as it
// has not ended at now.
func Cancel(o *Occurrence, now time.Time) error {
	if o.State.Terminal() {
		return transitionError(o.State, Cancelled)
	}

	if !now.Before(o.Interval.End) {
		return fmt.Errorf("%w: %s", ErrOccurrenceEnded, o.Interval)
	}

	o.State = Cancelled

	return nil
}

// Derive returns the uniform state of all occurrences or partial.
func Derive(states []State) ReservationState {
	if len(states) == 0 {
		return ReservationPending
	}

	first := states[0]
	for _, s := range states[1:] {
		if s != first {
			return ReservationPartial
		}
	}

	return ReservationState(first)
}
