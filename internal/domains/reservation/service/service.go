package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"roombooking/config"
	"roombooking/infras/metrics"
	"roombooking/infras/otel"
	"roombooking/infras/postgres"
	blockingService "roombooking/internal/domains/blocking/service"
	outboxModel "roombooking/internal/domains/outbox/model"
	"roombooking/internal/domains/reservation/model"
	"roombooking/internal/domains/reservation/model/dto"
	"roombooking/internal/domains/reservation/repository"
	roomModel "roombooking/internal/domains/room/model"
	roomService "roombooking/internal/domains/room/service"
	"roombooking/internal/engine/availability"
	"roombooking/internal/engine/conflict"
	"roombooking/internal/engine/interval"
	"roombooking/internal/engine/lifecycle"
	"roombooking/internal/engine/recurrence"
	"roombooking/permissions"
	"roombooking/shared"
	"roombooking/shared/cache"
	"roombooking/shared/constant"
	"roombooking/shared/failure"
	gModel "roombooking/shared/model"
	"roombooking/shared/timezone"
	"roombooking/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheCalendar        = "reservation:calendar"
	cacheCalendarVersion = "reservation:calendar-version"

	expiryBatchSize = 500
	expiredReason   = "not confirmed before start"
)

type Reservation interface {
	// Expand validates the request and materializes its occurrences.
	Expand(ctx context.Context, req dto.CreateReservationRequest) ([]interval.Interval, error)
	CheckAvailability(ctx context.Context, roomID, requester string, occurrences []interval.Interval) (availability.Report, error)
	// DetectConflicts compares against the stored occurrences without locking.
	DetectConflicts(ctx context.Context, roomID string, occurrences []interval.Interval) (conflict.Report, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Approve(ctx context.Context, id string, req dto.ApproveRequest) (dto.ReservationResponse, error)
	Reject(ctx context.Context, id string, req dto.RejectRequest) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Calendar(ctx context.Context, req dto.CalendarRequest) (dto.CalendarResponse, error)
	// ExpirePending rejects pending occurrences that started without a decision.
	ExpirePending(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	rooms     roomService.Room
	blockings blockingService.Blocking
	policy    permissions.Policy
	expander  *recurrence.Expander
	checker   *availability.Checker
	metrics   *metrics.Metrics
	cache     cache.RedisCache
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	rooms roomService.Room,
	blockings blockingService.Blocking,
	policy permissions.Policy,
	m *metrics.Metrics,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	opts := availability.Options{
		DefaultLimitDays: cfg.Booking.DefaultLimitDays,
		AllowPast:        cfg.Booking.AllowPast,
	}

	return &serviceImpl{
		repo:      repo,
		rooms:     rooms,
		blockings: blockings,
		policy:    policy,
		expander:  recurrence.NewExpander(cfg.Booking.MaxOccurrences),
		checker:   availability.NewChecker(policy, opts, timezone.Now),
		metrics:   m,
		cache:     cache,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Expand(ctx context.Context, req dto.CreateReservationRequest) (res []interval.Interval, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Expand")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return nil, err //nolint:wrapcheck
	}

	rr, err := req.ToRecurrence(timezone.GetLocation())
	if err != nil {
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	res, err = s.expander.Expand(rr)
	if err != nil {
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	scope.SetAttribute("occurrences", len(res))

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID, requester string, occurrences []interval.Interval) (res availability.Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(&err)

	room, err := s.rooms.Aggregate(ctx, roomID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return s.check(ctx, room, requester, occurrences)
}

func (s *serviceImpl) check(ctx context.Context, room roomModel.Aggregate, requester string, occurrences []interval.Interval) (availability.Report, error) {
	if len(occurrences) == 0 {
		return availability.Report{}, nil
	}

	span := envelope(occurrences)

	blockings, err := s.blockings.ActiveForRoom(ctx, room.Room.ID, span.Start, span.End)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return s.checker.Check(ctx, room.Availability(), blockings, requester, occurrences), nil
}

func (s *serviceImpl) DetectConflicts(ctx context.Context, roomID string, occurrences []interval.Interval) (res conflict.Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.DetectConflicts")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(occurrences) == 0 {
		return conflict.Report{}, nil
	}

	span := envelope(occurrences)

	stored, err := s.repo.OccurrencesInRange(ctx, roomID, span.Start, span.End, lifecycle.Pending, lifecycle.Accepted)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to load existing occurrences")

		return nil, fmt.Errorf("failed to load existing occurrences: %w", err)
	}

	return conflict.Detect(roomID, occurrences, existing(stored)), nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	started := time.Now()
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	occurrences, err := s.Expand(ctx, req)
	if err != nil {
		return res, err
	}

	room, err := s.rooms.Aggregate(ctx, req.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !room.Room.Active {
		return res, failure.BadRequestFromString("room is not active") //nolint:wrapcheck
	}

	report, err := s.check(ctx, room, user, occurrences)
	if err != nil {
		return res, err
	}

	subject := permissions.Subject{RoomID: room.Room.ID, RoomOwner: room.Room.Owner}
	override := s.policy.CanOverride(ctx, user, subject)
	autoAccept := room.Room.AutoAccept || s.policy.CanModerate(ctx, user, subject)

	bookedFor := req.BookedFor
	if bookedFor == constant.Empty {
		bookedFor = user
	}

	now := timezone.Now()
	reservation := model.Reservation{
		ID:             uuid.NewString(),
		RoomID:         room.Room.ID,
		RepeatKind:     req.Repeat,
		RepeatInterval: max(req.Interval, 1),
		Weekdays:       req.WeekdayValues(),
		StartDT:        occurrences[0].Start,
		EndDT:          occurrences[len(occurrences)-1].End,
		BookedFor:      bookedFor,
		Reason:         req.Reason,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	var (
		outcomes  []model.Outcome
		conflicts conflict.Report
	)

	err = s.repo.WithRoomLock(ctx, room.Room.ID, func(tx repository.Tx) error {
		stored, err := tx.ActiveOccurrences(ctx, room.Room.ID, reservation.StartDT, reservation.EndDT)
		if err != nil {
			return err //nolint:wrapcheck
		}

		conflicts = conflict.Detect(room.Room.ID, occurrences, existing(stored))
		outcomes = decide(occurrences, report, conflicts, autoAccept, override)

		if !bookable(outcomes, req.Strict) {
			return &model.PartialFailure{Outcomes: outcomes}
		}

		rows := make([]model.Occurrence, len(outcomes))
		for i, o := range outcomes {
			rows[i] = model.Occurrence{
				ReservationID:   reservation.ID,
				RoomID:          reservation.RoomID,
				StartDT:         o.Occurrence.Start,
				EndDT:           o.Occurrence.End,
				State:           o.State,
				RejectionReason: o.Reason,
				ModifiedAt:      now,
				ModifiedBy:      user,
			}
		}

		reservation.State = lifecycle.Derive(model.States(rows))

		if err := tx.InsertReservation(ctx, reservation, rows); err != nil {
			return err //nolint:wrapcheck
		}

		event, err := outboxModel.NewEvent(outboxModel.AggregateReservation, reservation.ID, outboxModel.EventReservationCreated, model.EventPayload{
			ReservationID: reservation.ID,
			RoomID:        reservation.RoomID,
			BookedFor:     reservation.BookedFor,
			State:         string(reservation.State),
			Dates:         dates(rows, nil),
			By:            user,
		}, now)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return tx.AddOutboxEvents(ctx, event)
	})

	s.recordEvaluation(report, conflicts)

	if err != nil {
		return res, s.persistError(err, room.Room.ID, "create reservation")
	}

	for _, o := range outcomes {
		s.metrics.IncOccurrence(string(o.State))
	}

	s.metrics.ObserveCreateDuration(time.Since(started).Seconds())
	s.invalidateCalendar(ctx, room.Room.ID)

	log.Info().
		Str("reservation", reservation.ID).
		Str("room", reservation.RoomID).
		Str("state", string(reservation.State)).
		Int("occurrences", len(outcomes)).
		Msg("reservation created")

	res.FromModel(reservation, nil)
	res.WithOutcomes(outcomes)

	return res, nil
}

func (s *serviceImpl) recordEvaluation(report availability.Report, conflicts conflict.Report) {
	for kind, n := range report.Counts() {
		for range n {
			s.metrics.IncViolation(string(kind))
		}
	}

	s.metrics.IncConflicts(conflicts.Total())
}

// decide turns the availability and conflict reports into one creation
// decision per occurrence. An override lifts bookable-hours and limit
// violations; conflicts are never lifted.
func decide(occurrences []interval.Interval, report availability.Report, conflicts conflict.Report, autoAccept, override bool) []model.Outcome {
	outcomes := make([]model.Outcome, len(occurrences))

	for i, occ := range occurrences {
		out := model.Outcome{Occurrence: occ}

		var problems []string

		for _, v := range report[i].Violations {
			if override && overridable(v) {
				continue
			}

			out.Violations = append(out.Violations, v)
			problems = append(problems, describeViolation(v, report[i].BlockedBy))
		}

		if conflicts[i].HasConflicts() {
			out.Conflicts = conflicts[i].Conflicts
			problems = append(problems, describeConflicts(conflicts[i].Conflicts))
		}

		out.State, out.Reason = lifecycle.Initial(autoAccept, problems)
		outcomes[i] = out
	}

	return outcomes
}

func overridable(v availability.Violation) bool {
	return v == availability.OutsideBookableHours || v == availability.BeyondBookingLimit
}

func describeViolation(v availability.Violation, blockedBy []string) string {
	switch v {
	case availability.OutsideBookableHours:
		return "outside bookable hours"
	case availability.RoomBlocked:
		if len(blockedBy) > 0 {
			return "room blocked by " + strings.Join(blockedBy, ", ")
		}

		return "room not bookable in this period"
	case availability.BeyondBookingLimit:
		return "beyond booking limit"
	case availability.InThePast:
		return "starts in the past"
	}

	return string(v)
}

func describeConflicts(conflicts []conflict.Existing) string {
	parts := make([]string, len(conflicts))
	for i, c := range conflicts {
		parts[i] = fmt.Sprintf("reservation %s (%s-%s)",
			c.ReservationID,
			timezone.Format(c.Interval.Start, constant.TimeOfDayFormat),
			timezone.Format(c.Interval.End, constant.TimeOfDayFormat))
	}

	return "conflicts with " + strings.Join(parts, ", ")
}

func bookable(outcomes []model.Outcome, strict bool) bool {
	if strict {
		return !slices.ContainsFunc(outcomes, func(o model.Outcome) bool { return !o.Bookable() })
	}

	return slices.ContainsFunc(outcomes, model.Outcome.Bookable)
}

// persistError keeps domain failures as they are and turns lost races into a retryable conflict.
func (s *serviceImpl) persistError(err error, roomID, action string) error {
	var partial *model.PartialFailure
	if errors.As(err, &partial) {
		return partial
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		return fail
	}

	if postgres.IsRaceError(err) {
		s.metrics.IncPersistenceConflict()
		log.Warn().Err(err).Str("room", roomID).Msg("concurrent write on room, " + action + " must be retried")

		return failure.PersistenceConflict(fmt.Sprintf("room %s was modified concurrently, retry the request", roomID)) //nolint:wrapcheck
	}

	log.Error().Err(err).Str("room", roomID).Msg("failed to " + action)

	return fmt.Errorf("failed to %s: %w", action, err)
}

type transition struct {
	action    string
	eventType string
	allowed   func(ctx context.Context, principal string, subject permissions.Subject) bool
	// eligible selects occurrences when no dates are given.
	eligible func(o model.Occurrence, now time.Time) bool
	apply    func(o *lifecycle.Occurrence, now time.Time) error
	reason   string
}

func (s *serviceImpl) Approve(ctx context.Context, id string, req dto.ApproveRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Approve")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.transition(ctx, id, req.OccurrenceSelector, transition{
		action:    "approve",
		eventType: outboxModel.EventOccurrencesAccepted,
		allowed:   s.policy.CanModerate,
		eligible:  isPending,
		apply: func(o *lifecycle.Occurrence, _ time.Time) error {
			return lifecycle.Accept(o)
		},
	})
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Reject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.transition(ctx, id, req.OccurrenceSelector, transition{
		action:    "reject",
		eventType: outboxModel.EventOccurrencesRejected,
		allowed:   s.policy.CanModerate,
		eligible:  isPending,
		apply: func(o *lifecycle.Occurrence, _ time.Time) error {
			return lifecycle.Reject(o, req.Reason)
		},
		reason: req.Reason,
	})
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.transition(ctx, id, req.OccurrenceSelector, transition{
		action:    "cancel",
		eventType: outboxModel.EventOccurrencesCancelled,
		allowed:   s.policy.CanCancel,
		eligible: func(o model.Occurrence, now time.Time) bool {
			return !o.State.Terminal() && now.Before(o.EndDT)
		},
		apply: lifecycle.Cancel,
	})
}

func isPending(o model.Occurrence, _ time.Time) bool {
	return o.State == lifecycle.Pending
}

func (s *serviceImpl) transition(ctx context.Context, id string, sel dto.OccurrenceSelector, t transition) (res dto.ReservationResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	room, err := s.rooms.Aggregate(ctx, current.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	subject := permissions.Subject{
		RoomID:    room.Room.ID,
		RoomOwner: room.Room.Owner,
		BookedFor: current.BookedFor,
		CreatedBy: current.CreatedBy,
	}

	if !t.allowed(ctx, user, subject) {
		return res, failure.Forbidden(fmt.Sprintf("not allowed to %s this reservation", t.action)) //nolint:wrapcheck
	}

	var (
		reservation model.Reservation
		occurrences []model.Occurrence
		changed     []model.Occurrence
	)

	err = s.repo.WithRoomLock(ctx, current.RoomID, func(tx repository.Tx) error {
		var err error

		reservation, err = tx.GetReservation(ctx, id)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if reservation.ID == constant.Empty {
			return failure.NotFound("reservation not found") //nolint:wrapcheck
		}

		occurrences, err = tx.Occurrences(ctx, id)
		if err != nil {
			return err //nolint:wrapcheck
		}

		now := timezone.Now()

		targets, err := selectOccurrences(occurrences, sel.Dates, now, t.eligible)
		if err != nil {
			return err
		}

		for _, idx := range targets {
			lo := occurrences[idx].Lifecycle()

			if err := t.apply(&lo, now); err != nil {
				return transitionFailure(occurrences[idx], err)
			}

			occurrences[idx].Apply(lo, user, now)
			changed = append(changed, occurrences[idx])
		}

		if len(changed) == 0 {
			return failure.Conflict("no occurrence to " + t.action) //nolint:wrapcheck
		}

		if err := tx.UpdateOccurrences(ctx, changed); err != nil {
			return err //nolint:wrapcheck
		}

		reservation.State = lifecycle.Derive(model.States(occurrences))
		reservation.ModifiedAt = now
		reservation.ModifiedBy = user

		if err := tx.UpdateReservationState(ctx, id, reservation.State, user, now); err != nil {
			return err //nolint:wrapcheck
		}

		event, err := outboxModel.NewEvent(outboxModel.AggregateReservation, id, t.eventType, model.EventPayload{
			ReservationID: id,
			RoomID:        reservation.RoomID,
			BookedFor:     reservation.BookedFor,
			State:         string(reservation.State),
			Dates:         dates(changed, nil),
			Reason:        t.reason,
			By:            user,
		}, now)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return tx.AddOutboxEvents(ctx, event)
	})
	if err != nil {
		return res, s.persistError(err, current.RoomID, t.action+" reservation")
	}

	if len(changed) > 0 {
		s.metrics.IncTransition(string(changed[0].State), len(changed))
	}

	s.invalidateCalendar(ctx, current.RoomID)

	log.Info().
		Str("reservation", id).
		Str("action", t.action).
		Int("occurrences", len(changed)).
		Str("state", string(reservation.State)).
		Str("by", user).
		Msg("reservation occurrences updated")

	res.FromModel(reservation, occurrences)

	return res, nil
}

// selectOccurrences returns indexes into occurrences. Requested dates must
// all exist; without dates every eligible occurrence is picked.
func selectOccurrences(occurrences []model.Occurrence, wanted []string, now time.Time, eligible func(model.Occurrence, time.Time) bool) ([]int, error) {
	if len(wanted) == 0 {
		var targets []int

		for i, o := range occurrences {
			if eligible(o, now) {
				targets = append(targets, i)
			}
		}

		return targets, nil
	}

	byDate := make(map[string]int, len(occurrences))
	for i, o := range occurrences {
		byDate[timezone.Format(o.StartDT, constant.DayFormat)] = i
	}

	targets := make([]int, 0, len(wanted))

	for _, d := range wanted {
		idx, ok := byDate[d]
		if !ok {
			return nil, failure.NotFound("no occurrence on " + d) //nolint:wrapcheck
		}

		targets = append(targets, idx)
	}

	slices.Sort(targets)

	return targets, nil
}

func transitionFailure(o model.Occurrence, err error) error {
	date := timezone.Format(o.StartDT, constant.DayFormat)

	if errors.Is(err, lifecycle.ErrRejectionReasonRequired) {
		return failure.BadRequestFromString(fmt.Sprintf("%s: %v", date, err)) //nolint:wrapcheck
	}

	return failure.Conflict(fmt.Sprintf("%s: %v", date, err)) //nolint:wrapcheck
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	occurrences, err := s.repo.Occurrences(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to get occurrences")

		return res, fmt.Errorf("failed to get occurrences: %w", err)
	}

	res.FromModel(reservation, occurrences)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) Calendar(ctx context.Context, req dto.CalendarRequest) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Calendar")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	window, err := req.Window(timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	version := s.calendarVersion(ctx, req.RoomID)
	cacheKey := shared.BuildCacheKey(cacheCalendar, req.RoomID, version, req.From, req.To, fmt.Sprint(req.Inactive))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for calendar")

		return res, nil
	}

	var states []lifecycle.State
	if !req.Inactive {
		states = []lifecycle.State{lifecycle.Pending, lifecycle.Accepted}
	}

	occurrences, err := s.repo.OccurrencesInRange(ctx, req.RoomID, window.Start, window.End, states...)
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to load calendar")

		return res, fmt.Errorf("failed to load calendar: %w", err)
	}

	res = dto.CalendarResponse{RoomID: req.RoomID, From: req.From, To: req.To}
	res.FromModels(occurrences)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save calendar to cache")
	}

	return res, nil
}

func (s *serviceImpl) ExpirePending(ctx context.Context) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".reservation.ExpirePending")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()

	pending, err := s.repo.PendingStartedBefore(ctx, now, expiryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to load expired pending occurrences")

		return 0, fmt.Errorf("failed to load expired pending occurrences: %w", err)
	}

	byRoom := map[string][]string{}
	for _, o := range pending {
		if !slices.Contains(byRoom[o.RoomID], o.ReservationID) {
			byRoom[o.RoomID] = append(byRoom[o.RoomID], o.ReservationID)
		}
	}

	rooms := make([]string, 0, len(byRoom))
	for roomID := range byRoom {
		rooms = append(rooms, roomID)
	}

	slices.Sort(rooms)

	var errs []error

	for _, roomID := range rooms {
		expired := 0

		err := s.repo.WithRoomLock(ctx, roomID, func(tx repository.Tx) error {
			for _, id := range byRoom[roomID] {
				n, err := expireReservation(ctx, tx, id, now)
				if err != nil {
					return err
				}

				expired += n
			}

			return nil
		})
		if err != nil {
			errs = append(errs, s.persistError(err, roomID, "expire pending occurrences"))

			continue
		}

		total += expired
		s.invalidateCalendar(ctx, roomID)
	}

	s.metrics.IncExpired(total)
	s.metrics.IncTransition(string(lifecycle.Rejected), total)

	if total > 0 {
		log.Info().Int("expired", total).Int("rooms", len(rooms)).Msg("expired pending occurrences")
	}

	return total, errors.Join(errs...)
}

func expireReservation(ctx context.Context, tx repository.Tx, id string, now time.Time) (int, error) {
	reservation, err := tx.GetReservation(ctx, id)
	if err != nil || reservation.ID == constant.Empty {
		return 0, err //nolint:wrapcheck
	}

	occurrences, err := tx.Occurrences(ctx, id)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	var changed []model.Occurrence

	for i := range occurrences {
		if occurrences[i].State != lifecycle.Pending || !occurrences[i].StartDT.Before(now) {
			continue
		}

		lo := occurrences[i].Lifecycle()
		if err := lifecycle.Reject(&lo, expiredReason); err != nil {
			return 0, err //nolint:wrapcheck
		}

		occurrences[i].Apply(lo, constant.ContextSystem, now)
		changed = append(changed, occurrences[i])
	}

	if len(changed) == 0 {
		return 0, nil
	}

	if err := tx.UpdateOccurrences(ctx, changed); err != nil {
		return 0, err //nolint:wrapcheck
	}

	state := lifecycle.Derive(model.States(occurrences))

	if err := tx.UpdateReservationState(ctx, id, state, constant.ContextSystem, now); err != nil {
		return 0, err //nolint:wrapcheck
	}

	event, err := outboxModel.NewEvent(outboxModel.AggregateReservation, id, outboxModel.EventOccurrencesRejected, model.EventPayload{
		ReservationID: id,
		RoomID:        reservation.RoomID,
		BookedFor:     reservation.BookedFor,
		State:         string(state),
		Dates:         dates(changed, nil),
		Reason:        expiredReason,
		By:            constant.ContextSystem,
	}, now)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	if err := tx.AddOutboxEvents(ctx, event); err != nil {
		return 0, err //nolint:wrapcheck
	}

	return len(changed), nil
}

// calendarVersion is part of every calendar cache key. A read that loaded
// rows before a write committed saves them under the old version, which is
// never read again.
func (s *serviceImpl) calendarVersion(ctx context.Context, roomID string) string {
	var version string
	if err := s.cache.Get(ctx, shared.BuildCacheKey(cacheCalendarVersion, roomID), &version); err != nil {
		return "0"
	}

	return version
}

func (s *serviceImpl) invalidateCalendar(ctx context.Context, roomID string) {
	ctx = context.WithoutCancel(ctx)

	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheCalendarVersion, roomID), uuid.NewString(), 0); err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to bump calendar version")
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheCalendar, roomID))
}

func existing(stored []model.Occurrence) []conflict.Existing {
	out := make([]conflict.Existing, len(stored))
	for i, o := range stored {
		out[i] = o.Existing()
	}

	return out
}

// envelope is the smallest interval covering every occurrence.
func envelope(occurrences []interval.Interval) interval.Interval {
	span := occurrences[0]

	for _, o := range occurrences[1:] {
		if o.Start.Before(span.Start) {
			span.Start = o.Start
		}

		if o.End.After(span.End) {
			span.End = o.End
		}
	}

	return span
}

func dates(occurrences []model.Occurrence, out []string) []string {
	for _, o := range occurrences {
		out = append(out, timezone.Format(o.StartDT, constant.DayFormat))
	}

	return out
}
