package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"roombooking/config"
	"roombooking/infras/metrics"
	"roombooking/infras/otel/mocks"
	blockingMocks "roombooking/internal/domains/blocking/service/mocks"
	outboxModel "roombooking/internal/domains/outbox/model"
	reservationMocks "roombooking/internal/domains/reservation/mocks"
	"roombooking/internal/domains/reservation/model"
	"roombooking/internal/domains/reservation/model/dto"
	"roombooking/internal/domains/reservation/repository"
	"roombooking/internal/domains/reservation/service"
	roomModel "roombooking/internal/domains/room/model"
	roomMocks "roombooking/internal/domains/room/service/mocks"
	"roombooking/internal/engine/availability"
	"roombooking/internal/engine/interval"
	"roombooking/internal/engine/lifecycle"
	"roombooking/permissions"
	"roombooking/shared/cache"
	"roombooking/shared/constant"
	"roombooking/shared/failure"
	gModel "roombooking/shared/model"
	"roombooking/shared/timezone"

	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	roomID        = "6f1c1f2e-8f4a-4a57-9a53-0c9a3b0f2d11"
	reservationID = "0b7d4f7a-2c11-4c43-8f7e-5d1e2b9c6a10"
)

var room = roomModel.Aggregate{
	Room: roomModel.Room{ID: roomID, Name: "Main hall", Owner: "owner", Active: true},
}

type fixture struct {
	svc       service.Reservation
	repo      *reservationMocks.MockReservation
	tx        *reservationMocks.MockTx
	rooms     *roomMocks.MockRoom
	blockings *blockingMocks.MockBlocking
	metrics   *metrics.Metrics
	redis     *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	previous := timezone.GetLocation()
	timezone.SetLocation(time.UTC)
	t.Cleanup(func() { timezone.SetLocation(previous) })

	ctrl := gomock.NewController(t)

	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), mocks.NewOtel())

	cfg := &config.Config{}
	cfg.App.Admins = []string{"admin"}
	cfg.Booking.MaxOccurrences = 100
	cfg.Booking.AllowPast = true
	cfg.Cache.TTL = 60

	policy, err := permissions.Resolve(permissions.RelationOwner, cfg)
	require.NoError(t, err)

	f := &fixture{
		repo:      reservationMocks.NewMockReservation(ctrl),
		tx:        reservationMocks.NewMockTx(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		blockings: blockingMocks.NewMockBlocking(ctrl),
		metrics:   metrics.New("test", prometheus.NewRegistry()),
		redis:     mr,
	}

	f.svc = service.New(f.repo, f.rooms, f.blockings, policy, f.metrics, redisCache, cfg, mocks.NewOtel())

	return f
}

func (f *fixture) expectLock(roomID string) {
	f.repo.EXPECT().WithRoomLock(gomock.Any(), roomID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func(repository.Tx) error) error {
			return fn(f.tx)
		})
}

func asUser(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func occurrence(start time.Time, state lifecycle.State) model.Occurrence {
	return model.Occurrence{
		ReservationID: reservationID,
		RoomID:        roomID,
		StartDT:       start,
		EndDT:         start.Add(time.Hour),
		State:         state,
	}
}

func weeklyMondays() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		RoomID:    roomID,
		StartDate: "2024-06-03",
		EndDate:   "2024-07-01",
		StartTime: "10:00",
		EndTime:   "11:00",
		Repeat:    "weekly",
		Weekdays:  []int{int(time.Monday)},
		Reason:    "weekly sync",
	}
}

func TestReservationService_Expand(t *testing.T) {
	f := newFixture(t)

	t.Run("every second tuesday", func(t *testing.T) {
		req := dto.CreateReservationRequest{
			RoomID:    roomID,
			StartDate: "2024-01-02",
			EndDate:   "2024-01-31",
			StartTime: "14:00",
			EndTime:   "15:30",
			Repeat:    "weekly",
			Interval:  2,
			Weekdays:  []int{int(time.Tuesday)},
			Reason:    "review",
		}

		got, err := f.svc.Expand(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, got, 3)
		assert.Equal(t, at(2024, 1, 2, 14, 0), got[0].Start)
		assert.Equal(t, at(2024, 1, 16, 14, 0), got[1].Start)
		assert.Equal(t, at(2024, 1, 30, 15, 30), got[2].End)
	})

	t.Run("weekly without weekdays is invalid", func(t *testing.T) {
		req := weeklyMondays()
		req.Weekdays = nil

		_, err := f.svc.Expand(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("end time before start time fails validation", func(t *testing.T) {
		req := weeklyMondays()
		req.EndTime = "09:00"

		_, err := f.svc.Expand(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_CheckAvailability(t *testing.T) {
	f := newFixture(t)

	weekdays := roomModel.Aggregate{Room: room.Room}
	for day := 1; day <= 5; day++ {
		d := day
		weekdays.BookableHours = append(weekdays.BookableHours, roomModel.BookableHours{
			Weekday:   &d,
			StartTime: interval.MustClock("08:00"),
			EndTime:   interval.MustClock("18:00"),
		})
	}

	f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(weekdays, nil)
	f.blockings.EXPECT().ActiveForRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)

	occurrences := []interval.Interval{
		{Start: at(2024, 6, 7, 9, 0), End: at(2024, 6, 7, 10, 0)},
		{Start: at(2024, 6, 8, 9, 0), End: at(2024, 6, 8, 10, 0)},
	}

	report, err := f.svc.CheckAvailability(asUser("alice"), roomID, "alice", occurrences)
	require.NoError(t, err)

	require.Len(t, report, 2)
	assert.True(t, report[0].Clean())
	assert.Equal(t, []availability.Violation{availability.OutsideBookableHours}, report[1].Violations)
}

func TestReservationService_DetectConflicts(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		OccurrencesInRange(gomock.Any(), roomID, at(2024, 6, 3, 10, 0), at(2024, 6, 3, 11, 0), lifecycle.Pending, lifecycle.Accepted).
		Return([]model.Occurrence{{
			ReservationID: "other",
			RoomID:        roomID,
			StartDT:       at(2024, 6, 3, 10, 30),
			EndDT:         at(2024, 6, 3, 11, 30),
			State:         lifecycle.Accepted,
		}}, nil)

	report, err := f.svc.DetectConflicts(context.Background(), roomID, []interval.Interval{
		{Start: at(2024, 6, 3, 10, 0), End: at(2024, 6, 3, 11, 0)},
	})
	require.NoError(t, err)

	require.Len(t, report, 1)
	require.Len(t, report[0].Conflicts, 1)
	assert.Equal(t, "other", report[0].Conflicts[0].ReservationID)
}

func TestReservationService_Create(t *testing.T) {
	existing := model.Occurrence{
		ReservationID: "other",
		RoomID:        roomID,
		StartDT:       at(2024, 6, 17, 10, 30),
		EndDT:         at(2024, 6, 17, 11, 30),
		State:         lifecycle.Accepted,
	}

	t.Run("conflicting occurrence is rejected and the rest wait for approval", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.blockings.EXPECT().ActiveForRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().ActiveOccurrences(gomock.Any(), roomID, at(2024, 6, 3, 10, 0), at(2024, 7, 1, 11, 0)).
			Return([]model.Occurrence{existing}, nil)

		var (
			stored model.Reservation
			rows   []model.Occurrence
		)

		f.tx.EXPECT().InsertReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Reservation, occ []model.Occurrence) error {
				stored, rows = r, occ

				return nil
			})
		f.tx.EXPECT().AddOutboxEvents(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events ...outboxModel.Event) error {
				require.Len(t, events, 1)
				assert.Equal(t, outboxModel.EventReservationCreated, events[0].EventType)

				var payload model.EventPayload
				require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
				assert.Equal(t, stored.ID, payload.ReservationID)
				assert.Len(t, payload.Dates, 5)

				return nil
			})

		res, err := f.svc.Create(asUser("alice"), weeklyMondays())
		require.NoError(t, err)

		require.Len(t, rows, 5)

		for i, row := range rows {
			if i == 2 {
				assert.Equal(t, lifecycle.Rejected, row.State)
				assert.Contains(t, row.RejectionReason, "other")

				continue
			}

			assert.Equal(t, lifecycle.Pending, row.State)
			assert.Empty(t, row.RejectionReason)
		}

		assert.Equal(t, lifecycle.ReservationPartial, stored.State)
		assert.Equal(t, "alice", stored.BookedFor)
		assert.Equal(t, pq.Int64Array{1}, stored.Weekdays)
		assert.Equal(t, string(lifecycle.ReservationPartial), res.State)
		require.Len(t, res.Occurrences, 5)
		assert.Equal(t, "2024-06-17", res.Occurrences[2].Date)
		require.Len(t, res.Occurrences[2].Conflicts, 1)

		assert.InDelta(t, 4, testutil.ToFloat64(f.metrics.OccurrencesTotal.WithLabelValues("pending")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ConflictsTotal), 0)
	})

	t.Run("strict mode persists nothing when one occurrence fails", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.blockings.EXPECT().ActiveForRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().ActiveOccurrences(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return([]model.Occurrence{existing}, nil)

		req := weeklyMondays()
		req.Strict = true

		_, err := f.svc.Create(asUser("alice"), req)
		require.Error(t, err)

		var partial *model.PartialFailure
		require.ErrorAs(t, err, &partial)
		assert.Len(t, partial.Outcomes, 5)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("nothing bookable is a partial failure", func(t *testing.T) {
		f := newFixture(t)

		blocked := room
		blocked.NonBookablePeriods = []roomModel.NonBookablePeriod{{
			RoomID:  roomID,
			StartDT: at(2024, 6, 1, 0, 0),
			EndDT:   at(2024, 7, 31, 0, 0),
		}}

		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(blocked, nil)
		f.blockings.EXPECT().ActiveForRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().ActiveOccurrences(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Create(asUser("alice"), weeklyMondays())

		var partial *model.PartialFailure
		require.ErrorAs(t, err, &partial)

		for _, o := range partial.Outcomes {
			assert.Equal(t, lifecycle.Rejected, o.State)
			assert.Contains(t, o.Violations, availability.RoomBlocked)
		}
	})

	t.Run("owner booking is accepted and bypasses bookable hours", func(t *testing.T) {
		f := newFixture(t)

		evenings := room
		evenings.BookableHours = []roomModel.BookableHours{{
			StartTime: interval.MustClock("18:00"),
			EndTime:   interval.MustClock("22:00"),
		}}

		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(evenings, nil)
		f.blockings.EXPECT().ActiveForRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().ActiveOccurrences(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.tx.EXPECT().InsertReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Reservation, occ []model.Occurrence) error {
				assert.Equal(t, lifecycle.ReservationAccepted, r.State)

				for _, o := range occ {
					assert.Equal(t, lifecycle.Accepted, o.State)
				}

				return nil
			})
		f.tx.EXPECT().AddOutboxEvents(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(asUser("owner"), weeklyMondays())
		require.NoError(t, err)
		assert.Equal(t, string(lifecycle.ReservationAccepted), res.State)
	})

	t.Run("inactive room is refused", func(t *testing.T) {
		f := newFixture(t)

		inactive := room
		inactive.Room.Active = false

		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(inactive, nil)

		_, err := f.svc.Create(asUser("alice"), weeklyMondays())
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("lost race becomes a retryable conflict", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.blockings.EXPECT().ActiveForRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().WithRoomLock(gomock.Any(), roomID, gomock.Any()).
			Return(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

		_, err := f.svc.Create(asUser("alice"), weeklyMondays())
		require.Error(t, err)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.True(t, failure.IsRetryable(err))
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.PersistenceConflicts), 0)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.blockings.EXPECT().ActiveForRoom(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().WithRoomLock(gomock.Any(), roomID, gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(asUser("alice"), weeklyMondays())
		require.Error(t, err)
		assert.False(t, failure.IsRetryable(err))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func pendingReservation(bookedFor string) model.Reservation {
	return model.Reservation{
		ID:        reservationID,
		RoomID:    roomID,
		BookedFor: bookedFor,
		State:     lifecycle.ReservationPending,
		Metadata:  gModel.Metadata{CreatedBy: bookedFor},
	}
}

func TestReservationService_Approve(t *testing.T) {
	future := at(2099, 3, 2, 10, 0)

	t.Run("moderator approves every pending occurrence", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
		f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
			occurrence(future, lifecycle.Pending),
			occurrence(future.AddDate(0, 0, 7), lifecycle.Rejected),
			occurrence(future.AddDate(0, 0, 14), lifecycle.Pending),
		}, nil)
		f.tx.EXPECT().UpdateOccurrences(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, changed []model.Occurrence) error {
				require.Len(t, changed, 2)

				for _, o := range changed {
					assert.Equal(t, lifecycle.Accepted, o.State)
					assert.Equal(t, "owner", o.ModifiedBy)
				}

				return nil
			})
		f.tx.EXPECT().UpdateReservationState(gomock.Any(), reservationID, lifecycle.ReservationPartial, "owner", gomock.Any()).Return(nil)
		f.tx.EXPECT().AddOutboxEvents(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events ...outboxModel.Event) error {
				assert.Equal(t, outboxModel.EventOccurrencesAccepted, events[0].EventType)

				return nil
			})

		res, err := f.svc.Approve(asUser("owner"), reservationID, dto.ApproveRequest{})
		require.NoError(t, err)
		assert.Equal(t, string(lifecycle.ReservationPartial), res.State)
		assert.InDelta(t, 2, testutil.ToFloat64(f.metrics.TransitionsTotal.WithLabelValues("accepted")), 0)
	})

	t.Run("booker cannot approve", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)

		_, err := f.svc.Approve(asUser("alice"), reservationID, dto.ApproveRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("approving an accepted date conflicts", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
		f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
			occurrence(future, lifecycle.Accepted),
		}, nil)

		_, err := f.svc.Approve(asUser("owner"), reservationID, dto.ApproveRequest{
			OccurrenceSelector: dto.OccurrenceSelector{Dates: []string{"2099-03-02"}},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.False(t, failure.IsRetryable(err))
	})

	t.Run("unknown date is not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
		f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
			occurrence(future, lifecycle.Pending),
		}, nil)

		_, err := f.svc.Approve(asUser("owner"), reservationID, dto.ApproveRequest{
			OccurrenceSelector: dto.OccurrenceSelector{Dates: []string{"2099-03-03"}},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.svc.Approve(asUser("owner"), reservationID, dto.ApproveRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservationService_Reject(t *testing.T) {
	f := newFixture(t)

	first := at(2099, 3, 2, 10, 0)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
	f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
	f.expectLock(roomID)
	f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
	f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
		occurrence(first, lifecycle.Pending),
		occurrence(first.AddDate(0, 0, 7), lifecycle.Pending),
	}, nil)
	f.tx.EXPECT().UpdateOccurrences(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, changed []model.Occurrence) error {
			require.Len(t, changed, 1)
			assert.Equal(t, lifecycle.Rejected, changed[0].State)
			assert.Equal(t, "room closed", changed[0].RejectionReason)

			return nil
		})
	f.tx.EXPECT().UpdateReservationState(gomock.Any(), reservationID, lifecycle.ReservationPartial, "admin", gomock.Any()).Return(nil)
	f.tx.EXPECT().AddOutboxEvents(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Reject(asUser("admin"), reservationID, dto.RejectRequest{
		Reason:             "room closed",
		OccurrenceSelector: dto.OccurrenceSelector{Dates: []string{"2099-03-09"}},
	})
	require.NoError(t, err)

	require.Len(t, res.Occurrences, 2)
	assert.Equal(t, string(lifecycle.Pending), res.Occurrences[0].State)
	assert.Equal(t, string(lifecycle.Rejected), res.Occurrences[1].State)

	t.Run("reason is required", func(t *testing.T) {
		_, err := f.svc.Reject(asUser("admin"), reservationID, dto.RejectRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_Cancel(t *testing.T) {
	future := at(2099, 3, 2, 10, 0)
	past := at(2020, 3, 2, 10, 0)

	t.Run("booker cancels the remaining occurrences", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
		f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
			occurrence(past, lifecycle.Accepted),
			occurrence(future, lifecycle.Accepted),
			occurrence(future.AddDate(0, 0, 7), lifecycle.Pending),
		}, nil)
		f.tx.EXPECT().UpdateOccurrences(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, changed []model.Occurrence) error {
				assert.Len(t, changed, 2)

				return nil
			})
		f.tx.EXPECT().UpdateReservationState(gomock.Any(), reservationID, lifecycle.ReservationPartial, "alice", gomock.Any()).Return(nil)
		f.tx.EXPECT().AddOutboxEvents(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events ...outboxModel.Event) error {
				assert.Equal(t, outboxModel.EventOccurrencesCancelled, events[0].EventType)

				return nil
			})

		res, err := f.svc.Cancel(asUser("alice"), reservationID, dto.CancelRequest{})
		require.NoError(t, err)

		assert.Equal(t, string(lifecycle.Accepted), res.Occurrences[0].State)
		assert.Equal(t, string(lifecycle.Cancelled), res.Occurrences[1].State)
		assert.Equal(t, string(lifecycle.Cancelled), res.Occurrences[2].State)
	})

	t.Run("ended occurrence cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
		f.expectLock(roomID)
		f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
		f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
			occurrence(past, lifecycle.Accepted),
		}, nil)

		_, err := f.svc.Cancel(asUser("alice"), reservationID, dto.CancelRequest{
			OccurrenceSelector: dto.OccurrenceSelector{Dates: []string{"2020-03-02"}},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
		f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)

		_, err := f.svc.Cancel(asUser("mallory"), reservationID, dto.CancelRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestReservationService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
	f.repo.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
		occurrence(at(2099, 3, 2, 10, 0), lifecycle.Pending),
	}, nil)

	res, err := f.svc.Get(context.Background(), reservationID)
	require.NoError(t, err)

	assert.Equal(t, reservationID, res.ID)
	require.Len(t, res.Occurrences, 1)
	assert.Equal(t, "2099-03-02", res.Occurrences[0].Date)
}

func TestReservationService_Calendar(t *testing.T) {
	f := newFixture(t)

	req := dto.CalendarRequest{RoomID: roomID, From: "2099-03-01", To: "2099-03-07"}

	f.repo.EXPECT().
		OccurrencesInRange(gomock.Any(), roomID, at(2099, 3, 1, 0, 0), at(2099, 3, 8, 0, 0), lifecycle.Pending, lifecycle.Accepted).
		Return([]model.Occurrence{occurrence(at(2099, 3, 2, 10, 0), lifecycle.Accepted)}, nil).
		Times(1)

	res, err := f.svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)

	assert.Len(t, f.redis.Keys(), 1)

	cached, err := f.svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, res, cached)

	t.Run("window must be ordered", func(t *testing.T) {
		_, err := f.svc.Calendar(context.Background(), dto.CalendarRequest{RoomID: roomID, From: "2099-03-07", To: "2099-03-01"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_CalendarSavedAfterConcurrentWrite(t *testing.T) {
	f := newFixture(t)

	req := dto.CalendarRequest{RoomID: roomID, From: "2099-03-01", To: "2099-03-07"}
	first := at(2099, 3, 2, 10, 0)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingReservation("alice"), nil)
	f.rooms.EXPECT().Aggregate(gomock.Any(), roomID).Return(room, nil)
	f.expectLock(roomID)
	f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
	f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{occurrence(first, lifecycle.Pending)}, nil)
	f.tx.EXPECT().UpdateOccurrences(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().UpdateReservationState(gomock.Any(), reservationID, gomock.Any(), "admin", gomock.Any()).Return(nil)
	f.tx.EXPECT().AddOutboxEvents(gomock.Any(), gomock.Any()).Return(nil)

	gomock.InOrder(
		f.repo.EXPECT().
			OccurrencesInRange(gomock.Any(), roomID, gomock.Any(), gomock.Any(), lifecycle.Pending, lifecycle.Accepted).
			DoAndReturn(func(context.Context, string, time.Time, time.Time, ...lifecycle.State) ([]model.Occurrence, error) {
				_, err := f.svc.Reject(asUser("admin"), reservationID, dto.RejectRequest{Reason: "room closed"})
				require.NoError(t, err)

				return []model.Occurrence{occurrence(first, lifecycle.Pending)}, nil
			}),
		f.repo.EXPECT().
			OccurrencesInRange(gomock.Any(), roomID, gomock.Any(), gomock.Any(), lifecycle.Pending, lifecycle.Accepted).
			Return(nil, nil),
	)

	stale, err := f.svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, stale.Entries, 1)

	fresh, err := f.svc.Calendar(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, fresh.Entries)
}

func TestReservationService_ExpirePending(t *testing.T) {
	f := newFixture(t)

	started := at(2020, 3, 2, 10, 0)
	upcoming := at(2099, 3, 2, 10, 0)

	f.repo.EXPECT().PendingStartedBefore(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Occurrence{occurrence(started, lifecycle.Pending)}, nil)
	f.expectLock(roomID)
	f.tx.EXPECT().GetReservation(gomock.Any(), reservationID).Return(pendingReservation("alice"), nil)
	f.tx.EXPECT().Occurrences(gomock.Any(), reservationID).Return([]model.Occurrence{
		occurrence(started, lifecycle.Pending),
		occurrence(upcoming, lifecycle.Pending),
	}, nil)
	f.tx.EXPECT().UpdateOccurrences(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, changed []model.Occurrence) error {
			require.Len(t, changed, 1)
			assert.Equal(t, lifecycle.Rejected, changed[0].State)
			assert.Equal(t, "not confirmed before start", changed[0].RejectionReason)
			assert.Equal(t, constant.ContextSystem, changed[0].ModifiedBy)

			return nil
		})
	f.tx.EXPECT().UpdateReservationState(gomock.Any(), reservationID, lifecycle.ReservationPartial, constant.ContextSystem, gomock.Any()).Return(nil)
	f.tx.EXPECT().AddOutboxEvents(gomock.Any(), gomock.Any()).Return(nil)

	n, err := f.svc.ExpirePending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ExpiredOccurrences), 0)
}
