package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	svc      *BookingService
	bookings *repotest.Bookings
	tutors   *repotest.Tutors
	tutorID  int
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	tutors := repotest.NewTutors()
	bookings := repotest.NewBookings(tutors)

	tutor := &model.Tutor{Name: "Maria", Surname: "Lopez", Rate: 35}
	require.NoError(t, tutors.Create(context.Background(), tutor))

	return &bookingFixture{
		svc:      NewBookingService(bookings, tutors, zerolog.Nop()),
		bookings: bookings,
		tutors:   tutors,
		tutorID:  tutor.ID,
	}
}

func (f *bookingFixture) request(date, clock string) model.CreateBookingRequest {
	return model.CreateBookingRequest{StudentID: 7, TutorID: f.tutorID, LessonDate: date, LessonTime: clock}
}

func TestBookingCreate_AppliesDefaults(t *testing.T) {
	f := newBookingFixture(t)

	b, err := f.svc.Create(context.Background(), f.request("2026-06-01", "16:00"))
	require.NoError(t, err)

	assert.Equal(t, "16:00:00", b.LessonTime)
	assert.Equal(t, model.DefaultLessonMinutes, b.Duration)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.Equal(t, "", b.Notes)
	assert.Equal(t, "Maria", b.TutorName)
	assert.Equal(t, "Lopez", b.TutorSurname)
	assert.Equal(t, 35.0, b.Rate)
}

func TestBookingCreate_SlotBooked(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.request("2026-06-01", "16:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.request("2026-06-01", "16:00:00"))
	assert.ErrorIs(t, err, ErrSlotBooked, "HH:MM and HH:MM:SS name the same slot")

	_, err = f.svc.Create(ctx, f.request("2026-06-01", "17:00"))
	assert.NoError(t, err, "another time on the same day is free")
}

func TestBookingCreate_InvalidDateSkipsStore(t *testing.T) {
	f := newBookingFixture(t)

	for _, date := range []string{"01-06-2026", "2026-6-1", "2026-02-30", "tomorrow"} {
		_, err := f.svc.Create(context.Background(), f.request(date, "16:00"))
		assert.ErrorIs(t, err, ErrInvalidDate, date)
	}
	assert.Zero(t, f.bookings.Calls)
}

func TestBookingCreate_Validation(t *testing.T) {
	f := newBookingFixture(t)

	tests := []struct {
		name string
		req  model.CreateBookingRequest
	}{
		{"missing student", model.CreateBookingRequest{TutorID: f.tutorID, LessonDate: "2026-06-01", LessonTime: "10:00"}},
		{"missing date", model.CreateBookingRequest{StudentID: 1, TutorID: f.tutorID, LessonTime: "10:00"}},
		{"bad clock", model.CreateBookingRequest{StudentID: 1, TutorID: f.tutorID, LessonDate: "2026-06-01", LessonTime: "25:00"}},
		{"negative duration", model.CreateBookingRequest{StudentID: 1, TutorID: f.tutorID, LessonDate: "2026-06-01", LessonTime: "10:00", Duration: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestIsSlotAvailable_CancelledFreesSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.request("2026-06-01", "09:30"))
	require.NoError(t, err)

	free, err := f.svc.IsSlotAvailable(ctx, f.tutorID, "2026-06-01", "09:30")
	require.NoError(t, err)
	assert.False(t, free)

	require.NoError(t, f.svc.UpdateStatus(ctx, b.ID, model.BookingCancelled))

	free, err = f.svc.IsSlotAvailable(ctx, f.tutorID, "2026-06-01", "09:30:00")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestUpdateStatus(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.request("2026-06-01", "09:30"))
	require.NoError(t, err)

	t.Run("unknown status never reaches the store", func(t *testing.T) {
		calls := f.bookings.Calls
		err := f.svc.UpdateStatus(ctx, first.ID, "done")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Equal(t, calls, f.bookings.Calls)
	})

	t.Run("missing booking", func(t *testing.T) {
		err := f.svc.UpdateStatus(ctx, 999, model.BookingCompleted)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("any transition is allowed", func(t *testing.T) {
		require.NoError(t, f.svc.UpdateStatus(ctx, first.ID, model.BookingCompleted))
		require.NoError(t, f.svc.UpdateStatus(ctx, first.ID, model.BookingPending))
		stored, _ := f.bookings.Get(first.ID)
		assert.Equal(t, model.BookingPending, stored.Status)
	})

	t.Run("reviving into a taken slot", func(t *testing.T) {
		require.NoError(t, f.svc.UpdateStatus(ctx, first.ID, model.BookingCancelled))
		_, err := f.svc.Create(ctx, f.request("2026-06-01", "09:30"))
		require.NoError(t, err)

		err = f.svc.UpdateStatus(ctx, first.ID, model.BookingConfirmed)
		assert.ErrorIs(t, err, ErrSlotBooked)
	})
}

func TestAvailability(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	monday := 1
	require.NoError(t, f.tutors.CreateAvailability(ctx, &model.Availability{
		TutorID: f.tutorID, DayOfWeek: monday, StartTime: "15:00:00", EndTime: "19:00:00",
	}))
	require.NoError(t, f.tutors.CreateAvailability(ctx, &model.Availability{
		TutorID: f.tutorID, DayOfWeek: 2, StartTime: "08:00:00", EndTime: "10:00:00",
	}))

	_, err := f.svc.Create(ctx, f.request("2026-06-01", "16:00"))
	require.NoError(t, err)

	// 2026-06-01 is a Monday.
	day, err := f.svc.Availability(ctx, f.tutorID, "2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, []model.BookedSlot{{LessonTime: "16:00:00", Duration: 60}}, day.Bookings)
	assert.Equal(t, []model.TimeWindow{{StartTime: "15:00:00", EndTime: "19:00:00"}}, day.Availability)

	empty, err := f.svc.Availability(ctx, f.tutorID, "2026-06-03")
	require.NoError(t, err)
	assert.Empty(t, empty.Bookings)
	assert.Empty(t, empty.Availability)

	_, err = f.svc.Availability(ctx, f.tutorID, "June 1")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBookingCreate_OutsideWindowsIsAllowed(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	require.NoError(t, f.tutors.CreateAvailability(ctx, &model.Availability{
		TutorID: f.tutorID, DayOfWeek: 1, StartTime: "15:00:00", EndTime: "19:00:00",
	}))

	_, err := f.svc.Create(ctx, f.request("2026-06-01", "07:00"))
	assert.NoError(t, err)
}

func TestBookingDelete(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.request("2026-06-01", "16:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, b.ID), repository.ErrNotFound)
}

func TestBookingLists(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.request("2026-06-01", "16:00"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.request("2026-06-08", "10:00"))
	require.NoError(t, err)

	byStudent, err := f.svc.ListByStudent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, byStudent, 2)
	assert.Equal(t, "2026-06-08", byStudent[0].LessonDate, "latest lesson first")
	assert.Equal(t, "Maria", byStudent[0].TutorName)

	byTutor, err := f.svc.ListByTutor(ctx, f.tutorID)
	require.NoError(t, err)
	assert.Len(t, byTutor, 2)

	none, err := f.svc.ListByStudent(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, none)
}
