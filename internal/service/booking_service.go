package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/validator"
)

// BookingService reserves lessons and guards tutors against double booking.
type BookingService struct {
	bookings repository.BookingRepository
	tutors   repository.TutorRepository
	log      zerolog.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings repository.BookingRepository,
	tutors repository.TutorRepository,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		tutors:   tutors,
		log:      log.With().Str("component", "booking_service").Logger(),
	}
}

// IsSlotAvailable reports whether the tutor has no live booking starting at
// date and clock. date must be YYYY-MM-DD; clock HH:MM or HH:MM:SS.
func (s *BookingService) IsSlotAvailable(ctx context.Context, tutorID int, date, clock string) (bool, error) {
	if !validator.IsDate(date) {
		return false, ErrInvalidDate
	}
	normalized, ok := validator.NormalizeClock(clock)
	if !ok {
		return false, invalid("lessonTime must be HH:MM or HH:MM:SS")
	}

	taken, err := s.bookings.SlotTaken(ctx, tutorID, date, normalized)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// Availability returns the slots already booked on date and the tutor's
// advertised windows for that weekday.
func (s *BookingService) Availability(ctx context.Context, tutorID int, date string) (*model.DayAvailability, error) {
	if !validator.IsDate(date) {
		return nil, ErrInvalidDate
	}
	day, _ := time.Parse(time.DateOnly, date)

	booked, err := s.bookings.BookedSlots(ctx, tutorID, date)
	if err != nil {
		return nil, err
	}
	windows, err := s.tutors.WindowsForDay(ctx, tutorID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	return &model.DayAvailability{Bookings: booked, Availability: windows}, nil
}

// Create books a lesson. The slot must be free; availability windows are
// advisory and not enforced. New bookings start confirmed.
func (s *BookingService) Create(ctx context.Context, req model.CreateBookingRequest) (*model.BookingDetail, error) {
	if req.StudentID <= 0 || req.TutorID <= 0 || req.LessonDate == "" || req.LessonTime == "" {
		return nil, invalid("studentId, tutorId, lessonDate and lessonTime are required")
	}
	if req.Duration < 0 {
		return nil, invalid("duration must be positive")
	}

	available, err := s.IsSlotAvailable(ctx, req.TutorID, req.LessonDate, req.LessonTime)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrSlotBooked
	}

	clock, _ := validator.NormalizeClock(req.LessonTime)
	duration := req.Duration
	if duration == 0 {
		duration = model.DefaultLessonMinutes
	}

	b := &model.Booking{
		StudentID:  req.StudentID,
		TutorID:    req.TutorID,
		LessonDate: req.LessonDate,
		LessonTime: clock,
		Duration:   duration,
		Notes:      req.Notes,
		Status:     model.BookingConfirmed,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotBooked
		}
		return nil, err
	}

	s.log.Info().
		Int("booking_id", b.ID).
		Int("tutor_id", b.TutorID).
		Str("date", b.LessonDate).
		Str("time", b.LessonTime).
		Msg("Booking created")

	return s.bookings.GetDetail(ctx, b.ID)
}

// ListByStudent returns a student's bookings, latest lesson first.
func (s *BookingService) ListByStudent(ctx context.Context, studentID int) ([]model.BookingDetail, error) {
	return s.bookings.ListByStudent(ctx, studentID)
}

// ListByTutor returns a tutor's bookings, latest lesson first.
func (s *BookingService) ListByTutor(ctx context.Context, tutorID int) ([]model.Booking, error) {
	return s.bookings.ListByTutor(ctx, tutorID)
}

// UpdateStatus sets a booking's status. Re-activating a cancelled booking
// fails with ErrSlotBooked when its slot has since been taken.
func (s *BookingService) UpdateStatus(ctx context.Context, id int, status model.BookingStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	err := s.bookings.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrSlotTaken) {
		return ErrSlotBooked
	}
	return err
}

// Delete removes a booking.
func (s *BookingService) Delete(ctx context.Context, id int) error {
	return s.bookings.Delete(ctx, id)
}
