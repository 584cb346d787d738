package model

import "time"

// BookingStatus is the lifecycle state of a booking. Transitions are not
// restricted; any status may be set from any other.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// DefaultLessonMinutes is used when a booking request omits the duration.
const DefaultLessonMinutes = 60

// Booking is a lesson reserved between a student and a tutor.
// LessonDate is YYYY-MM-DD and LessonTime is HH:MM:SS.
type Booking struct {
	ID         int           `json:"id"`
	StudentID  int           `json:"student_id"`
	TutorID    int           `json:"tutor_id"`
	LessonDate string        `json:"lesson_date"`
	LessonTime string        `json:"lesson_time"`
	Duration   int           `json:"duration"`
	Notes      string        `json:"notes"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// BookingDetail is a booking joined with its tutor's display fields.
type BookingDetail struct {
	Booking
	TutorName    string  `json:"tutor_name"`
	TutorSurname string  `json:"tutor_surname"`
	Rate         float64 `json:"rate"`
}

// CreateBookingRequest is the payload for reserving a lesson.
type CreateBookingRequest struct {
	StudentID  int    `json:"studentId" binding:"required"`
	TutorID    int    `json:"tutorId" binding:"required"`
	LessonDate string `json:"lessonDate" binding:"required"`
	LessonTime string `json:"lessonTime" binding:"required"`
	Duration   int    `json:"duration" binding:"omitempty,min=1,max=600"`
	Notes      string `json:"notes"`
}

// UpdateBookingStatusRequest carries the new status for a booking.
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status"`
}

// BookedSlot is an occupied lesson start on a given date.
type BookedSlot struct {
	LessonTime string `json:"lesson_time"`
	Duration   int    `json:"duration"`
}

// TimeWindow is an advertised availability window.
type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DayAvailability is a tutor's schedule for a single date: the slots already
// taken and the weekly windows that apply to that weekday.
type DayAvailability struct {
	Bookings     []BookedSlot `json:"bookings"`
	Availability []TimeWindow `json:"availability"`
}
