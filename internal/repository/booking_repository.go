package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/database"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// BookingRepository handles lesson bookings.
//
// Dates are exchanged as YYYY-MM-DD strings and times as HH:MM:SS strings; the
// SQL casts them so the values never depend on the session DateStyle.
type BookingRepository interface {
	ListByStudent(ctx context.Context, studentID int) ([]model.BookingDetail, error)
	ListByTutor(ctx context.Context, tutorID int) ([]model.Booking, error)
	GetDetail(ctx context.Context, id int) (*model.BookingDetail, error)

	// SlotTaken reports whether a non-cancelled booking occupies the slot.
	SlotTaken(ctx context.Context, tutorID int, date, clock string) (bool, error)
	// BookedSlots lists non-cancelled lesson starts for a tutor on a date.
	BookedSlots(ctx context.Context, tutorID int, date string) ([]model.BookedSlot, error)

	// Create re-checks the slot and inserts b in one transaction, serialised
	// per slot. Returns ErrSlotTaken when the slot is occupied.
	Create(ctx context.Context, b *model.Booking) error
	UpdateStatus(ctx context.Context, id int, status model.BookingStatus) error
	Delete(ctx context.Context, id int) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `b.id, b.student_id, b.tutor_id,
	to_char(b.lesson_date, 'YYYY-MM-DD'), to_char(b.lesson_time, 'HH24:MI:SS'),
	b.duration, b.notes, b.status, b.created_at`

const slotTakenQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE tutor_id = $1 AND lesson_date = $2::text::date AND lesson_time = $3::text::time
		  AND status <> 'cancelled'
	)`

func scanBooking(row pgx.Row, b *model.Booking, extra ...any) error {
	dest := []any{&b.ID, &b.StudentID, &b.TutorID, &b.LessonDate, &b.LessonTime,
		&b.Duration, &b.Notes, &b.Status, &b.CreatedAt}
	return row.Scan(append(dest, extra...)...)
}

func (r *bookingRepository) ListByStudent(ctx context.Context, studentID int) ([]model.BookingDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+`, t.first_name, t.last_name, t.rate::float8
		 FROM bookings b
		 JOIN tutors t ON b.tutor_id = t.id
		 WHERE b.student_id = $1
		 ORDER BY b.lesson_date DESC, b.lesson_time DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []model.BookingDetail{}
	for rows.Next() {
		var d model.BookingDetail
		if err := scanBooking(rows, &d.Booking, &d.TutorName, &d.TutorSurname, &d.Rate); err != nil {
			return nil, err
		}
		bookings = append(bookings, d)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListByTutor(ctx context.Context, tutorID int) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.tutor_id = $1
		 ORDER BY b.lesson_date DESC, b.lesson_time DESC`, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) GetDetail(ctx context.Context, id int) (*model.BookingDetail, error) {
	d := &model.BookingDetail{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+`, t.first_name, t.last_name, t.rate::float8
		 FROM bookings b
		 JOIN tutors t ON b.tutor_id = t.id
		 WHERE b.id = $1`, id)
	if err := scanBooking(row, &d.Booking, &d.TutorName, &d.TutorSurname, &d.Rate); err != nil {
		return nil, mapReadErr(err)
	}
	return d, nil
}

func (r *bookingRepository) SlotTaken(ctx context.Context, tutorID int, date, clock string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, slotTakenQuery, tutorID, date, clock).Scan(&taken)
	return taken, err
}

func (r *bookingRepository) BookedSlots(ctx context.Context, tutorID int, date string) ([]model.BookedSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(lesson_time, 'HH24:MI:SS'), duration
		 FROM bookings
		 WHERE tutor_id = $1 AND lesson_date = $2::text::date AND status <> 'cancelled'
		 ORDER BY lesson_time`, tutorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []model.BookedSlot{}
	for rows.Next() {
		var s model.BookedSlot
		if err := rows.Scan(&s.LessonTime, &s.Duration); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	lockKey := fmt.Sprintf("booking:%d:%s:%s", b.TutorID, b.LessonDate, b.LessonTime)

	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		// Serialise concurrent requests for the same slot until commit.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		var taken bool
		if err := tx.QueryRow(ctx, slotTakenQuery, b.TutorID, b.LessonDate, b.LessonTime).Scan(&taken); err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}

		err := tx.QueryRow(ctx,
			`INSERT INTO bookings (student_id, tutor_id, lesson_date, lesson_time, duration, notes, status)
			 VALUES ($1, $2, $3::text::date, $4::text::time, $5, $6, $7)
			 RETURNING id, created_at`,
			b.StudentID, b.TutorID, b.LessonDate, b.LessonTime, b.Duration, b.Notes, b.Status,
		).Scan(&b.ID, &b.CreatedAt)
		return mapWriteErr(err)
	})
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int, status model.BookingStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
