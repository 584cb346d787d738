package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// TutorRepository handles tutors and their weekly availability windows.
type TutorRepository interface {
	List(ctx context.Context) ([]model.Tutor, error)
	GetByID(ctx context.Context, id int) (*model.Tutor, error)
	Create(ctx context.Context, t *model.Tutor) error
	Update(ctx context.Context, t *model.Tutor) error
	Delete(ctx context.Context, id int) error

	ListAvailability(ctx context.Context, tutorID int) ([]model.Availability, error)
	// WindowsForDay returns the windows a tutor advertises on a weekday (0 = Sunday).
	WindowsForDay(ctx context.Context, tutorID, dayOfWeek int) ([]model.TimeWindow, error)
	CreateAvailability(ctx context.Context, a *model.Availability) error
	DeleteAvailability(ctx context.Context, tutorID, slotID int) error
}

type tutorRepository struct {
	pool *pgxpool.Pool
}

// NewTutorRepository creates a new TutorRepository.
func NewTutorRepository(pool *pgxpool.Pool) TutorRepository {
	return &tutorRepository{pool: pool}
}

const tutorColumns = `id, first_name, last_name, description, rate::float8`

func (r *tutorRepository) List(ctx context.Context) ([]model.Tutor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tutorColumns+` FROM tutors ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tutors := []model.Tutor{}
	for rows.Next() {
		var t model.Tutor
		if err := rows.Scan(&t.ID, &t.Name, &t.Surname, &t.Bio, &t.Rate); err != nil {
			return nil, err
		}
		tutors = append(tutors, t)
	}
	return tutors, rows.Err()
}

func (r *tutorRepository) GetByID(ctx context.Context, id int) (*model.Tutor, error) {
	t := &model.Tutor{}
	err := r.pool.QueryRow(ctx, `SELECT `+tutorColumns+` FROM tutors WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Surname, &t.Bio, &t.Rate)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return t, nil
}

func (r *tutorRepository) Create(ctx context.Context, t *model.Tutor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tutors (first_name, last_name, description, rate)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		t.Name, t.Surname, t.Bio, t.Rate,
	).Scan(&t.ID)
	return mapWriteErr(err)
}

func (r *tutorRepository) Update(ctx context.Context, t *model.Tutor) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE tutors SET first_name = $1, last_name = $2, description = $3, rate = $4
		 WHERE id = $5
		 RETURNING id`,
		t.Name, t.Surname, t.Bio, t.Rate, t.ID,
	).Scan(&t.ID)
	return mapWriteErr(err)
}

func (r *tutorRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tutors WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Availability ──────────────────────────────────────────────────────────

func (r *tutorRepository) ListAvailability(ctx context.Context, tutorID int) ([]model.Availability, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tutor_id, day_of_week,
		        to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS')
		 FROM tutor_availability
		 WHERE tutor_id = $1
		 ORDER BY day_of_week, start_time`, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []model.Availability{}
	for rows.Next() {
		var a model.Availability
		if err := rows.Scan(&a.ID, &a.TutorID, &a.DayOfWeek, &a.StartTime, &a.EndTime); err != nil {
			return nil, err
		}
		slots = append(slots, a)
	}
	return slots, rows.Err()
}

func (r *tutorRepository) WindowsForDay(ctx context.Context, tutorID, dayOfWeek int) ([]model.TimeWindow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS')
		 FROM tutor_availability
		 WHERE tutor_id = $1 AND day_of_week = $2
		 ORDER BY start_time`, tutorID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := []model.TimeWindow{}
	for rows.Next() {
		var w model.TimeWindow
		if err := rows.Scan(&w.StartTime, &w.EndTime); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *tutorRepository) CreateAvailability(ctx context.Context, a *model.Availability) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tutor_availability (tutor_id, day_of_week, start_time, end_time)
		 VALUES ($1, $2, $3::text::time, $4::text::time)
		 RETURNING id`,
		a.TutorID, a.DayOfWeek, a.StartTime, a.EndTime,
	).Scan(&a.ID)
	return mapWriteErr(err)
}

func (r *tutorRepository) DeleteAvailability(ctx context.Context, tutorID, slotID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tutor_availability WHERE id = $1 AND tutor_id = $2`, slotID, tutorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
