package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// CourseRepository handles courses and the tutor_courses link table.
type CourseRepository interface {
	List(ctx context.Context) ([]model.Course, error)
	GetByID(ctx context.Context, id int) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id int) error

	ListTutors(ctx context.Context, courseID int) ([]model.Tutor, error)
	ListForTutor(ctx context.Context, tutorID int) ([]model.CourseSummary, error)
	// Assign links a tutor to a course; ErrDuplicate when already linked.
	Assign(ctx context.Context, tutorID, courseID int) error
	Unassign(ctx context.Context, tutorID, courseID int) error
}

type courseRepository struct {
	db *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	query := `SELECT id, name, description, category, created_at, updated_at FROM courses ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *courseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	query := `SELECT id, name, description, category, created_at, updated_at FROM courses WHERE id = $1`
	c := &model.Course{}
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return c, nil
}

func (r *courseRepository) Create(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses (name, description, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.Name, c.Description, c.Category).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapWriteErr(err)
}

func (r *courseRepository) Update(ctx context.Context, c *model.Course) error {
	query := `
		UPDATE courses
		SET name = $1, description = $2, category = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.Name, c.Description, c.Category, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapWriteErr(err)
}

func (r *courseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *courseRepository) ListTutors(ctx context.Context, courseID int) ([]model.Tutor, error) {
	query := `
		SELECT t.id, t.first_name, t.last_name, t.description, t.rate::float8
		FROM tutors t
		INNER JOIN tutor_courses tc ON t.id = tc.tutor_id
		WHERE tc.course_id = $1
		ORDER BY t.first_name, t.last_name
	`
	rows, err := r.db.Query(ctx, query, courseID)
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

func (r *courseRepository) ListForTutor(ctx context.Context, tutorID int) ([]model.CourseSummary, error) {
	query := `
		SELECT c.id, c.name, c.description, c.category
		FROM courses c
		INNER JOIN tutor_courses tc ON c.id = tc.course_id
		WHERE tc.tutor_id = $1
		ORDER BY c.name ASC
	`
	rows, err := r.db.Query(ctx, query, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.CourseSummary{}
	for rows.Next() {
		var c model.CourseSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Category); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *courseRepository) Assign(ctx context.Context, tutorID, courseID int) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tutor_courses (tutor_id, course_id) VALUES ($1, $2)`, tutorID, courseID)
	return mapWriteErr(err)
}

func (r *courseRepository) Unassign(ctx context.Context, tutorID, courseID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tutor_courses WHERE tutor_id = $1 AND course_id = $2`, tutorID, courseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
