package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository interface {
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int) error
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

// List returns all students, newest first.
func (r *studentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name, email FROM students ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetByID retrieves a student by ID.
func (r *studentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return s, nil
}

// Create inserts a new student. A taken email yields ErrDuplicate.
func (r *studentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (first_name, last_name, email)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		s.FirstName, s.LastName, s.Email,
	).Scan(&s.ID)
	return mapWriteErr(err)
}

// Update replaces a student's fields.
func (r *studentRepository) Update(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE students SET first_name = $1, last_name = $2, email = $3
		 WHERE id = $4
		 RETURNING id`,
		s.FirstName, s.LastName, s.Email, s.ID,
	).Scan(&s.ID)
	return mapWriteErr(err)
}

// Delete removes a student by ID.
func (r *studentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
