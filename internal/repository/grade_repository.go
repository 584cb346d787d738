package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// GradeRepository handles grade records.
type GradeRepository interface {
	List(ctx context.Context) ([]model.GradeDetail, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.GradeDetail, error)
	GetByID(ctx context.Context, id int) (*model.Grade, error)
	Create(ctx context.Context, g *model.Grade) error
	Update(ctx context.Context, g *model.Grade) error
	Delete(ctx context.Context, id int) error
}

type gradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) GradeRepository {
	return &gradeRepository{pool: pool}
}

// List returns every grade with student and course names, newest first.
func (r *gradeRepository) List(ctx context.Context) ([]model.GradeDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.student_id, g.course_id, g.grade_value, g.comments, g.created_at,
		        s.first_name, s.last_name, c.name
		 FROM grades g
		 LEFT JOIN students s ON g.student_id = s.id
		 LEFT JOIN courses c ON g.course_id = c.id
		 ORDER BY g.created_at DESC, g.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []model.GradeDetail{}
	for rows.Next() {
		var d model.GradeDetail
		if err := rows.Scan(&d.ID, &d.StudentID, &d.CourseID, &d.GradeValue, &d.Comments, &d.CreatedAt,
			&d.StudentFirstName, &d.StudentLastName, &d.CourseName); err != nil {
			return nil, err
		}
		grades = append(grades, d)
	}
	return grades, rows.Err()
}

// ListByStudent returns a student's grades with course names, newest first.
func (r *gradeRepository) ListByStudent(ctx context.Context, studentID int) ([]model.GradeDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.student_id, g.course_id, g.grade_value, g.comments, g.created_at, c.name
		 FROM grades g
		 LEFT JOIN courses c ON g.course_id = c.id
		 WHERE g.student_id = $1
		 ORDER BY g.created_at DESC, g.id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []model.GradeDetail{}
	for rows.Next() {
		var d model.GradeDetail
		if err := rows.Scan(&d.ID, &d.StudentID, &d.CourseID, &d.GradeValue, &d.Comments, &d.CreatedAt,
			&d.CourseName); err != nil {
			return nil, err
		}
		grades = append(grades, d)
	}
	return grades, rows.Err()
}

func (r *gradeRepository) GetByID(ctx context.Context, id int) (*model.Grade, error) {
	g := &model.Grade{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, course_id, grade_value, comments, created_at FROM grades WHERE id = $1`, id,
	).Scan(&g.ID, &g.StudentID, &g.CourseID, &g.GradeValue, &g.Comments, &g.CreatedAt)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return g, nil
}

func (r *gradeRepository) Create(ctx context.Context, g *model.Grade) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, course_id, grade_value, comments)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		g.StudentID, g.CourseID, g.GradeValue, g.Comments,
	).Scan(&g.ID, &g.CreatedAt)
	return mapWriteErr(err)
}

func (r *gradeRepository) Update(ctx context.Context, g *model.Grade) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE grades SET student_id = $1, course_id = $2, grade_value = $3, comments = $4
		 WHERE id = $5
		 RETURNING created_at`,
		g.StudentID, g.CourseID, g.GradeValue, g.Comments, g.ID,
	).Scan(&g.CreatedAt)
	return mapWriteErr(err)
}

func (r *gradeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
