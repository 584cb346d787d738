package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// ReviewRepository handles reviews between students and tutors.
type ReviewRepository interface {
	List(ctx context.Context, f model.ReviewFilter) ([]model.Review, error)
	GetByID(ctx context.Context, id int) (*model.Review, error)
	Create(ctx context.Context, rv *model.Review) error
	// Update changes only the rating and comment.
	Update(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id int) error
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewColumns = `id, from_role, from_id, to_role, to_id, rating, comment, created_at`

// List returns reviews matching every set filter, newest first.
func (r *reviewRepository) List(ctx context.Context, f model.ReviewFilter) ([]model.Review, error) {
	where, args := reviewFilterClause(f)
	query := `SELECT ` + reviewColumns + ` FROM reviews` + where + ` ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.FromRole, &rv.FromID, &rv.ToRole, &rv.ToID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// reviewFilterClause builds the WHERE clause for f with positional args.
func reviewFilterClause(f model.ReviewFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	next := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.FromRole != "" {
		clauses = append(clauses, "from_role = "+next(f.FromRole))
	}
	if f.FromID != nil {
		clauses = append(clauses, "from_id = "+next(*f.FromID))
	}
	if f.ToRole != "" {
		clauses = append(clauses, "to_role = "+next(f.ToRole))
	}
	if f.ToID != nil {
		clauses = append(clauses, "to_id = "+next(*f.ToID))
	}
	if f.TutorID != nil {
		p := next(*f.TutorID)
		clauses = append(clauses, "((from_role = 'tutor' AND from_id = "+p+") OR (to_role = 'tutor' AND to_id = "+p+"))")
	}
	if f.StudentID != nil {
		p := next(*f.StudentID)
		clauses = append(clauses, "((from_role = 'student' AND from_id = "+p+") OR (to_role = 'student' AND to_id = "+p+"))")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *reviewRepository) GetByID(ctx context.Context, id int) (*model.Review, error) {
	rv := &model.Review{}
	err := r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id).
		Scan(&rv.ID, &rv.FromRole, &rv.FromID, &rv.ToRole, &rv.ToID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (from_role, from_id, to_role, to_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		rv.FromRole, rv.FromID, rv.ToRole, rv.ToID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
	return mapWriteErr(err)
}

func (r *reviewRepository) Update(ctx context.Context, rv *model.Review) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE reviews SET rating = $1, comment = $2
		 WHERE id = $3
		 RETURNING `+reviewColumns,
		rv.Rating, rv.Comment, rv.ID,
	).Scan(&rv.ID, &rv.FromRole, &rv.FromID, &rv.ToRole, &rv.ToID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	return mapWriteErr(err)
}

func (r *reviewRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
