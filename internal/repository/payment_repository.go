package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// PaymentRepository handles payment records.
type PaymentRepository interface {
	List(ctx context.Context) ([]model.PaymentDetail, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Payment, error)
	Create(ctx context.Context, p *model.Payment) error
	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, id int) error
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) List(ctx context.Context) ([]model.PaymentDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.student_id, p.amount::float8, p.currency, p.method, p.status, p.reference, p.created_at,
		        s.first_name, s.last_name
		 FROM payments p
		 LEFT JOIN students s ON s.id = p.student_id
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []model.PaymentDetail{}
	for rows.Next() {
		var d model.PaymentDetail
		if err := rows.Scan(&d.ID, &d.StudentID, &d.Amount, &d.Currency, &d.Method, &d.Status, &d.Reference,
			&d.CreatedAt, &d.FirstName, &d.LastName); err != nil {
			return nil, err
		}
		payments = append(payments, d)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, amount::float8, currency, method, status, reference, created_at
		 FROM payments
		 WHERE student_id = $1
		 ORDER BY created_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Currency, &p.Method, &p.Status, &p.Reference,
			&p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payments (student_id, amount, currency, method, status, reference)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.StudentID, p.Amount, p.Currency, p.Method, p.Status, p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
	return mapWriteErr(err)
}

func (r *paymentRepository) Update(ctx context.Context, p *model.Payment) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE payments SET student_id = $1, amount = $2, currency = $3, method = $4, status = $5, reference = $6
		 WHERE id = $7
		 RETURNING created_at`,
		p.StudentID, p.Amount, p.Currency, p.Method, p.Status, p.Reference, p.ID,
	).Scan(&p.CreatedAt)
	return mapWriteErr(err)
}

func (r *paymentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
