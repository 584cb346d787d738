package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorly-backend/internal/model"
)

// AccountRepository persists login identities.
type AccountRepository interface {
	// Create inserts a; ErrDuplicate when the email (case-insensitive) exists.
	Create(ctx context.Context, a *model.Account) error
	// GetByEmail looks an account up case-insensitively.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates an AccountRepository backed by PostgreSQL.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, a *model.Account) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, name, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		a.Email, a.Name, a.Role, a.PasswordHash,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapWriteErr(err)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, role, password_hash, created_at, updated_at
		 FROM accounts WHERE LOWER(email) = LOWER($1)`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return a, nil
}
