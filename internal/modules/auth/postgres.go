package auth

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed credential store.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateAccount(ctx context.Context, a *Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, scope, subject_id, username, password_hash)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.Scope, a.SubjectID, a.Username, a.PasswordHash)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return apperr.E(apperr.KindConflict, "Username already exists")
	}
	return err
}

func (r *postgresRepo) GetByUsername(ctx context.Context, scope Scope, username string) (*Account, error) {
	a := &Account{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, scope, subject_id, username, password_hash
		FROM accounts WHERE scope=$1 AND username=$2`,
		scope, username).Scan(&a.ID, &a.Scope, &a.SubjectID, &a.Username, &a.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.KindNotFound, "account not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
