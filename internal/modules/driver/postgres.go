package driver

import (
	"context"
	"database/sql"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed driver table.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, d *Driver) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO drivers (id, name, phone, vehicle, username)
		VALUES ($1,$2,$3,$4,$5)`,
		d.ID, d.Name, d.Phone, d.Vehicle, d.Username)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Driver, error) {
	d := &Driver{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, vehicle, username FROM drivers WHERE id=$1`, id).
		Scan(&d.ID, &d.Name, &d.Phone, &d.Vehicle, &d.Username)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.KindNotFound, "Driver not found")
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}
