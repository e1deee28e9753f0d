package user

import (
	"context"
	"database/sql"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed consumer table.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Consumer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consumers (id, name, address, username)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.Name, c.Address, c.Username)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Consumer, error) {
	c := &Consumer{Role: "consumer"}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, address, username FROM consumers WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.Username)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.KindNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Consumer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, address, username FROM consumers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Consumer
	for rows.Next() {
		c := &Consumer{Role: "consumer"}
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Username); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
