package catalog

import (
	"context"
	"database/sql"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type storePostgresRepo struct{ db *sql.DB }

// NewStorePostgresRepository creates a Postgres-backed store table.
func NewStorePostgresRepository(db *sql.DB) StoreRepository { return &storePostgresRepo{db: db} }

func (r *storePostgresRepo) CreateStore(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (id, name, description, address, is_open)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.Name, s.Description, s.Address, s.IsOpen)
	return err
}

func (r *storePostgresRepo) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	s := &Store{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, address, is_open
		FROM stores WHERE id=$1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Address, &s.IsOpen)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.KindNotFound, "Store not found")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *storePostgresRepo) ListStores(ctx context.Context) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, address, is_open FROM stores ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Store
	for rows.Next() {
		s := &Store{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Address, &s.IsOpen); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *storePostgresRepo) SetOpen(ctx context.Context, id string, open bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE stores SET is_open=$1 WHERE id=$2`, open, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.KindNotFound, "Store not found")
	}
	return nil
}

type productPostgresRepo struct{ db *sql.DB }

// NewProductPostgresRepository creates a Postgres-backed product table.
func NewProductPostgresRepository(db *sql.DB) ProductRepository { return &productPostgresRepo{db: db} }

func (r *productPostgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, store_id, name, price, stock)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.StoreID, p.Name, p.Price, p.Stock)
	return err
}

func (r *productPostgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	p := &Product{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, store_id, name, price, stock FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.Stock)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.KindNotFound, "Product not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productPostgresRepo) ListProductsByStore(ctx context.Context, storeID string) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, name, price, stock
		FROM products WHERE store_id=$1 ORDER BY id`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productPostgresRepo) SetStock(ctx context.Context, storeID, productID string, stock int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock=$1 WHERE id=$2 AND store_id=$3`, stock, productID, storeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.KindNotFound, "Product not found")
	}
	return nil
}

// Reserve locks each line's row, verifies stock, and decrements, all in
// one transaction. Any shortfall rolls the whole batch back.
func (r *productPostgresRepo) Reserve(ctx context.Context, lines []Line) ([]PriceSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	snapshots := make([]PriceSnapshot, 0, len(lines))
	for _, ln := range lines {
		var name string
		var price float64
		var stock int
		err := tx.QueryRowContext(ctx,
			`SELECT name, price, stock FROM products WHERE id=$1 FOR UPDATE`, ln.ProductID).
			Scan(&name, &price, &stock)
		if err == sql.ErrNoRows {
			return nil, apperr.E(apperr.KindValidation, "Product %s not found", ln.ProductID)
		}
		if err != nil {
			return nil, err
		}
		if stock < ln.Qty {
			return nil, apperr.E(apperr.KindConflict,
				"Insufficient stock for %s. Available: %d, Requested: %d", name, stock, ln.Qty)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $2 WHERE id=$1`, ln.ProductID, ln.Qty); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, PriceSnapshot{ProductID: ln.ProductID, Qty: ln.Qty, Price: price})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *productPostgresRepo) Release(ctx context.Context, lines []Line) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, ln := range lines {
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock + $2 WHERE id=$1`, ln.ProductID, ln.Qty); err != nil {
			return err
		}
	}
	return tx.Commit()
}
