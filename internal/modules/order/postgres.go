package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed order ledger.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the order and all its items inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, consumer_id, store_id, address, payment, status, driver_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8,$9)`,
		o.ID, o.ConsumerID, o.StoreID, o.Address, o.Payment, o.Status, o.DriverID, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, product_id, qty, price)
			VALUES ($1,$2,$3,$4,$5)`,
			o.ID, i, item.ProductID, item.Qty, item.Price)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := r.scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrder+` ORDER BY created_at ASC`)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status Status) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrder+` WHERE status=$1 ORDER BY created_at ASC`, status)
}

func (r *postgresRepo) ListByConsumer(ctx context.Context, consumerID string) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrder+` WHERE consumer_id=$1 ORDER BY created_at ASC`, consumerID)
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrder+` WHERE store_id=$1 ORDER BY created_at ASC`, storeID)
}

func (r *postgresRepo) ListByDriver(ctx context.Context, driverID string) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrder+` WHERE driver_id=$1 ORDER BY created_at ASC`, driverID)
}

// Claim is a conditional UPDATE: only a CREATED order with no driver can
// be taken, so concurrent claimers race on the row and exactly one wins.
func (r *postgresRepo) Claim(ctx context.Context, id, driverID string) (*Order, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, driver_id=$2, updated_at=$3
		WHERE id=$4 AND status=$5 AND driver_id IS NULL`,
		StatusAccepted, driverID, time.Now().UTC(), id, StatusCreated)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.E(apperr.KindConflict, "Order not available")
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Advance(ctx context.Context, id string, from, to Status, driverID string) (*Order, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, updated_at=$2
		WHERE id=$3 AND status=$4 AND driver_id=$5`,
		to, time.Now().UTC(), id, from, driverID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		o, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if o.Status != from {
			return nil, apperr.E(apperr.KindConflict,
				"Cannot %s order in status %s", eventName[to], o.Status)
		}
		return nil, apperr.E(apperr.KindForbidden, "Not your order")
	}
	return r.GetByID(ctx, id)
}

// ── helpers ──────────────────────────────────────────────────────────────────

const selectOrder = `
	SELECT id, consumer_id, store_id, address, payment, status, COALESCE(driver_id,''), created_at, updated_at
	FROM orders`

func (r *postgresRepo) scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	err := row.Scan(&o.ID, &o.ConsumerID, &o.StoreID, &o.Address, &o.Payment,
		&o.Status, &o.DriverID, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.E(apperr.KindNotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.ConsumerID, &o.StoreID, &o.Address, &o.Payment,
			&o.Status, &o.DriverID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, qty, price FROM order_items
		WHERE order_id=$1 ORDER BY position ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Qty, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
