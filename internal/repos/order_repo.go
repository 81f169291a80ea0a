package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"shopmate/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderSummary backs the operator dashboard list.
type OrderSummary struct {
	ID        string  `db:"order_id"`
	Customer  string  `db:"customer_name"`
	Total     float64 `db:"total"`
	Status    string  `db:"status"`
	CreatedAt string  `db:"created_at"`
}

// Create writes the order header, its line snapshots, and clears the
// originating cart in one transaction. Either all of it is durable when
// this returns, or none of it is.
func (r *OrderRepo) Create(o domain.Order, cartID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(order_id, created_at, updated_at, total, customer_name, address, status)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.CreatedAt, o.UpdatedAt, o.Total, o.Customer, o.Address, string(o.Status)); err != nil {
		return err
	}
	for _, l := range o.Lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, item_id, name, unit_price, qty, notes)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, o.ID, l.ItemID, l.Name, l.UnitPrice, l.Qty, l.Notes); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT order_id, created_at, updated_at, total, customer_name, address, status
		FROM orders WHERE order_id = ?
	`, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, err
	}

	if err := r.db.Select(&o.Lines, `
		SELECT item_id, name, unit_price, qty, notes
		FROM order_items
		WHERE order_id = ?
		ORDER BY rowid
	`, orderID); err != nil {
		return domain.Order{}, err
	}

	return o, nil
}

func (r *OrderRepo) GetStatus(orderID string) (domain.Status, error) {
	var s string
	err := r.db.Get(&s, `SELECT status FROM orders WHERE order_id = ?`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrOrderNotFound
	}
	return domain.Status(s), err
}

// Advance is the check-and-set that keeps the cancellation race safe:
// a single conditional UPDATE guarded on the persisted status. It
// reports changed=false (not an error) when the order is already
// terminal, which is how a late progression step loses to a
// cancellation instead of overwriting it.
func (r *OrderRepo) Advance(orderID string, next domain.Status) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders SET status = ?, updated_at = ?
		WHERE order_id = ? AND status NOT IN (?, ?)
	`, string(next), time.Now().UTC().Format(time.RFC3339Nano),
		orderID, string(domain.StatusDelivered), string(domain.StatusCancelled))
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Cancel forces status to cancelled unless the order was delivered.
// Cancelling an already-cancelled order is a silent success.
func (r *OrderRepo) Cancel(orderID string) error {
	res, err := r.db.Exec(`
		UPDATE orders SET status = ?, updated_at = ?
		WHERE order_id = ? AND status <> ?
	`, string(domain.StatusCancelled), time.Now().UTC().Format(time.RFC3339Nano),
		orderID, string(domain.StatusDelivered))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Zero rows: delivered, already cancelled is impossible here (it
	// matches the WHERE), or the id is unknown. Orders are never
	// deleted, so the re-read below cannot miss.
	st, err := r.GetStatus(orderID)
	if err != nil {
		return err
	}
	if st == domain.StatusDelivered {
		return domain.ErrAlreadyDelivered
	}
	return nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []OrderSummary{}
	err := r.db.Select(&out, `
		SELECT order_id, customer_name, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC, order_id
		LIMIT ?
	`, limit)
	return out, err
}
