package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"shopmate/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// UpsertLine merges on (cart_id, item_id): an existing line gains qty,
// and its notes are replaced only when the incoming notes are non-empty.
func (r *CartRepo) UpsertLine(cartID string, line domain.CartLine) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,item_id,name,unit_price,qty,notes,created_at)
		VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,item_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty,
		    notes = CASE WHEN excluded.notes <> '' THEN excluded.notes ELSE cart_items.notes END,
		    updated_at = CURRENT_TIMESTAMP
	`, cartID, line.ItemID, line.Name, line.UnitPrice, line.Qty, line.Notes)
	return err
}

func (r *CartRepo) SetQty(cartID, itemID string, qty int) error {
	res, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND item_id = ?
	`, qty, cartID, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (r *CartRepo) Remove(cartID, itemID string) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND item_id = ?`, cartID, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (r *CartRepo) Line(cartID, itemID string) (domain.CartLine, error) {
	var l domain.CartLine
	err := r.db.Get(&l, `
	  SELECT item_id, name, unit_price, qty, notes
	  FROM cart_items WHERE cart_id = ? AND item_id = ?
	`, cartID, itemID)
	return l, err
}

func (r *CartRepo) Lines(cartID string) ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	err := r.db.Select(&out, `
	  SELECT item_id, name, unit_price, qty, notes
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY created_at, item_id
	`, cartID)
	return out, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
