package repos

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemRow joins a cart line with its product for rendering.
type CartItemRow struct {
	ID          string          `db:"id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	ImageURL    string          `db:"image_url"`
	Qty         int             `db:"qty"`
	Price       decimal.Decimal `db:"price"`
	Subtotal    decimal.Decimal `db:"-"`
}

func (r *CartRepo) ListByUser(userID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT ci.id, ci.product_id, p.name AS product_name,
	         COALESCE(p.image_url,'') AS image_url, ci.qty, p.price
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ?
	  ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Subtotal = rows[i].Price.Mul(decimal.NewFromInt(int64(rows[i].Qty)))
	}
	return rows, nil
}

// Add accumulates quantity into an existing line for the same product.
func (r *CartRepo) Add(userID, productID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(id,user_id,product_id,qty)
		VALUES(?,?,?,?)
		ON CONFLICT(user_id,product_id) DO UPDATE
		SET qty = qty + excluded.qty, updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), userID, productID, qty)
	return err
}

// UpdateQty sets a line's quantity. The line must belong to userID and qty
// must be at least 1; the CHECK constraint backs this up.
func (r *CartRepo) UpdateQty(lineID, userID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	res, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`, qty, lineID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cart item not found")
	}
	return nil
}

func (r *CartRepo) Delete(lineID, userID string) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, lineID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cart item not found")
	}
	return nil
}

func (r *CartRepo) ClearUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
