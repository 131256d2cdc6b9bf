package repos

import (
	"fmt"

	"bathstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type QuotationRepo struct{ db *sqlx.DB }

func NewQuotationRepo(db *sqlx.DB) *QuotationRepo { return &QuotationRepo{db: db} }

const quotationCols = `id, user_id, qname, address, qnumber, status, total_price, request_date`

// Create inserts the quotation header and its item snapshot in one
// transaction and clears the user's cart.
func (r *QuotationRepo) Create(q domain.Quotation, items []domain.QuotationItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO quotations(id,user_id,qname,address,qnumber,status,total_price)
	  VALUES(?,?,?,?,?,?,?)`,
		q.ID, q.UserID, q.Qname, q.Address, q.Qnumber, q.Status, q.TotalPrice.String()); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO quotation_items(quotation_id,product_id,product_name,qty,price)
		  VALUES(?,?,?,?,?)`,
			q.ID, it.ProductID, it.ProductName, it.Qty, it.Price.String()); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = ?`, q.UserID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *QuotationRepo) Get(id string) (domain.Quotation, error) {
	var q domain.Quotation
	err := r.db.Get(&q, `SELECT `+quotationCols+` FROM quotations WHERE id=?`, id)
	return q, err
}

func (r *QuotationRepo) Items(quotationID string) ([]domain.QuotationItem, error) {
	var out []domain.QuotationItem
	err := r.db.Select(&out, `
	  SELECT quotation_id, product_id, product_name, qty, price
	  FROM quotation_items WHERE quotation_id=?
	  ORDER BY product_name`, quotationID)
	return out, err
}

func (r *QuotationRepo) ListAll() ([]domain.Quotation, error) {
	var out []domain.Quotation
	err := r.db.Select(&out, `
	  SELECT `+quotationCols+` FROM quotations
	  ORDER BY datetime(request_date) DESC`)
	return out, err
}

// ListApprovedUnpaidByUser returns the user's approved quotations that have
// no order yet — the candidates for a payment-slip upload.
func (r *QuotationRepo) ListApprovedUnpaidByUser(userID string) ([]domain.Quotation, error) {
	var out []domain.Quotation
	err := r.db.Select(&out, `
	  SELECT `+quotationCols+` FROM quotations q
	  WHERE q.user_id = ? AND q.status = 'APPROVED'
	    AND NOT EXISTS (SELECT 1 FROM orders o WHERE o.quotation_id = q.id)
	  ORDER BY datetime(q.request_date) DESC`, userID)
	return out, err
}

func (r *QuotationRepo) UpdateStatus(id string, status domain.QuotationStatus) error {
	res, err := r.db.Exec(`UPDATE quotations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("quotation %s not found", id)
	}
	return nil
}
