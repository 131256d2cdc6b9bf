package repos

import (
	"fmt"

	"bathstore/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderRow is the admin/customer list shape: the order joined with its
// quotation's contact fields.
type OrderRow struct {
	ID            string          `db:"id"`
	QuotationID   string          `db:"quotation_id"`
	UserID        string          `db:"user_id"`
	CustomerName  string          `db:"customer_name"`
	Address       string          `db:"address"`
	PhoneNumber   string          `db:"phone_number"`
	PaymentSlip   string          `db:"payment_slip"`
	PaymentStatus string          `db:"payment_status"`
	DeliverStatus string          `db:"deliver_status"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	CreatedDate   string          `db:"created_date"`
	DeliveredDate string          `db:"delivered_date"`
}

const orderRowSelect = `
	SELECT o.id, o.quotation_id, o.user_id,
	       q.qname AS customer_name, q.address, q.qnumber AS phone_number,
	       o.payment_slip, o.payment_status, o.deliver_status, o.total_amount,
	       o.created_date, COALESCE(o.delivered_date,'') AS delivered_date
	FROM orders o
	JOIN quotations q ON q.id = o.quotation_id`

func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders(id,quotation_id,user_id,payment_slip,payment_status,deliver_status,total_amount)
	  VALUES(?,?,?,?,?,?,?)`,
		o.ID, o.QuotationID, o.UserID, o.PaymentSlip, o.PaymentStatus, o.DeliverStatus, o.TotalAmount.String())
	return err
}

func (r *OrderRepo) ExistsByQuotation(quotationID string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE quotation_id=?`, quotationID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, quotation_id, user_id, payment_slip, payment_status,
	         deliver_status, total_amount, created_date,
	         COALESCE(delivered_date,'') AS delivered_date
	  FROM orders WHERE id=?`, id)
	return o, err
}

func (r *OrderRepo) ListAll() ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, orderRowSelect+`
	ORDER BY datetime(o.created_date) DESC`)
	return out, err
}

func (r *OrderRepo) ListByUser(userID string) ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, orderRowSelect+`
	WHERE o.user_id = ?
	ORDER BY datetime(o.created_date) DESC`, userID)
	return out, err
}

func (r *OrderRepo) UpdatePaymentStatus(id string, status domain.PaymentStatus) error {
	res, err := r.db.Exec(`UPDATE orders SET payment_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// UpdateDeliveryStatus sets the fulfillment stage; reaching DELIVERED stamps
// the delivered date.
func (r *OrderRepo) UpdateDeliveryStatus(id string, status domain.DeliveryStatus) error {
	query := `UPDATE orders SET deliver_status = ? WHERE id = ?`
	if status == domain.DeliveryDelivered {
		query = `UPDATE orders SET deliver_status = ?, delivered_date = CURRENT_TIMESTAMP WHERE id = ?`
	}
	res, err := r.db.Exec(query, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}
