package domain

import "github.com/shopspring/decimal"

// Status enums are closed sets; every write path parses through the
// corresponding Parse func so an unknown string never reaches the database.

type QuotationStatus string

const (
	QuotationPending  QuotationStatus = "PENDING"
	QuotationApproved QuotationStatus = "APPROVED"
	QuotationRejected QuotationStatus = "REJECTED"
)

func ParseQuotationStatus(s string) (QuotationStatus, bool) {
	switch QuotationStatus(s) {
	case QuotationPending, QuotationApproved, QuotationRejected:
		return QuotationStatus(s), true
	}
	return "", false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentApproved, PaymentRejected:
		return PaymentStatus(s), true
	}
	return "", false
}

type DeliveryStatus string

const (
	DeliveryPending    DeliveryStatus = "PENDING"
	DeliveryProcessing DeliveryStatus = "PROCESSING"
	DeliveryShipped    DeliveryStatus = "SHIPPED"
	DeliveryDelivered  DeliveryStatus = "DELIVERED"
	DeliveryCancelled  DeliveryStatus = "CANCELLED"
	DeliveryReturned   DeliveryStatus = "RETURNED"
)

// DeliveryStatuses lists the delivery states in pipeline order, for select
// inputs.
var DeliveryStatuses = []DeliveryStatus{
	DeliveryPending, DeliveryProcessing, DeliveryShipped,
	DeliveryDelivered, DeliveryCancelled, DeliveryReturned,
}

func ParseDeliveryStatus(s string) (DeliveryStatus, bool) {
	switch DeliveryStatus(s) {
	case DeliveryPending, DeliveryProcessing, DeliveryShipped,
		DeliveryDelivered, DeliveryCancelled, DeliveryReturned:
		return DeliveryStatus(s), true
	}
	return "", false
}

type Quotation struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Qname       string          `db:"qname"`
	Address     string          `db:"address"`
	Qnumber     string          `db:"qnumber"`
	Status      QuotationStatus `db:"status"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	RequestDate string          `db:"request_date"`
}

// QuotationItem is a snapshot line: product price at request time, not the
// live catalog price.
type QuotationItem struct {
	QuotationID string          `db:"quotation_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Qty         int             `db:"qty"`
	Price       decimal.Decimal `db:"price"`
}

type Order struct {
	ID            string          `db:"id"`
	QuotationID   string          `db:"quotation_id"`
	UserID        string          `db:"user_id"`
	PaymentSlip   string          `db:"payment_slip"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
	DeliverStatus DeliveryStatus  `db:"deliver_status"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	CreatedDate   string          `db:"created_date"`
	DeliveredDate string          `db:"delivered_date"`
}
