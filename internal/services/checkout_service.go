package services

import (
	"errors"

	"bathstore/internal/domain"
	"bathstore/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrCartEmpty = errors.New("cart is empty")

type CheckoutService struct {
	Carts      *repos.CartRepo
	Quotations *repos.QuotationRepo
}

func NewCheckoutService(carts *repos.CartRepo, quotations *repos.QuotationRepo) *CheckoutService {
	return &CheckoutService{Carts: carts, Quotations: quotations}
}

// RequestQuotation turns the user's cart into a PENDING quotation. The total
// and the item prices are snapshotted server-side from the live catalog; the
// cart is cleared in the same transaction as the insert.
func (s *CheckoutService) RequestQuotation(userID, qname, address, qnumber string) (domain.Quotation, error) {
	lines, err := s.Carts.ListByUser(userID)
	if err != nil {
		return domain.Quotation{}, err
	}
	if len(lines) == 0 {
		return domain.Quotation{}, ErrCartEmpty
	}

	total := decimal.Zero
	items := make([]domain.QuotationItem, 0, len(lines))
	for _, l := range lines {
		total = total.Add(l.Subtotal)
		items = append(items, domain.QuotationItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Qty:         l.Qty,
			Price:       l.Price,
		})
	}

	q := domain.Quotation{
		ID:         uuid.NewString(),
		UserID:     userID,
		Qname:      qname,
		Address:    address,
		Qnumber:    qnumber,
		Status:     domain.QuotationPending,
		TotalPrice: total,
	}
	if err := s.Quotations.Create(q, items); err != nil {
		return domain.Quotation{}, err
	}
	return q, nil
}

// ApprovedUnpaid lists the quotations the user can still pay for.
func (s *CheckoutService) ApprovedUnpaid(userID string) ([]domain.Quotation, error) {
	return s.Quotations.ListApprovedUnpaidByUser(userID)
}
