package services

import (
	"errors"
	"fmt"

	"bathstore/internal/domain"
	"bathstore/internal/repos"
)

var ErrPaymentNotApproved = errors.New("payment must be approved before delivery can progress")

// AdminService covers the admin decision points: quotation approval, payment
// approval, and the delivery pipeline.
type AdminService struct {
	Quotations *repos.QuotationRepo
	Orders     *repos.OrderRepo
}

func NewAdminService(quotations *repos.QuotationRepo, orders *repos.OrderRepo) *AdminService {
	return &AdminService{Quotations: quotations, Orders: orders}
}

// QuotationWithItems bundles a quotation with its snapshot lines for the
// admin list views.
type QuotationWithItems struct {
	domain.Quotation
	Items []domain.QuotationItem
}

func (s *AdminService) AllQuotations() ([]QuotationWithItems, error) {
	qs, err := s.Quotations.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]QuotationWithItems, 0, len(qs))
	for _, q := range qs {
		items, err := s.Quotations.Items(q.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, QuotationWithItems{Quotation: q, Items: items})
	}
	return out, nil
}

func (s *AdminService) UpdateQuotationStatus(id, status string) error {
	st, ok := domain.ParseQuotationStatus(status)
	if !ok {
		return fmt.Errorf("unknown quotation status %q", status)
	}
	return s.Quotations.UpdateStatus(id, st)
}

func (s *AdminService) AllOrders() ([]repos.OrderRow, error) {
	return s.Orders.ListAll()
}

func (s *AdminService) UpdatePaymentStatus(id, status string) error {
	st, ok := domain.ParsePaymentStatus(status)
	if !ok {
		return fmt.Errorf("unknown payment status %q", status)
	}
	return s.Orders.UpdatePaymentStatus(id, st)
}

// UpdateDeliveryStatus accepts any of the six delivery states but only once
// the order's payment has been approved.
func (s *AdminService) UpdateDeliveryStatus(id, status string) error {
	st, ok := domain.ParseDeliveryStatus(status)
	if !ok {
		return fmt.Errorf("unknown delivery status %q", status)
	}
	o, err := s.Orders.Get(id)
	if err != nil {
		return err
	}
	if o.PaymentStatus != domain.PaymentApproved {
		return ErrPaymentNotApproved
	}
	return s.Orders.UpdateDeliveryStatus(id, st)
}
