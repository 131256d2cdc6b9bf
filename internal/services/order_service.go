package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"bathstore/internal/domain"
	"bathstore/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrQuotationNotApproved = errors.New("quotation is not approved")
	ErrNotYourQuotation     = errors.New("quotation does not belong to you")
	ErrAlreadyPaid          = errors.New("payment already submitted for this quotation")
)

type OrderService struct {
	Quotations *repos.QuotationRepo
	Orders     *repos.OrderRepo
	Prods      *repos.ProductRepo
	UploadsDir string
}

func NewOrderService(quotations *repos.QuotationRepo, orders *repos.OrderRepo, prods *repos.ProductRepo, uploadsDir string) *OrderService {
	return &OrderService{Quotations: quotations, Orders: orders, Prods: prods, UploadsDir: uploadsDir}
}

// SubmitPayment stores the slip and creates the order for an approved, not
// yet paid quotation owned by userID, then deducts stock for every snapshot
// line. Stock is checked before any deduction so a shortfall aborts cleanly.
func (s *OrderService) SubmitPayment(userID, quotationID, filename string, slip io.Reader) (domain.Order, error) {
	q, err := s.Quotations.Get(quotationID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("quotation not found: %w", err)
	}
	if q.UserID != userID {
		return domain.Order{}, ErrNotYourQuotation
	}
	if q.Status != domain.QuotationApproved {
		return domain.Order{}, ErrQuotationNotApproved
	}
	if paid, err := s.Orders.ExistsByQuotation(quotationID); err != nil {
		return domain.Order{}, err
	} else if paid {
		return domain.Order{}, ErrAlreadyPaid
	}

	items, err := s.Quotations.Items(quotationID)
	if err != nil {
		return domain.Order{}, err
	}
	// pre-check stock
	for _, it := range items {
		qty, err := s.Prods.Qty(it.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		if qty < it.Qty {
			return domain.Order{}, fmt.Errorf("insufficient stock for %s (need %d, have %d)", it.ProductName, it.Qty, qty)
		}
	}

	slipPath, err := s.saveSlip(filename, slip)
	if err != nil {
		return domain.Order{}, err
	}

	o := domain.Order{
		ID:            uuid.NewString(),
		QuotationID:   quotationID,
		UserID:        userID,
		PaymentSlip:   slipPath,
		PaymentStatus: domain.PaymentPending,
		DeliverStatus: domain.DeliveryPending,
		TotalAmount:   q.TotalPrice,
	}
	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}

	for _, it := range items {
		if err := s.Prods.DeductStock(it.ProductID, it.Qty); err != nil {
			return domain.Order{}, err
		}
	}
	return o, nil
}

// saveSlip writes the uploaded file under the uploads dir with a unique,
// traversal-safe name and returns the stored path.
func (s *OrderService) saveSlip(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.UploadsDir, 0o755); err != nil {
		return "", err
	}
	base := filepath.Base(filename)
	name := fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), uuid.NewString()[:8], base)
	full := filepath.Join(s.UploadsDir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return full, nil
}

func (s *OrderService) ListByUser(userID string) ([]repos.OrderRow, error) {
	return s.Orders.ListByUser(userID)
}

// SlipPath returns the stored payment-slip path for an order, for serving.
func (s *OrderService) SlipPath(orderID string) (string, domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return "", domain.Order{}, err
	}
	return o.PaymentSlip, o, nil
}
