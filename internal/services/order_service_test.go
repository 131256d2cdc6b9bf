package services_test

import (
	"errors"
	"strings"
	"testing"

	"bathstore/internal/domain"
	"bathstore/internal/repos"
	"bathstore/internal/services"
)

type orderFixture struct {
	orders   *services.OrderService
	admin    *services.AdminService
	quotes   *repos.QuotationRepo
	ordRepo  *repos.OrderRepo
	prodRepo *repos.ProductRepo
	quoteID  string
}

// newOrderFixture builds a quotation for alice (2 x fix-tap-a + 1 x fix-tap-b)
// through the real checkout path.
func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newStore(t)
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	quoteRepo := repos.NewQuotationRepo(db)
	ordRepo := repos.NewOrderRepo(db)

	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkout := services.NewCheckoutService(cartRepo, quoteRepo)
	if err := cartSvc.Add("u-alice", "fix-tap-a", 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add("u-alice", "fix-tap-b", 1); err != nil {
		t.Fatal(err)
	}
	q, err := checkout.RequestQuotation("u-alice", "Alice", "12 Shore Rd", "0771234001")
	if err != nil {
		t.Fatal(err)
	}

	return &orderFixture{
		orders:   services.NewOrderService(quoteRepo, ordRepo, prodRepo, t.TempDir()),
		admin:    services.NewAdminService(quoteRepo, ordRepo),
		quotes:   quoteRepo,
		ordRepo:  ordRepo,
		prodRepo: prodRepo,
		quoteID:  q.ID,
	}
}

func slip() *strings.Reader { return strings.NewReader("fake slip bytes") }

func TestSubmitPaymentRequiresApproval(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.SubmitPayment("u-alice", f.quoteID, "slip.jpg", slip())
	if !errors.Is(err, services.ErrQuotationNotApproved) {
		t.Fatalf("err = %v, want ErrQuotationNotApproved", err)
	}
}

func TestSubmitPaymentRejectsOtherUsersQuotation(t *testing.T) {
	f := newOrderFixture(t)
	if err := f.quotes.UpdateStatus(f.quoteID, domain.QuotationApproved); err != nil {
		t.Fatal(err)
	}

	_, err := f.orders.SubmitPayment("u-bob", f.quoteID, "slip.jpg", slip())
	if !errors.Is(err, services.ErrNotYourQuotation) {
		t.Fatalf("err = %v, want ErrNotYourQuotation", err)
	}
}

func TestSubmitPaymentCreatesOrderAndDeductsStock(t *testing.T) {
	f := newOrderFixture(t)
	if err := f.quotes.UpdateStatus(f.quoteID, domain.QuotationApproved); err != nil {
		t.Fatal(err)
	}

	o, err := f.orders.SubmitPayment("u-alice", f.quoteID, "slip.jpg", slip())
	if err != nil {
		t.Fatalf("submit payment: %v", err)
	}
	if o.PaymentStatus != domain.PaymentPending || o.DeliverStatus != domain.DeliveryPending {
		t.Errorf("new order not PENDING/PENDING: %s/%s", o.PaymentStatus, o.DeliverStatus)
	}
	if o.TotalAmount.StringFixed(2) != "2500.00" {
		t.Errorf("total = %s, want 2500.00", o.TotalAmount)
	}

	// stock deducted: 10-2 and 5-1
	if qty, _ := f.prodRepo.Qty("fix-tap-a"); qty != 8 {
		t.Errorf("fix-tap-a stock = %d, want 8", qty)
	}
	if qty, _ := f.prodRepo.Qty("fix-tap-b"); qty != 4 {
		t.Errorf("fix-tap-b stock = %d, want 4", qty)
	}

	// second upload against the same quotation is rejected
	if _, err := f.orders.SubmitPayment("u-alice", f.quoteID, "slip2.jpg", slip()); !errors.Is(err, services.ErrAlreadyPaid) {
		t.Fatalf("err = %v, want ErrAlreadyPaid", err)
	}
}

func TestSubmitPaymentAbortsOnInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	if err := f.quotes.UpdateStatus(f.quoteID, domain.QuotationApproved); err != nil {
		t.Fatal(err)
	}
	// quotation needs 2 of fix-tap-a; drain the shelf first
	if err := f.prodRepo.UpsertStock("fix-tap-a", 1); err != nil {
		t.Fatal(err)
	}

	if _, err := f.orders.SubmitPayment("u-alice", f.quoteID, "slip.jpg", slip()); err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if exists, _ := f.ordRepo.ExistsByQuotation(f.quoteID); exists {
		t.Error("order created despite stock shortfall")
	}
}

func TestDeliveryStatusGatedOnPaymentApproval(t *testing.T) {
	f := newOrderFixture(t)
	if err := f.quotes.UpdateStatus(f.quoteID, domain.QuotationApproved); err != nil {
		t.Fatal(err)
	}
	o, err := f.orders.SubmitPayment("u-alice", f.quoteID, "slip.jpg", slip())
	if err != nil {
		t.Fatal(err)
	}

	if err := f.admin.UpdateDeliveryStatus(o.ID, "SHIPPED"); !errors.Is(err, services.ErrPaymentNotApproved) {
		t.Fatalf("err = %v, want ErrPaymentNotApproved", err)
	}

	if err := f.admin.UpdatePaymentStatus(o.ID, "APPROVED"); err != nil {
		t.Fatal(err)
	}
	if err := f.admin.UpdateDeliveryStatus(o.ID, "DELIVERED"); err != nil {
		t.Fatal(err)
	}

	got, err := f.ordRepo.Get(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.DeliverStatus != domain.DeliveryDelivered {
		t.Errorf("status = %s, want DELIVERED", got.DeliverStatus)
	}
	if got.DeliveredDate == "" {
		t.Error("delivered_date not stamped")
	}
}

func TestDeliveryStatusRejectsUnknownValue(t *testing.T) {
	f := newOrderFixture(t)
	if err := f.admin.UpdateDeliveryStatus("whatever", "TELEPORTED"); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
}
