package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"bathstore/internal/domain"
	"bathstore/internal/repos"
	"bathstore/internal/services"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// newStore opens a seeded in-memory database and adds two fixture products
// with round prices so totals are easy to assert.
func newStore(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.MustExec(`INSERT INTO products(id,category_id,name,price,stock_quantity,active) VALUES
	  ('fix-tap-a','faucets','Fixture Tap A',1000.00,10,1),
	  ('fix-tap-b','faucets','Fixture Tap B',500.00,5,1)`)
	return db
}

func TestRequestQuotationSnapshotsCartAndClearsIt(t *testing.T) {
	db := newStore(t)
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	quoteRepo := repos.NewQuotationRepo(db)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkout := services.NewCheckoutService(cartRepo, quoteRepo)

	if err := cartSvc.Add("u-alice", "fix-tap-a", 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := cartSvc.Add("u-alice", "fix-tap-b", 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	q, err := checkout.RequestQuotation("u-alice", "Alice", "12 Shore Rd", "0771234001")
	if err != nil {
		t.Fatalf("request quotation: %v", err)
	}
	if q.Status != domain.QuotationPending {
		t.Errorf("status = %s, want PENDING", q.Status)
	}
	if q.TotalPrice.StringFixed(2) != "2500.00" {
		t.Errorf("total = %s, want 2500.00", q.TotalPrice)
	}

	items, err := quoteRepo.Items(q.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	// prices are snapshots: a later catalog change must not move the total
	if err := prodRepo.UpdatePrice("fix-tap-a", mustDec(t, "9999.00")); err != nil {
		t.Fatalf("update price: %v", err)
	}
	got, err := quoteRepo.Get(q.ID)
	if err != nil {
		t.Fatalf("get quotation: %v", err)
	}
	if got.TotalPrice.StringFixed(2) != "2500.00" {
		t.Errorf("total moved with catalog price: %s", got.TotalPrice)
	}

	cv, err := cartSvc.View("u-alice")
	if err != nil {
		t.Fatalf("view cart: %v", err)
	}
	if len(cv.Items) != 0 {
		t.Errorf("cart not cleared, %d items remain", len(cv.Items))
	}
}

func TestRequestQuotationEmptyCart(t *testing.T) {
	db := newStore(t)
	checkout := services.NewCheckoutService(repos.NewCartRepo(db), repos.NewQuotationRepo(db))

	_, err := checkout.RequestQuotation("u-alice", "Alice", "12 Shore Rd", "0771234001")
	if !errors.Is(err, services.ErrCartEmpty) {
		t.Fatalf("err = %v, want ErrCartEmpty", err)
	}
}

func TestCartRejectsOutOfStockAndBadQty(t *testing.T) {
	db := newStore(t)
	cartSvc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	// faucet-kitchen-01 is seeded with zero stock
	if err := cartSvc.Add("u-alice", "faucet-kitchen-01", 1); !errors.Is(err, services.ErrOutOfStock) {
		t.Errorf("err = %v, want ErrOutOfStock", err)
	}
	if err := cartSvc.UpdateQty("some-line", "u-alice", 0); !errors.Is(err, services.ErrBadQty) {
		t.Errorf("err = %v, want ErrBadQty", err)
	}
}
