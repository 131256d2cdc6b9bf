package handlers_test

import (
	"net/http"
	"testing"
)

func TestCartQuantityBelowOneRejected(t *testing.T) {
	app, db := newTestApp(t)
	alice := loginAs(t, app, "alice", "Passw0rd!")

	// put one item in the cart
	resp, err := app.Test(alice.apply(newForm("POST", "/cart", "csrf="+alice.csrf+"&productId=shower-rain-01&qty=2")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("add to cart: status %d, want 302", resp.StatusCode)
	}

	var lineID string
	if err := db.Get(&lineID, `SELECT id FROM cart_items WHERE user_id='u-alice'`); err != nil {
		t.Fatalf("cart line missing: %v", err)
	}

	for _, qty := range []string{"0", "-3", "notanumber"} {
		resp, err := app.Test(alice.apply(newForm("POST", "/cart/"+lineID+"/quantity", "csrf="+alice.csrf+"&quantity="+qty)))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("quantity %q: status %d, want 400", qty, resp.StatusCode)
		}
	}

	// the stored quantity is untouched
	var qty int
	if err := db.Get(&qty, `SELECT qty FROM cart_items WHERE id=?`, lineID); err != nil {
		t.Fatal(err)
	}
	if qty != 2 {
		t.Errorf("cart qty = %d, want 2", qty)
	}
}

func TestOutOfStockCannotBeAdded(t *testing.T) {
	app, db := newTestApp(t)
	alice := loginAs(t, app, "alice", "Passw0rd!")

	resp, err := app.Test(alice.apply(newForm("POST", "/cart", "csrf="+alice.csrf+"&productId=faucet-kitchen-01&qty=1")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 for zero-stock product", resp.StatusCode)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE user_id='u-alice'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("cart has %d rows, want 0", n)
	}
}

func TestQuotationFormValidatesPhone(t *testing.T) {
	app, db := newTestApp(t)
	alice := loginAs(t, app, "alice", "Passw0rd!")

	if _, err := app.Test(alice.apply(newForm("POST", "/cart", "csrf="+alice.csrf+"&productId=shower-rain-01&qty=1"))); err != nil {
		t.Fatal(err)
	}

	// nine digits -> 400, nothing created
	resp, err := app.Test(alice.apply(newForm("POST", "/checkout/quotation",
		"csrf="+alice.csrf+"&qname=Alice&address=12+Shore+Rd&qnumber=077123400")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad phone: status %d, want 400", resp.StatusCode)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM quotations`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("quotation created despite invalid phone")
	}

	// ten digits -> redirect, quotation persisted, cart cleared
	resp, err = app.Test(alice.apply(newForm("POST", "/checkout/quotation",
		"csrf="+alice.csrf+"&qname=Alice&address=12+Shore+Rd&qnumber=0771234001")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("good phone: status %d, want 302", resp.StatusCode)
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM quotations WHERE user_id='u-alice' AND status='PENDING'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("quotations = %d, want 1", n)
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE user_id='u-alice'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("cart not cleared")
	}
}

func TestEmptyCartQuotationRejected(t *testing.T) {
	app, _ := newTestApp(t)
	alice := loginAs(t, app, "alice", "Passw0rd!")

	resp, err := app.Test(alice.apply(newForm("POST", "/checkout/quotation",
		"csrf="+alice.csrf+"&qname=Alice&address=12+Shore+Rd&qnumber=0771234001")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 for empty cart", resp.StatusCode)
	}
}
