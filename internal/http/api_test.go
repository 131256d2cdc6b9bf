package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAPITokenFlow(t *testing.T) {
	app, _ := newTestApp(t)

	// wrong password -> 401
	req := httptest.NewRequest("POST", "/api/v1/auth/token",
		strings.NewReader(`{"login":"alice","password":"Wr0ngpass!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: status %d, want 401", resp.StatusCode)
	}

	// right password -> token
	req = httptest.NewRequest("POST", "/api/v1/auth/token",
		strings.NewReader(`{"login":"alice","password":"Passw0rd!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token: status %d, want 200", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Token == "" {
		t.Fatal("empty token")
	}

	// orders without a token -> 401
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/orders", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", resp.StatusCode)
	}

	// with the bearer token -> 200
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bearer orders: status %d, want 200", resp.StatusCode)
	}

	// a mangled token is rejected
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token+"x")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("mangled token: status %d, want 401", resp.StatusCode)
	}
}

func TestAPIAvailability(t *testing.T) {
	app, _ := newTestApp(t)

	check := func(id, want string) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?productId="+id, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d, want 200", id, resp.StatusCode)
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Status != want {
			t.Errorf("%s: status %q, want %q", id, body.Status, want)
		}
	}

	check("shower-rain-01", "IN_STOCK")      // 18 on the shelf
	check("tub-acrylic-01", "LOW_STOCK")     // 3 on the shelf
	check("faucet-kitchen-01", "OUT_OF_STOCK") // seeded empty
	check("no-such-product", "OUT_OF_STOCK")
}
