package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"bathstore/internal/http/handlers"
	"bathstore/internal/repos"
	"bathstore/internal/services"
)

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestPasswordsSeededAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatalf("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	post := func(body string) *http.Response {
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	// bad password -> 401
	if resp := post("csrf=" + csrfTok + "&login=alice&password=Wr0ngpass!"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}

	// good password, login by email -> redirect
	if resp := post("csrf=" + csrfTok + "&login=alice@bathstore.test&password=Passw0rd!"); resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", resp.StatusCode)
	}

	// throttle after 2 attempts
	if resp := post("csrf=" + csrfTok + "&login=alice&password=Wr0ngpass!"); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}

func TestLoginByTelephone(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}

	u, err := authSvc.Login("sid-test", "0771234001", "Passw0rd!")
	if err != nil {
		t.Fatalf("login by telephone: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("resolved %s, want alice", u.Username)
	}
}

func TestSignupDuplicateFieldsNamed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}

	if _, err := authSvc.SignUp("alice", "new@bathstore.test", "0770000001", "Passw0rd!"); err != repos.ErrUsernameTaken {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
	if _, err := authSvc.SignUp("newuser", "alice@bathstore.test", "0770000001", "Passw0rd!"); err != repos.ErrEmailTaken {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
	if _, err := authSvc.SignUp("newuser", "new@bathstore.test", "0771234001", "Passw0rd!"); err != repos.ErrTelephoneTaken {
		t.Errorf("err = %v, want ErrTelephoneTaken", err)
	}
	if _, err := authSvc.SignUp("newuser", "new@bathstore.test", "0770000001", "Passw0rd!"); err != nil {
		t.Errorf("clean signup failed: %v", err)
	}
}
