package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"bathstore/internal/config"
	"bathstore/internal/http/handlers"
	"bathstore/internal/repos"
	"bathstore/internal/services"
)

// newTestApp wires the full route table against an in-memory database, the
// same shape as the real server minus rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{
		MediaDir:   t.TempDir(),
		UploadsDir: t.TempDir(),
		JWTSecret:  "test-secret",
	}

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/api/v1")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg, authSvc)

	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/product/:id", deps.CatalogHandler.Detail)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)

	app.Post("/cart", deps.CartHandler.Add)
	requireUser := handlers.RequireUser(authSvc)
	app.Get("/cart", requireUser, deps.CartHandler.View)
	app.Post("/cart/:id/quantity", requireUser, deps.CartHandler.UpdateQty)
	app.Get("/checkout", requireUser, deps.CheckoutHandler.QuotationTab)
	app.Post("/checkout/quotation", requireUser, deps.CheckoutHandler.RequestQuotation)
	app.Get("/orders", requireUser, deps.OrderHandler.History)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/quotations", deps.AdminHandler.Quotations)
	admin.Post("/quotations/:id/status", deps.AdminHandler.SetQuotationStatus)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)

	api := app.Group("/api/v1")
	api.Post("/auth/token", deps.APIHandler.IssueToken)
	api.Get("/availability", deps.APIHandler.Availability)
	api.Get("/orders", handlers.RequireToken(deps.APIHandler.Tokens), deps.APIHandler.MyOrders)

	return app, db
}

type session struct {
	sid  string
	csrf string
}

// loginAs runs a real login POST and returns the bound cookies.
func loginAs(t *testing.T, app *fiber.App, login, password string) session {
	t.Helper()
	respForm, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(respForm, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf cookie missing")
	}

	form := strings.NewReader("csrf=" + csrfTok + "&login=" + login + "&password=" + password)
	req := httptest.NewRequest("POST", "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing after login")
	}
	return session{sid: sid, csrf: csrfTok}
}

func newForm(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (s session) apply(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sid", Value: s.sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: s.csrf})
	return req
}
