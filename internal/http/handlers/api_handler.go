package handlers

import (
	"strings"

	applog "bathstore/internal/log"
	"bathstore/internal/services"
	"bathstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// APIHandler is the JSON surface under /api/v1, authenticated with a bearer
// token instead of the session cookie.
type APIHandler struct {
	Auth    *services.AuthService
	Tokens  *services.TokenService
	Orders  *services.OrderService
	Catalog *services.CatalogService
}

type tokenRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// POST /api/v1/auth/token
func (h *APIHandler) IssueToken(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	u, err := h.Auth.Authenticate(req.Login, req.Password)
	if err != nil {
		applog.Security(c, "api.token.fail", map[string]any{"login": req.Login})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	token, err := h.Tokens.Issue(u)
	if err != nil {
		applog.Error(c, "api.token.issue", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not issue token"})
	}
	return c.JSON(fiber.Map{"token": token, "token_type": "Bearer"})
}

// RequireToken parses the Authorization header and stores the claims in
// Locals("claims").
func RequireToken(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		claims, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			applog.Security(c, "api.token.invalid", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		c.Locals("claims", claims)
		return c.Next()
	}
}

func apiClaims(c *fiber.Ctx) *services.APIClaims {
	claims, _ := c.Locals("claims").(*services.APIClaims)
	return claims
}

// GET /api/v1/orders — the caller's own orders.
func (h *APIHandler) MyOrders(c *fiber.Ctx) error {
	claims := apiClaims(c)
	rows, err := h.Orders.ListByUser(claims.UserID)
	if err != nil {
		applog.Error(c, "api.orders.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{"orders": rows})
}

// GET /api/v1/availability?productId=
func (h *APIHandler) Availability(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid productId"})
	}
	av, err := h.Catalog.CheckAvailability(id)
	if err != nil {
		applog.Error(c, "api.availability.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not check availability"})
	}
	return c.JSON(av)
}
