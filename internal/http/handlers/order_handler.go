package handlers

import (
	"path/filepath"
	"strings"

	"bathstore/internal/domain"
	applog "bathstore/internal/log"
	"bathstore/internal/services"
	"bathstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
	Auth   *services.AuthService
}

// GET /orders — the customer's order history with payment and delivery state.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your orders"})
	}
	return render(c, "order_history", fiber.Map{"Orders": rows})
}

// Slip serves the stored payment slip for an order. Only the order's owner or
// an admin may fetch it; the cookie is checked directly since this route sits
// outside both role guards.
func (h *OrderHandler) Slip(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	u, err := h.Auth.CurrentUser(sid)
	if err != nil || u == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	path, o, err := h.Orders.SlipPath(orderID)
	if err != nil || path == "" {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if o.UserID != u.ID && u.Role != domain.RoleAdmin {
		applog.Security(c, "slip.access.denied", map[string]any{"order_id": orderID, "user_id": u.ID})
		return c.SendStatus(fiber.StatusForbidden)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		c.Set(fiber.HeaderContentType, "image/png")
	case ".jpg", ".jpeg":
		c.Set(fiber.HeaderContentType, "image/jpeg")
	case ".pdf":
		c.Set(fiber.HeaderContentType, "application/pdf")
	default:
		c.Set(fiber.HeaderContentType, "application/octet-stream")
	}
	return c.SendFile(path)
}
