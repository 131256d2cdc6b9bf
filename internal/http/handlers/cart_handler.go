package handlers

import (
	"errors"
	"strconv"

	applog "bathstore/internal/log"
	"bathstore/internal/services"
	"bathstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
	Auth *services.AuthService
}

// Add is reachable without the RequireUser guard so an anonymous click can
// be redirected to login instead of failing.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	var userID string
	if sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
			userID = u.ID
		}
	}
	if userID == "" {
		return c.Redirect("/login")
	}

	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(userID, productID, qty); err != nil {
		if errors.Is(err, services.ErrOutOfStock) {
			return c.Status(400).SendString("This product is out of stock")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return c.Status(500).SendString("Could not add to cart")
	}
	applog.Audit(c, "cart.add", map[string]any{"product": productID, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) UpdateQty(c *fiber.Ctx) error {
	u := currentUser(c)
	lineID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing cart item id")
	}
	raw := c.FormValue("quantity")
	if raw == "" {
		raw = c.Query("quantity")
	}
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 1 {
		return c.Status(400).SendString("quantity must be at least 1")
	}

	if err := h.Cart.UpdateQty(lineID, u.ID, qty); err != nil {
		applog.Error(c, "cart.update.fail", err, map[string]any{"line": lineID})
		return c.Status(400).SendString("Could not update quantity")
	}
	applog.Audit(c, "cart.update", map[string]any{"line": lineID, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	lineID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing cart item id")
	}
	if err := h.Cart.Remove(lineID, u.ID); err != nil {
		applog.Error(c, "cart.delete.fail", err, map[string]any{"line": lineID})
		return c.Status(400).SendString("Could not remove item")
	}
	applog.Audit(c, "cart.delete", map[string]any{"line": lineID})
	return c.Redirect("/cart")
}
