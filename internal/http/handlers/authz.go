package handlers

import (
	"bathstore/internal/domain"
	applog "bathstore/internal/log"
	"bathstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// roleHome is where a logged-in user lands by default, and where a
// mismatched role gets redirected instead of the page it asked for.
func roleHome(role string) string {
	if role == domain.RoleAdmin {
		return "/admin"
	}
	return "/"
}

// RequireUser enforces a logged-in customer. An admin hitting a customer
// page is sent to the admin home rather than the requested path.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		if u.Role != domain.RoleUser {
			return c.Redirect(roleHome(u.Role))
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin enforces the ADMIN role; a logged-in customer is sent to the
// customer home.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		if u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Redirect(roleHome(u.Role))
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
