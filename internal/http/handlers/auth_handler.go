package handlers

import (
	"errors"
	"time"

	applog "bathstore/internal/log"
	"bathstore/internal/repos"
	"bathstore/internal/services"
	"bathstore/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	login := c.FormValue("login")
	pass := c.FormValue("password")
	if login == "" || !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"login": login, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid username, email, or telephone or password"})
	}

	u, err := h.Auth.Login(sid, login, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"login": login})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid username, email, or telephone or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.Redirect(roleHome(u.Role))
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username, okU := validate.Name(c.FormValue("username"))
	email, okE := validate.Email(c.FormValue("email"))
	phone, okP := validate.Phone(c.FormValue("telephone"))
	pass := c.FormValue("password")

	switch {
	case !okU:
		return c.Status(400).Render("signup", fiber.Map{"Err": "Enter a valid username"})
	case !okE:
		return c.Status(400).Render("signup", fiber.Map{"Err": "Enter a valid email"})
	case !okP:
		return c.Status(400).Render("signup", fiber.Map{"Err": "Telephone must be exactly 10 digits"})
	case !validate.Password(pass):
		return c.Status(400).Render("signup", fiber.Map{"Err": "Password must be 8-20 chars with upper, lower, digit and symbol"})
	}

	u, err := h.Auth.SignUp(username, email, phone, pass)
	if err != nil {
		msg := "Could not create account. Please try again."
		switch {
		case errors.Is(err, repos.ErrUsernameTaken):
			msg = "Username already exists"
		case errors.Is(err, repos.ErrEmailTaken):
			msg = "Email already exists"
		case errors.Is(err, repos.ErrTelephoneTaken):
			msg = "Telephone number already exists"
		default:
			applog.Error(c, "auth.signup.fail", err, nil)
		}
		return c.Status(400).Render("signup", fiber.Map{"Err": msg})
	}

	// Log the new customer straight in.
	if _, err := h.Auth.Login(sid, u.Username, pass); err != nil {
		return c.Redirect("/login")
	}
	applog.Audit(c, "auth.signup.success", map[string]any{"user_id": u.ID})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
