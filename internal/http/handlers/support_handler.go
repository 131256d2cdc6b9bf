package handlers

import (
	"errors"

	applog "bathstore/internal/log"
	"bathstore/internal/repos"
	"bathstore/internal/services"
	"bathstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// SupportHandler covers the customer side of support tickets; admins manage
// tickets through AdminHandler.
type SupportHandler struct {
	Support *services.SupportService
}

func (h *SupportHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	ts, err := h.Support.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "support.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your tickets"})
	}
	return render(c, "tickets", fiber.Map{"Tickets": ts, "Msg": c.Query("msg")})
}

func (h *SupportHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	t, err := h.Support.Create(u.ID, c.FormValue("supportType"), c.FormValue("description"))
	if err != nil {
		ts, _ := h.Support.ListByUser(u.ID)
		return c.Status(400).Render("tickets", fiber.Map{
			"Tickets": ts, "Err": "Support type and description are required",
		})
	}
	applog.Audit(c, "support.create", map[string]any{"ticket_id": t.ID})
	return c.Redirect("/support?msg=ticket-created")
}

func (h *SupportHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Ticket not found"})
	}
	if err := h.Support.DeleteOwn(id, u.ID); err != nil {
		if errors.Is(err, services.ErrNotYourTicket) {
			applog.Security(c, "support.delete.denied", map[string]any{"ticket_id": id, "user_id": u.ID})
			return c.SendStatus(fiber.StatusForbidden)
		}
		if repos.IsNotFound(err) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Ticket not found"})
		}
		applog.Error(c, "support.delete.fail", err, map[string]any{"ticket_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not delete the ticket"})
	}
	applog.Audit(c, "support.delete", map[string]any{"ticket_id": id})
	return c.Redirect("/support?msg=ticket-deleted")
}
