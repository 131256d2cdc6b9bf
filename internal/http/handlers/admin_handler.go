package handlers

import (
	"errors"
	"strconv"
	"strings"

	"bathstore/internal/domain"
	applog "bathstore/internal/log"
	"bathstore/internal/repos"
	"bathstore/internal/services"
	"bathstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves every page behind the RequireAdmin guard.
type AdminHandler struct {
	Admin    *services.AdminService
	Products *services.ProductAdminService
	Catalog  *services.CatalogService
	Support  *services.SupportService
	Users    *repos.UserRepo
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	qs, err := h.Admin.AllQuotations()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	orders, err := h.Admin.AllOrders()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	pendingQ := 0
	for _, q := range qs {
		if q.Status == domain.QuotationPending {
			pendingQ++
		}
	}
	pendingP := 0
	for _, o := range orders {
		if o.PaymentStatus == string(domain.PaymentPending) {
			pendingP++
		}
	}
	return render(c, "admin_dashboard", fiber.Map{
		"PendingQuotations": pendingQ,
		"PendingPayments":   pendingP,
		"OrderCount":        len(orders),
	})
}

// --- quotations ---

func (h *AdminHandler) Quotations(c *fiber.Ctx) error {
	qs, err := h.Admin.AllQuotations()
	if err != nil {
		applog.Error(c, "admin.quotations.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load quotations"})
	}
	return render(c, "admin_quotations", fiber.Map{"Quotations": qs, "Msg": c.Query("msg")})
}

func (h *AdminHandler) SetQuotationStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Quotation not found"})
	}
	status := c.FormValue("status")
	if err := h.Admin.UpdateQuotationStatus(id, status); err != nil {
		applog.Error(c, "admin.quotation.status.fail", err, map[string]any{"quotation_id": id, "status": status})
		return c.Status(400).SendString("Could not update quotation status")
	}
	applog.Audit(c, "admin.quotation.status", map[string]any{"quotation_id": id, "status": status})
	return c.Redirect("/admin/quotations?msg=updated")
}

// --- orders ---

func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.Admin.AllOrders()
	if err != nil {
		applog.Error(c, "admin.orders.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{
		"Orders":           orders,
		"DeliveryStatuses": domain.DeliveryStatuses,
		"Msg":              c.Query("msg"),
		"Err":              c.Query("err"),
	})
}

func (h *AdminHandler) SetPaymentStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	status := c.FormValue("status")
	if err := h.Admin.UpdatePaymentStatus(id, status); err != nil {
		applog.Error(c, "admin.payment.status.fail", err, map[string]any{"order_id": id, "status": status})
		return c.Status(400).SendString("Could not update payment status")
	}
	applog.Audit(c, "admin.payment.status", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders?msg=updated")
}

func (h *AdminHandler) SetDeliveryStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	status := c.FormValue("status")
	if err := h.Admin.UpdateDeliveryStatus(id, status); err != nil {
		if errors.Is(err, services.ErrPaymentNotApproved) {
			return c.Redirect("/admin/orders?err=payment-not-approved")
		}
		applog.Error(c, "admin.delivery.status.fail", err, map[string]any{"order_id": id, "status": status})
		return c.Status(400).SendString("Could not update delivery status")
	}
	applog.Audit(c, "admin.delivery.status", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders?msg=updated")
}

// --- products ---

func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts("", 1, 100)
	if err != nil {
		applog.Error(c, "admin.products.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, _ := h.Catalog.ListCategories()
	return render(c, "admin_products", fiber.Map{
		"Products": products, "Categories": cats,
		"Msg": c.Query("msg"), "Err": c.Query("err"),
	})
}

// CreateProduct runs the three-step pipeline: image upload, category
// resolution, product insert. Each form field is validated up front.
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	name, okN := validate.Name(c.FormValue("name"))
	price, okPr := validate.Price(c.FormValue("price"))
	stock, okS := validate.Stock(c.FormValue("stock"))
	category := strings.TrimSpace(c.FormValue("category"))

	if !okN || !okPr || !okS || category == "" {
		return h.productError(c, "Name, category, a positive price and a non-negative stock are required")
	}
	discount, _ := strconv.Atoi(c.FormValue("discount"))
	if discount < 0 || discount > 100 {
		discount = 0
	}

	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return h.productError(c, "A product image is required")
	}
	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "admin.product.image.open", err, nil)
		return h.productError(c, "Could not read the uploaded image")
	}
	defer f.Close()

	p, err := h.Products.Create(services.ProductInput{
		Name:         name,
		Description:  strings.TrimSpace(c.FormValue("description")),
		Price:        price,
		Stock:        stock,
		CategoryName: category,
		Discount:     discount,
	}, fh.Filename, f)
	if err != nil {
		applog.Error(c, "admin.product.create.fail", err, map[string]any{"name": name})
		return h.productError(c, "Failed to create product: "+err.Error())
	}

	applog.Audit(c, "admin.product.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Redirect("/admin/products?msg=product-created")
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	if err := h.Products.Delete(id); err != nil {
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(500).SendString("Could not delete product")
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products?msg=product-deleted")
}

func (h *AdminHandler) productError(c *fiber.Ctx, msg string) error {
	products, _ := h.Catalog.ListProducts("", 1, 100)
	cats, _ := h.Catalog.ListCategories()
	return c.Status(400).Render("admin_products", fiber.Map{
		"Products": products, "Categories": cats, "Err": msg,
	})
}

// --- users ---

// UsersPage searches users by the optional name/email/telephone filters, then
// narrows by role: ALL, ADMIN (any admin authority), or CUSTOMER.
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	name := c.Query("name")
	email := c.Query("email")
	telephone := c.Query("telephone")
	role := strings.ToUpper(strings.TrimSpace(c.Query("role")))
	if role == "" {
		role = "ALL"
	}

	users, err := h.Users.Search(name, email, telephone)
	if err != nil {
		applog.Error(c, "admin.users.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	if role != "ALL" {
		filtered := users[:0]
		for _, u := range users {
			switch role {
			case "ADMIN":
				if strings.HasPrefix(u.Authority, "ADMIN") {
					filtered = append(filtered, u)
				}
			case "CUSTOMER":
				if u.Authority == "CUSTOMER" {
					filtered = append(filtered, u)
				}
			}
		}
		users = filtered
	}

	return render(c, "admin_users", fiber.Map{
		"Users": users,
		"Name":  name, "Email": email, "Telephone": telephone, "Role": role,
	})
}

// --- support tickets ---

func (h *AdminHandler) Tickets(c *fiber.Ctx) error {
	ts, err := h.Support.ListAll()
	if err != nil {
		applog.Error(c, "admin.tickets.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load tickets"})
	}
	return render(c, "admin_tickets", fiber.Map{
		"Tickets":        ts,
		"TicketStatuses": domain.TicketStatuses,
		"Msg":            c.Query("msg"),
	})
}

func (h *AdminHandler) SetTicketRemark(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Ticket not found"})
	}
	if err := h.Support.UpdateRemark(id, c.FormValue("remark")); err != nil {
		applog.Error(c, "admin.ticket.remark.fail", err, map[string]any{"ticket_id": id})
		return c.Status(400).SendString("Could not update remark")
	}
	applog.Audit(c, "admin.ticket.remark", map[string]any{"ticket_id": id})
	return c.Redirect("/admin/tickets?msg=updated")
}

func (h *AdminHandler) SetTicketStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Ticket not found"})
	}
	status := c.FormValue("status")
	if err := h.Support.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.ticket.status.fail", err, map[string]any{"ticket_id": id, "status": status})
		return c.Status(400).SendString("Could not update ticket status")
	}
	applog.Audit(c, "admin.ticket.status", map[string]any{"ticket_id": id, "status": status})
	return c.Redirect("/admin/tickets?msg=updated")
}

func (h *AdminHandler) DeleteTicket(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Ticket not found"})
	}
	if err := h.Support.Delete(id); err != nil {
		applog.Error(c, "admin.ticket.delete.fail", err, map[string]any{"ticket_id": id})
		return c.Status(400).SendString("Could not delete ticket")
	}
	applog.Audit(c, "admin.ticket.delete", map[string]any{"ticket_id": id})
	return c.Redirect("/admin/tickets?msg=deleted")
}
