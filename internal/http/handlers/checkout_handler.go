package handlers

import (
	"errors"

	applog "bathstore/internal/log"
	"bathstore/internal/services"
	"bathstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler serves the two checkout tabs: the quotation request built
// from the cart, and the payment-slip upload against an approved quotation.
type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

// GET /checkout — quotation tab.
func (h *CheckoutHandler) QuotationTab(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "checkout", fiber.Map{"Cart": cv, "Msg": c.Query("msg")})
}

// POST /checkout/quotation — validates the contact form before any work.
func (h *CheckoutHandler) RequestQuotation(c *fiber.Ctx) error {
	u := currentUser(c)

	qname, okN := validate.Name(c.FormValue("qname"))
	address, okA := validate.Address(c.FormValue("address"))
	qnumber, okP := validate.Phone(c.FormValue("qnumber"))

	if !okN || !okA || !okP {
		cv, _ := h.Cart.View(u.ID)
		errs := fiber.Map{}
		if !okN {
			errs["Qname"] = "Name is required"
		}
		if !okA {
			errs["Address"] = "Address is required"
		}
		if !okP {
			errs["Qnumber"] = "Phone number must be 10 digits"
		}
		applog.Security(c, "validation.fail", map[string]any{"form": "quotation"})
		return c.Status(400).Render("checkout", fiber.Map{"Cart": cv, "Errors": errs})
	}

	q, err := h.Checkout.RequestQuotation(u.ID, qname, address, qnumber)
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Status(400).Render("checkout", fiber.Map{
				"Cart": services.CartView{}, "Errors": fiber.Map{"Cart": "Your cart is empty"},
			})
		}
		applog.Error(c, "checkout.quotation.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not create your quotation"})
	}

	applog.Audit(c, "checkout.quotation", map[string]any{"quotation_id": q.ID, "total": q.TotalPrice.String()})
	return c.Redirect("/checkout?msg=quotation-created")
}

// GET /checkout/payment — payment tab: approved quotations awaiting a slip.
func (h *CheckoutHandler) PaymentTab(c *fiber.Ctx) error {
	u := currentUser(c)
	qs, err := h.Checkout.ApprovedUnpaid(u.ID)
	if err != nil {
		applog.Error(c, "checkout.payment.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your approved quotations"})
	}
	return render(c, "payment", fiber.Map{"Quotations": qs, "Msg": c.Query("msg")})
}

// POST /checkout/payment — multipart upload of the payment slip.
func (h *CheckoutHandler) UploadSlip(c *fiber.Ctx) error {
	u := currentUser(c)

	quotationID, ok := validate.ID(c.FormValue("quotationId"))
	if !ok {
		return h.paymentError(c, u.ID, "Select a quotation first")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return h.paymentError(c, u.ID, "Attach your payment slip")
	}

	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "payment.slip.open", err, nil)
		return h.paymentError(c, u.ID, "Could not read the uploaded file")
	}
	defer f.Close()

	o, err := h.Orders.SubmitPayment(u.ID, quotationID, fh.Filename, f)
	if err != nil {
		applog.Error(c, "payment.slip.fail", err, map[string]any{"quotation_id": quotationID})
		switch {
		case errors.Is(err, services.ErrAlreadyPaid):
			return h.paymentError(c, u.ID, "Payment already submitted for this quotation")
		case errors.Is(err, services.ErrQuotationNotApproved):
			return h.paymentError(c, u.ID, "This quotation has not been approved")
		case errors.Is(err, services.ErrNotYourQuotation):
			return h.paymentError(c, u.ID, "This quotation is not yours")
		}
		return h.paymentError(c, u.ID, "Failed to upload payment slip: "+err.Error())
	}

	applog.Audit(c, "payment.slip.upload", map[string]any{"order_id": o.ID, "quotation_id": quotationID})
	return c.Redirect("/checkout/payment?msg=payment-submitted")
}

func (h *CheckoutHandler) paymentError(c *fiber.Ctx, userID, msg string) error {
	qs, _ := h.Checkout.ApprovedUnpaid(userID)
	return c.Status(400).Render("payment", fiber.Map{"Quotations": qs, "Err": msg})
}
