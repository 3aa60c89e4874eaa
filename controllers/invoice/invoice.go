package invoice

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tailor-booking/logger"
	invoiceModel "tailor-booking/models/invoice"
	orderModel "tailor-booking/models/order"
	"tailor-booking/services/access"
	"tailor-booking/services/sequence"
	invoiceTypes "tailor-booking/types/invoice"
	"tailor-booking/utils"
)

// Manually created invoices fall due two weeks after issue unless a due
// date is supplied.
const defaultDueDays = 14

// InvoiceController handles invoice-related HTTP requests
type InvoiceController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewInvoiceController creates a new invoice controller
func NewInvoiceController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *InvoiceController {
	return &InvoiceController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store creates an invoice against an existing order. Users may only
// invoice their own orders; conversion-issued invoices do not come
// through here.
func (ic *InvoiceController) Store(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ic.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var req invoiceTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	var ord orderModel.Order
	if err := ic.DB.First(&ord, req.OrderID).Error; err != nil {
		return utils.FailLookup(c, err, "Order")
	}

	if !access.CanAccess(caller, ord.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this order")
	}

	now := time.Now()
	dueDate := now.AddDate(0, 0, defaultDueDays)
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
		}
		dueDate = due
	}

	var inv invoiceModel.Invoice
	err = ic.DB.Transaction(func(tx *gorm.DB) error {
		invoiceNumber, err := sequence.NextInvoiceNumber(tx)
		if err != nil {
			return err
		}

		inv = invoiceModel.Invoice{
			InvoiceNumber: invoiceNumber,
			IssueDate:     now,
			DueDate:       dueDate,
			BillTo:        req.BillTo,
			Items:         req.Items,
			TaxRate:       req.TaxRate,
			Discount:      req.Discount,
			Status:        invoiceModel.StatusPending,
			UserID:        ord.UserID,
			OrderID:       ord.ID,
		}

		// Totals are filled in by the invoice's BeforeSave hook
		return tx.Create(&inv).Error
	})
	if err != nil {
		logger.Error("Failed to create invoice", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create invoice")
	}

	ic.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Invoice %s created for order %s", inv.InvoiceNumber, ord.OrderNumber))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Invoice created successfully",
		"invoice": inv,
	})
}

// Index lists invoices; plain users only see their own
func (ic *InvoiceController) Index(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ic.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var invoices []invoiceModel.Invoice
	q := access.ScopeToOwner(ic.DB, caller).Order("created_at desc")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&invoices).Error; err != nil {
		logger.Error("Failed to list invoices", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"invoices": invoices,
	})
}

// Show returns one invoice, owner-or-elevated
func (ic *InvoiceController) Show(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ic.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var inv invoiceModel.Invoice
	if err := ic.DB.First(&inv, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Invoice")
	}

	if !access.CanAccess(caller, inv.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this invoice")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"invoice": inv,
	})
}

// Update edits line items and billing parameters, owner-or-elevated.
// Totals are recomputed on save, client-sent totals are never trusted.
func (ic *InvoiceController) Update(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ic.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var inv invoiceModel.Invoice
	if err := ic.DB.First(&inv, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Invoice")
	}

	if !access.CanAccess(caller, inv.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this invoice")
	}

	var req invoiceTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
		}
		inv.DueDate = due
	}
	if req.BillTo != nil {
		inv.BillTo = req.BillTo
	}
	if req.Items != nil {
		inv.Items = req.Items
	}
	if req.TaxRate != nil {
		inv.TaxRate = req.TaxRate
	}
	if req.Discount != nil {
		inv.Discount = req.Discount
	}

	if err := ic.DB.Save(&inv).Error; err != nil {
		logger.Error("Failed to update invoice", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update invoice")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Invoice updated successfully",
		"invoice": inv,
	})
}

// UpdateStatus transitions an invoice, recording the payment when it is
// marked Paid; staff/admin only
func (ic *InvoiceController) UpdateStatus(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ic.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsElevated() {
		return utils.Fail(c, fiber.StatusForbidden, access.RoleMessage("update invoice status"))
	}

	var inv invoiceModel.Invoice
	if err := ic.DB.First(&inv, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Invoice")
	}

	var req invoiceTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	inv.Status = invoiceModel.InvoiceStatus(req.Status)

	if inv.Status == invoiceModel.StatusPaid {
		payment := req.Payment
		if payment == nil {
			payment = &invoiceModel.Payment{Method: "cash"}
		}
		if payment.TransactionID == "" {
			payment.TransactionID = uuid.NewString()
		}
		if payment.Date == nil {
			now := time.Now()
			payment.Date = &now
		}
		inv.Payment = payment
	}

	if err := ic.DB.Save(&inv).Error; err != nil {
		logger.Error("Failed to update invoice status", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update invoice status")
	}

	logger.Success(fmt.Sprintf("Invoice %s status set to %s", inv.InvoiceNumber, inv.Status))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Invoice status updated successfully",
		"invoice": inv,
	})
}

// Delete removes an invoice; admin only (route-gated)
func (ic *InvoiceController) Delete(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ic.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsAdmin() {
		return utils.Fail(c, fiber.StatusForbidden, "Only admin can delete invoices")
	}

	var inv invoiceModel.Invoice
	if err := ic.DB.First(&inv, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Invoice")
	}

	if err := ic.DB.Delete(&inv).Error; err != nil {
		logger.Error("Failed to delete invoice", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete invoice")
	}

	return utils.OK(c, fiber.StatusOK, "Invoice deleted successfully", nil)
}
