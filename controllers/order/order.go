package order

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tailor-booking/logger"
	invoiceModel "tailor-booking/models/invoice"
	orderModel "tailor-booking/models/order"
	"tailor-booking/services/access"
	orderTypes "tailor-booking/types/order"
	"tailor-booking/utils"
)

// OrderController handles order-related HTTP requests
type OrderController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewOrderController creates a new order controller
func NewOrderController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *OrderController {
	return &OrderController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Index lists orders; plain users only see their own
func (oc *OrderController) Index(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, oc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var orders []orderModel.Order
	q := access.ScopeToOwner(oc.DB, caller).Order("created_at desc")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if serviceType := c.Query("service_type"); serviceType != "" {
		q = q.Where("service_type = ?", serviceType)
	}

	if err := q.Find(&orders).Error; err != nil {
		logger.Error("Failed to list orders", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"orders":  orders,
	})
}

// Show returns one order, owner-or-elevated
func (oc *OrderController) Show(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, oc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var ord orderModel.Order
	if err := oc.DB.First(&ord, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Order")
	}

	if !access.CanAccess(caller, ord.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this order")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"order":   ord,
	})
}

// Update edits order tracking fields; staff/admin only. A status set here
// overrides whatever the step pipeline would derive.
func (oc *OrderController) Update(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, oc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsElevated() {
		return utils.Fail(c, fiber.StatusForbidden, access.RoleMessage("update orders"))
	}

	var ord orderModel.Order
	if err := oc.DB.First(&ord, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Order")
	}

	var req orderTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	if req.Item != "" {
		ord.Item = req.Item
	}
	if req.AssignedTailor != "" {
		ord.AssignedTailor = req.AssignedTailor
	}
	if req.ServiceType != "" {
		ord.ServiceType = orderModel.ServiceType(req.ServiceType)
	}
	if req.Status != "" {
		ord.Status = orderModel.OrderStatus(req.Status)
	}
	if req.EstimatedCompletion != "" {
		est, err := time.Parse("2006-01-02", req.EstimatedCompletion)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "estimated_completion must be formatted as YYYY-MM-DD")
		}
		ord.EstimatedCompletion = &est
	}

	if err := oc.DB.Save(&ord).Error; err != nil {
		logger.Error("Failed to update order", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update order")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order updated successfully",
		"order":   ord,
	})
}

// UpdateSteps advances the fulfillment pipeline; staff/admin only
func (oc *OrderController) UpdateSteps(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, oc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsElevated() {
		return utils.Fail(c, fiber.StatusForbidden, access.RoleMessage("update order steps"))
	}

	var ord orderModel.Order
	if err := oc.DB.First(&ord, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Order")
	}

	var req orderTypes.UpdateStepsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	if err := ord.ApplyStep(*req.StepIndex, req.Date, req.Time); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := oc.DB.Save(&ord).Error; err != nil {
		logger.Error("Failed to update order steps", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update order steps")
	}

	oc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Order %s advanced to step %d", ord.OrderNumber, *req.StepIndex))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order steps updated successfully",
		"order":   ord,
	})
}

// Cancel sets an order to Cancelled, owner-or-elevated. Orders already in a
// terminal state cannot be cancelled.
func (oc *OrderController) Cancel(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, oc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var ord orderModel.Order
	if err := oc.DB.First(&ord, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Order")
	}

	if !access.CanAccess(caller, ord.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this order")
	}

	if !ord.Status.CanBeCancelled() {
		return utils.Fail(c, fiber.StatusBadRequest,
			fmt.Sprintf("Order in status %q cannot be cancelled", ord.Status))
	}

	ord.Status = orderModel.StatusCancelled
	if err := oc.DB.Save(&ord).Error; err != nil {
		logger.Error("Failed to cancel order", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to cancel order")
	}

	logger.Warning(fmt.Sprintf("Order %s cancelled by user %s", ord.OrderNumber, caller.Uuid))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   ord,
	})
}

// Delete removes an order and its invoices; admin only (route-gated)
func (oc *OrderController) Delete(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, oc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsAdmin() {
		return utils.Fail(c, fiber.StatusForbidden, "Only admin can delete orders")
	}

	var ord orderModel.Order
	if err := oc.DB.First(&ord, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Order")
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", ord.ID).Delete(&invoiceModel.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ord).Error
	})
	if err != nil {
		logger.Error("Failed to delete order", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete order")
	}

	return utils.OK(c, fiber.StatusOK, "Order and related invoices deleted successfully", nil)
}
