package booking

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tailor-booking/logger"
	"tailor-booking/services/access"
	"tailor-booking/services/conversion"
	bookingTypes "tailor-booking/types/booking"
	"tailor-booking/utils"
)

// Convert turns a booking into an order plus invoice in one transaction.
// Staff/admin only; a booking can be converted at most once.
func (bc *BookingController) Convert(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, bc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsElevated() {
		return utils.Fail(c, fiber.StatusForbidden, access.RoleMessage("convert bookings"))
	}

	bookingID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid booking ID")
	}

	// The body is optional: staff can convert with no parameters at all
	var req bookingTypes.ConvertRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	in := conversion.Input{AssignedTailor: req.AssignedTailor}
	if req.EstimatedCompletion != "" {
		est, err := time.Parse("2006-01-02", req.EstimatedCompletion)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "estimated_completion must be formatted as YYYY-MM-DD")
		}
		in.EstimatedCompletion = &est
	}

	result, err := conversion.Convert(bc.DB, uint(bookingID), in)
	if err != nil {
		switch {
		case errors.Is(err, conversion.ErrAlreadyConverted):
			return utils.Fail(c, fiber.StatusConflict, "Booking has already been converted to an order")
		case errors.Is(err, conversion.ErrMissingDetails):
			return utils.Fail(c, fiber.StatusBadRequest, "Booking is missing the details required for conversion")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.Fail(c, fiber.StatusNotFound, "Booking not found")
		default:
			logger.Error("Booking conversion failed", err)
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to convert booking")
		}
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Booking %d converted to order %s / invoice %s",
		bookingID, result.Order.OrderNumber, result.Invoice.InvoiceNumber))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking converted successfully",
		"order":   result.Order,
		"invoice": result.Invoice,
	})
}
