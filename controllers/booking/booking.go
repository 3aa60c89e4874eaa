package booking

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tailor-booking/logger"
	bookingModel "tailor-booking/models/booking"
	"tailor-booking/models/fulfillment"
	"tailor-booking/services/access"
	bookingTypes "tailor-booking/types/booking"
	"tailor-booking/utils"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store creates a new booking owned by the calling user
func (bc *BookingController) Store(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, bc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var req bookingTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	b := bookingModel.Booking{
		UserID:      &caller.ID,
		BookingType: bookingModel.BookingType(req.BookingType),
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		City:        req.City,
		PickupSlot:  req.PickupSlot,
		Steps:       fulfillment.FullSteps(),
		Status:      bookingModel.StatusPending,
	}

	// Only the payload matching the booking type is stored
	switch b.BookingType {
	case bookingModel.TypeRepair:
		b.Repair = req.Repair
	case bookingModel.TypeJersey:
		b.Jersey = req.Jersey
	case bookingModel.TypeOrganizational:
		b.Organizational = req.Organizational
	}

	if req.PickupDate != "" {
		pickup, err := time.Parse("2006-01-02", req.PickupDate)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "pickup_date must be formatted as YYYY-MM-DD")
		}
		b.PickupDate = &pickup
	}

	if err := bc.DB.Create(&b).Error; err != nil {
		logger.Error("Failed to create booking", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to save booking")
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Booking created with ID: %d", b.ID))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking created successfully",
		"booking": b,
	})
}

// Index lists bookings; plain users only see their own
func (bc *BookingController) Index(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, bc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var bookings []bookingModel.Booking
	q := access.ScopeToOwner(bc.DB.Preload("User"), caller).Order("created_at desc")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&bookings).Error; err != nil {
		logger.Error("Failed to list bookings", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"bookings": bookings,
	})
}

// Show returns one booking, owner-or-elevated
func (bc *BookingController) Show(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, bc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var b bookingModel.Booking
	if err := bc.DB.Preload("User").First(&b, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Booking")
	}

	if !access.CanAccess(caller, b.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this booking")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"booking": b,
	})
}

// Update edits booking details, owner-or-elevated
func (bc *BookingController) Update(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, bc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var b bookingModel.Booking
	if err := bc.DB.First(&b, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Booking")
	}

	if !access.CanAccess(caller, b.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this booking")
	}

	var req bookingTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// Variant payloads may only be replaced with the matching shape
	switch b.BookingType {
	case bookingModel.TypeRepair:
		if req.Repair != nil {
			b.Repair = req.Repair
		}
	case bookingModel.TypeJersey:
		if req.Jersey != nil {
			b.Jersey = req.Jersey
		}
	case bookingModel.TypeOrganizational:
		if req.Organizational != nil {
			b.Organizational = req.Organizational
		}
	}

	if req.ContactName != "" {
		b.ContactName = req.ContactName
	}
	if req.Phone != "" {
		b.Phone = req.Phone
	}
	if req.Email != "" {
		b.Email = req.Email
	}
	if req.Address != "" {
		b.Address = req.Address
	}
	if req.City != "" {
		b.City = req.City
	}
	if req.PickupSlot != "" {
		b.PickupSlot = req.PickupSlot
	}
	if req.PickupDate != "" {
		pickup, err := time.Parse("2006-01-02", req.PickupDate)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "pickup_date must be formatted as YYYY-MM-DD")
		}
		b.PickupDate = &pickup
	}
	if req.Steps != nil {
		if !caller.IsElevated() {
			return utils.Fail(c, fiber.StatusForbidden, access.RoleMessage("edit booking steps"))
		}
		b.Steps = req.Steps
	}

	if err := bc.DB.Save(&b).Error; err != nil {
		logger.Error("Failed to update booking", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update booking")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Booking updated successfully",
		"booking": b,
	})
}

// UpdateStatus sets status and admin notes; staff/admin only
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, bc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsElevated() {
		return utils.Fail(c, fiber.StatusForbidden, access.RoleMessage("update booking status"))
	}

	var b bookingModel.Booking
	if err := bc.DB.First(&b, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Booking")
	}

	var req bookingTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	b.Status = bookingModel.BookingStatus(req.Status)
	if req.AdminNotes != "" {
		b.AdminNotes = req.AdminNotes
	}

	if err := bc.DB.Save(&b).Error; err != nil {
		logger.Error("Failed to update booking status", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update booking status")
	}

	logger.Success(fmt.Sprintf("Booking %d status set to %s", b.ID, b.Status))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Booking status updated successfully",
		"booking": b,
	})
}

// Delete removes a booking; admin only (route-gated)
func (bc *BookingController) Delete(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, bc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsAdmin() {
		return utils.Fail(c, fiber.StatusForbidden, "Only admin can delete bookings")
	}

	var b bookingModel.Booking
	if err := bc.DB.First(&b, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Booking")
	}

	if err := bc.DB.Delete(&b).Error; err != nil {
		logger.Error("Failed to delete booking", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete booking")
	}

	return utils.OK(c, fiber.StatusOK, "Booking deleted successfully", nil)
}
