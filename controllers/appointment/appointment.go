package appointment

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"tailor-booking/logger"
	appointmentModel "tailor-booking/models/appointment"
	"tailor-booking/services/access"
	appointmentTypes "tailor-booking/types/appointment"
	"tailor-booking/utils"
)

// AppointmentController handles appointment-related HTTP requests
type AppointmentController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewAppointmentController creates a new appointment controller
func NewAppointmentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AppointmentController {
	return &AppointmentController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// dayWindow returns the [start, end) bounds of the calendar day holding t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := now.With(t).BeginningOfDay()
	return start, start.AddDate(0, 0, 1)
}

// cancelledExcluded filters out cancelled appointments, which release
// their slot back into the pool.
func cancelledExcluded(q *gorm.DB) *gorm.DB {
	return q.Where("status <> ?", appointmentModel.StatusCancelled)
}

// Slots reports per-slot availability for a given day. Public: customers
// check the calendar before authenticating.
func (ac *AppointmentController) Slots(c *fiber.Ctx) error {
	dateParam := c.Query("date")
	if dateParam == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "date query parameter is required")
	}

	day, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	}

	start, end := dayWindow(day)

	var total int64
	if err := cancelledExcluded(ac.DB.Model(&appointmentModel.Appointment{}).
		Where("date >= ? AND date < ?", start, end)).
		Count(&total).Error; err != nil {
		logger.Error("Failed to count appointments", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	dayFull := total >= appointmentModel.DailyCapacity

	slots := make([]appointmentTypes.SlotAvailability, 0, len(appointmentModel.Slots))
	for _, slot := range appointmentModel.Slots {
		var booked int64
		if err := cancelledExcluded(ac.DB.Model(&appointmentModel.Appointment{}).
			Where("date >= ? AND date < ? AND time = ?", start, end, slot)).
			Count(&booked).Error; err != nil {
			logger.Error("Failed to count slot bookings", err)
			return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
		}

		slots = append(slots, appointmentTypes.SlotAvailability{
			Time:      slot,
			Booked:    booked,
			Available: !dayFull && booked == 0,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"date":    dateParam,
		"slots":   slots,
	})
}

// Store books a slot for the calling user
func (ac *AppointmentController) Store(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ac.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var req appointmentTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	}

	start, end := dayWindow(day)

	var total int64
	if err := cancelledExcluded(ac.DB.Model(&appointmentModel.Appointment{}).
		Where("date >= ? AND date < ?", start, end)).
		Count(&total).Error; err != nil {
		logger.Error("Failed to count appointments", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}
	if total >= appointmentModel.DailyCapacity {
		return utils.Fail(c, fiber.StatusConflict, "No appointments available on this day")
	}

	var taken int64
	if err := cancelledExcluded(ac.DB.Model(&appointmentModel.Appointment{}).
		Where("date >= ? AND date < ? AND time = ?", start, end, req.Time)).
		Count(&taken).Error; err != nil {
		logger.Error("Failed to count slot bookings", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}
	if taken > 0 {
		return utils.Fail(c, fiber.StatusConflict, "This time slot is already booked")
	}

	appt := appointmentModel.Appointment{
		UserID:  &caller.ID,
		Service: req.Service,
		Date:    start,
		Time:    req.Time,
		Status:  appointmentModel.StatusScheduled,
		Notes:   req.Notes,
	}

	if err := ac.DB.Create(&appt).Error; err != nil {
		logger.Error("Failed to create appointment", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to save appointment")
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Appointment booked for %s at %s", req.Date, req.Time))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Appointment booked successfully",
		"appointment": appt,
	})
}

// Index lists appointments; plain users only see their own
func (ac *AppointmentController) Index(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ac.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var appointments []appointmentModel.Appointment
	q := access.ScopeToOwner(ac.DB, caller).Order("date asc, time asc")

	if dateParam := c.Query("date"); dateParam != "" {
		day, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}
		start, end := dayWindow(day)
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Find(&appointments).Error; err != nil {
		logger.Error("Failed to list appointments", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"appointments": appointments,
	})
}

// Show returns one appointment, owner-or-elevated
func (ac *AppointmentController) Show(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ac.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var appt appointmentModel.Appointment
	if err := ac.DB.First(&appt, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Appointment")
	}

	if !access.CanAccess(caller, appt.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this appointment")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"appointment": appt,
	})
}

// Update reschedules or annotates an appointment, owner-or-elevated.
// Rescheduling re-runs the same capacity checks as booking.
func (ac *AppointmentController) Update(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ac.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var appt appointmentModel.Appointment
	if err := ac.DB.First(&appt, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Appointment")
	}

	if !access.CanAccess(caller, appt.UserID) {
		return utils.Fail(c, fiber.StatusForbidden, "You do not have access to this appointment")
	}

	var req appointmentTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	newDate := appt.Date
	if req.Date != "" {
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}
		newDate, _ = dayWindow(day)
	}
	newTime := appt.Time
	if req.Time != "" {
		newTime = req.Time
	}

	if !newDate.Equal(appt.Date) || newTime != appt.Time {
		start, end := dayWindow(newDate)

		var taken int64
		if err := cancelledExcluded(ac.DB.Model(&appointmentModel.Appointment{}).
			Where("date >= ? AND date < ? AND time = ? AND id <> ?", start, end, newTime, appt.ID)).
			Count(&taken).Error; err != nil {
			logger.Error("Failed to count slot bookings", err)
			return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
		}
		if taken > 0 {
			return utils.Fail(c, fiber.StatusConflict, "This time slot is already booked")
		}

		if !newDate.Equal(appt.Date) {
			var total int64
			if err := cancelledExcluded(ac.DB.Model(&appointmentModel.Appointment{}).
				Where("date >= ? AND date < ?", start, end)).
				Count(&total).Error; err != nil {
				logger.Error("Failed to count appointments", err)
				return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
			}
			if total >= appointmentModel.DailyCapacity {
				return utils.Fail(c, fiber.StatusConflict, "No appointments available on this day")
			}
		}
	}

	appt.Date = newDate
	appt.Time = newTime
	if req.Service != "" {
		appt.Service = req.Service
	}
	if req.Notes != "" {
		appt.Notes = req.Notes
	}

	if err := ac.DB.Save(&appt).Error; err != nil {
		logger.Error("Failed to update appointment", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update appointment")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"message":     "Appointment updated successfully",
		"appointment": appt,
	})
}

// UpdateStatus changes appointment status. Any authenticated user can hit
// this, matching the existing behavior; cancelling releases the slot.
func (ac *AppointmentController) UpdateStatus(c *fiber.Ctx) error {
	if _, err := access.Resolve(c, ac.DB); err != nil {
		return utils.FailResolve(c, err)
	}

	var appt appointmentModel.Appointment
	if err := ac.DB.First(&appt, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Appointment")
	}

	var req appointmentTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	appt.Status = req.Status
	if err := ac.DB.Save(&appt).Error; err != nil {
		logger.Error("Failed to update appointment status", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update appointment status")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"message":     "Appointment status updated successfully",
		"appointment": appt,
	})
}

// Delete removes an appointment; admin only (route-gated)
func (ac *AppointmentController) Delete(c *fiber.Ctx) error {
	caller, err := access.Resolve(c, ac.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	if !caller.IsAdmin() {
		return utils.Fail(c, fiber.StatusForbidden, "Only admin can delete appointments")
	}

	var appt appointmentModel.Appointment
	if err := ac.DB.First(&appt, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Appointment")
	}

	if err := ac.DB.Delete(&appt).Error; err != nil {
		logger.Error("Failed to delete appointment", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete appointment")
	}

	return utils.OK(c, fiber.StatusOK, "Appointment deleted successfully", nil)
}
