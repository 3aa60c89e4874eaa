package service

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tailor-booking/database/seeders"
	"tailor-booking/logger"
	serviceModel "tailor-booking/models/service"
	serviceTypes "tailor-booking/types/service"
	"tailor-booking/utils"
)

// ServiceController manages the public catalog. Mutations are admin-only,
// enforced at the route level.
type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// Index lists the catalog, publicly readable
func (sc *ServiceController) Index(c *fiber.Ctx) error {
	var services []serviceModel.Service
	q := sc.DB.Order("name asc")

	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Find(&services).Error; err != nil {
		logger.Error("Failed to list services", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"services": services,
	})
}

// Show returns one catalog entry
func (sc *ServiceController) Show(c *fiber.Ctx) error {
	var svc serviceModel.Service
	if err := sc.DB.First(&svc, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Service")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"service": svc,
	})
}

// Store creates a catalog entry
func (sc *ServiceController) Store(c *fiber.Ctx) error {
	var req serviceTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	svc := serviceModel.Service{
		Name:      req.Name,
		Category:  serviceModel.Category(req.Category),
		BasePrice: req.BasePrice,
		Unit:      req.Unit,
		Options:   req.Options,
		AddOns:    req.AddOns,
		Active:    true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := sc.DB.Create(&svc).Error; err != nil {
		logger.Error("Failed to create service", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create service")
	}

	logger.Success("Service created: " + svc.Name)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service created successfully",
		"service": svc,
	})
}

// Update edits a catalog entry
func (sc *ServiceController) Update(c *fiber.Ctx) error {
	var svc serviceModel.Service
	if err := sc.DB.First(&svc, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Service")
	}

	var req serviceTypes.Request
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	svc.Name = req.Name
	svc.Category = serviceModel.Category(req.Category)
	svc.BasePrice = req.BasePrice
	svc.Unit = req.Unit
	svc.Options = req.Options
	svc.AddOns = req.AddOns
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := sc.DB.Save(&svc).Error; err != nil {
		logger.Error("Failed to update service", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update service")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Service updated successfully",
		"service": svc,
	})
}

// Delete removes a catalog entry
func (sc *ServiceController) Delete(c *fiber.Ctx) error {
	var svc serviceModel.Service
	if err := sc.DB.First(&svc, c.Params("id")).Error; err != nil {
		return utils.FailLookup(c, err, "Service")
	}

	if err := sc.DB.Delete(&svc).Error; err != nil {
		logger.Error("Failed to delete service", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete service")
	}

	return utils.OK(c, fiber.StatusOK, "Service deleted successfully", nil)
}

// Seed installs the default catalog; calling it twice changes nothing
func (sc *ServiceController) Seed(c *fiber.Ctx) error {
	count, err := seeders.SeedServices(sc.DB)
	if err != nil {
		logger.Error("Failed to seed services", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to seed services")
	}

	return utils.OK(c, fiber.StatusOK, "Service catalog ready", fiber.Map{
		"count": count,
	})
}
