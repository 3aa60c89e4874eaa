package user

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tailor-booking/logger"
	"tailor-booking/services/access"
	"tailor-booking/types"
	"tailor-booking/utils"
)

// UserController serves the self-service profile endpoints
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetProfile returns the calling user's own record
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	u, err := access.Resolve(c, uc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    u,
	})
}

// UpdateProfile edits the calling user's own record. Email and role are not
// editable here.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	u, err := access.Resolve(c, uc.DB)
	if err != nil {
		return utils.FailResolve(c, err)
	}

	var req types.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Phone != "" && !utils.ValidatePhoneNumber(req.Phone) {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid phone number")
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Phone != "" {
		u.Phone = &req.Phone
	}
	if req.Address != "" {
		u.Address = &req.Address
	}
	if req.City != "" {
		u.City = &req.City
	}

	if err := uc.DB.Save(u).Error; err != nil {
		logger.Error("Failed to update profile", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	logger.Success("Profile updated: " + u.Email)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    u,
	})
}
