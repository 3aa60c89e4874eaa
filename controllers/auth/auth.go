package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tailor-booking/constants"
	"tailor-booking/httpServices/googleauth"
	"tailor-booking/logger"
	userModel "tailor-booking/models/user"
	"tailor-booking/models/verification"
	"tailor-booking/services/token"
	verificationService "tailor-booking/services/verification"
	"tailor-booking/types"
	"tailor-booking/utils"
)

// AuthController handles registration, login and credential recovery
type AuthController struct {
	DB       *gorm.DB
	Logger   *logger.AsyncLogger
	Verifier *verificationService.Service
	Google   *googleauth.Client
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger, verifier *verificationService.Service, google *googleauth.Client) *AuthController {
	return &AuthController{
		DB:       db,
		Logger:   asyncLogger,
		Verifier: verifier,
		Google:   google,
	}
}

// setSecureCookie sets the access cookie; Secure only outside development
func (ac *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func (ac *AuthController) issueSession(c *fiber.Ctx, u *userModel.User, status int, message string) error {
	signed, err := token.Generate(u)
	if err != nil {
		logger.Error("Failed to sign access token", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	ac.setSecureCookie(c, "access", signed, 8*60*60)

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"token":   signed,
		"user":    u,
	})
}

// Register creates a local account and mails a verification code
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req types.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	var existing userModel.User
	err := ac.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	hashStr := string(hash)
	newUser := userModel.User{
		Uuid:         uuid.NewString(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		Role:         constants.RoleUser,
	}
	if req.Phone != "" {
		newUser.Phone = &req.Phone
	}
	if req.Address != "" {
		newUser.Address = &req.Address
	}
	if req.City != "" {
		newUser.City = &req.City
	}

	if err := ac.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	if _, err := ac.Verifier.Issue(newUser.Email, verification.PurposeEmailVerification); err != nil {
		logger.Error("Failed to send verification code", err)
		return utils.Fail(c, fiber.StatusBadGateway, "Account created but verification email could not be sent")
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User registered: " + newUser.Email)

	return ac.issueSession(c, &newUser, fiber.StatusCreated, "Registration successful, verification code sent")
}

// Login authenticates an email/password pair
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	var u userModel.User
	if err := ac.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		logger.Error("Database error during login", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	if u.PasswordHash == nil {
		return utils.Fail(c, fiber.StatusBadRequest, "This account uses Google sign-in")
	}

	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)) != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User logged in: " + u.Email)

	return ac.issueSession(c, &u, fiber.StatusOK, "Login successful")
}

// GoogleAuth signs a user in with a Google ID token, creating the local
// account on first sign-in.
func (ac *AuthController) GoogleAuth(c *fiber.Ctx) error {
	var req types.GoogleAuthRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	info, err := ac.Google.VerifyIDToken(req.IDToken)
	if err != nil {
		logger.Error("Google token verification failed", err)
		return utils.Fail(c, fiber.StatusUnauthorized, "Google sign-in failed")
	}

	var u userModel.User
	err = ac.DB.Where("email = ?", info.Email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = userModel.User{
			Uuid:          uuid.NewString(),
			Email:         info.Email,
			FullName:      info.Name,
			Role:          constants.RoleUser,
			EmailVerified: info.EmailVerified == "true",
		}
		if err := ac.DB.Create(&u).Error; err != nil {
			logger.Error("Failed to create federated user", err)
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create account")
		}
		logger.Success("Federated user created: " + u.Email)
	} else if err != nil {
		logger.Error("Database error during Google sign-in", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return ac.issueSession(c, &u, fiber.StatusOK, "Login successful")
}

// Logout clears the access cookie
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	ac.setSecureCookie(c, "access", "", -1)
	return utils.OK(c, fiber.StatusOK, "Logout successful", nil)
}

// VerifyEmail consumes an emailed verification code
func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	var req types.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	valid, err := ac.Verifier.Verify(req.Email, req.Code, verification.PurposeEmailVerification)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if !valid {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid or expired code")
	}

	if err := ac.DB.Model(&userModel.User{}).
		Where("email = ?", req.Email).
		Update("email_verified", true).Error; err != nil {
		logger.Error("Failed to mark email verified", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	logger.Success("Email verified: " + req.Email)
	return utils.OK(c, fiber.StatusOK, "Email verified successfully", nil)
}

// ForgotPassword mails a password reset code
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req types.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	var u userModel.User
	if err := ac.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Fail(c, fiber.StatusNotFound, "User not found")
		}
		logger.Error("Database error during password reset request", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	if u.PasswordHash == nil {
		return utils.Fail(c, fiber.StatusBadRequest, "This account uses Google sign-in")
	}

	code, err := ac.Verifier.Issue(u.Email, verification.PurposePasswordReset)
	if err != nil {
		logger.Error("Failed to send reset code", err)
		return utils.Fail(c, fiber.StatusBadGateway, "Failed to send reset code")
	}

	return utils.OK(c, fiber.StatusOK, "Reset code sent", fiber.Map{
		"expires_at": code.ExpiresAt,
	})
}

// ResetPassword consumes a reset code and stores the new password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req types.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg := req.Validate(); msg != "" {
		return utils.Fail(c, fiber.StatusBadRequest, msg)
	}

	valid, err := ac.Verifier.Verify(req.Email, req.Code, verification.PurposePasswordReset)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if !valid {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid or expired code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to reset password")
	}

	if err := ac.DB.Model(&userModel.User{}).
		Where("email = ?", req.Email).
		Update("password_hash", string(hash)).Error; err != nil {
		logger.Error("Failed to store new password", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Database error")
	}

	logger.Success(fmt.Sprintf("Password reset for %s", req.Email))
	return utils.OK(c, fiber.StatusOK, "Password reset successfully", nil)
}
