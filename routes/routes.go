package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tailor-booking/constants"
	"tailor-booking/controllers/appointment"
	"tailor-booking/controllers/auth"
	"tailor-booking/controllers/booking"
	"tailor-booking/controllers/invoice"
	"tailor-booking/controllers/order"
	"tailor-booking/controllers/service"
	"tailor-booking/controllers/user"
	"tailor-booking/httpServices/googleauth"
	"tailor-booking/httpServices/mail"
	"tailor-booking/logger"
	"tailor-booking/middleware"
	verificationService "tailor-booking/services/verification"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	mailer := mail.NewSMTPService()
	verifier := verificationService.NewService(db, mailer)
	googleClient := googleauth.NewClient(os.Getenv("GOOGLE_TOKENINFO_URL"))

	authController := auth.NewAuthController(db, asyncLogger, verifier, googleClient)
	userController := user.NewUserController(db)
	serviceController := service.NewServiceController(db)
	bookingController := booking.NewBookingController(db, asyncLogger)
	orderController := order.NewOrderController(db, asyncLogger)
	invoiceController := invoice.NewInvoiceController(db, asyncLogger)
	appointmentController := appointment.NewAppointmentController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	/*=============================================================================
	| User Routes
	===============================================================================*/
	api := app.Group("/api")
	users := api.Group("/users")
	users.Post("/register", authController.Register)
	users.Post("/login", authController.Login)
	users.Post("/google-auth", authController.GoogleAuth)
	users.Post("/logout", authController.Logout)
	users.Post("/verify-email", authController.VerifyEmail)
	users.Post("/forgot-password", authController.ForgotPassword)
	users.Post("/reset-password", authController.ResetPassword)

	users.Get("/profile", middleware.RequireAuth(), userController.GetProfile)
	users.Put("/profile", middleware.RequireAuth(), userController.UpdateProfile)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api.Get("/services", serviceController.Index)
	api.Get("/services/:id", serviceController.Show)
	// Seeding is idempotent, so the endpoint stays open
	api.Post("/services/seed", serviceController.Seed)
	api.Get("/appointments/slots", appointmentController.Slots)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings").Use(middleware.RequireAuth())
	bookingGroup.Post("/", bookingController.Store)
	bookingGroup.Get("/", bookingController.Index)
	bookingGroup.Get("/:id", bookingController.Show)
	bookingGroup.Put("/:id", bookingController.Update)

	bookingGroup.Put("/:id/status", middleware.RequireRoles(
		constants.ElevatedRoles...,
	), bookingController.UpdateStatus)

	bookingGroup.Post("/:id/convert", middleware.RequireRoles(
		constants.ElevatedRoles...,
	), bookingController.Convert)

	bookingGroup.Delete("/:id", middleware.RequireRoles(
		constants.RoleAdmin,
	), bookingController.Delete)

	/*=============================================================================
	| Order Routes
	===============================================================================*/
	orderGroup := api.Group("/orders").Use(middleware.RequireAuth())
	orderGroup.Get("/", orderController.Index)
	orderGroup.Get("/:id", orderController.Show)
	orderGroup.Put("/:id/cancel", orderController.Cancel)

	orderGroup.Put("/:id", middleware.RequireRoles(
		constants.ElevatedRoles...,
	), orderController.Update)

	orderGroup.Put("/:id/steps", middleware.RequireRoles(
		constants.ElevatedRoles...,
	), orderController.UpdateSteps)

	orderGroup.Delete("/:id", middleware.RequireRoles(
		constants.RoleAdmin,
	), orderController.Delete)

	/*=============================================================================
	| Invoice Routes
	===============================================================================*/
	invoiceGroup := api.Group("/invoices").Use(middleware.RequireAuth())
	invoiceGroup.Get("/", invoiceController.Index)
	invoiceGroup.Get("/:id", invoiceController.Show)
	invoiceGroup.Post("/", invoiceController.Store)
	invoiceGroup.Put("/:id", invoiceController.Update)

	invoiceGroup.Put("/:id/status", middleware.RequireRoles(
		constants.ElevatedRoles...,
	), invoiceController.UpdateStatus)

	invoiceGroup.Delete("/:id", middleware.RequireRoles(
		constants.RoleAdmin,
	), invoiceController.Delete)

	/*=============================================================================
	| Appointment Routes
	===============================================================================*/
	appointmentGroup := api.Group("/appointments").Use(middleware.RequireAuth())
	appointmentGroup.Post("/", appointmentController.Store)
	appointmentGroup.Get("/", appointmentController.Index)
	appointmentGroup.Get("/:id", appointmentController.Show)
	appointmentGroup.Put("/:id", appointmentController.Update)
	appointmentGroup.Put("/:id/status", appointmentController.UpdateStatus)

	appointmentGroup.Delete("/:id", middleware.RequireRoles(
		constants.RoleAdmin,
	), appointmentController.Delete)

	/*=============================================================================
	| Service Catalog Admin Routes
	===============================================================================*/
	serviceGroup := api.Group("/services").Use(middleware.RequireAuth(), middleware.RequireRoles(
		constants.RoleAdmin,
	))
	serviceGroup.Post("/", serviceController.Store)
	serviceGroup.Put("/:id", serviceController.Update)
	serviceGroup.Delete("/:id", serviceController.Delete)
}
