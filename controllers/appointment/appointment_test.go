package appointment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tailor-booking/constants"
	"tailor-booking/logger"
	"tailor-booking/middleware"
	appointmentModel "tailor-booking/models/appointment"
	userModel "tailor-booking/models/user"
	"tailor-booking/services/token"
)

func setupAppointmentTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Setenv("JWT_SECRET", "appointment-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&userModel.User{}, &appointmentModel.Appointment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	controller := NewAppointmentController(db, logger.NewAsyncLogger(db))

	app := fiber.New()
	app.Get("/api/appointments/slots", controller.Slots)

	group := app.Group("/api/appointments").Use(middleware.RequireAuth())
	group.Post("/", controller.Store)
	group.Get("/", controller.Index)
	group.Get("/:id", controller.Show)
	group.Put("/:id", controller.Update)
	group.Put("/:id/status", controller.UpdateStatus)
	group.Delete("/:id", middleware.RequireRoles(constants.RoleAdmin), controller.Delete)

	return app, db
}

func createAppointmentTestUser(t *testing.T, db *gorm.DB, uuid, email, role string) *userModel.User {
	u := userModel.User{
		Uuid:     uuid,
		Email:    email,
		FullName: "Test " + role,
		Role:     role,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &u
}

func appointmentAuth(t *testing.T, u *userModel.User) string {
	signed, err := token.Generate(u)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return "Bearer " + signed
}

func appointmentRequest(t *testing.T, app *fiber.App, method, target, auth string, body interface{}) (*http.Response, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("Failed to decode response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

const testDay = "2026-09-15"

func TestBookAppointment(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)

	resp, body := appointmentRequest(t, app, "POST", "/api/appointments/", appointmentAuth(t, alice), fiber.Map{
		"service": "Alteration",
		"date":    testDay,
		"time":    "10:00 AM",
		"notes":   "Fitting for wedding suit",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	appt := body["appointment"].(map[string]interface{})
	assert.Equal(t, "Scheduled", appt["status"])
	assert.Equal(t, "10:00 AM", appt["time"])
	assert.Equal(t, float64(alice.ID), appt["user_id"])
}

func TestBookAppointmentRejectsUnknownSlot(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)

	resp, _ := appointmentRequest(t, app, "POST", "/api/appointments/", appointmentAuth(t, alice), fiber.Map{
		"service": "Alteration",
		"date":    testDay,
		"time":    "6:30 PM",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBookAppointmentSlotConflict(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)
	bob := createAppointmentTestUser(t, db, "uuid-bob", "bob@example.com", constants.RoleUser)

	resp, _ := appointmentRequest(t, app, "POST", "/api/appointments/", appointmentAuth(t, alice), fiber.Map{
		"service": "Alteration",
		"date":    testDay,
		"time":    "10:00 AM",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = appointmentRequest(t, app, "POST", "/api/appointments/", appointmentAuth(t, bob), fiber.Map{
		"service": "Repair drop-off",
		"date":    testDay,
		"time":    "10:00 AM",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCancelledAppointmentReleasesSlot(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)
	bob := createAppointmentTestUser(t, db, "uuid-bob", "bob@example.com", constants.RoleUser)

	resp, _ := appointmentRequest(t, app, "POST", "/api/appointments/", appointmentAuth(t, alice), fiber.Map{
		"service": "Alteration",
		"date":    testDay,
		"time":    "10:00 AM",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = appointmentRequest(t, app, "PUT", "/api/appointments/1/status", appointmentAuth(t, alice), fiber.Map{
		"status": "Cancelled",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = appointmentRequest(t, app, "POST", "/api/appointments/", appointmentAuth(t, bob), fiber.Map{
		"service": "Repair drop-off",
		"date":    testDay,
		"time":    "10:00 AM",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDailyCapacityEnforced(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)

	// Fill the day to capacity directly; two bookings share the 9:00 AM slot
	// because capacity, not slot count, is the daily limit
	day, _ := time.Parse("2006-01-02", testDay)
	for i := 0; i < appointmentModel.DailyCapacity; i++ {
		slot := appointmentModel.Slots[i%len(appointmentModel.Slots)]
		appt := appointmentModel.Appointment{
			UserID:  &alice.ID,
			Service: fmt.Sprintf("Walk-in %d", i),
			Date:    day,
			Time:    slot,
			Status:  appointmentModel.StatusScheduled,
		}
		assert.NoError(t, db.Create(&appt).Error)
	}

	resp, body := appointmentRequest(t, app, "POST", "/api/appointments/", appointmentAuth(t, alice), fiber.Map{
		"service": "Alteration",
		"date":    testDay,
		"time":    "5:00 PM",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["message"], "No appointments available")
}

func TestSlotsEndpoint(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)

	day, _ := time.Parse("2006-01-02", testDay)
	appt := appointmentModel.Appointment{
		UserID:  &alice.ID,
		Service: "Alteration",
		Date:    day,
		Time:    "10:00 AM",
		Status:  appointmentModel.StatusScheduled,
	}
	assert.NoError(t, db.Create(&appt).Error)

	// Public endpoint, no token
	resp, body := appointmentRequest(t, app, "GET", "/api/appointments/slots?date="+testDay, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	slots := body["slots"].([]interface{})
	assert.Len(t, slots, len(appointmentModel.Slots))

	for _, raw := range slots {
		slot := raw.(map[string]interface{})
		if slot["time"] == "10:00 AM" {
			assert.Equal(t, float64(1), slot["booked"])
			assert.Equal(t, false, slot["available"])
		} else {
			assert.Equal(t, float64(0), slot["booked"])
			assert.Equal(t, true, slot["available"])
		}
	}
}

func TestSlotsRequiresDate(t *testing.T) {
	app, _ := setupAppointmentTestApp(t)

	resp, _ := appointmentRequest(t, app, "GET", "/api/appointments/slots", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAppointmentIndexScopedByRole(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)
	bob := createAppointmentTestUser(t, db, "uuid-bob", "bob@example.com", constants.RoleUser)
	staff := createAppointmentTestUser(t, db, "uuid-staff", "staff@example.com", constants.RoleStaff)

	day, _ := time.Parse("2006-01-02", testDay)
	for i, owner := range []*userModel.User{alice, bob} {
		appt := appointmentModel.Appointment{
			UserID:  &owner.ID,
			Service: "Alteration",
			Date:    day,
			Time:    appointmentModel.Slots[i],
			Status:  appointmentModel.StatusScheduled,
		}
		assert.NoError(t, db.Create(&appt).Error)
	}

	resp, body := appointmentRequest(t, app, "GET", "/api/appointments/", appointmentAuth(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["appointments"], 1)

	resp, body = appointmentRequest(t, app, "GET", "/api/appointments/", appointmentAuth(t, staff), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["appointments"], 2)
}

func TestRescheduleIntoTakenSlotRejected(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)

	day, _ := time.Parse("2006-01-02", testDay)
	for i, slot := range []string{"9:00 AM", "10:00 AM"} {
		appt := appointmentModel.Appointment{
			UserID:  &alice.ID,
			Service: fmt.Sprintf("Visit %d", i),
			Date:    day,
			Time:    slot,
			Status:  appointmentModel.StatusScheduled,
		}
		assert.NoError(t, db.Create(&appt).Error)
	}

	resp, _ := appointmentRequest(t, app, "PUT", "/api/appointments/1", appointmentAuth(t, alice), fiber.Map{
		"time": "10:00 AM",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteAppointmentRequiresAdmin(t *testing.T) {
	app, db := setupAppointmentTestApp(t)
	alice := createAppointmentTestUser(t, db, "uuid-alice", "alice@example.com", constants.RoleUser)
	admin := createAppointmentTestUser(t, db, "uuid-admin", "admin@example.com", constants.RoleAdmin)

	day, _ := time.Parse("2006-01-02", testDay)
	appt := appointmentModel.Appointment{
		UserID:  &alice.ID,
		Service: "Alteration",
		Date:    day,
		Time:    "9:00 AM",
		Status:  appointmentModel.StatusScheduled,
	}
	assert.NoError(t, db.Create(&appt).Error)

	resp, _ := appointmentRequest(t, app, "DELETE", "/api/appointments/1", appointmentAuth(t, alice), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = appointmentRequest(t, app, "DELETE", "/api/appointments/1", appointmentAuth(t, admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&appointmentModel.Appointment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
