package service

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tailor-booking/constants"
	"tailor-booking/database/seeders"
	"tailor-booking/middleware"
	serviceModel "tailor-booking/models/service"
	userModel "tailor-booking/models/user"
	"tailor-booking/services/token"
)

func setupServiceTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Setenv("JWT_SECRET", "service-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&userModel.User{}, &serviceModel.Service{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	controller := NewServiceController(db)

	// Mirrors the production wiring: reads and seeding are open, mutations
	// sit behind the admin group
	app := fiber.New()
	api := app.Group("/api")
	api.Get("/services", controller.Index)
	api.Get("/services/:id", controller.Show)
	api.Post("/services/seed", controller.Seed)

	admin := api.Group("/services").Use(middleware.RequireAuth(), middleware.RequireRoles(constants.RoleAdmin))
	admin.Post("/", controller.Store)
	admin.Put("/:id", controller.Update)
	admin.Delete("/:id", controller.Delete)

	return app, db
}

func serviceRequest(t *testing.T, app *fiber.App, method, target, auth string, body interface{}) (*http.Response, map[string]interface{}) {
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

func serviceAuth(t *testing.T, db *gorm.DB, uuid, email, role string) string {
	u := userModel.User{
		Uuid:     uuid,
		Email:    email,
		FullName: "Test " + role,
		Role:     role,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	signed, err := token.Generate(&u)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return "Bearer " + signed
}

func TestSeedEndpointIsPublic(t *testing.T) {
	app, db := setupServiceTestApp(t)

	resp, body := serviceRequest(t, app, "POST", "/api/services/seed", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(len(seeders.DefaultServices())), data["count"])

	var count int64
	db.Model(&serviceModel.Service{}).Count(&count)
	assert.EqualValues(t, len(seeders.DefaultServices()), count)

	// A second call finds the catalog populated and inserts nothing
	resp, body = serviceRequest(t, app, "POST", "/api/services/seed", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["data"].(map[string]interface{})["count"])

	db.Model(&serviceModel.Service{}).Count(&count)
	assert.EqualValues(t, len(seeders.DefaultServices()), count)
}

func TestCatalogIsPubliclyReadable(t *testing.T) {
	app, _ := setupServiceTestApp(t)

	resp, _ := serviceRequest(t, app, "POST", "/api/services/seed", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := serviceRequest(t, app, "GET", "/api/services", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["services"], len(seeders.DefaultServices()))
}

func TestServiceMutationsRequireAdmin(t *testing.T) {
	app, db := setupServiceTestApp(t)

	payload := fiber.Map{
		"name":       "Hem Adjustment",
		"category":   "repair",
		"base_price": 120,
	}

	resp, _ := serviceRequest(t, app, "POST", "/api/services/", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	userToken := serviceAuth(t, db, "uuid-user", "user@example.com", constants.RoleUser)
	resp, _ = serviceRequest(t, app, "POST", "/api/services/", userToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := serviceAuth(t, db, "uuid-admin", "admin@example.com", constants.RoleAdmin)
	resp, body := serviceRequest(t, app, "POST", "/api/services/", adminToken, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Hem Adjustment", body["service"].(map[string]interface{})["name"])
}
