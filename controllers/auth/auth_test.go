package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tailor-booking/constants"
	"tailor-booking/httpServices/googleauth"
	"tailor-booking/logger"
	userModel "tailor-booking/models/user"
	verificationModel "tailor-booking/models/verification"
	verificationService "tailor-booking/services/verification"
)

var mailCodePattern = regexp.MustCompile(`\b\d{6}\b`)

// stubSender captures outgoing mail instead of delivering it.
type stubSender struct {
	lastTo   string
	lastBody string
	fail     bool
}

func (s *stubSender) Send(to, subject, body string) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.lastTo = to
	s.lastBody = body
	return nil
}

func (s *stubSender) sentCode() string {
	return mailCodePattern.FindString(s.lastBody)
}

func setupAuthTestApp(t *testing.T, googleURL string) (*fiber.App, *gorm.DB, *stubSender) {
	t.Setenv("JWT_SECRET", "auth-test-secret")
	t.Setenv("ENCRYPTION_KEY", "auth-test-encryption-key")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&userModel.User{}, &verificationModel.Code{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	sender := &stubSender{}
	verifier := verificationService.NewService(db, sender)
	controller := NewAuthController(db, logger.NewAsyncLogger(db), verifier, googleauth.NewClient(googleURL))

	app := fiber.New()
	app.Post("/api/users/register", controller.Register)
	app.Post("/api/users/login", controller.Login)
	app.Post("/api/users/google-auth", controller.GoogleAuth)
	app.Post("/api/users/verify-email", controller.VerifyEmail)
	app.Post("/api/users/forgot-password", controller.ForgotPassword)
	app.Post("/api/users/reset-password", controller.ResetPassword)

	return app, db, sender
}

func postJSON(t *testing.T, app *fiber.App, target string, body interface{}) (*http.Response, map[string]interface{}) {
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to encode request body: %v", err)
	}

	req := httptest.NewRequest("POST", target, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

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

func registerPayload() fiber.Map {
	return fiber.Map{
		"full_name": "Alice Smith",
		"email":     "alice@example.com",
		"password":  "sewing-machine",
		"phone":     "09171234567",
		"city":      "Cebu",
	}
}

func TestRegister(t *testing.T) {
	app, db, sender := setupAuthTestApp(t, "")

	resp, body := postJSON(t, app, "/api/users/register", registerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, body["success"].(bool))
	assert.NotEmpty(t, body["token"])

	u := body["user"].(map[string]interface{})
	assert.Equal(t, constants.RoleUser, u["role"])
	assert.Equal(t, false, u["email_verified"])
	// The hash never leaves the server
	assert.NotContains(t, u, "password_hash")

	assert.Equal(t, "alice@example.com", sender.lastTo)
	assert.Len(t, sender.sentCode(), 6)

	var stored userModel.User
	assert.NoError(t, db.Where("email = ?", "alice@example.com").First(&stored).Error)
	assert.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "sewing-machine", *stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _, _ := setupAuthTestApp(t, "")

	resp, _ := postJSON(t, app, "/api/users/register", registerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/api/users/register", registerPayload())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "already registered")
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := setupAuthTestApp(t, "")

	tests := []struct {
		name    string
		mutate  func(fiber.Map)
		message string
	}{
		{"missing name", func(p fiber.Map) { p["full_name"] = "" }, "full name is required"},
		{"bad email", func(p fiber.Map) { p["email"] = "not-an-email" }, "email is not valid"},
		{"short password", func(p fiber.Map) { p["password"] = "abc" }, "at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := registerPayload()
			tt.mutate(payload)

			resp, body := postJSON(t, app, "/api/users/register", payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body["message"], tt.message)
		})
	}
}

func TestRegisterMailFailureReported(t *testing.T) {
	app, _, sender := setupAuthTestApp(t, "")
	sender.fail = true

	resp, _ := postJSON(t, app, "/api/users/register", registerPayload())
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app, _, _ := setupAuthTestApp(t, "")

	resp, _ := postJSON(t, app, "/api/users/register", registerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "sewing-machine",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = postJSON(t, app, "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/users/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFederatedAccountRejected(t *testing.T) {
	app, db, _ := setupAuthTestApp(t, "")

	federated := userModel.User{
		Uuid:     "uuid-federated",
		Email:    "google-user@example.com",
		FullName: "Google User",
		Role:     constants.RoleUser,
	}
	assert.NoError(t, db.Create(&federated).Error)

	resp, body := postJSON(t, app, "/api/users/login", fiber.Map{
		"email":    "google-user@example.com",
		"password": "anything",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "Google sign-in")
}

func TestGoogleAuthCreatesAccount(t *testing.T) {
	tokeninfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokeninfo", r.URL.Path)
		assert.Equal(t, "good-token", r.URL.Query().Get("id_token"))
		json.NewEncoder(w).Encode(map[string]string{
			"sub":            "google-sub-1",
			"email":          "carol@example.com",
			"email_verified": "true",
			"name":           "Carol Jones",
		})
	}))
	defer tokeninfo.Close()

	app, db, _ := setupAuthTestApp(t, tokeninfo.URL)

	resp, body := postJSON(t, app, "/api/users/google-auth", fiber.Map{"id_token": "good-token"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	var u userModel.User
	assert.NoError(t, db.Where("email = ?", "carol@example.com").First(&u).Error)
	assert.Nil(t, u.PasswordHash)
	assert.True(t, u.EmailVerified)

	// Subsequent sign-ins reuse the account
	resp, _ = postJSON(t, app, "/api/users/google-auth", fiber.Map{"id_token": "good-token"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&userModel.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGoogleAuthRejectedToken(t *testing.T) {
	tokeninfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer tokeninfo.Close()

	app, _, _ := setupAuthTestApp(t, tokeninfo.URL)

	resp, _ := postJSON(t, app, "/api/users/google-auth", fiber.Map{"id_token": "bad-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyEmailFlow(t *testing.T) {
	app, db, sender := setupAuthTestApp(t, "")

	resp, _ := postJSON(t, app, "/api/users/register", registerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/users/verify-email", fiber.Map{
		"email": "alice@example.com",
		"code":  sender.sentCode(),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var u userModel.User
	assert.NoError(t, db.Where("email = ?", "alice@example.com").First(&u).Error)
	assert.True(t, u.EmailVerified)
}

func TestResetPasswordFlow(t *testing.T) {
	app, db, sender := setupAuthTestApp(t, "")

	resp, _ := postJSON(t, app, "/api/users/register", registerPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/users/forgot-password", fiber.Map{"email": "alice@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/users/reset-password", fiber.Map{
		"email":        "alice@example.com",
		"code":         sender.sentCode(),
		"new_password": "new-sewing-machine",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var u userModel.User
	assert.NoError(t, db.Where("email = ?", "alice@example.com").First(&u).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("new-sewing-machine")))

	resp, _ = postJSON(t, app, "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "sewing-machine",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	app, _, _ := setupAuthTestApp(t, "")

	resp, _ := postJSON(t, app, "/api/users/forgot-password", fiber.Map{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
