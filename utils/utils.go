package utils

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"tailor-booking/types"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\-() ]{7,20}$`)

// ExtractClaims returns the JWT claims the auth middleware attached to the
// request context.
func ExtractClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return nil, errors.New("no token claims on request")
	}
	return claims, nil
}

// ClaimString reads a string claim, returning "" when absent.
func ClaimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// ValidatePhoneNumber accepts common phone formats with optional country code.
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}
	return phonePattern.MatchString(phone)
}

// sensitiveFields are scrubbed from logged request bodies.
var sensitiveFields = []string{"password", "new_password", "password_hash", "code", "id_token"}

// sanitizeRequestBody strips credentials and oversized photo payloads from a
// request body before it is persisted to the log table.
func sanitizeRequestBody(c *fiber.Ctx) string {
	body := c.Body()

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		if len(body) > 2048 {
			return "[LARGE_REQUEST_BODY]"
		}
		return string(body)
	}

	for _, field := range sensitiveFields {
		if _, ok := parsed[field]; ok {
			parsed[field] = "[REDACTED]"
		}
	}

	// Photo references can carry inline base64 images
	if _, ok := parsed["photos"]; ok {
		parsed["photos"] = "[PHOTOS_REMOVED]"
	}

	if sanitized, err := json.Marshal(parsed); err == nil {
		return string(sanitized)
	}
	return "[UNSERIALIZABLE_REQUEST_BODY]"
}

// CreateSanitizedLogEntry builds a log entry from the request with
// credentials scrubbed, ready for the async logger.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string([]byte(c.Response().Body()))
	statusCode := c.Response().StatusCode()

	userUuid := ""
	if claims, err := ExtractClaims(c); err == nil {
		userUuid = ClaimString(claims, "uuid")
	}

	reqHeaders := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		name := string(key)
		if strings.EqualFold(name, "Authorization") || strings.EqualFold(name, "Cookie") {
			return
		}
		reqHeaders[name] = string(value)
	})
	reqHeadersJSON, _ := json.Marshal(reqHeaders)

	respHeaders := make(map[string]string)
	c.Response().Header.VisitAll(func(key, value []byte) {
		respHeaders[string(key)] = string(value)
	})
	respHeadersJSON, _ := json.Marshal(respHeaders)

	return types.LogEntry{
		UserUuid:        userUuid,
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(reqHeadersJSON),
		ResponseHeaders: string(respHeadersJSON),
		StatusCode:      statusCode,
	}
}
