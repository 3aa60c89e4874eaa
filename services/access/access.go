package access

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"tailor-booking/constants"
	userModel "tailor-booking/models/user"
)

var (
	// ErrNoClaims means the request carried no usable token claims
	ErrNoClaims = errors.New("invalid user claims")
	// ErrUserNotFound means the token was valid but the user record is gone
	ErrUserNotFound = errors.New("user not found")
)

// Resolve loads the calling user from the claims the auth middleware stored
// on the request. Every role decision starts here so handlers never re-derive
// roles ad hoc.
func Resolve(c *fiber.Ctx, db *gorm.DB) (*userModel.User, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return nil, ErrNoClaims
	}

	uuid, ok := claims["uuid"].(string)
	if !ok || uuid == "" {
		return nil, ErrNoClaims
	}

	var u userModel.User
	if err := db.Where("uuid = ?", uuid).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// CanAccess implements the owner-or-elevated rule: the caller may touch a
// resource it owns, staff and admin may touch anything.
func CanAccess(u *userModel.User, ownerID *uint) bool {
	if u.IsElevated() {
		return true
	}
	return ownerID != nil && *ownerID == u.ID
}

// ScopeToOwner applies list scoping: plain users only see their own records,
// elevated roles see everything.
func ScopeToOwner(q *gorm.DB, u *userModel.User) *gorm.DB {
	if u.IsElevated() {
		return q
	}
	return q.Where("user_id = ?", u.ID)
}

// RoleMessage builds the role-specific 403 message for a denied operation.
func RoleMessage(operation string) string {
	return "Only " + constants.RoleStaff + " or " + constants.RoleAdmin + " can " + operation
}
