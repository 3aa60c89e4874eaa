package types

import (
	"fmt"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Address  string `json:"address" validate:"omitempty,max=255"`
	City     string `json:"city" validate:"omitempty,max=100"`
}

func (r RegisterRequest) Validate() string {
	if r.FullName == "" {
		return "full name is required"
	}
	if r.Email == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(r.Email) {
		return "email is not valid"
	}
	if len(r.Password) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

// LoginRequest represents the request payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() string {
	if r.Email == "" {
		return "email is required"
	}
	if r.Password == "" {
		return "password is required"
	}
	return ""
}

// GoogleAuthRequest carries the Google ID token issued to the frontend
type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

func (r GoogleAuthRequest) Validate() string {
	if r.IDToken == "" {
		return "id_token is required"
	}
	return ""
}

// VerifyEmailRequest represents the email verification payload
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

func (r VerifyEmailRequest) Validate() string {
	if r.Email == "" {
		return "email is required"
	}
	if len(r.Code) != 6 {
		return fmt.Sprintf("code must be 6 digits, got %d characters", len(r.Code))
	}
	return ""
}

// ForgotPasswordRequest requests a password reset code
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r ForgotPasswordRequest) Validate() string {
	if r.Email == "" {
		return "email is required"
	}
	return ""
}

// ResetPasswordRequest consumes a reset code and sets a new password
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (r ResetPasswordRequest) Validate() string {
	if r.Email == "" {
		return "email is required"
	}
	if len(r.Code) != 6 {
		return "code must be 6 digits"
	}
	if len(r.NewPassword) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

// UpdateProfileRequest represents the self-service profile update payload
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Address  string `json:"address" validate:"omitempty,max=255"`
	City     string `json:"city" validate:"omitempty,max=100"`
}

// IsValidEmail reports whether the address matches the accepted format.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
