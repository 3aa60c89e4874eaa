package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"tailor-booking/httpServices/mail"
	"tailor-booking/models/verification"
	"tailor-booking/utils"
)

// Codes expire ten minutes after they are issued.
const codeTTL = 10 * time.Minute

// Service issues and verifies the numeric codes mailed to users.
type Service struct {
	DB   *gorm.DB
	Mail mail.Sender
}

// NewService creates a verification service backed by db and sender.
func NewService(db *gorm.DB, sender mail.Sender) *Service {
	return &Service{
		DB:   db,
		Mail: sender,
	}
}

// GenerateCode generates a random 6-digit numeric code
func (s *Service) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue creates a code for email+purpose, stores it encrypted and mails it.
// An unexpired unused code for the same email and purpose blocks reissue.
func (s *Service) Issue(email string, purpose verification.Purpose) (*verification.Code, error) {
	existing, err := s.latest(email, purpose)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing code: %w", err)
	}

	if existing != nil && existing.IsCurrentlyBlocked() {
		return nil, fmt.Errorf("verification requests are blocked until %s due to too many failed attempts",
			existing.BlockedUntil.Format("15:04:05"))
	}

	if existing != nil && existing.IsValid() {
		return nil, fmt.Errorf("a code for this email is still active; wait for it to expire")
	}

	plain, err := s.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	encrypted, err := utils.EncryptData(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt code: %w", err)
	}

	// Invalidate whatever unused codes are still lying around
	err = s.DB.Model(&verification.Code{}).
		Where("email = ? AND purpose = ? AND is_used = false", email, purpose).
		Update("is_used", true).Error
	if err != nil {
		return nil, fmt.Errorf("failed to invalidate existing codes: %w", err)
	}

	code := &verification.Code{
		Email:         email,
		CodeEncrypted: encrypted,
		Purpose:       purpose,
		MaxRetries:    3,
		ExpiresAt:     time.Now().Add(codeTTL),
	}

	if err := s.DB.Create(code).Error; err != nil {
		return nil, fmt.Errorf("failed to store code: %w", err)
	}

	body := mail.VerificationBody(plain)
	subject := "Verify your email"
	if purpose == verification.PurposePasswordReset {
		body = mail.ResetBody(plain)
		subject = "Reset your password"
	}

	if err := s.Mail.Send(email, subject, body); err != nil {
		return code, fmt.Errorf("failed to deliver code: %w", err)
	}

	return code, nil
}

// Verify checks a submitted code. Wrong submissions count against the retry
// budget; exhausting it blocks the code for a while.
func (s *Service) Verify(email, submitted string, purpose verification.Purpose) (bool, error) {
	record, err := s.latest(email, purpose)
	if err != nil {
		return false, fmt.Errorf("failed to find code record: %w", err)
	}
	if record == nil {
		return false, nil
	}

	if record.IsCurrentlyBlocked() {
		return false, fmt.Errorf("verification is blocked due to too many failed attempts")
	}

	if record.IsExpired() {
		return false, fmt.Errorf("code has expired")
	}

	plain, err := utils.DecryptData(record.CodeEncrypted)
	if err != nil {
		return false, fmt.Errorf("failed to decrypt stored code: %w", err)
	}

	if plain != submitted {
		record.IncrementRetry()
		if err := s.DB.Save(record).Error; err != nil {
			return false, fmt.Errorf("failed to update retry count: %w", err)
		}

		remaining := record.MaxRetries - record.RetryCount
		if remaining <= 0 {
			return false, fmt.Errorf("invalid code; maximum attempts exceeded")
		}
		return false, fmt.Errorf("invalid code; %d attempts remaining", remaining)
	}

	record.IsUsed = true
	if err := s.DB.Save(record).Error; err != nil {
		return false, fmt.Errorf("failed to mark code as used: %w", err)
	}

	return true, nil
}

// CleanupExpired removes codes past their expiry.
func (s *Service) CleanupExpired() error {
	return s.DB.Where("expires_at < ?", time.Now()).Delete(&verification.Code{}).Error
}

func (s *Service) latest(email string, purpose verification.Purpose) (*verification.Code, error) {
	var record verification.Code
	err := s.DB.Where("email = ? AND purpose = ? AND is_used = false", email, purpose).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
