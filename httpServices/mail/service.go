package mail

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Sender delivers transactional mail. Implemented over plain SMTP; swapped
// for a stub in tests.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPService sends mail through the SMTP provider configured in env.
type SMTPService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// NewSMTPService builds a sender from SMTP_* environment variables.
func NewSMTPService() *SMTPService {
	return &SMTPService{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// Send delivers one message. Failure is reported to the caller, which gates
// the HTTP response on it.
func (s *SMTPService) Send(to, subject, body string) error {
	if s.Host == "" {
		return fmt.Errorf("SMTP_HOST is not configured")
	}

	from := s.From
	if from == "" {
		from = s.Username
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := s.Host + ":" + s.Port

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

// VerificationBody renders the email-verification message for a code.
func VerificationBody(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
}

// ResetBody renders the password-reset message for a code.
func ResetBody(code string) string {
	return fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.", code)
}
