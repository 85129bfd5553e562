package mail

import (
	"errors"

	"gopkg.in/gomail.v2"

	"github.com/spec-kit/lead-service/internal/config"
)

// ErrNotConfigured is returned when SMTP settings are absent; callers treat
// it as a skip, not a failure.
var ErrNotConfigured = errors.New("smtp not configured")

// Mailer sends plain-text mail through the configured SMTP relay.
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer builds a mailer from SMTP settings.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.Host == "" {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
