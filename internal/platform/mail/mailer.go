// Package mail sends HTML mail over SMTP.
package mail

import (
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP settings.
type Config struct {
	Username string
	Password string
	From     string
	FromName string
	Server   string
	Port     int
	SSL      bool
}

// ErrNoRecipients is returned when Send is called without any address.
var ErrNoRecipients = errors.New("mail: no recipients")

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends messages from a fixed sender address.
type Mailer struct {
	dialer   sender
	from     string
	fromName string
}

// NewMailer builds a Mailer backed by a gomail dialer.
func NewMailer(cfg Config) *Mailer {
	d := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	return &Mailer{dialer: d, from: cfg.From, fromName: cfg.FromName}
}

// Send delivers one HTML message to every address in to.
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return ErrNoRecipients
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail %q: %w", subject, err)
	}
	slog.Info("mail sent", "subject", subject, "recipients", len(to))
	return nil
}
