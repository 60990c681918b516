// Package notify implements the delivery channels for reminder
// notifications: SMTP e-mail and an HTTP SMS gateway. Both degrade to an
// error when unconfigured so dispatch can log the failure and move on.
package notify

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/lib/smtp"
)

// ErrNotConfigured means the channel has no delivery settings.
var ErrNotConfigured = errors.New("channel not configured")

// EmailSender delivers plain-text e-mails over the SMTP transport.
type EmailSender struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewEmailSender creates a new EmailSender.
func NewEmailSender(transport smtp.TransportInterface, log *slog.Logger) *EmailSender {
	return &EmailSender{
		transport: transport,
		log:       log,
	}
}

// Send delivers one e-mail. Returns ErrNotConfigured when no SMTP host is
// set.
func (s *EmailSender) Send(to, subject, bodyText string) error {
	if !s.transport.IsConfigured() {
		return ErrNotConfigured
	}

	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}
	if err := client.Rcpt(to); err != nil {
		s.log.Error("failed to set RCPT TO", slog.String("recipient", to), sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent", slog.String("to", to))
	return nil
}
