// Package email provides outbound email delivery adapters
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tasteai/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// SMTPSender delivers mail through a plain SMTP relay
type SMTPSender struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger *zap.Logger
}

// NewSMTPSender creates an SMTP-backed email sender. Auth is skipped when no
// username is configured, which covers local relays like mailhog.
func NewSMTPSender(host string, port int, username, password, from string, logger *zap.Logger) outbound.EmailSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr:   fmt.Sprintf("%s:%d", host, port),
		auth:   auth,
		from:   from,
		logger: logger,
	}
}

// Send delivers a single plain-text message
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
