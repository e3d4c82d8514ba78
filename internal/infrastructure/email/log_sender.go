package email

import (
	"context"

	"github.com/tasteai/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// LogSender writes outbound mail to the application log instead of
// delivering it. Used in development when no SMTP host is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-only email sender
func NewLogSender(logger *zap.Logger) outbound.EmailSender {
	return &LogSender{logger: logger}
}

// Send logs the message and reports success
func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.Info("Email (log only)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
