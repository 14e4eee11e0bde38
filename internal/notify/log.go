package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer records messages to the process log instead of delivering them.
// It is the default when no webhook endpoint is configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.Named("notify")}
}

func (m *LogMailer) SendMessage(ctx context.Context, recipient, subject, body string) error {
	m.log.Info("outbound message",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}
