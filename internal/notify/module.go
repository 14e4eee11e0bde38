package notify

import (
	"github.com/storefrontlabs/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notify",
	fx.Provide(NewMailer),
)

// NewMailer picks the delivery adapter from configuration.
func NewMailer(cfg config.Config, log *zap.Logger) Mailer {
	if cfg.Notify.WebhookURL != "" {
		return NewWebhookMailer(cfg.Notify.WebhookURL)
	}
	return NewLogMailer(log)
}
