// Package observability wires the process logger and metrics endpoint.
package observability

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/storefrontlabs/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
	fx.Invoke(RunMetricsListener),
)

// NewLogger builds the process logger. Development mode keeps console
// encoding for readability.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// RunMetricsListener exposes the default prometheus registry (runtime
// collectors plus the gorm plugin's DB stats) on /metrics when an address is
// configured. No address means no listener at all.
func RunMetricsListener(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) {
	addr := cfg.Observability.MetricsAddr
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics listener stopped", zap.Error(err))
				}
			}()
			log.Info("metrics listener started", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
