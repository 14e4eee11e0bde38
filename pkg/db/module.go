// Package db owns construction of the shared gorm handle.
package db

import (
	"context"

	"github.com/storefrontlabs/storefront/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

// New opens the postgres handle, attaches tracing and metrics plugins, and
// ties connection shutdown to the fx lifecycle.
func New(lc fx.Lifecycle, p Params) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(p.Cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Use(otelgorm.NewPlugin()); err != nil {
		return nil, err
	}
	if err := conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          "storefront",
		RefreshInterval: 15,
	})); err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(p.Cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(p.Cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(p.Cfg.Database.ConnMaxLifetime)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
			p.Log.Info("database connection established")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sqlDB.Close()
		},
	})

	return conn, nil
}
