package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"github.com/storefrontlabs/storefront/internal/clock"
	"github.com/storefrontlabs/storefront/internal/config"
	"github.com/storefrontlabs/storefront/internal/migration"
	"github.com/storefrontlabs/storefront/internal/notify"
	"github.com/storefrontlabs/storefront/internal/observability"
	"github.com/storefrontlabs/storefront/internal/shop"
	"github.com/storefrontlabs/storefront/internal/shop/seed"
	"github.com/storefrontlabs/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront CLI",
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed baseline storefront data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then seed baseline data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			return runSeed()
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runSeed() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		notify.Module,
		shop.Module,
		fx.Invoke(runSeeder),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

// runSeeder performs the startup bootstrap. A failed seed aborts startup.
func runSeeder(seeder *seed.Seeder, cfg config.Config, log *zap.Logger) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Seed.Timeout)
	defer cancel()

	if err := seeder.Seed(ctx); err != nil {
		return err
	}
	log.Info("seed finished", zap.String("state", string(seeder.State())))
	return nil
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
