// Package seed bootstraps baseline storefront data at process startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/storefrontlabs/storefront/internal/auth/password"
	"github.com/storefrontlabs/storefront/internal/clock"
	"github.com/storefrontlabs/storefront/internal/config"
	"github.com/storefrontlabs/storefront/internal/shop/domain"
	"github.com/storefrontlabs/storefront/internal/shop/repository"
	"github.com/storefrontlabs/storefront/internal/shop/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// State tracks the seeder through its lifecycle.
type State string

const (
	StateNotChecked       State = "not_checked"
	StateChecking         State = "checking"
	StateSeeded           State = "seeded"
	StateAlreadyPopulated State = "already_populated"
)

const defaultAdminDisplay = "Storefront Admin"

type Params struct {
	fx.In

	DB      *gorm.DB
	Factory *storage.Factory
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Cfg     config.Config
}

// Seeder performs the one-shot idempotent bootstrap. It is not safe for
// concurrent use within a process; concurrent processes are serialized by a
// store-level advisory lock.
type Seeder struct {
	db      *gorm.DB
	factory *storage.Factory
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	cfg     config.SeedConfig
	state   State
}

func New(p Params) *Seeder {
	return &Seeder{
		db:      p.DB,
		factory: p.Factory,
		log:     p.Log.Named("shop.seed"),
		genID:   p.GenID,
		clock:   p.Clock,
		cfg:     p.Cfg.Seed,
		state:   StateNotChecked,
	}
}

// State returns the seeder's current lifecycle state.
func (s *Seeder) State() State { return s.state }

// Seed checks whether baseline data exists and populates it when absent. Any
// storage failure is fatal to startup and propagated to the caller.
func (s *Seeder) Seed(ctx context.Context) error {
	s.state = StateChecking

	unlock, err := s.acquireSeedLock(ctx)
	if err != nil {
		s.state = StateNotChecked
		return err
	}
	defer func() {
		_ = unlock(context.Background())
	}()

	return s.factory.WithScope(func(sc *storage.Context) error {
		repo := repository.Provide(sc, s.log)

		products, err := repo.GetAllProducts(ctx)
		if err != nil {
			s.state = StateNotChecked
			return fmt.Errorf("seed check: %w", err)
		}
		if len(products) > 0 {
			s.state = StateAlreadyPopulated
			s.log.Info("baseline data already present, skipping seed",
				zap.Int("products", len(products)),
			)
			return nil
		}

		if err := s.stageBaseline(ctx, repo); err != nil {
			s.state = StateNotChecked
			return err
		}

		persisted, err := repo.SaveAll(ctx)
		if err != nil {
			s.state = StateNotChecked
			return fmt.Errorf("seed commit: %w", err)
		}
		if !persisted {
			s.state = StateNotChecked
			return errors.New("seed commit persisted no rows")
		}

		s.state = StateSeeded
		s.log.Info("baseline data seeded")
		return nil
	})
}

// stageBaseline stages the fixed baseline set: one admin user, three catalog
// products, and one order holding two of them at snapshot prices.
func (s *Seeder) stageBaseline(ctx context.Context, repo domain.Repository) error {
	now := s.clock.Now(ctx)

	hashed, err := password.Hash(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &domain.StoreUser{
		ID:           s.genID.Generate(),
		Email:        strings.ToLower(strings.TrimSpace(s.cfg.AdminEmail)),
		DisplayName:  defaultAdminDisplay,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	repo.AddEntity(admin)

	type productSeed struct {
		Title    string
		Category string
		Price    int64
	}
	seeds := []productSeed{
		{Title: "Girl with a Pearl Earring Print", Category: "prints", Price: 4500},
		{Title: "The Night Watch Print", Category: "prints", Price: 5250},
		{Title: "Tulip Field Poster", Category: "posters", Price: 2900},
	}

	products := make([]*domain.Product, 0, len(seeds))
	for _, ps := range seeds {
		p := &domain.Product{
			ID:        s.genID.Generate(),
			Title:     ps.Title,
			Slug:      slug.Make(ps.Title),
			Category:  ps.Category,
			Price:     ps.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		products = append(products, p)
		repo.AddEntity(p)
	}

	order := &domain.Order{
		ID:          s.genID.Generate(),
		OrderNumber: "SEED-0001",
		UserID:      admin.ID,
		CreatedAt:   now,
	}
	repo.AddEntity(order)

	for _, p := range products[:2] {
		repo.AddEntity(&domain.OrderItem{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  1,
			UnitPrice: p.Price,
			CreatedAt: now,
		})
	}

	return nil
}
