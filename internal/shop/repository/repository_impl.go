// Package repository provides the gorm-backed implementation of the
// storefront data-access gateway.
package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/storefrontlabs/storefront/internal/shop/domain"
	"github.com/storefrontlabs/storefront/internal/shop/storage"
	"go.uber.org/zap"
)

type repo struct {
	sc  *storage.Context
	log *zap.Logger
}

// Provide wraps one storage context for one scope. The repository holds no
// entity state of its own; every read materializes fresh values.
func Provide(sc *storage.Context, log *zap.Logger) domain.Repository {
	return &repo{
		sc:  sc,
		log: log.Named("shop.repository"),
	}
}

func (r *repo) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	r.log.Debug("fetching all products")

	var products []domain.Product
	err := r.sc.DB().WithContext(ctx).
		Order("title ASC").
		Find(&products).Error
	if err != nil {
		classified := domain.ClassifyStorageErr("get all products", err)
		r.log.Error("failed to get all products", zap.Error(classified))
		return nil, classified
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (r *repo) GetAllProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.sc.DB().WithContext(ctx).
		Where("category = ?", category).
		Order("title ASC").
		Find(&products).Error
	if err != nil {
		classified := domain.ClassifyStorageErr("get products by category", err)
		r.log.Error("failed to get products by category",
			zap.String("category", category),
			zap.Error(classified),
		)
		return nil, classified
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (r *repo) GetAllOrders(ctx context.Context, includeItems bool) ([]domain.Order, error) {
	var orders []domain.Order

	stmt := r.sc.DB().WithContext(ctx).Order("created_at ASC")
	if includeItems {
		stmt = stmt.Preload("Items.Product")
	}
	if err := stmt.Find(&orders).Error; err != nil {
		classified := domain.ClassifyStorageErr("get all orders", err)
		r.log.Error("failed to get all orders",
			zap.Bool("include_items", includeItems),
			zap.Error(classified),
		)
		return nil, classified
	}

	if includeItems {
		for i := range orders {
			hydrateItems(&orders[i])
		}
	}
	return orders, nil
}

func (r *repo) GetOrderByID(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := r.sc.DB().WithContext(ctx).
		Preload("Items.Product").
		Where("id = ?", id).
		Limit(1).
		Find(&order).Error
	if err != nil {
		classified := domain.ClassifyStorageErr("get order by id", err)
		r.log.Error("failed to get order by id",
			zap.String("order_id", id.String()),
			zap.Error(classified),
		)
		return nil, classified
	}
	if order.ID == 0 {
		return nil, nil
	}

	hydrateItems(&order)
	return &order, nil
}

func (r *repo) AddEntity(e domain.Entity) {
	r.sc.Stage(e)
}

func (r *repo) SaveAll(ctx context.Context) (bool, error) {
	rows, err := r.sc.Commit(ctx)
	if err != nil {
		classified := domain.ClassifyStorageErr("save all", err)
		r.log.Error("failed to commit staged changes", zap.Error(classified))
		return false, classified
	}
	return rows > 0, nil
}

// hydrateItems normalizes a hydrated order so callers can tell "loaded, zero
// lines" apart from "not loaded".
func hydrateItems(o *domain.Order) {
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
}
