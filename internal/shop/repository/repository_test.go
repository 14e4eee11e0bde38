package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/storefrontlabs/storefront/internal/shop/domain"
	"github.com/storefrontlabs/storefront/internal/shop/repository"
	"github.com/storefrontlabs/storefront/internal/shop/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.StoreUser{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
	)
	require.NoError(t, err)

	return db
}

func newRepo(t *testing.T, db *gorm.DB) (domain.Repository, *storage.Context) {
	t.Helper()
	sc := storage.NewContext(db)
	return repository.Provide(sc, zap.NewNop()), sc
}

var idSeq int64

func nextID() snowflake.ID {
	idSeq++
	return snowflake.ID(idSeq)
}

func newProduct(title, category string, price int64) *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:        nextID(),
		Title:     title,
		Slug:      fmt.Sprintf("%s-%d", category, idSeq),
		Category:  category,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newUser(email string) *domain.StoreUser {
	now := time.Now().UTC()
	return &domain.StoreUser{
		ID:           nextID(),
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSaveAllWithNothingStaged(t *testing.T) {
	repo, _ := newRepo(t, newTestDB(t))

	persisted, err := repo.SaveAll(context.Background())
	require.NoError(t, err)
	assert.False(t, persisted)
}

func TestAddEntityThenSaveAllPersistsOnce(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, newTestDB(t))

	p := newProduct("Windmill Print", "prints", 3100)
	repo.AddEntity(p)

	persisted, err := repo.SaveAll(ctx)
	require.NoError(t, err)
	assert.True(t, persisted)

	products, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)
	assert.Equal(t, "Windmill Print", products[0].Title)

	// Nothing left staged after the commit.
	persisted, err = repo.SaveAll(ctx)
	require.NoError(t, err)
	assert.False(t, persisted)
}

func TestStagingSameInstanceTwiceInsertsOneRow(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, newTestDB(t))

	p := newProduct("Canal House Poster", "posters", 2400)
	repo.AddEntity(p)
	repo.AddEntity(p)

	persisted, err := repo.SaveAll(ctx)
	require.NoError(t, err)
	assert.True(t, persisted)

	products, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestGetAllProductsByCategory(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, newTestDB(t))

	repo.AddEntity(newProduct("Delft Vase Print", "prints", 3900))
	repo.AddEntity(newProduct("Harbor Sketch", "prints", 2800))
	repo.AddEntity(newProduct("Bicycle Poster", "posters", 1900))

	_, err := repo.SaveAll(ctx)
	require.NoError(t, err)

	prints, err := repo.GetAllProductsByCategory(ctx, "prints")
	require.NoError(t, err)
	assert.Len(t, prints, 2)
	for _, p := range prints {
		assert.Equal(t, "prints", p.Category)
	}

	none, err := repo.GetAllProductsByCategory(ctx, "nonexistent-category")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetAllOrdersHydrationDepth(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, newTestDB(t))

	user := newUser("buyer@example.com")
	p1 := newProduct("Skyline Print", "prints", 4100)
	p2 := newProduct("Lighthouse Poster", "posters", 2600)

	order := &domain.Order{
		ID:          nextID(),
		OrderNumber: "ORD-1001",
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
	}
	emptyOrder := &domain.Order{
		ID:          nextID(),
		OrderNumber: "ORD-1002",
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
	}

	repo.AddEntity(user)
	repo.AddEntity(p1)
	repo.AddEntity(p2)
	repo.AddEntity(order)
	repo.AddEntity(emptyOrder)
	repo.AddEntity(&domain.OrderItem{
		ID: nextID(), OrderID: order.ID, ProductID: p1.ID,
		Quantity: 2, UnitPrice: p1.Price, CreatedAt: time.Now().UTC(),
	})
	repo.AddEntity(&domain.OrderItem{
		ID: nextID(), OrderID: order.ID, ProductID: p2.ID,
		Quantity: 1, UnitPrice: p2.Price, CreatedAt: time.Now().UTC(),
	})

	_, err := repo.SaveAll(ctx)
	require.NoError(t, err)

	flat, err := repo.GetAllOrders(ctx, false)
	require.NoError(t, err)
	require.Len(t, flat, 2)
	for _, o := range flat {
		assert.False(t, o.ItemsLoaded(), "items must stay unloaded without hydration")
	}

	hydrated, err := repo.GetAllOrders(ctx, true)
	require.NoError(t, err)
	require.Len(t, hydrated, 2)
	for _, o := range hydrated {
		require.True(t, o.ItemsLoaded())
		switch o.ID {
		case order.ID:
			require.Len(t, o.Items, 2)
			for _, item := range o.Items {
				require.NotNil(t, item.Product, "hydrated item must carry its product")
				assert.Equal(t, item.ProductID, item.Product.ID)
			}
		case emptyOrder.ID:
			assert.Empty(t, o.Items)
		default:
			t.Fatalf("unexpected order %d", o.ID)
		}
	}
}

func TestGetOrderByID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, newTestDB(t))

	user := newUser("buyer@example.com")
	p := newProduct("Marketplace Print", "prints", 3500)
	order := &domain.Order{
		ID:          nextID(),
		OrderNumber: "ORD-2001",
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
	}

	repo.AddEntity(user)
	repo.AddEntity(p)
	repo.AddEntity(order)
	repo.AddEntity(&domain.OrderItem{
		ID: nextID(), OrderID: order.ID, ProductID: p.ID,
		Quantity: 3, UnitPrice: p.Price, CreatedAt: time.Now().UTC(),
	})

	_, err := repo.SaveAll(ctx)
	require.NoError(t, err)

	got, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, got.ItemsLoaded())
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, p.ID, got.Items[0].Product.ID)
	assert.Equal(t, p.Price, got.Items[0].UnitPrice)

	absent, err := repo.GetOrderByID(ctx, nextID())
	require.NoError(t, err)
	assert.Nil(t, absent, "missing order is an absent result, not an error")
}

func TestCanceledContextClassifiedAsTimeout(t *testing.T) {
	repo, _ := newRepo(t, newTestDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAllProducts(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsTimeout(err))
	assert.False(t, domain.IsStorageFailure(err))
}

func TestUnitPriceSnapshotSurvivesProductRepricing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, _ := newRepo(t, db)

	user := newUser("buyer@example.com")
	p := newProduct("Tulip Print", "prints", 4000)
	order := &domain.Order{
		ID:          nextID(),
		OrderNumber: "ORD-3001",
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
	}

	repo.AddEntity(user)
	repo.AddEntity(p)
	repo.AddEntity(order)
	repo.AddEntity(&domain.OrderItem{
		ID: nextID(), OrderID: order.ID, ProductID: p.ID,
		Quantity: 1, UnitPrice: p.Price, CreatedAt: time.Now().UTC(),
	})
	_, err := repo.SaveAll(ctx)
	require.NoError(t, err)

	// Reprice the product behind the repository's back.
	err = db.Model(&domain.Product{}).Where("id = ?", p.ID).Update("price", 9900).Error
	require.NoError(t, err)

	got, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(4000), got.Items[0].UnitPrice)
	assert.Equal(t, int64(9900), got.Items[0].Product.Price)
}
