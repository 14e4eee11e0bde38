package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the sole gateway between domain logic and storage. One
// Repository wraps exactly one storage context and is valid for one logical
// scope (one request, one seeding pass). Reads materialize fresh values on
// every call; nothing is cached between calls.
type Repository interface {
	// GetAllProducts returns the full catalog.
	GetAllProducts(ctx context.Context) ([]Product, error)

	// GetAllProductsByCategory returns products whose category matches
	// exactly. No match yields an empty slice, not an error.
	GetAllProductsByCategory(ctx context.Context, category string) ([]Product, error)

	// GetAllOrders returns every order. When includeItems is true each order
	// carries its items and each item its product, fetched as one coherent
	// query; when false, Items is left nil.
	GetAllOrders(ctx context.Context, includeItems bool) ([]Order, error)

	// GetOrderByID returns the order with its items and their products, or
	// (nil, nil) when no such order exists.
	GetOrderByID(ctx context.Context, id snowflake.ID) (*Order, error)

	// AddEntity stages an entity for insertion. It never touches the store.
	AddEntity(e Entity)

	// SaveAll commits all staged changes atomically. It returns true iff at
	// least one change was persisted; false with a nil error means nothing
	// was staged.
	SaveAll(ctx context.Context) (bool, error)
}
