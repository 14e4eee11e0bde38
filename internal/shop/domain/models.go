// Package domain contains the storefront entity model and the contracts the
// data-access core exposes to the rest of the application.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Product is a catalog entry. Prices are stored in minor currency units.
type Product struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	Title     string            `gorm:"type:text;not null"`
	Slug      string            `gorm:"type:text;not null;uniqueIndex"`
	Category  string            `gorm:"type:text;not null;index"`
	Price     int64             `gorm:"not null"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"not null"`
	UpdatedAt time.Time         `gorm:"not null"`
}

func (Product) TableName() string { return "products" }

// Order is a customer purchase. Items is nil until a hydrated read populates
// it; a hydrated order with no lines carries a non-nil empty slice.
type Order struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	OrderNumber string       `gorm:"type:text;not null;uniqueIndex"`
	UserID      snowflake.ID `gorm:"not null;index"`
	Items       []OrderItem  `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time    `gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

// ItemsLoaded reports whether a read populated Items. It distinguishes
// "not loaded" from "loaded, zero lines".
func (o Order) ItemsLoaded() bool { return o.Items != nil }

// OrderItem is a single order line. UnitPrice is the price snapshot captured
// when the order was placed and is never re-derived from the product.
type OrderItem struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	OrderID   snowflake.ID `gorm:"not null;index"`
	ProductID snowflake.ID `gorm:"not null;index"`
	Quantity  int          `gorm:"not null;check:quantity > 0"`
	UnitPrice int64        `gorm:"not null"`
	Product   *Product     `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time    `gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// StoreUser is an account that can own orders. PasswordHash is opaque to the
// data-access core.
type StoreUser struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	DisplayName  string       `gorm:"type:text"`
	PasswordHash string       `gorm:"type:text;not null"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}

func (StoreUser) TableName() string { return "store_users" }
