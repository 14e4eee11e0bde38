// Package storage implements the unit-of-work context the repository is a
// facade over: a staged set of pending inserts and a single atomic commit.
package storage

import (
	"context"
	"sort"

	"github.com/storefrontlabs/storefront/internal/shop/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Context owns the store session and the in-flight change set for exactly one
// logical scope. It must not be shared across concurrent scopes; a Factory
// hands out one instance per scope.
//
// Associations are never written implicitly: an order's items must be staged
// individually, and Commit inserts parents before their children.
type Context struct {
	db     *gorm.DB
	staged []domain.Entity
	seen   map[domain.Entity]struct{}
}

// NewContext wraps an open gorm handle. Prefer Factory.NewContext outside of
// tests.
func NewContext(db *gorm.DB) *Context {
	return &Context{
		db:   db,
		seen: make(map[domain.Entity]struct{}),
	}
}

// DB exposes the underlying handle for read queries within this scope.
func (c *Context) DB() *gorm.DB { return c.db }

// Stage records an entity as pending insertion. Staging the same instance
// twice is a no-op.
func (c *Context) Stage(e domain.Entity) {
	if e == nil {
		return
	}
	if _, dup := c.seen[e]; dup {
		return
	}
	c.seen[e] = struct{}{}
	c.staged = append(c.staged, e)
}

// StagedCount returns the number of distinct entities pending commit.
func (c *Context) StagedCount() int { return len(c.staged) }

// Commit flushes the staged set as one transaction and returns the number of
// rows written. On success the staged set is cleared; on failure it is left
// intact so the owning scope can inspect, retry, or discard.
func (c *Context) Commit(ctx context.Context) (int64, error) {
	if len(c.staged) == 0 {
		return 0, nil
	}

	// Stable sort by kind rank keeps parents ahead of rows that reference
	// them while preserving staging order within a kind.
	batch := make([]domain.Entity, len(c.staged))
	copy(batch, c.staged)
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].EntityKind() < batch[j].EntityKind()
	})

	var rows int64
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range batch {
			res := tx.Omit(clause.Associations).Create(e)
			if res.Error != nil {
				return res.Error
			}
			rows += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.Discard()
	return rows, nil
}

// Discard drops all staged changes without touching the store. Scopes that
// end without a commit call this on every exit path.
func (c *Context) Discard() {
	c.staged = nil
	c.seen = make(map[domain.Entity]struct{})
}
