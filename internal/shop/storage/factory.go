package storage

import (
	"gorm.io/gorm"
)

// Factory mints one Context per logical scope. The shared gorm handle is
// pooled and safe to hand to many contexts; the staged change set is what
// must stay scope-local.
type Factory struct {
	db *gorm.DB
}

func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// NewContext returns a fresh Context for one scope.
func (f *Factory) NewContext() *Context {
	return NewContext(f.db)
}

// WithScope runs fn with a dedicated Context and guarantees uncommitted
// changes are discarded on every exit path, including failure.
func (f *Factory) WithScope(fn func(*Context) error) error {
	sc := f.NewContext()
	defer sc.Discard()
	return fn(sc)
}
