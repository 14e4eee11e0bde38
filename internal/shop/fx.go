package shop

import (
	"github.com/storefrontlabs/storefront/internal/shop/seed"
	"github.com/storefrontlabs/storefront/internal/shop/storage"
	"go.uber.org/fx"
)

var Module = fx.Module("shop",
	fx.Provide(storage.NewFactory),
	fx.Provide(seed.New),
)
