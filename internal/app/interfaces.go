package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/volubiks/storefront/config"
	"github.com/volubiks/storefront/internal/cartstore"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
	"github.com/volubiks/storefront/internal/promo"
	"github.com/volubiks/storefront/pkg/currency"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the shared persisted state: the local key/value
// file, the cart store on top of it, and the change-signal bus.
type StoreProvider interface {
	KV() *localstore.Store
	Cart() *cartstore.Store
	Bus() EventBus.Bus
}

// CatalogProvider exposes the per-consumer catalog snapshots. The shop
// screens read the JSON feed, the checkout screen reads the spreadsheet
// feed; the two are polled independently and may diverge momentarily.
type CatalogProvider interface {
	ShopCatalog() []domain.Product
	CheckoutCatalog() []domain.Product
	RefreshCatalogs()
}

// PromoProvider provides the marketing widgets.
type PromoProvider interface {
	Suggester() *promo.Suggester
	Popup() *promo.Popup
	Engine() *promo.Engine
	Featured() *promo.FeaturedPicker
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// CurrencyProvider provides the display-only currency converter.
type CurrencyProvider interface {
	Currency() *currency.Converter
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	ConfigProvider
	StoreProvider
	CatalogProvider
	PromoProvider
	SchedulerProvider
	CurrencyProvider
}
