package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"github.com/volubiks/storefront/config"
	"github.com/volubiks/storefront/internal/cartstore"
	"github.com/volubiks/storefront/internal/catalog"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
	"github.com/volubiks/storefront/internal/promo"
	"github.com/volubiks/storefront/pkg/common"
	"github.com/volubiks/storefront/pkg/currency"
	"github.com/volubiks/storefront/pkg/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	kv        *localstore.Store
	cart      *cartstore.Store
	bus       EventBus.Bus
	sched     *cron.Cron
	pool      *ants.Pool

	shopPoller     *catalog.Poller
	checkoutPoller *catalog.Poller

	suggester *promo.Suggester
	popup     *promo.Popup
	engine    *promo.Engine
	featured  *promo.FeaturedPicker
	converter *currency.Converter
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ PromoProvider     = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ CurrencyProvider  = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig     { return a.appConfig }
func (a *Application) KV() *localstore.Store         { return a.kv }
func (a *Application) Cart() *cartstore.Store        { return a.cart }
func (a *Application) Bus() EventBus.Bus             { return a.bus }
func (a *Application) Scheduler() *cron.Cron         { return a.sched }
func (a *Application) Suggester() *promo.Suggester   { return a.suggester }
func (a *Application) Popup() *promo.Popup           { return a.popup }
func (a *Application) Engine() *promo.Engine         { return a.engine }
func (a *Application) Featured() *promo.FeaturedPicker { return a.featured }
func (a *Application) Currency() *currency.Converter { return a.converter }

func (a *Application) ShopCatalog() []domain.Product     { return a.shopPoller.Snapshot() }
func (a *Application) CheckoutCatalog() []domain.Product { return a.checkoutPoller.Snapshot() }

// RefreshCatalogs forces one synchronous fetch on both feeds.
func (a *Application) RefreshCatalogs() {
	a.shopPoller.Refresh()
	a.checkoutPoller.Refresh()
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	a.kv, err = localstore.Open(filepath.Join(cfg.System.Workdir, "localstore.db"))
	if err != nil {
		panic(err)
	}
	zap.S().Infof("Local store opened at %s", filepath.Join(cfg.System.Workdir, "localstore.db"))

	a.bus = EventBus.New()
	a.cart = cartstore.New(a.kv, a.bus)

	a.pool, err = ants.NewPool(8)
	if err != nil {
		panic(err)
	}

	a.checkDataFiles()
	a.checkPaymentConfig()

	interval := time.Duration(cfg.Catalog.Interval) * time.Second
	a.shopPoller = catalog.NewPoller("shop", &catalog.JSONSource{URL: a.catalogJsonURL()}, interval, a.pool)
	a.checkoutPoller = catalog.NewPoller("checkout", a.checkoutSource(), interval, a.pool)
	a.shopPoller.Start()
	a.checkoutPoller.Start()

	a.suggester = promo.NewSuggester(cfg.Promo.Seed, cfg.Promo.SampleSize)
	a.popup = promo.NewPopup(a.kv, cfg.Promo.CooldownHours, cfg.Promo.Seed)
	a.engine = promo.NewEngine(nil)
	a.featured = promo.NewFeaturedPicker(cfg.Promo.Seed, 4)
	a.converter = currency.NewConverter(currency.DefaultBase)

	a.initJob()
}

// catalogJsonURL resolves the shop feed location: the configured URL, or the
// self-served file under the data dir.
func (a *Application) catalogJsonURL() string {
	if a.appConfig.Catalog.JsonURL != "" {
		return a.appConfig.Catalog.JsonURL
	}
	return filepath.Join(a.appConfig.GetDataDir(), "products.json")
}

// checkoutSource picks the checkout feed: the configured spreadsheet URL, a
// local products.xlsx under the data dir, or the JSON feed when no
// spreadsheet is shipped so the checkout screen still refreshes prices.
func (a *Application) checkoutSource() catalog.Source {
	if a.appConfig.Catalog.XlsxURL != "" {
		return &catalog.XLSXSource{URL: a.appConfig.Catalog.XlsxURL}
	}
	path := filepath.Join(a.appConfig.GetDataDir(), "products.xlsx")
	if common.FileExists(path) {
		return &catalog.XLSXSource{URL: path}
	}
	return &catalog.JSONSource{URL: a.catalogJsonURL()}
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.shopPoller != nil {
		a.shopPoller.Stop()
	}
	if a.checkoutPoller != nil {
		a.checkoutPoller.Stop()
	}
	if a.pool != nil {
		a.pool.Release()
	}
	if a.kv != nil {
		_ = a.kv.Close()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
