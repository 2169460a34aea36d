package storeapi

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
	"github.com/volubiks/storefront/config"
	"github.com/volubiks/storefront/internal/cartstore"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
	"github.com/volubiks/storefront/internal/promo"
	"github.com/volubiks/storefront/internal/webserver"
	"github.com/volubiks/storefront/pkg/currency"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// testApp is a fixed-snapshot application context backed by a throwaway
// local store, enough to drive the handlers end to end.
type testApp struct {
	cfg       *config.AppConfig
	kv        *localstore.Store
	cart      *cartstore.Store
	bus       EventBus.Bus
	shop      []domain.Product
	checkout  []domain.Product
	suggester *promo.Suggester
	popup     *promo.Popup
	engine    *promo.Engine
	featured  *promo.FeaturedPicker
	converter *currency.Converter
}

func (a *testApp) Config() *config.AppConfig            { return a.cfg }
func (a *testApp) KV() *localstore.Store                { return a.kv }
func (a *testApp) Cart() *cartstore.Store               { return a.cart }
func (a *testApp) Bus() EventBus.Bus                    { return a.bus }
func (a *testApp) ShopCatalog() []domain.Product        { return a.shop }
func (a *testApp) CheckoutCatalog() []domain.Product    { return a.checkout }
func (a *testApp) RefreshCatalogs()                     {}
func (a *testApp) Suggester() *promo.Suggester          { return a.suggester }
func (a *testApp) Popup() *promo.Popup                  { return a.popup }
func (a *testApp) Engine() *promo.Engine                { return a.engine }
func (a *testApp) Featured() *promo.FeaturedPicker      { return a.featured }
func (a *testApp) Scheduler() *cron.Cron                { return cron.New() }
func (a *testApp) Currency() *currency.Converter        { return a.converter }

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Gold Ring", Slug: "gold-ring", Price: 1500, Currency: "NGN", Category: "jewelries", Featured: true},
		{ID: "2", Name: "Pearl Set", Slug: "pearl-set", Price: 800, Currency: "NGN", Category: "jewelries"},
		{ID: "3", Name: "Silk Gown", Slug: "silk-gown", Price: 4000, Currency: "NGN", Category: "clothings", Featured: true},
		{ID: "4", Name: "Palm Wine", Slug: "palm-wine", Price: 300, Currency: "NGN", Category: "drinks"},
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	kv, err := localstore.Open(filepath.Join(dir, "localstore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Workdir = dir
	cfg.Payment.SimulateDelayMs = 0

	bus := EventBus.New()
	a := &testApp{
		cfg:       cfg,
		kv:        kv,
		cart:      cartstore.New(kv, bus),
		bus:       bus,
		shop:      testCatalog(),
		checkout:  testCatalog(),
		suggester: promo.NewSuggester(42, 3),
		popup:     promo.NewPopup(kv, 24, 42),
		engine:    promo.NewEngine(nil),
		featured:  promo.NewFeaturedPicker(42, 4),
		converter: currency.NewConverter(currency.DefaultBase),
	}

	webserver.Init(a)
	InitRouter()
	return a
}

func doJSON(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	webserver.Echo().ServeHTTP(rec, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func dataOf(t *testing.T, out map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := out["data"].(map[string]interface{})
	require.True(t, ok, "response data is not an object: %v", out)
	return data
}
