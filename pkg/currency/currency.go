package currency

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/guonaihong/gout"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultBase is the storefront's pricing currency.
const DefaultBase = "NGN"

const defaultRatesURL = "https://api.exchangerate-api.com/v4/latest/"

var symbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

var printer = message.NewPrinter(language.English)

// Format renders a price for display with a currency symbol, grouped digits
// and no fraction digits, e.g. ₦12,500.
func Format(v float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultBase
	}
	sym, ok := symbols[code]
	if !ok {
		sym = code + " "
	}
	return sym + printer.Sprintf("%v", number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// Converter provides best-effort display conversion from the base currency.
// Conversion is advisory only: stored prices stay in the base currency, and
// any failure falls back to the unconverted price.
type Converter struct {
	base     string
	ratesURL string
	ttl      time.Duration

	mu      sync.RWMutex
	rates   map[string]float64
	fetched time.Time
}

func NewConverter(base string) *Converter {
	if base == "" {
		base = DefaultBase
	}
	return &Converter{
		base:     base,
		ratesURL: defaultRatesURL,
		ttl:      time.Hour,
	}
}

func (c *Converter) Base() string { return c.base }

func (c *Converter) rate(ctx context.Context, target string) (float64, bool) {
	c.mu.RLock()
	fresh := time.Since(c.fetched) < c.ttl && c.rates != nil
	r, ok := c.rates[target]
	c.mu.RUnlock()
	if fresh {
		return r, ok
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	var code int
	err := gout.GET(c.ratesURL + c.base).
		WithContext(ctx).
		BindJSON(&payload).
		Code(&code).
		Do()
	if err != nil || code >= 400 || len(payload.Rates) == 0 {
		zap.L().Debug("exchange rate fetch failed", zap.Int("status", code), zap.Error(err))
		return r, ok
	}

	c.mu.Lock()
	c.rates = payload.Rates
	c.fetched = time.Now()
	r, ok = c.rates[target]
	c.mu.Unlock()
	return r, ok
}

// Convert returns price expressed in target currency. When the rate is
// unavailable the original price is returned unchanged.
func (c *Converter) Convert(ctx context.Context, price float64, target string) float64 {
	target = strings.ToUpper(strings.TrimSpace(target))
	if target == "" || target == c.base {
		return price
	}
	rate, ok := c.rate(ctx, target)
	if !ok || rate <= 0 {
		zap.S().Debugf("exchange rate for %s not available", target)
		return price
	}
	return price * rate
}
