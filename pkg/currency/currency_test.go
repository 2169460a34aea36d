package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatKnownSymbols(t *testing.T) {
	assert.Equal(t, "₦12,500", Format(12500, "NGN"))
	assert.Equal(t, "$1,000", Format(999.5, "usd"))
	assert.Equal(t, "€0", Format(0, "EUR"))
}

func TestFormatUnknownCode(t *testing.T) {
	assert.Equal(t, "KES 250", Format(250, "KES"))
}

func TestFormatEmptyCodeDefaultsToBase(t *testing.T) {
	assert.Equal(t, "₦1,500", Format(1500, ""))
	assert.Equal(t, "₦1,500", Format(1500, "  "))
}

func TestConvertSameCurrency(t *testing.T) {
	c := NewConverter("NGN")
	assert.Equal(t, 1500.0, c.Convert(context.Background(), 1500, "NGN"))
	assert.Equal(t, 1500.0, c.Convert(context.Background(), 1500, ""))
}

func TestConvertWithRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates": {"USD": 0.00065}}`))
	}))
	defer srv.Close()

	c := &Converter{base: "NGN", ratesURL: srv.URL + "/", ttl: time.Hour}
	got := c.Convert(context.Background(), 10000, "USD")
	assert.InDelta(t, 6.5, got, 1e-9)

	// unknown target falls back to the original price
	assert.Equal(t, 10000.0, c.Convert(context.Background(), 10000, "JPY"))
}

func TestConvertBackendDownFallsBack(t *testing.T) {
	c := &Converter{base: "NGN", ratesURL: "http://127.0.0.1:1/", ttl: time.Hour}
	assert.Equal(t, 1500.0, c.Convert(context.Background(), 1500, "USD"))
}
