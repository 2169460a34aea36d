package storeapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
)

func TestPaymentsConfigLifecycle(t *testing.T) {
	a := newTestApp(t)

	// starts empty
	_, out := doJSON(t, http.MethodGet, "/api/admin/payments-config", "")
	assert.Equal(t, "", dataOf(t, out)["opayMerchant"])

	rec, _ := doJSON(t, http.MethodPut, "/api/admin/payments-config",
		`{"paystackWebhook":"https://hooks.example.com/ps","opayMerchant":"9047393086","whatsapp":"+2348095551234"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var saved domain.PaymentConfig
	require.True(t, a.kv.GetJSON(localstore.KeyPaymentConfig, &saved))
	assert.Equal(t, "9047393086", saved.OpayMerchant)

	doJSON(t, http.MethodDelete, "/api/admin/payments-config", "")
	assert.False(t, a.kv.GetJSON(localstore.KeyPaymentConfig, &saved))
}

func TestAdminStats(t *testing.T) {
	newTestApp(t)
	doJSON(t, http.MethodPost, "/api/cart", `{"id":"1"}`)

	_, out := doJSON(t, http.MethodGet, "/api/admin/stats", "")
	data := dataOf(t, out)

	assert.Equal(t, float64(4), data["products"])
	assert.Equal(t, float64(2), data["featured"])
	assert.Equal(t, float64(1), data["cartCount"])

	byCategory := data["byCategory"].(map[string]interface{})
	assert.Equal(t, float64(2), byCategory["jewelries"])

	price := data["price"].(map[string]interface{})
	assert.Equal(t, 1650.0, price["mean"])
	assert.Equal(t, 300.0, price["min"])
	assert.Equal(t, 4000.0, price["max"])
}

func TestMetricRangeUnknownGauge(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodGet, "/api/metrics/system_cpuuse?minutes=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := dataOf(t, out)
	assert.Equal(t, "system_cpuuse", data["name"])
}
