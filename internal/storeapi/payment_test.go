package storeapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
)

const validShipping = `{
	"fullName": "Ada Obi",
	"address": "12 Marina Rd",
	"city": "Lagos",
	"postal": "100001",
	"country": "Nigeria",
	"email": "ada@example.com"
}`

func TestPutShippingValid(t *testing.T) {
	a := newTestApp(t)

	rec, _ := doJSON(t, http.MethodPut, "/api/shipping", validShipping)
	assert.Equal(t, http.StatusOK, rec.Code)

	var saved domain.ShippingProfile
	require.True(t, a.kv.GetJSON(localstore.KeyShipping, &saved))
	assert.Equal(t, "Ada Obi", saved.FullName)
}

func TestPutShippingFieldErrors(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodPut, "/api/shipping", `{"fullName":"Ada","email":"no-at-sign"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	detail := out["detail"].(map[string]interface{})
	assert.Equal(t, "Address is required", detail["address"])
	assert.Equal(t, "City is required", detail["city"])
	assert.Equal(t, "Postal code is required", detail["postal"])
	assert.Equal(t, "Country is required", detail["country"])
	assert.Equal(t, "Valid email required", detail["email"])
	assert.NotContains(t, detail, "fullName")
}

func TestGetShippingEmpty(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodGet, "/api/shipping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", dataOf(t, out)["fullName"])
}

func TestPayClearsCartAndReturnsReference(t *testing.T) {
	a := newTestApp(t)
	doJSON(t, http.MethodPost, "/api/cart", `{"id":"1"}`)
	doJSON(t, http.MethodPost, "/api/cart", `{"id":"1"}`)

	body := `{"shipping": ` + validShipping + `, "saveShipping": true}`
	rec, out := doJSON(t, http.MethodPost, "/api/payment/pay", body)
	require.Equal(t, http.StatusOK, rec.Code)

	data := dataOf(t, out)
	assert.Equal(t, true, data["paid"])
	assert.True(t, strings.HasPrefix(data["reference"].(string), "VLB-"))

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, 3000.0, summary["subtotal"])
	assert.Equal(t, 300.0, summary["vat"])
	assert.Equal(t, 3300.0, summary["total"])

	assert.Equal(t, 0, a.cart.Count())

	var saved domain.ShippingProfile
	assert.True(t, a.kv.GetJSON(localstore.KeyShipping, &saved))
}

func TestPayRejectsInvalidShipping(t *testing.T) {
	a := newTestApp(t)
	doJSON(t, http.MethodPost, "/api/cart", `{"id":"1"}`)

	rec, _ := doJSON(t, http.MethodPost, "/api/payment/pay", `{"shipping":{"fullName":"Ada"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, a.cart.Count())
}

func TestCheckoutSessionUnconfigured(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodPost, "/api/create-checkout-session", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := dataOf(t, out)
	assert.Equal(t, false, data["configured"])
	assert.NotEmpty(t, data["notice"])
}

func TestPaystackInitializeWithoutWebhook(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodPost, "/api/paystack/initialize", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, dataOf(t, out)["configured"])
}

func TestOpayInitializeUnreachableBackend(t *testing.T) {
	a := newTestApp(t)
	a.kv.PutJSON(localstore.KeyPaymentConfig, domain.PaymentConfig{OpayMerchant: "9047393086"})
	a.cfg.Payment.OpayURL = "http://127.0.0.1:1/initialize"

	rec, out := doJSON(t, http.MethodPost, "/api/opay/initialize", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, dataOf(t, out)["configured"])
}
