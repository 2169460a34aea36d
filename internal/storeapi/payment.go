package storeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/labstack/echo/v4"
	"github.com/volubiks/storefront/internal/checkout"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
	"github.com/volubiks/storefront/internal/webserver"
	"github.com/volubiks/storefront/pkg/common"
	"go.uber.org/zap"
)

func registerPaymentRoutes() {
	webserver.ApiGET("/shipping", getShipping)
	webserver.ApiPUT("/shipping", putShipping)
	webserver.ApiPOST("/payment/pay", payOrder)
	webserver.ApiPOST("/create-checkout-session", createCheckoutSession)
	webserver.ApiPOST("/paystack/initialize", paystackInitialize)
	webserver.ApiPOST("/opay/initialize", opayInitialize)
}

// validateShipping returns per-field error messages; an empty map means the
// form passes.
func validateShipping(s domain.ShippingProfile) map[string]string {
	e := map[string]string{}
	if strings.TrimSpace(s.FullName) == "" {
		e["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(s.Address) == "" {
		e["address"] = "Address is required"
	}
	if strings.TrimSpace(s.City) == "" {
		e["city"] = "City is required"
	}
	if strings.TrimSpace(s.Postal) == "" {
		e["postal"] = "Postal code is required"
	}
	if strings.TrimSpace(s.Country) == "" {
		e["country"] = "Country is required"
	}
	if strings.TrimSpace(s.Email) == "" || !strings.Contains(s.Email, "@") {
		e["email"] = "Valid email required"
	}
	return e
}

func getShipping(c echo.Context) error {
	var profile domain.ShippingProfile
	GetApp(c).KV().GetJSON(localstore.KeyShipping, &profile)
	return ok(c, profile)
}

func putShipping(c echo.Context) error {
	var profile domain.ShippingProfile
	if err := c.Bind(&profile); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse shipping profile", err.Error())
	}
	if errs := validateShipping(profile); len(errs) > 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Shipping details incomplete", errs)
	}
	GetApp(c).KV().PutJSON(localstore.KeyShipping, profile)
	return ok(c, profile)
}

type payPayload struct {
	Shipping     domain.ShippingProfile `json:"shipping"`
	SaveShipping bool                   `json:"saveShipping"`
}

// payOrder runs the simulated payment: validate the shipping form, settle
// after a fixed delay, then clear the cart and broadcast. No real charge is
// attempted anywhere.
func payOrder(c echo.Context) error {
	var payload payPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payment request", err.Error())
	}
	if errs := validateShipping(payload.Shipping); len(errs) > 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Shipping details incomplete", errs)
	}

	a := GetApp(c)
	if payload.SaveShipping {
		a.KV().PutJSON(localstore.KeyShipping, payload.Shipping)
	}

	entries := a.Cart().Load()
	_, summary := checkout.Summarize(entries, a.CheckoutCatalog())

	delay := time.Duration(a.Config().Payment.SimulateDelayMs) * time.Millisecond
	if delay > 0 {
		time.Sleep(delay)
	}

	a.Cart().Clear()
	reference := common.OrderReference()
	zap.L().Info("simulated payment settled",
		zap.String("reference", reference),
		zap.Float64("total", summary.Total))

	return ok(c, map[string]interface{}{
		"paid":      true,
		"reference": reference,
		"summary":   summary,
	})
}

// currentSummary recomputes the order summary server-side from the cart.
func currentSummary(c echo.Context) domain.OrderSummary {
	a := GetApp(c)
	_, summary := checkout.Summarize(a.Cart().Load(), a.CheckoutCatalog())
	return summary
}

func paymentConfig(c echo.Context) domain.PaymentConfig {
	var cfg domain.PaymentConfig
	GetApp(c).KV().GetJSON(localstore.KeyPaymentConfig, &cfg)
	return cfg
}

// notice is the fail-soft response for missing or unreachable payment
// backends: a user-facing message, never an error status.
func notice(c echo.Context, message string) error {
	return ok(c, map[string]interface{}{
		"configured": false,
		"notice":     message,
	})
}

// forward posts the body to an upstream payment backend and relays its JSON
// response. Any transport failure or non-2xx degrades to a notice.
func forward(c echo.Context, url string, body interface{}, none string) error {
	if url == "" {
		return notice(c, none)
	}
	var resp map[string]interface{}
	var code int
	err := gout.POST(url).
		SetTimeout(5 * time.Second).
		SetJSON(body).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil || code >= 400 {
		zap.L().Warn("payment backend unreachable", zap.String("url", url), zap.Int("status", code), zap.Error(err))
		return notice(c, none)
	}
	return ok(c, resp)
}

func createCheckoutSession(c echo.Context) error {
	return forward(c,
		GetApp(c).Config().Payment.CheckoutSessionURL,
		gout.H{"summary": currentSummary(c)},
		"Stripe integration is not configured in this demo.")
}

func paystackInitialize(c echo.Context) error {
	cfg := paymentConfig(c)
	if cfg.PaystackWebhook == "" {
		return notice(c, "Paystack is not configured. Add your webhook in the payment configuration.")
	}
	return forward(c,
		GetApp(c).Config().Payment.PaystackURL,
		gout.H{"summary": currentSummary(c)},
		"No server-side Paystack integration detected.")
}

func opayInitialize(c echo.Context) error {
	cfg := paymentConfig(c)
	if cfg.OpayMerchant == "" {
		return notice(c, "Opay is not configured. Enter your Opay merchant ID in the payment configuration.")
	}
	return forward(c,
		GetApp(c).Config().Payment.OpayURL,
		gout.H{"summary": currentSummary(c), "merchant": cfg.OpayMerchant},
		"No server-side Opay integration detected.")
}
