package storeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/volubiks/storefront/internal/checkout"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/webserver"
)

type cartAddPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart", addToCart)
	webserver.ApiPOST("/cart/decrement/:id", decrementCart)
	webserver.ApiDELETE("/cart", clearCart)
	webserver.ApiGET("/checkout", getCheckout)
}

// getCart returns the raw cart plus its aggregated view, priced against the
// shop snapshot.
func getCart(c echo.Context) error {
	a := GetApp(c)
	entries := a.Cart().Load()
	items, summary := checkout.Summarize(entries, a.ShopCatalog())
	return ok(c, map[string]interface{}{
		"entries": entries,
		"items":   items,
		"summary": summary,
		"count":   len(entries),
	})
}

// addToCart appends one unit. The entry captured is resolved in order from
// the cart itself (repeat increment), the shop catalog, then the payload, so
// a product missing from the catalog can still be added with its captured
// price.
func addToCart(c echo.Context) error {
	var payload cartAddPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart entry", err.Error())
	}
	payload.ID = strings.TrimSpace(payload.ID)
	if payload.ID == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product id is required", nil)
	}

	a := GetApp(c)
	store := a.Cart()
	entry, found := resolveEntry(a.Cart().Load(), a.ShopCatalog(), payload)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	store.Add(entry)
	return ok(c, map[string]interface{}{"count": store.Count()})
}

func resolveEntry(entries []domain.CartEntry, products []domain.Product, payload cartAddPayload) (domain.CartEntry, bool) {
	for _, e := range entries {
		if e.ID == payload.ID {
			return e, true
		}
	}
	for _, p := range products {
		if p.ID == payload.ID {
			return p.CartRef(), true
		}
	}
	if payload.Name != "" {
		return domain.CartEntry{
			ID:       payload.ID,
			Name:     payload.Name,
			Price:    payload.Price,
			Category: payload.Category,
		}, true
	}
	return domain.CartEntry{}, false
}

// decrementCart removes one unit; decrementing an absent product is a no-op.
func decrementCart(c echo.Context) error {
	store := GetApp(c).Cart()
	store.Decrement(c.Param("id"))
	return ok(c, map[string]interface{}{"count": store.Count()})
}

func clearCart(c echo.Context) error {
	store := GetApp(c).Cart()
	store.Clear()
	return ok(c, map[string]interface{}{"count": 0})
}

// getCheckout serves the checkout screen: aggregated items priced against
// the checkout feed, with the empty-cart affordance when nothing is there.
func getCheckout(c echo.Context) error {
	a := GetApp(c)
	entries := a.Cart().Load()
	if len(entries) == 0 {
		return ok(c, map[string]interface{}{
			"empty":   true,
			"items":   []domain.LineItem{},
			"summary": domain.OrderSummary{},
		})
	}
	items, summary := checkout.Summarize(entries, a.CheckoutCatalog())
	return ok(c, map[string]interface{}{
		"empty":   false,
		"items":   items,
		"summary": summary,
	})
}
