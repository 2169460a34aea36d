package storeapi

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/volubiks/storefront/internal/promo"
	"github.com/volubiks/storefront/internal/webserver"
	"github.com/volubiks/storefront/pkg/currency"
)

func registerPromoRoutes() {
	webserver.ApiGET("/promo/suggestions", getSuggestions)
	webserver.ApiGET("/promo/popup", getPopup)
	webserver.ApiGET("/promo/message", getPromoMessage)
}

// getSuggestions serves the "you may like" rail, scored from the visitor's
// last-view and cart signals.
func getSuggestions(c echo.Context) error {
	a := GetApp(c)
	prefs := promo.ReadPrefs(a.KV(), a.Cart().Load())
	return ok(c, a.Suggester().Suggest(a.ShopCatalog(), prefs))
}

// getPopup serves the rate-limited promotional popup. When it should show,
// the payload carries a prefilled WhatsApp enquiry link built from the
// configured store number.
func getPopup(c echo.Context) error {
	a := GetApp(c)
	product, show := a.Popup().Pick(a.ShopCatalog())
	if !show {
		return ok(c, map[string]interface{}{"show": false})
	}

	data := map[string]interface{}{
		"show":    true,
		"product": product,
	}
	cfg := paymentConfig(c)
	if cfg.Whatsapp != "" {
		msg := "Hello, I am interested in " + product.Name +
			" (" + currency.Format(product.Price, product.Currency) + ")"
		data["whatsapp"] = "https://wa.me/" + waNumber(cfg.Whatsapp) +
			"?text=" + url.QueryEscape(msg)
	}
	return ok(c, data)
}

// waNumber keeps only digits and a leading plus, the subset wa.me accepts.
func waNumber(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// getPromoMessage serves the rotating headline banner.
func getPromoMessage(c echo.Context) error {
	return ok(c, map[string]interface{}{"message": GetApp(c).Engine().Current()})
}
