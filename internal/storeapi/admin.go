package storeapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cast"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
	"github.com/volubiks/storefront/internal/webserver"
	"github.com/volubiks/storefront/pkg/metrics"
)

func registerAdminRoutes() {
	webserver.ApiGET("/admin/payments-config", getPaymentsConfig)
	webserver.ApiPUT("/admin/payments-config", putPaymentsConfig)
	webserver.ApiDELETE("/admin/payments-config", deletePaymentsConfig)
	webserver.ApiGET("/admin/stats", getAdminStats)
	webserver.ApiGET("/metrics/:name", getMetricRange)
}

func getPaymentsConfig(c echo.Context) error {
	var cfg domain.PaymentConfig
	GetApp(c).KV().GetJSON(localstore.KeyPaymentConfig, &cfg)
	return ok(c, cfg)
}

func putPaymentsConfig(c echo.Context) error {
	var cfg domain.PaymentConfig
	if err := c.Bind(&cfg); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payment configuration", err.Error())
	}
	GetApp(c).KV().PutJSON(localstore.KeyPaymentConfig, cfg)
	return ok(c, cfg)
}

func deletePaymentsConfig(c echo.Context) error {
	GetApp(c).KV().Delete(localstore.KeyPaymentConfig)
	return ok(c, map[string]interface{}{"deleted": true})
}

// getAdminStats summarizes the shop snapshot for the admin dashboard:
// price distribution plus per-category and featured counts.
func getAdminStats(c echo.Context) error {
	a := GetApp(c)
	products := a.ShopCatalog()

	prices := make([]float64, 0, len(products))
	byCategory := map[string]int{}
	featured := 0
	for _, p := range products {
		prices = append(prices, p.Price)
		cat := p.Category
		if cat == "" {
			cat = "other"
		}
		byCategory[cat]++
		if p.Featured {
			featured++
		}
	}

	price := map[string]float64{}
	if len(prices) > 0 {
		mean, _ := stats.Mean(prices)
		median, _ := stats.Median(prices)
		min, _ := stats.Min(prices)
		max, _ := stats.Max(prices)
		price["mean"] = mean
		price["median"] = median
		price["min"] = min
		price["max"] = max
	}

	return ok(c, map[string]interface{}{
		"products":   len(products),
		"byCategory": byCategory,
		"featured":   featured,
		"cartCount":  a.Cart().Count(),
		"price":      price,
	})
}

// getMetricRange reads one gauge over a lookback window (default 60 minutes).
func getMetricRange(c echo.Context) error {
	minutes := cast.ToInt(c.QueryParam("minutes"))
	if minutes <= 0 || minutes > 24*60 {
		minutes = 60
	}
	end := time.Now().Unix()
	start := end - int64(minutes)*60
	points := metrics.Range(c.Param("name"), start, end)
	return ok(c, map[string]interface{}{
		"name":   c.Param("name"),
		"start":  start,
		"end":    end,
		"points": points,
	})
}
