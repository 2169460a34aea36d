package storeapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
	"github.com/volubiks/storefront/internal/promo"
	"github.com/volubiks/storefront/internal/webserver"
)

// filterSanitizer strips characters that have no business in a name filter.
var filterSanitizer = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:key", getProduct)
	webserver.ApiGET("/featured", listFeatured)
}

// listProducts serves the catalog listing screen from the shop snapshot:
// optional name filter, optional price sort, paginated.
func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	products := GetApp(c).ShopCatalog()

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		q = strings.ToLower(filterSanitizer.Replace(q))
		filtered := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), q) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	} else {
		products = append([]domain.Product(nil), products...)
	}

	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		filtered := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if p.Category == cat {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	switch c.QueryParam("sort") {
	case "price-asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price-desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	default:
		// "popular": catalog order
	}

	total := int64(len(products))
	start := (page - 1) * pageSize
	if start > len(products) {
		start = len(products)
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return paged(c, products[start:end], total, page, pageSize)
}

// getProduct serves the product detail screen, addressable by id or slug.
// Opening a detail records the last-view preference signal.
func getProduct(c echo.Context) error {
	key := c.Param("key")
	a := GetApp(c)
	for _, p := range a.ShopCatalog() {
		if p.ID == key || p.Slug == key {
			a.KV().PutJSON(localstore.KeyLastView, domain.LastView{
				ID:       p.ID,
				Category: p.Category,
				Name:     p.Name,
			})
			return ok(c, p)
		}
	}
	return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
}

// listFeatured serves the landing carousel shelves.
func listFeatured(c echo.Context) error {
	a := GetApp(c)
	categories := promo.DefaultCategories
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		categories = []string{cat}
	}
	return ok(c, a.Featured().Shelves(a.ShopCatalog(), categories))
}
