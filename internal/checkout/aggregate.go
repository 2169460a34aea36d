package checkout

import (
	"github.com/volubiks/storefront/internal/domain"
)

// Aggregate groups the raw cart sequence into one line item per distinct
// product id, in the order each id was first seen. Qty is the count of
// entries sharing the id. When latest carries a product with a matching id,
// the line item's price is overwritten with the catalog's current price; a
// catalog miss leaves the add-time price untouched. Pure and deterministic.
func Aggregate(entries []domain.CartEntry, latest []domain.Product) []domain.LineItem {
	index := make(map[string]int, len(entries))
	items := make([]domain.LineItem, 0, len(entries))

	for _, e := range entries {
		if pos, ok := index[e.ID]; ok {
			items[pos].Qty++
			continue
		}
		index[e.ID] = len(items)
		items = append(items, domain.LineItem{Product: e, Qty: 1})
	}

	if len(latest) > 0 {
		prices := make(map[string]float64, len(latest))
		for _, p := range latest {
			if _, seen := prices[p.ID]; !seen {
				prices[p.ID] = p.Price
			}
		}
		for i := range items {
			if price, ok := prices[items[i].Product.ID]; ok {
				items[i].Product.Price = price
			}
		}
	}
	return items
}
