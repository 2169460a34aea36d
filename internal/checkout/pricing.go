package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/volubiks/storefront/internal/domain"
)

// VATRate is the fixed tax rate applied to the unrounded subtotal.
const VATRate = 0.10

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Price computes the order summary from aggregated line items. The subtotal
// is left unrounded; VAT and total are each rounded to 2 decimal places
// independently. Rounding the subtotal first would change totals, so the
// two-step rounding is kept as-is.
func Price(items []domain.LineItem) domain.OrderSummary {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Product.Price * float64(it.Qty)
	}
	vat := Round2(subtotal * VATRate)
	total := Round2(subtotal + vat)
	return domain.OrderSummary{Subtotal: subtotal, VAT: vat, Total: total}
}

// Summarize is the shared screen helper: aggregate then price in one call.
func Summarize(entries []domain.CartEntry, latest []domain.Product) ([]domain.LineItem, domain.OrderSummary) {
	items := Aggregate(entries, latest)
	return items, Price(items)
}
