package domain

// CartEntry is one purchased unit. Quantity is represented by repeated
// entries sharing an id, never by a count field.
type CartEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

// LineItem is the derived, grouped view of the cart: one record per distinct
// product id, in the order each id was first seen.
type LineItem struct {
	Product CartEntry `json:"product"`
	Qty     int       `json:"qty"`
}

// OrderSummary holds the checkout totals. Subtotal stays unrounded; VAT and
// Total are rounded to 2 decimal places independently.
type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}
