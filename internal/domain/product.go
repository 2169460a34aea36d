package domain

// Product is one catalog entity. Products are re-created wholesale on every
// catalog poll; nothing besides the id carries identity across snapshots.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Price       float64  `json:"price"` // denominated in Currency, NGN by default
	Currency    string   `json:"currency"`
	Image       string   `json:"image"`  // primary/cover image
	Images      []string `json:"images"` // ordered, first is the cover
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Featured    bool     `json:"featured"`
	Inventory   int      `json:"inventory"` // advisory only, never decremented
	Tags        []string `json:"tags"`
}

// CartRef is the minimal product shape captured into the cart at add time.
func (p Product) CartRef() CartEntry {
	return CartEntry{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
	}
}
