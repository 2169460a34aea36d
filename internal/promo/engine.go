package promo

import (
	"strings"
	"sync"

	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/pkg/currency"
)

// DefaultCategories are the storefront's merchandising sections.
var DefaultCategories = []string{"jewelries", "clothings", "drinks"}

// Engine rotates short promotional headlines, one per category, built from
// the current catalog snapshot. Headless: consumers read Current and a cron
// job calls Advance on a fixed interval.
type Engine struct {
	mu         sync.Mutex
	categories []string
	messages   []string
	idx        int
}

func NewEngine(categories []string) *Engine {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	e := &Engine{categories: categories}
	e.Rebuild(nil)
	return e
}

// Rebuild recomputes the message list: the first catalog product of each
// category with its formatted price, or the capitalized category name when
// the category has no products yet.
func (e *Engine) Rebuild(products []domain.Product) {
	msgs := make([]string, 0, len(e.categories))
	for _, cat := range e.categories {
		msg := capitalize(cat)
		for _, p := range products {
			if p.Category != cat {
				continue
			}
			msg = p.Name
			if p.Price > 0 {
				msg += " - " + currency.Format(p.Price, p.Currency)
			}
			break
		}
		msgs = append(msgs, msg)
	}

	e.mu.Lock()
	e.messages = msgs
	if e.idx >= len(msgs) {
		e.idx = 0
	}
	e.mu.Unlock()
}

// Advance moves to the next message, wrapping around.
func (e *Engine) Advance() {
	e.mu.Lock()
	if len(e.messages) > 0 {
		e.idx = (e.idx + 1) % len(e.messages)
	}
	e.mu.Unlock()
}

// Current returns the active headline.
func (e *Engine) Current() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.messages) == 0 {
		return ""
	}
	return e.messages[e.idx]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
