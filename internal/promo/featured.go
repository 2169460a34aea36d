package promo

import (
	"math/rand"
	"sync"
	"time"

	"github.com/volubiks/storefront/internal/domain"
)

// FeaturedPicker builds the landing screen's featured shelves: per category,
// the featured products shuffled and capped. Seeded for reproducibility.
type FeaturedPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
	max int
}

func NewFeaturedPicker(seed int64, max int) *FeaturedPicker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if max <= 0 {
		max = 4
	}
	return &FeaturedPicker{rnd: rand.New(rand.NewSource(seed)), max: max}
}

// Shelves returns up to max shuffled featured products for each category.
// Categories with no featured products map to empty slices.
func (f *FeaturedPicker) Shelves(products []domain.Product, categories []string) map[string][]domain.Product {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	out := make(map[string][]domain.Product, len(categories))

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cat := range categories {
		picks := make([]domain.Product, 0)
		for _, p := range products {
			if p.Category == cat && p.Featured {
				picks = append(picks, p)
			}
		}
		f.rnd.Shuffle(len(picks), func(i, j int) {
			picks[i], picks[j] = picks[j], picks[i]
		})
		if len(picks) > f.max {
			picks = picks[:f.max]
		}
		out[cat] = picks
	}
	return out
}
