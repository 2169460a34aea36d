package promo

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
)

// Prefs are weak preference signals read from the local store: the category
// of the last-viewed product and category counts over the cart.
type Prefs struct {
	ByCategory map[string]int
}

// ReadPrefs derives preferences from the last-view signal (+3) and the cart
// contents (+1 per entry). Failures degrade to empty preferences.
func ReadPrefs(kv *localstore.Store, cart []domain.CartEntry) Prefs {
	prefs := Prefs{ByCategory: map[string]int{}}
	var lastView domain.LastView
	if kv != nil && kv.GetJSON(localstore.KeyLastView, &lastView) && lastView.Category != "" {
		prefs.ByCategory[lastView.Category] += 3
	}
	for _, e := range cart {
		if e.Category != "" {
			prefs.ByCategory[e.Category]++
		}
	}
	return prefs
}

// Suggester selects a fixed-size sample of products: deterministic scoring
// (featured weight + preference weight, ties broken by catalog order), then
// random back-fill with unique items when scoring yields too few candidates.
// The random source is seeded explicitly so the back-fill is reproducible.
type Suggester struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	sample int
}

func NewSuggester(seed int64, sample int) *Suggester {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if sample <= 0 {
		sample = 3
	}
	return &Suggester{rnd: rand.New(rand.NewSource(seed)), sample: sample}
}

func score(p domain.Product, prefs Prefs) int {
	cat := p.Category
	if cat == "" {
		cat = "other"
	}
	base := 1
	if p.Featured {
		base = 2
	}
	return base + prefs.ByCategory[cat]
}

// Suggest returns up to the sample size of products, highest score first.
func (s *Suggester) Suggest(products []domain.Product, prefs Prefs) []domain.Product {
	if len(products) == 0 {
		return []domain.Product{}
	}

	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return score(sorted[i], prefs) > score(sorted[j], prefs)
	})

	out := make([]domain.Product, 0, s.sample)
	for _, p := range sorted {
		if len(out) >= s.sample {
			break
		}
		out = append(out, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool, len(out))
	for _, p := range out {
		seen[p.ID] = true
	}
	for attempts := 0; len(out) < s.sample && attempts < 20; attempts++ {
		cand := products[s.rnd.Intn(len(products))]
		if !seen[cand.ID] {
			seen[cand.ID] = true
			out = append(out, cand)
		}
	}
	return out
}
