package promo

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
)

// Popup is the rate-limited promotional suggestion. It avoids repeated
// interruptions by recording a seen-timestamp (epoch millis, stored as a
// plain string) and honoring a cooldown window.
type Popup struct {
	kv       *localstore.Store
	cooldown time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewPopup(kv *localstore.Store, cooldownHours int, seed int64) *Popup {
	if cooldownHours <= 0 {
		cooldownHours = 24
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Popup{
		kv:       kv,
		cooldown: time.Duration(cooldownHours) * time.Hour,
		rnd:      rand.New(rand.NewSource(seed)),
		now:      time.Now,
	}
}

// Pick returns a representative product and true when the popup should show.
// It prefers featured products and falls back to the whole catalog. Showing
// records the seen-timestamp, starting the cooldown.
func (p *Popup) Pick(products []domain.Product) (*domain.Product, bool) {
	seenMillis, _ := strconv.ParseInt(p.kv.GetString(localstore.KeyPromoSeen), 10, 64)
	if seenMillis > 0 {
		age := p.now().Sub(time.UnixMilli(seenMillis))
		if age < p.cooldown {
			return nil, false
		}
	}
	if len(products) == 0 {
		return nil, false
	}

	pool := make([]domain.Product, 0, len(products))
	for _, prod := range products {
		if prod.Featured {
			pool = append(pool, prod)
		}
	}
	if len(pool) == 0 {
		pool = products
	}

	p.mu.Lock()
	pick := pool[p.rnd.Intn(len(pool))]
	p.mu.Unlock()

	p.kv.PutString(localstore.KeyPromoSeen, strconv.FormatInt(p.now().UnixMilli(), 10))
	return &pick, true
}
