package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"github.com/volubiks/storefront/internal/domain"
)

// Poller refreshes one consumer's private catalog snapshot on a fixed
// interval. Consumers are independent on purpose: two pollers may observe
// different snapshots momentarily, and a tick never cancels an in-flight
// fetch, so replacement is last-resolved-wins rather than last-requested.
// A failed fetch keeps the previous snapshot and only logs.
type Poller struct {
	name     string
	source   Source
	interval time.Duration
	pool     *ants.Pool

	mu       sync.RWMutex
	snapshot []domain.Product
	stamp    time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

func NewPoller(name string, source Source, interval time.Duration, pool *ants.Pool) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{
		name:     name,
		source:   source,
		interval: interval,
		pool:     pool,
		stop:     make(chan struct{}),
	}
}

// Start launches the ticker loop and kicks off an immediate first fetch.
func (p *Poller) Start() {
	p.submit()
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.submit()
			}
		}
	}()
}

// Stop cancels the ticker. In-flight fetches are left to resolve; their
// results are still accepted, matching the fire-and-forget model.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *Poller) submit() {
	task := func() { p.refresh() }
	if p.pool != nil {
		if err := p.pool.Submit(task); err != nil {
			zap.S().Warnf("catalog poller %s: submit failed: %s", p.name, err.Error())
		}
		return
	}
	go task()
}

func (p *Poller) refresh() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	products, err := p.source.Fetch(context.Background())
	if err != nil {
		zap.L().Warn("catalog poll failed, keeping stale snapshot",
			zap.String("poller", p.name),
			zap.Error(err))
		return
	}

	p.mu.Lock()
	p.snapshot = products
	p.stamp = time.Now()
	p.mu.Unlock()

	zap.L().Debug("catalog snapshot replaced",
		zap.String("poller", p.name),
		zap.Int("products", len(products)))
}

// Refresh performs one synchronous fetch, used at startup and by tests.
func (p *Poller) Refresh() {
	p.refresh()
}

// Snapshot returns the current product list. The slice is shared read-only;
// callers must not mutate it.
func (p *Poller) Snapshot() []domain.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// UpdatedAt reports when the snapshot was last replaced.
func (p *Poller) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stamp
}
