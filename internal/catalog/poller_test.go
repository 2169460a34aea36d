package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/volubiks/storefront/internal/domain"
)

type flakySource struct {
	products []domain.Product
	fail     bool
}

func (s *flakySource) Name() string { return "flaky" }

func (s *flakySource) Fetch(ctx context.Context) ([]domain.Product, error) {
	if s.fail {
		return nil, errors.New("feed unavailable")
	}
	return s.products, nil
}

func TestPollerRefreshReplacesSnapshot(t *testing.T) {
	src := &flakySource{products: []domain.Product{{ID: "1", Name: "Gold Ring"}}}
	p := NewPoller("test", src, time.Minute, nil)

	assert.Empty(t, p.Snapshot())
	p.Refresh()
	assert.Len(t, p.Snapshot(), 1)
	assert.False(t, p.UpdatedAt().IsZero())
}

func TestPollerKeepsStaleSnapshotOnFailure(t *testing.T) {
	src := &flakySource{products: []domain.Product{{ID: "1"}, {ID: "2"}}}
	p := NewPoller("test", src, time.Minute, nil)
	p.Refresh()
	stamp := p.UpdatedAt()

	src.fail = true
	p.Refresh()

	assert.Len(t, p.Snapshot(), 2)
	assert.Equal(t, stamp, p.UpdatedAt())
}
