package cartstore

import (
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
)

func newTestStore(t *testing.T) (*Store, *localstore.Store, EventBus.Bus) {
	t.Helper()
	kv, err := localstore.Open(filepath.Join(t.TempDir(), "localstore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	bus := EventBus.New()
	return New(kv, bus), kv, bus
}

func ring() domain.CartEntry {
	return domain.CartEntry{ID: "1", Name: "Gold Ring", Price: 1500, Category: "jewelries"}
}

func TestLoadEmptyCart(t *testing.T) {
	s, _, _ := newTestStore(t)
	entries := s.Load()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAddPersistsRepeatedEntries(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Add(ring())
	s.Add(ring())
	s.Add(domain.CartEntry{ID: "2", Name: "Pearl Set", Price: 800})

	entries := s.Load()
	require.Len(t, entries, 3)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "1", entries[1].ID)
	assert.Equal(t, "2", entries[2].ID)
	assert.Equal(t, 3, s.Count())
}

func TestDecrementRemovesFirstMatch(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(ring())
	s.Add(ring())

	s.Decrement("1")
	assert.Equal(t, 1, s.Count())

	s.Decrement("1")
	assert.Equal(t, 0, s.Count())
}

func TestDecrementAbsentIsNoOp(t *testing.T) {
	s, _, bus := newTestStore(t)
	s.Add(ring())

	notified := false
	require.NoError(t, bus.Subscribe(TopicStorageChanged, func() { notified = true }))

	s.Decrement("does-not-exist")
	assert.Equal(t, 1, s.Count())
	assert.False(t, notified)
}

func TestClear(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(ring())
	s.Clear()
	assert.Equal(t, 0, s.Count())
}

func TestLoadMalformedValue(t *testing.T) {
	s, kv, _ := newTestStore(t)
	kv.PutString(localstore.KeyCart, "{not json")

	entries := s.Load()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestMutationsBroadcast(t *testing.T) {
	s, _, bus := newTestStore(t)

	var events int
	require.NoError(t, bus.Subscribe(TopicStorageChanged, func() { events++ }))

	s.Add(ring())
	s.Decrement("1")
	s.Clear()
	assert.Equal(t, 3, events)
}
