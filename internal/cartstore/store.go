package cartstore

import (
	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
)

// TopicStorageChanged is the process-wide change signal. It fans out to every
// subscriber, including widgets that use the cart only as a weak preference
// signal. It is advisory, not transactional.
const TopicStorageChanged = "storage.changed"

// Store gives every screen independent access to the persisted cart
// sequence. Each mutation re-serializes the entire sequence and broadcasts;
// there is no shared in-memory cart state between screens. The read-modify-
// write between Load and Save is last-writer-wins, which this design accepts
// as inherent to the storage choice.
type Store struct {
	kv  *localstore.Store
	bus EventBus.Bus
}

func New(kv *localstore.Store, bus EventBus.Bus) *Store {
	return &Store{kv: kv, bus: bus}
}

// Load reads and deserializes the persisted cart. A missing or malformed
// value yields an empty sequence; nothing propagates to the caller.
func (s *Store) Load() []domain.CartEntry {
	entries := []domain.CartEntry{}
	s.kv.GetJSON(localstore.KeyCart, &entries)
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	return entries
}

// Save persists the full sequence, replacing any prior value, then
// broadcasts the change.
func (s *Store) Save(entries []domain.CartEntry) {
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	s.kv.PutJSON(localstore.KeyCart, entries)
	s.NotifyChanged()
}

// NotifyChanged publishes the change signal so independently-mounted
// consumers re-read the store.
func (s *Store) NotifyChanged() {
	if s.bus != nil {
		s.bus.Publish(TopicStorageChanged)
	}
}

// Add appends one unit of a product to the cart.
func (s *Store) Add(entry domain.CartEntry) {
	entries := append(s.Load(), entry)
	s.Save(entries)
	zap.L().Debug("cart entry added", zap.String("id", entry.ID), zap.Int("size", len(entries)))
}

// Decrement splices out the first entry matching id. Decrementing a product
// that is not in the cart is a no-op: no write, no broadcast.
func (s *Store) Decrement(id string) {
	entries := s.Load()
	for i, e := range entries {
		if e.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			s.Save(entries)
			return
		}
	}
}

// Clear empties the cart, used on successful checkout.
func (s *Store) Clear() {
	s.kv.Delete(localstore.KeyCart)
	s.NotifyChanged()
}

// Count returns the number of persisted units.
func (s *Store) Count() int {
	return len(s.Load())
}
