package localstore

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Persisted keys. These mirror the browser-local keys of the storefront:
// every value is a string-serialized JSON document under a flat namespace.
const (
	KeyCart          = "rv_cart"
	KeyShipping      = "rv_shipping"
	KeyLastView      = "rv_last_view"
	KeyPaymentConfig = "volubiks_payments_config"
	KeyPromoSeen     = "volubiks_promo_seen"
)

var bucketName = []byte("localstore")

// Store is a process-wide, unauthenticated key/value file. It is shared
// mutable state with no scoping: any component may read or write any key.
// Reads never surface errors to callers; corrupt or absent values degrade
// to zero values.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetString returns the raw stored value, or "" when absent.
func (s *Store) GetString(key string) string {
	var out string
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			out = string(v)
		}
		return nil
	})
	return out
}

// PutString stores a raw value, replacing any prior one.
func (s *Store) PutString(key, value string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		zap.L().Error("localstore put failed", zap.String("key", key), zap.Error(err))
	}
}

// GetJSON deserializes the value under key into out. Returns false and
// leaves out untouched when the key is absent or holds malformed JSON.
func (s *Store) GetJSON(key string, out interface{}) bool {
	raw := s.GetString(key)
	if raw == "" {
		return false
	}
	if err := json.UnmarshalFromString(raw, out); err != nil {
		zap.L().Debug("localstore value malformed, treating as absent",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// PutJSON serializes v and stores it under key.
func (s *Store) PutJSON(key string, v interface{}) {
	raw, err := json.MarshalToString(v)
	if err != nil {
		zap.L().Error("localstore marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.PutString(key, raw)
}

// Delete removes key. Removing an absent key is a no-op.
func (s *Store) Delete(key string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		zap.L().Error("localstore delete failed", zap.String("key", key), zap.Error(err))
	}
}
