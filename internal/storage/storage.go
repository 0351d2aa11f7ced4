package storage

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"github.com/example/merchstore/internal/logger"
)

// Keys used by the storefront. Session keys live in a client's namespace,
// the rest in the shop namespace.
const (
	KeyCart              = "merchCart"
	KeyLastOrder         = "lastOrder"
	KeyPreferredLanguage = "preferredLanguage"

	KeyOrders        = "orders"
	KeyTodayOrders   = "todayOrders"
	KeyLastOrderDate = "lastOrderDate"
)

// ShopNamespace holds the order log and the daily sequencing state.
const ShopNamespace = "storefront"

// ErrEmptyNamespace is returned when a namespace name is blank.
var ErrEmptyNamespace = errors.New("storage: namespace is required")

// Store is a durable string key/value store scoped to one namespace.
// Values are opaque strings; callers serialize structured data as JSON.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend hands out namespaced stores.
type Backend interface {
	Namespace(name string) Store
}

// LoadJSON decodes the value under key into dst. It reports false when the key
// is absent, unreadable, or does not parse; dst is left untouched in that case
// so the caller's zero value acts as the default.
func LoadJSON(ctx context.Context, log logger.Logger, store Store, key string, dst interface{}) bool {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Warn("storage read failed, using default", logger.String("key", key), logger.Error(err))
		return false
	}
	if !ok || raw == "" {
		return false
	}

	// Unmarshal fills its target partway before failing, so decode into a
	// fresh value and copy it over only on success.
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		log.Warn("storage load target is not a pointer", logger.String("key", key))
		return false
	}
	decoded := reflect.New(target.Elem().Type())
	if err := json.Unmarshal([]byte(raw), decoded.Interface()); err != nil {
		log.Warn("stored value is corrupt, using default", logger.String("key", key), logger.Error(err))
		return false
	}
	target.Elem().Set(decoded.Elem())
	return true
}

// SaveJSON serializes v and writes it under key.
func SaveJSON(ctx context.Context, store Store, key string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(body))
}
