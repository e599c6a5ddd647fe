package storage

import (
	"context"
	"errors"
)

// Well-known keys mirrored from the storefront clients. Every key holds a
// JSON document; the whole value is rewritten on each mutation.
const (
	KeyCart        = "cart"
	KeyOrders      = "orders"
	KeySubscribers = "newsletter_subscribers"
	KeyTheme       = "theme"
	KeySystemTheme = "system-theme"
	KeyLanguage    = "language"
)

// ErrNoKey is returned by Get when the key has never been written.
var ErrNoKey = errors.New("storage: key not found")

// KV is a string-keyed store of JSON blobs. One writer per deployment;
// last write wins.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
