package prefs

import (
	"context"
	"fmt"
	"sync"

	"github.com/prakritistore/cart-service/internal/storage"
)

// Defaults per preference key. Only these keys are accepted; anything else
// is a caller error, not a new preference.
var defaults = map[string]string{
	storage.KeyTheme:       "light",
	storage.KeySystemTheme: "system",
	storage.KeyLanguage:    "en",
}

// ErrUnknownKey is returned for preference keys outside the known set.
type ErrUnknownKey struct{ Key string }

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("prefs: unknown preference %q", e.Key)
}

// Manager holds app-wide display preferences (theme, system theme,
// language). It is constructed once at startup and passed to whoever needs
// it, replacing module-level globals; interested parties subscribe for
// change notification instead of installing ad hoc listeners.
type Manager struct {
	mu        sync.Mutex
	kv        storage.KV
	observers map[int]func(key, value string)
	nextObs   int
}

func NewManager(kv storage.KV) *Manager {
	return &Manager{kv: kv, observers: make(map[int]func(key, value string))}
}

// Get returns the stored value for key, or its default when never set or
// unreadable.
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	def, ok := defaults[key]
	if !ok {
		return "", ErrUnknownKey{Key: key}
	}
	data, err := m.kv.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return def, nil
	}
	return string(data), nil
}

// Set stores the value and notifies subscribers.
func (m *Manager) Set(ctx context.Context, key, value string) error {
	if _, ok := defaults[key]; !ok {
		return ErrUnknownKey{Key: key}
	}
	if err := m.kv.Set(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("prefs: persist %s: %w", key, err)
	}

	m.mu.Lock()
	observers := make([]func(string, string), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(key, value)
	}
	return nil
}

// Subscribe registers a change observer; the returned function removes it.
func (m *Manager) Subscribe(fn func(key, value string)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}
