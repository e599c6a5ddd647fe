package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakritistore/cart-service/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewManager(kv)
}

func TestDefaults(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	theme, err := m.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	lang, err := m.Get(ctx, storage.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}

func TestSetAndGet(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, storage.KeyTheme, "dark"))
	theme, err := m.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestUnknownKey(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Get(ctx, "favourite-color")
	assert.Error(t, err)
	assert.Error(t, m.Set(ctx, "favourite-color", "green"))
}

func TestObserverNotification(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	var gotKey, gotValue string
	unsubscribe := m.Subscribe(func(key, value string) {
		gotKey, gotValue = key, value
	})

	require.NoError(t, m.Set(ctx, storage.KeyLanguage, "hi"))
	assert.Equal(t, storage.KeyLanguage, gotKey)
	assert.Equal(t, "hi", gotValue)

	unsubscribe()
	require.NoError(t, m.Set(ctx, storage.KeyLanguage, "en"))
	assert.Equal(t, "hi", gotValue, "unsubscribed observer must not fire")
}
