package newsletter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakritistore/cart-service/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewService(kv)
}

func TestSubscribe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "Ravi", "Ravi@Example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "ravi@example.com", sub.Email, "emails are stored lowercased")
	assert.False(t, sub.SubscribedAt.IsZero())

	subs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscribeDeduplicatesByEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "Ravi", "ravi@example.com")
	require.NoError(t, err)

	_, err = svc.Subscribe(ctx, "Someone Else", "RAVI@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)

	subs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	svc := newTestService(t)
	for _, email := range []string{"", "plain", "a@b", "a b@c.com"} {
		_, err := svc.Subscribe(context.Background(), "x", email)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestListCorruptDataResets(t *testing.T) {
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.KeySubscribers, []byte("not-json")))

	subs, err := NewService(kv).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)
}
