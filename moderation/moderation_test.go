package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"peacebot/cache"
	"peacebot/utils/database"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestSettings(t *testing.T, store Store) *Settings {
	t.Helper()
	return NewSettings(store, cache.NewMemCacheStore(64, time.Minute), "!", zap.NewNop())
}

func ptr(s string) *string { return &s }
