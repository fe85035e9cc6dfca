package moderation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peacebot/utils/database"
)

func TestSettings_Prefix(t *testing.T) {
	store := newTestStore(t)
	settings := newTestSettings(t, store)
	ctx := context.Background()

	p, err := settings.Prefix(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "!", p)

	require.NoError(t, settings.SetPrefix(ctx, "100", "pb?"))
	p, err = settings.Prefix(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "pb?", p)

	// cached value survives until purged
	require.NoError(t, store.UpdateGuildPrefix(ctx, "100", "zz"))
	p, err = settings.Prefix(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "pb?", p)

	assert.ErrorIs(t, settings.SetPrefix(ctx, "100", ""), ErrInvalidPrefix)
	assert.ErrorIs(t, settings.SetPrefix(ctx, "100", strings.Repeat("x", MaxPrefixLength+1)), ErrInvalidPrefix)
	assert.NoError(t, settings.SetPrefix(ctx, "100", strings.Repeat("x", MaxPrefixLength)))

	p, err = settings.Prefix(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "!", p)
}

func TestSettings_ModLogChannel(t *testing.T) {
	settings := newTestSettings(t, newTestStore(t))
	ctx := context.Background()

	_, err := settings.ModLogChannel(ctx, "100")
	assert.ErrorIs(t, err, ErrModLogNotConfigured)

	require.NoError(t, settings.SetModLogChannel(ctx, "100", ptr("555")))
	ch, err := settings.ModLogChannel(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "555", ch)

	require.NoError(t, settings.SetModLogChannel(ctx, "100", nil))
	_, err = settings.ModLogChannel(ctx, "100")
	assert.ErrorIs(t, err, ErrModLogNotConfigured)
}

func TestSettings_ClearingLastRoleDeletesRow(t *testing.T) {
	store := newTestStore(t)
	settings := newTestSettings(t, store)
	ctx := context.Background()

	_, err := settings.SetRole(ctx, "100", TierAdmin, ptr("1"))
	require.NoError(t, err)
	roles, err := settings.SetRole(ctx, "100", TierMod, ptr("2"))
	require.NoError(t, err)
	assert.False(t, roles.Complete())

	_, err = settings.SetRole(ctx, "100", TierAdmin, nil)
	require.NoError(t, err)
	_, err = store.GetModerationRoles(ctx, "100")
	require.NoError(t, err)

	roles, err = settings.SetRole(ctx, "100", TierMod, nil)
	require.NoError(t, err)
	assert.True(t, roles.Empty())
	_, err = store.GetModerationRoles(ctx, "100")
	assert.ErrorIs(t, err, database.ErrNotFound)

	// clearing an unconfigured tier is harmless
	_, err = settings.SetRole(ctx, "100", TierModeration, nil)
	require.NoError(t, err)
}

func TestSettings_ClearRoles(t *testing.T) {
	store := newTestStore(t)
	settings := newTestSettings(t, store)
	ctx := context.Background()

	for _, tier := range []Tier{TierModeration, TierMod, TierAdmin} {
		_, err := settings.SetRole(ctx, "100", tier, ptr(tier.String()))
		require.NoError(t, err)
	}
	roles, err := settings.Roles(ctx, "100")
	require.NoError(t, err)
	assert.True(t, roles.Complete())

	require.NoError(t, settings.ClearRoles(ctx, "100"))
	roles, err = settings.Roles(ctx, "100")
	require.NoError(t, err)
	assert.True(t, roles.Empty())
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(&MissingRoleError{Tier: TierMod, RoleID: "1"}))
	assert.True(t, IsUserError(ErrDurationTooLong))
	assert.False(t, IsUserError(database.ErrUniqueViolation))
}
