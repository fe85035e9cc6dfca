package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func configuredGate(t *testing.T) *RoleGate {
	t.Helper()
	store := newTestStore(t)
	settings := newTestSettings(t, store)
	ctx := context.Background()
	for tier, id := range map[Tier]string{TierModeration: "r-moderation", TierMod: "r-mod", TierAdmin: "r-admin"} {
		_, err := settings.SetRole(ctx, "100", tier, ptr(id))
		require.NoError(t, err)
	}
	return NewRoleGate(store)
}

func TestAuthorize_RolesNotConfigured(t *testing.T) {
	store := newTestStore(t)
	gate := NewRoleGate(store)
	ctx := context.Background()
	admin := Member{Permissions: discordgo.PermissionAdministrator}

	assert.ErrorIs(t, gate.Authorize(ctx, "100", admin, TierModeration), ErrRolesNotConfigured)

	// a partial configuration is still unconfigured
	_, err := newTestSettings(t, store).SetRole(ctx, "100", TierAdmin, ptr("r-admin"))
	require.NoError(t, err)
	assert.ErrorIs(t, gate.Authorize(ctx, "100", admin, TierAdmin), ErrRolesNotConfigured)
}

func TestAuthorize_ByRole(t *testing.T) {
	gate := configuredGate(t)
	ctx := context.Background()

	moderator := Member{RoleIDs: []string{"r-moderation"}}
	assert.NoError(t, gate.Authorize(ctx, "100", moderator, TierModeration))

	err := gate.Authorize(ctx, "100", moderator, TierMod)
	assert.ErrorIs(t, err, ErrMissingPermissions)
	var missing *MissingRoleError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "r-mod", missing.RoleID)
	assert.Contains(t, err.Error(), "<@&r-mod>")

	// tiers are independent roles, not a hierarchy of roles
	admin := Member{RoleIDs: []string{"r-admin"}}
	assert.NoError(t, gate.Authorize(ctx, "100", admin, TierAdmin))
	assert.ErrorIs(t, gate.Authorize(ctx, "100", admin, TierModeration), ErrMissingPermissions)
}

func TestAuthorize_ByPermission(t *testing.T) {
	gate := configuredGate(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		perms int64
		tier  Tier
		ok    bool
	}{
		{"manage messages for moderation", discordgo.PermissionManageMessages, TierModeration, true},
		{"manage messages for mod", discordgo.PermissionManageMessages, TierMod, false},
		{"manage roles for mod", discordgo.PermissionManageRoles, TierMod, true},
		{"manage roles for admin", discordgo.PermissionManageRoles, TierAdmin, false},
		{"administrator for admin", discordgo.PermissionAdministrator, TierAdmin, true},
		{"administrator for moderation", discordgo.PermissionAdministrator, TierModeration, true},
		{"nothing", 0, TierModeration, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(ctx, "100", Member{Permissions: tt.perms}, tt.tier)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMissingPermissions)
			}
		})
	}
}

func TestRequireManageGuild(t *testing.T) {
	assert.NoError(t, RequireManageGuild(Member{Permissions: discordgo.PermissionManageGuild}))
	assert.NoError(t, RequireManageGuild(Member{Permissions: discordgo.PermissionAdministrator}))
	assert.ErrorIs(t, RequireManageGuild(Member{Permissions: discordgo.PermissionManageMessages}), ErrMissingPermissions)
}

func TestAssertHigherRole(t *testing.T) {
	assert.ErrorIs(t, AssertHigherRole(Member{TopRolePosition: 5}, Member{TopRolePosition: 5}), ErrInsufficientHierarchy)
	assert.ErrorIs(t, AssertHigherRole(Member{TopRolePosition: 4}, Member{TopRolePosition: 5}), ErrInsufficientHierarchy)
	assert.NoError(t, AssertHigherRole(Member{TopRolePosition: 6}, Member{TopRolePosition: 5}))
}

func TestProperty_AssertHigherRoleIsStrict(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 250).Draw(rt, "actor")
		b := rapid.IntRange(0, 250).Draw(rt, "target")
		err := AssertHigherRole(Member{TopRolePosition: a}, Member{TopRolePosition: b})
		if (err == nil) != (a > b) {
			rt.Fatalf("actor %d target %d: got %v", a, b, err)
		}
	})
}

func TestMemberFromDiscord(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "everyone", Position: 0},
		{ID: "helper", Position: 3, Permissions: discordgo.PermissionManageMessages},
		{ID: "staff", Position: 7, Permissions: discordgo.PermissionKickMembers},
	}
	m := MemberFromDiscord(&discordgo.Member{
		User:  &discordgo.User{ID: "42"},
		Roles: []string{"helper", "staff", "deleted-role"},
	}, roles)

	assert.Equal(t, "42", m.UserID)
	assert.Equal(t, 7, m.TopRolePosition)
	assert.True(t, m.HasAny(discordgo.PermissionManageMessages))
	assert.True(t, m.HasAny(discordgo.PermissionKickMembers))
	assert.False(t, m.HasAny(discordgo.PermissionAdministrator))
	assert.True(t, m.HasRole("staff"))
}

func TestParseTier(t *testing.T) {
	for _, tier := range []Tier{TierModeration, TierMod, TierAdmin} {
		got, ok := ParseTier(tier.String())
		assert.True(t, ok)
		assert.Equal(t, tier, got)
	}
	_, ok := ParseTier("owner")
	assert.False(t, ok)
}
