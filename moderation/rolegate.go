package moderation

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"peacebot/model"
	"peacebot/utils/database"
)

// Tier is one of the three ordered moderation levels.
type Tier int

const (
	TierModeration Tier = iota
	TierMod
	TierAdmin
)

func (t Tier) String() string {
	switch t {
	case TierModeration:
		return "moderation"
	case TierMod:
		return "mod"
	case TierAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseTier accepts the names produced by String.
func ParseTier(s string) (Tier, bool) {
	for _, t := range []Tier{TierModeration, TierMod, TierAdmin} {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// RoleID returns the configured role for the tier.
func (t Tier) RoleID(r model.ModerationRoles) *string {
	switch t {
	case TierModeration:
		return r.ModerationRoleID
	case TierMod:
		return r.ModRoleID
	case TierAdmin:
		return r.AdminRoleID
	}
	return nil
}

// overrides lists permissions that satisfy the tier without holding its role.
func (t Tier) overrides() int64 {
	switch t {
	case TierModeration:
		return discordgo.PermissionManageMessages | discordgo.PermissionAdministrator
	case TierMod:
		return discordgo.PermissionManageRoles | discordgo.PermissionAdministrator
	default:
		return discordgo.PermissionAdministrator
	}
}

// Member is the part of a guild member the gate looks at.
type Member struct {
	UserID          string
	RoleIDs         []string
	Permissions     int64
	TopRolePosition int
}

func (m Member) HasRole(roleID string) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

func (m Member) HasAny(perms int64) bool {
	return m.Permissions&perms != 0
}

// MemberFromDiscord resolves role positions and permissions against the guild's role list.
// Permissions already computed by Discord (interaction members) are kept.
func MemberFromDiscord(m *discordgo.Member, guildRoles []*discordgo.Role) Member {
	member := Member{
		RoleIDs:     m.Roles,
		Permissions: m.Permissions,
	}
	if m.User != nil {
		member.UserID = m.User.ID
	}

	byID := make(map[string]*discordgo.Role, len(guildRoles))
	for _, r := range guildRoles {
		byID[r.ID] = r
	}
	for _, id := range m.Roles {
		r, ok := byID[id]
		if !ok {
			continue
		}
		member.Permissions |= r.Permissions
		if r.Position > member.TopRolePosition {
			member.TopRolePosition = r.Position
		}
	}
	return member
}

type RolesReader interface {
	GetModerationRoles(ctx context.Context, guildID string) (*model.ModerationRoles, error)
}

// RoleGate checks moderation tiers against a guild's configured roles. It keeps no state.
type RoleGate struct {
	roles RolesReader
}

func NewRoleGate(roles RolesReader) *RoleGate {
	return &RoleGate{roles: roles}
}

// Authorize fails with ErrRolesNotConfigured unless all three tiers have a role, then
// accepts the actor if they hold the tier's role or one of its overriding permissions.
func (g *RoleGate) Authorize(ctx context.Context, guildID string, actor Member, tier Tier) error {
	roles, err := g.roles.GetModerationRoles(ctx, guildID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrRolesNotConfigured
	}
	if err != nil {
		return err
	}
	if !roles.Complete() {
		return ErrRolesNotConfigured
	}

	roleID := *tier.RoleID(*roles)
	if actor.HasAny(tier.overrides()) || actor.HasRole(roleID) {
		return nil
	}
	return &MissingRoleError{Tier: tier, RoleID: roleID}
}

// RequireManageGuild guards server configuration commands.
func RequireManageGuild(actor Member) error {
	if actor.HasAny(discordgo.PermissionManageGuild | discordgo.PermissionAdministrator) {
		return nil
	}
	return ErrMissingPermissions
}

// AssertHigherRole requires the actor's top role to sit strictly above the target's.
func AssertHigherRole(actor, target Member) error {
	if actor.TopRolePosition > target.TopRolePosition {
		return nil
	}
	return ErrInsufficientHierarchy
}
