package model

// GuildConfig is the per-guild settings row. The table is named 'guilds'.
type GuildConfig struct {
	GuildID         string  `db:"guild_id"`
	Prefix          string  `db:"prefix"`
	ModLogChannelID *string `db:"mod_log_channel_id"`
	CreatedAt       int64   `db:"created_at"`
	UpdatedAt       int64   `db:"updated_at"`
}

// ModerationRoles holds the three role tiers configured for a guild.
// A row with all three fields nil must not exist.
type ModerationRoles struct {
	GuildID          string  `db:"guild_id"`
	AdminRoleID      *string `db:"admin_role_id"`
	ModRoleID        *string `db:"mod_role_id"`
	ModerationRoleID *string `db:"moderation_role_id"`
}

// Empty reports whether no role is configured.
func (r ModerationRoles) Empty() bool {
	return r.AdminRoleID == nil && r.ModRoleID == nil && r.ModerationRoleID == nil
}

// Complete reports whether all three roles are configured.
func (r ModerationRoles) Complete() bool {
	return r.AdminRoleID != nil && r.ModRoleID != nil && r.ModerationRoleID != nil
}
