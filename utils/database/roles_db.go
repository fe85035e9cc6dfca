package database

import (
	"context"
	"fmt"

	"peacebot/model"
)

func (s *Store) GetModerationRoles(ctx context.Context, guildID string) (*model.ModerationRoles, error) {
	var roles model.ModerationRoles
	err := s.db.GetContext(ctx, &roles, s.db.Rebind("SELECT * FROM moderation_roles WHERE guild_id = ?"), guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moderation roles for guild %s: %w", guildID, mapError(err))
	}
	return &roles, nil
}

// SaveModerationRoles upserts the role row of a guild.
func (s *Store) SaveModerationRoles(ctx context.Context, roles model.ModerationRoles) error {
	query := `INSERT INTO moderation_roles (guild_id, admin_role_id, mod_role_id, moderation_role_id)
		VALUES (:guild_id, :admin_role_id, :mod_role_id, :moderation_role_id)
		ON CONFLICT (guild_id) DO UPDATE SET
			admin_role_id = excluded.admin_role_id,
			mod_role_id = excluded.mod_role_id,
			moderation_role_id = excluded.moderation_role_id`
	if _, err := s.db.NamedExecContext(ctx, query, roles); err != nil {
		return fmt.Errorf("failed to save moderation roles for guild %s: %w", roles.GuildID, err)
	}
	return nil
}

// DeleteModerationRoles removes the role row. Deleting a missing row is not an error.
func (s *Store) DeleteModerationRoles(ctx context.Context, guildID string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM moderation_roles WHERE guild_id = ?"), guildID); err != nil {
		return fmt.Errorf("failed to delete moderation roles for guild %s: %w", guildID, err)
	}
	return nil
}
