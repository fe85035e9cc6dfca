package database

import (
	"context"
	"fmt"
	"time"

	"peacebot/model"
)

// GetOrCreateGuildConfig returns the guild row, inserting it with defaultPrefix on first reference.
func (s *Store) GetOrCreateGuildConfig(ctx context.Context, guildID, defaultPrefix string) (*model.GuildConfig, error) {
	now := time.Now().Unix()
	query := s.db.Rebind(`INSERT INTO guilds (guild_id, prefix, created_at, updated_at)
		VALUES (?, ?, ?, ?) ON CONFLICT (guild_id) DO NOTHING`)
	if _, err := s.db.ExecContext(ctx, query, guildID, defaultPrefix, now, now); err != nil {
		return nil, fmt.Errorf("failed to create guild config for guild %s: %w", guildID, err)
	}

	var cfg model.GuildConfig
	err := s.db.GetContext(ctx, &cfg, s.db.Rebind("SELECT * FROM guilds WHERE guild_id = ?"), guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config for guild %s: %w", guildID, mapError(err))
	}
	return &cfg, nil
}

// UpdateGuildPrefix changes the stored prefix of an existing guild row.
func (s *Store) UpdateGuildPrefix(ctx context.Context, guildID, prefix string) error {
	query := s.db.Rebind("UPDATE guilds SET prefix = ?, updated_at = ? WHERE guild_id = ?")
	result, err := s.db.ExecContext(ctx, query, prefix, time.Now().Unix(), guildID)
	if err != nil {
		return fmt.Errorf("failed to update prefix for guild %s: %w", guildID, err)
	}
	return expectAffected(result, "guild "+guildID)
}

// UpdateModLogChannel sets or clears (nil) the moderation log channel of a guild.
func (s *Store) UpdateModLogChannel(ctx context.Context, guildID string, channelID *string) error {
	query := s.db.Rebind("UPDATE guilds SET mod_log_channel_id = ?, updated_at = ? WHERE guild_id = ?")
	result, err := s.db.ExecContext(ctx, query, channelID, time.Now().Unix(), guildID)
	if err != nil {
		return fmt.Errorf("failed to update mod log channel for guild %s: %w", guildID, err)
	}
	return expectAffected(result, "guild "+guildID)
}
