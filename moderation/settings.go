package moderation

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"peacebot/cache"
	"peacebot/model"
	"peacebot/utils/database"
)

const (
	MaxPrefixLength = 10

	prefixCacheName = "prefix"
)

// Settings manages per-guild configuration: prefix, mod log channel and moderation roles.
type Settings struct {
	store         Store
	cache         cache.CacheStore
	defaultPrefix string
	logger        *zap.Logger
}

func NewSettings(store Store, cacheStore cache.CacheStore, defaultPrefix string, logger *zap.Logger) *Settings {
	return &Settings{
		store:         store,
		cache:         cacheStore,
		defaultPrefix: defaultPrefix,
		logger:        logger.With(zap.String("module", "settings")),
	}
}

// GuildConfig returns the guild row, creating it on first reference.
func (s *Settings) GuildConfig(ctx context.Context, guildID string) (*model.GuildConfig, error) {
	return s.store.GetOrCreateGuildConfig(ctx, guildID, s.defaultPrefix)
}

// Prefix resolves the guild's prefix through the cache.
func (s *Settings) Prefix(ctx context.Context, guildID string) (string, error) {
	if guildID == "" {
		return s.defaultPrefix, nil
	}
	if v, err := s.cache.Get(ctx, prefixCacheName, guildID); err != nil {
		s.logger.Warn("prefix cache read failed", zap.String("guild_id", guildID), zap.Error(err))
	} else if v != "" {
		return v, nil
	}

	cfg, err := s.GuildConfig(ctx, guildID)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, prefixCacheName, guildID, cfg.Prefix); err != nil {
		s.logger.Warn("prefix cache write failed", zap.String("guild_id", guildID), zap.Error(err))
	}
	return cfg.Prefix, nil
}

func (s *Settings) SetPrefix(ctx context.Context, guildID, prefix string) error {
	if n := utf8.RuneCountInString(prefix); n == 0 || n > MaxPrefixLength {
		return ErrInvalidPrefix
	}
	if _, err := s.GuildConfig(ctx, guildID); err != nil {
		return err
	}
	if err := s.store.UpdateGuildPrefix(ctx, guildID, prefix); err != nil {
		return err
	}
	if err := s.cache.Purge(ctx, prefixCacheName, guildID); err != nil {
		s.logger.Warn("prefix cache purge failed", zap.String("guild_id", guildID), zap.Error(err))
	}
	s.logger.Info("prefix changed", zap.String("guild_id", guildID), zap.String("prefix", prefix))
	return nil
}

// SetModLogChannel sets the channel, or clears it when channelID is nil.
func (s *Settings) SetModLogChannel(ctx context.Context, guildID string, channelID *string) error {
	if _, err := s.GuildConfig(ctx, guildID); err != nil {
		return err
	}
	return s.store.UpdateModLogChannel(ctx, guildID, channelID)
}

// ModLogChannel returns the configured channel or ErrModLogNotConfigured.
func (s *Settings) ModLogChannel(ctx context.Context, guildID string) (string, error) {
	cfg, err := s.GuildConfig(ctx, guildID)
	if err != nil {
		return "", err
	}
	if cfg.ModLogChannelID == nil || *cfg.ModLogChannelID == "" {
		return "", ErrModLogNotConfigured
	}
	return *cfg.ModLogChannelID, nil
}

// Roles returns the configured roles; an unconfigured guild yields an empty value.
func (s *Settings) Roles(ctx context.Context, guildID string) (model.ModerationRoles, error) {
	roles, err := s.store.GetModerationRoles(ctx, guildID)
	if errors.Is(err, database.ErrNotFound) {
		return model.ModerationRoles{GuildID: guildID}, nil
	}
	if err != nil {
		return model.ModerationRoles{}, err
	}
	return *roles, nil
}

// SetRole assigns the role of one tier, or clears it when roleID is nil. Clearing the
// last configured role removes the guild's row.
func (s *Settings) SetRole(ctx context.Context, guildID string, tier Tier, roleID *string) (model.ModerationRoles, error) {
	roles, err := s.Roles(ctx, guildID)
	if err != nil {
		return model.ModerationRoles{}, err
	}
	switch tier {
	case TierModeration:
		roles.ModerationRoleID = roleID
	case TierMod:
		roles.ModRoleID = roleID
	case TierAdmin:
		roles.AdminRoleID = roleID
	}

	if roles.Empty() {
		err = s.store.DeleteModerationRoles(ctx, guildID)
	} else {
		err = s.store.SaveModerationRoles(ctx, roles)
	}
	if err != nil {
		return model.ModerationRoles{}, err
	}
	s.logger.Info("moderation role updated", zap.String("guild_id", guildID), zap.Stringer("tier", tier))
	return roles, nil
}

// ClearRoles removes every configured moderation role.
func (s *Settings) ClearRoles(ctx context.Context, guildID string) error {
	return s.store.DeleteModerationRoles(ctx, guildID)
}
