package moderation

import (
	"context"

	"peacebot/model"
)

// Store is the persistence the moderation components need. Missing rows are
// reported with an error matching database.ErrNotFound.
type Store interface {
	RolesReader
	GetOrCreateGuildConfig(ctx context.Context, guildID, defaultPrefix string) (*model.GuildConfig, error)
	UpdateGuildPrefix(ctx context.Context, guildID, prefix string) error
	UpdateModLogChannel(ctx context.Context, guildID string, channelID *string) error
	SaveModerationRoles(ctx context.Context, roles model.ModerationRoles) error
	DeleteModerationRoles(ctx context.Context, guildID string) error
	CreateCase(ctx context.Context, c model.Case) (int64, error)
	GetCase(ctx context.Context, guildID string, caseID int64) (*model.Case, error)
	ListCases(ctx context.Context, guildID string) ([]model.Case, error)
}
