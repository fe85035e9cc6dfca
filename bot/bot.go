package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"peacebot/autoresponse"
	"peacebot/cache"
	"peacebot/commands"
	"peacebot/config"
	"peacebot/model"
	"peacebot/moderation"
	"peacebot/utils"
	"peacebot/utils/database"
)

type HandlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate)

type Bot struct {
	Session         *discordgo.Session
	CommandHandlers map[string]HandlerFunc
	// ComponentHandlers are keyed by the custom id prefix before the first ':'.
	ComponentHandlers map[string]HandlerFunc

	Store         *database.Store
	Cache         cache.CacheStore
	AutoResponses *autoresponse.Service
	Matcher       *autoresponse.Matcher
	Gate          *moderation.RoleGate
	Ledger        *moderation.Ledger
	Settings      *moderation.Settings
	// Locks keeps two moderation actions off the same member at once.
	Locks *utils.TargetLocks

	// registered holds the commands last overwritten per guild id, "" being global.
	registeredMu sync.Mutex
	registered   map[string][]*discordgo.ApplicationCommand

	config     atomic.Pointer[model.Config]
	configPath string
	logger     *zap.Logger
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load()
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetLogger() *zap.Logger {
	return b.logger
}

// New wires the session and the core services. configPath is re-read on reload.
func New(cfg *model.Config, configPath string, store *database.Store, cacheStore cache.CacheStore, logger *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Bot.Token)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent | discordgo.IntentsGuildMembers

	b := &Bot{
		Session:           dg,
		CommandHandlers:   make(map[string]HandlerFunc),
		ComponentHandlers: make(map[string]HandlerFunc),
		Store:             store,
		Cache:             cacheStore,
		AutoResponses:     autoresponse.NewService(store, logger),
		Matcher:           autoresponse.NewMatcher(store),
		Gate:              moderation.NewRoleGate(store),
		Ledger:            moderation.NewLedger(store, logger),
		Settings:          moderation.NewSettings(store, cacheStore, cfg.Bot.DefaultPrefix, logger),
		Locks:             utils.NewTargetLocks(time.Minute),
		configPath:        configPath,
		logger:            logger,
	}
	b.config.Store(cfg)
	return b, nil
}

// CommandContext bounds the work of a single interaction or message.
func (b *Bot) CommandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.GetConfig().Bot.CommandTimeout)
}

func (b *Bot) Close() {
	b.logger.Info("Gracefully shutting down.")
	if err := b.Session.Close(); err != nil {
		b.logger.Warn("failed to close session", zap.Error(err))
	}
}

// RefreshCommands overwrites the application commands of guildID, or the global
// commands when guildID is empty.
func (b *Bot) RefreshCommands(guildID string) error {
	cmds := commands.Definitions()
	b.logger.Info("registering commands", zap.Int("count", len(cmds)), zap.String("guild_id", guildID))

	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.appID(), guildID, cmds)
	if err != nil {
		return err
	}
	b.recordCommands(guildID, registered)
	return nil
}

// recordCommands replaces what is known to be registered in guildID.
func (b *Bot) recordCommands(guildID string, cmds []*discordgo.ApplicationCommand) {
	b.registeredMu.Lock()
	defer b.registeredMu.Unlock()
	if b.registered == nil {
		b.registered = make(map[string][]*discordgo.ApplicationCommand)
	}
	b.registered[guildID] = cmds
}

// RegisteredCommands counts the commands registered across all guilds.
func (b *Bot) RegisteredCommands() int {
	b.registeredMu.Lock()
	defer b.registeredMu.Unlock()
	n := 0
	for _, cmds := range b.registered {
		n += len(cmds)
	}
	return n
}

// refreshGuilds overwrites the commands of each guild in turn.
func (b *Bot) refreshGuilds(guildIDs []string) error {
	var errs []error
	for _, guildID := range guildIDs {
		if err := b.RefreshCommands(guildID); err != nil {
			b.logger.Error("cannot update commands", zap.String("guild_id", guildID), zap.Error(err))
			errs = append(errs, fmt.Errorf("guild %s: %w", guildID, err))
		}
	}
	return errors.Join(errs...)
}

func (b *Bot) appID() string {
	if id := b.GetConfig().Bot.AppID; id != "" {
		return id
	}
	return b.Session.State.User.ID
}

// ReloadConfig re-reads the configuration. Connection settings (token, database,
// cache) only take effect after a restart.
func (b *Bot) ReloadConfig() error {
	b.logger.Info("Reloading configuration...")
	newCfg, err := config.Load(b.configPath)
	if err != nil {
		b.logger.Error("Error reloading config", zap.Error(err))
		return err
	}
	b.config.Store(newCfg)
	b.logger.Info("Configuration reloaded successfully.")

	if guilds := newCfg.Bot.TestGuilds; len(guilds) > 0 {
		go b.refreshGuilds(guilds)
	}
	return nil
}
