package handlers

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"peacebot/bot"
	"peacebot/handlers/admin"
	"peacebot/handlers/autoresponse"
	"peacebot/handlers/misc"
	"peacebot/handlers/moderation"
)

// Register fills the bot's handler tables and subscribes to gateway events.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	b.ComponentHandlers = componentHandlers(b)
	addHandlers(b)
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.GetLogger().Info("Logged in",
			zap.String("user", r.User.Username),
			zap.Int("guilds", len(r.Guilds)))
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		handleInteractionCreate(s, i, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandleMessageCreate(s, m, b)
	})
}

func commandHandlers(b *bot.Bot) map[string]bot.HandlerFunc {
	return map[string]bot.HandlerFunc{
		"autoresponse": instrument(b, "autoresponse", autoresponse.HandleAutoResponseCommand),
		"timeout":      instrument(b, "timeout", moderation.HandleTimeout),
		"kick":         instrument(b, "kick", moderation.HandleKick),
		"ban":          instrument(b, "ban", moderation.HandleBan),
		"case":         instrument(b, "case", moderation.HandleCase),
		"config":       instrument(b, "config", admin.HandleConfigCommand),
		"changeprefix": instrument(b, "changeprefix", admin.HandleChangePrefix),
		"ping":         instrument(b, "ping", misc.HandlePing),
		"system-info":  instrument(b, "system-info", misc.HandleSystemInfo),
		"avatar":       instrument(b, "avatar", misc.HandleAvatar),
		"serverinfo":   instrument(b, "serverinfo", misc.HandleServerInfo),
		"userinfo":     instrument(b, "userinfo", misc.HandleUserInfo),
	}
}

func componentHandlers(b *bot.Bot) map[string]bot.HandlerFunc {
	return map[string]bot.HandlerFunc{
		"case_page": instrument(b, "case_page", moderation.HandleCasePage),
	}
}
