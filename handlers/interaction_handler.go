package handlers

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"peacebot/bot"
	"peacebot/handlers/autoresponse"
	"peacebot/handlers/common"
	"peacebot/metrics"
)

// commandFunc is a handler that leaves error rendering to the router.
type commandFunc func(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error

// instrument records metrics for a handler and renders the error it returns.
func instrument(b *bot.Bot, name string, h commandFunc) bot.HandlerFunc {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		start := time.Now()
		metrics.CommandCount.WithLabelValues(name).Inc()
		defer func() {
			metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}()

		if err := h(s, i, b); err != nil {
			if !common.RespondError(s, i, b.GetLogger(), name, err) {
				metrics.CommandErrorCount.WithLabelValues(name).Inc()
			}
		}
	}
}

// componentPrefix is the part of a custom id before the first ':'.
func componentPrefix(customID string) string {
	prefix, _, _ := strings.Cut(customID, ":")
	return prefix
}

func handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.CommandHandlers[name]; ok {
			h(s, i)
			return
		}
		b.GetLogger().Warn("unknown command", zap.String("command", name))
	case discordgo.InteractionMessageComponent:
		if h, ok := b.ComponentHandlers[componentPrefix(i.MessageComponentData().CustomID)]; ok {
			h(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		if i.ApplicationCommandData().Name == "autoresponse" {
			autoresponse.HandleAutocomplete(s, i, b)
		}
	}
}
