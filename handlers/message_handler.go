package handlers

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"peacebot/bot"
	"peacebot/metrics"
	"peacebot/model"
)

// shouldIgnore filters out messages the listener never answers.
func shouldIgnore(m *discordgo.MessageCreate) bool {
	return m.Author == nil || m.Author.Bot || m.WebhookID != "" || m.GuildID == "" || m.Content == ""
}

// isBareMention reports whether content is nothing but a mention of userID.
func isBareMention(content, userID string) bool {
	content = strings.TrimSpace(content)
	return content == "<@"+userID+">" || content == "<@!"+userID+">"
}

// responseMessage builds the reply of a fired auto-response. Without the mentions
// flag the reply pings nobody, not even the author.
func responseMessage(r *model.AutoResponse, m *discordgo.Message) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Content:   r.Response,
		Reference: m.Reference(),
	}
	if r.Mentions {
		send.AllowedMentions = &discordgo.MessageAllowedMentions{
			Parse:       []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers, discordgo.AllowedMentionTypeRoles, discordgo.AllowedMentionTypeEveryone},
			RepliedUser: true,
		}
	} else {
		send.AllowedMentions = &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
	}
	return send
}

// HandleMessageCreate answers auto-response triggers and bare mentions of the bot.
func HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if shouldIgnore(m) {
		return
	}
	logger := b.GetLogger().With(zap.String("guild_id", m.GuildID), zap.String("channel_id", m.ChannelID))

	ctx, cancel := b.CommandContext()
	defer cancel()

	if s.State != nil && s.State.User != nil && isBareMention(m.Content, s.State.User.ID) {
		prefix, err := b.Settings.Prefix(ctx, m.GuildID)
		if err != nil {
			logger.Warn("failed to resolve prefix", zap.Error(err))
			return
		}
		if _, err := s.ChannelMessageSendReply(m.ChannelID, fmt.Sprintf("My prefix here is `%s`. Use `/` to see my commands.", prefix), m.Reference()); err != nil {
			logger.Warn("failed to send prefix reply", zap.Error(err))
		}
		return
	}

	match, err := b.Matcher.Match(ctx, m.Content, m.GuildID, m.ChannelID)
	if err != nil {
		metrics.MatcherErrorCount.Inc()
		logger.Error("autoresponse match failed", zap.Error(err))
		return
	}
	if match == nil {
		return
	}

	if _, err := s.ChannelMessageSendComplex(m.ChannelID, responseMessage(match, m.Message)); err != nil {
		logger.Warn("failed to send autoresponse", zap.String("trigger", match.Trigger), zap.Error(err))
		return
	}
	metrics.AutoResponseFired.Inc()
}
