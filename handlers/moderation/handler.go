package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"peacebot/bot"
	"peacebot/handlers/common"
	"peacebot/metrics"
	"peacebot/model"
	mod "peacebot/moderation"
	"peacebot/utils"
)

const defaultReason = "No reason provided."

// request is a validated moderation command, ready to be carried out.
type request struct {
	action   Action
	modLogID string
	release  func()
}

// HandleTimeout dispatches /timeout enable and /timeout disable.
func HandleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	sub, opts := utils.SubCommand(i.ApplicationCommandData())
	switch sub {
	case "enable":
		return timeoutEnable(s, i, b, opts)
	case "disable":
		return timeoutDisable(s, i, b, opts)
	}
	return nil
}

func timeoutEnable(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	req, err := prepare(ctx, s, i, b, opts, mod.TierModeration, model.CaseTimeoutEnable, true)
	if err != nil {
		return err
	}
	defer req.release()

	until, err := mod.TimeoutExpiry(time.Now(), opts.String("duration"))
	if err != nil {
		return err
	}
	req.action.Until = until

	return execute(ctx, s, i, b, req, func() error {
		return s.GuildMemberTimeout(i.GuildID, req.action.Target.ID, &until, discordgo.WithAuditLogReason(req.action.Reason))
	})
}

func timeoutDisable(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	req, err := prepare(ctx, s, i, b, opts, mod.TierModeration, model.CaseTimeoutDisable, true)
	if err != nil {
		return err
	}
	defer req.release()

	return execute(ctx, s, i, b, req, func() error {
		return s.GuildMemberTimeout(i.GuildID, req.action.Target.ID, nil, discordgo.WithAuditLogReason(req.action.Reason))
	})
}

// HandleKick removes a member from the guild.
func HandleKick(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	opts := utils.Options(i.ApplicationCommandData().Options)
	req, err := prepare(ctx, s, i, b, opts, mod.TierMod, model.CaseKick, false)
	if err != nil {
		return err
	}
	defer req.release()

	return execute(ctx, s, i, b, req, func() error {
		notifyTarget(s, i, b, req.action)
		return s.GuildMemberDeleteWithReason(i.GuildID, req.action.Target.ID, req.action.Reason)
	})
}

// HandleBan bans a member, optionally deleting their recent messages.
func HandleBan(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	opts := utils.Options(i.ApplicationCommandData().Options)
	req, err := prepare(ctx, s, i, b, opts, mod.TierAdmin, model.CaseBan, false)
	if err != nil {
		return err
	}
	defer req.release()

	days, _ := opts.Int("delete_days")
	return execute(ctx, s, i, b, req, func() error {
		notifyTarget(s, i, b, req.action)
		return s.GuildBanCreateWithReason(i.GuildID, req.action.Target.ID, req.action.Reason, int(days))
	})
}

// prepare runs the guards shared by every moderation action, in order: role gate,
// hierarchy, mod log channel and the per-member lock.
func prepare(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap, tier mod.Tier, caseType model.CaseType, needModLog bool) (*request, error) {
	actor, err := common.Actor(s, i)
	if err != nil {
		return nil, err
	}
	if err := b.Gate.Authorize(ctx, i.GuildID, actor, tier); err != nil {
		return nil, err
	}

	targetMember, target, err := common.Target(s, i.GuildID, opts.ID("member"))
	if err != nil {
		return nil, err
	}
	if err := mod.AssertHigherRole(actor, target); err != nil {
		return nil, err
	}

	modLogID, err := b.Settings.ModLogChannel(ctx, i.GuildID)
	if err != nil && (needModLog || !errors.Is(err, mod.ErrModLogNotConfigured)) {
		return nil, err
	}

	release, ok := b.Locks.TryLock(i.GuildID, target.UserID)
	if !ok {
		return nil, common.ErrTargetBusy
	}

	reason := opts.String("reason")
	if reason == "" {
		reason = defaultReason
	}
	return &request{
		action: Action{
			Type:        caseType,
			ModeratorID: actor.UserID,
			Target:      targetMember.User,
			Reason:      reason,
		},
		modLogID: modLogID,
		release:  release,
	}, nil
}

// execute performs the Discord mutation, announces it and appends the case. The
// response is deferred first since the mutation and announcement both hit the API.
func execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, req *request, mutate func() error) error {
	logger := b.GetLogger().With(
		zap.String("guild_id", i.GuildID),
		zap.String("target_id", req.action.Target.ID),
		zap.String("type", string(req.action.Type)))

	if err := utils.DeferResponse(s, i, false); err != nil {
		return err
	}
	if err := mutate(); err != nil {
		logger.Warn("moderation action failed", zap.Error(err))
		utils.SendFollowUpError(s, i.Interaction, "I could not do that. Check that my role is above the member's and that I have the required permission.")
		return nil
	}

	embed := ActionEmbed(req.action, time.Now())
	if req.modLogID != "" {
		if _, err := s.ChannelMessageSendEmbed(req.modLogID, embed); err != nil {
			logger.Warn("failed to post to mod log", zap.String("channel_id", req.modLogID), zap.Error(err))
		}
	}

	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		logger.Warn("failed to announce moderation action", zap.Error(err))
		return nil
	}

	caseID, err := b.Ledger.RegisterCase(ctx, mod.CaseParams{
		GuildID:     i.GuildID,
		ModeratorID: req.action.ModeratorID,
		TargetID:    req.action.Target.ID,
		Reason:      req.action.Reason,
		Type:        req.action.Type,
		MessageLink: utils.MessageLink(i.GuildID, msg.ChannelID, msg.ID),
		ChannelID:   i.ChannelID,
	})
	if err != nil {
		logger.Error("failed to register case", zap.Error(err))
		utils.SendFollowUpError(s, i.Interaction, "The action was applied but the case could not be recorded.")
		return nil
	}
	metrics.CasesRegistered.WithLabelValues(string(req.action.Type)).Inc()

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{WithCaseNumber(embed, caseID)},
	})
	if err != nil {
		logger.Warn("failed to stamp case number", zap.Int64("case_id", caseID), zap.Error(err))
	}
	return nil
}

func notifyTarget(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, a Action) {
	if err := utils.SendPrivateEmbedMessage(s, a.Target.ID, DMEmbed(a, guildName(s, i.GuildID))); err != nil {
		b.GetLogger().Debug("could not DM moderation target", zap.String("user_id", a.Target.ID), zap.Error(err))
	}
}
