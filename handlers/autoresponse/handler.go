package autoresponse

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	ar "peacebot/autoresponse"
	"peacebot/bot"
	"peacebot/handlers/common"
	"peacebot/moderation"
	"peacebot/utils"
)

// mutating subcommands need Manage Server
var guarded = map[string]bool{
	"add":    true,
	"remove": true,
	"toggle": true,
	"import": true,
}

// HandleAutoResponseCommand dispatches the /autoresponse subcommands.
func HandleAutoResponseCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if i.GuildID == "" {
		return common.ErrNotInGuild
	}
	sub, opts := utils.SubCommand(i.ApplicationCommandData())

	if guarded[sub] {
		actor, err := common.Actor(s, i)
		if err != nil {
			return err
		}
		if err := moderation.RequireManageGuild(actor); err != nil {
			return err
		}
	}

	switch sub {
	case "list":
		return handleList(s, i, b)
	case "info":
		return handleInfo(s, i, b, opts)
	case "add":
		return handleAdd(s, i, b, opts)
	case "remove":
		return handleRemove(s, i, b, opts)
	case "toggle":
		return handleToggle(s, i, b, opts)
	case "export":
		return handleExport(s, i, b, opts)
	case "import":
		return handleImport(s, i, b, opts)
	}
	return nil
}

func handleList(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	listing, err := b.AutoResponses.List(ctx, i.GuildID)
	if err != nil {
		return err
	}
	if listing.Len() == 0 {
		utils.SendEphemeralResponse(s, i, "This server has no autoresponses yet.")
		return nil
	}

	name := i.GuildID
	if g, err := s.State.Guild(i.GuildID); err == nil {
		name = g.Name
	}
	utils.SendEmbedResponse(s, i, true, nil, ListEmbed(name, listing))
	return nil
}

func handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	record, err := b.AutoResponses.Info(ctx, i.GuildID, opts.String("trigger"))
	if err != nil {
		return err
	}
	utils.SendEmbedResponse(s, i, true, nil, InfoEmbed(*record))
	return nil
}

func handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	params := ar.AddParams{
		GuildID:   i.GuildID,
		Trigger:   opts.String("trigger"),
		Response:  opts.String("response"),
		CreatedBy: common.InvokerID(i),
	}
	if v := opts.Bool("extra_text"); v != nil {
		params.ExtraText = *v
	}
	if v := opts.Bool("mentions"); v != nil {
		params.Mentions = *v
	}
	if channelID := opts.ID("channel"); channelID != "" {
		params.AllowedChannelID = &channelID
	}

	record, err := b.AutoResponses.Add(ctx, params)
	if err != nil {
		return err
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("✅ Added autoresponse `%s`.", record.Trigger))
	return nil
}

func handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	record, err := b.AutoResponses.Remove(ctx, i.GuildID, opts.String("trigger"))
	if err != nil {
		return err
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("🗑️ Removed autoresponse `%s`.", record.Trigger))
	return nil
}

func handleToggle(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	record, err := b.AutoResponses.Toggle(ctx, i.GuildID, opts.String("trigger"), opts.Bool("enabled"))
	if err != nil {
		return err
	}
	state := "disabled"
	if record.Enabled {
		state = "enabled"
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Autoresponse `%s` is now %s.", record.Trigger, state))
	return nil
}

func handleExport(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	trigger := opts.String("trigger")
	token, err := b.AutoResponses.Export(ctx, i.GuildID, trigger)
	if err != nil {
		return err
	}
	what := "every autoresponse of this server"
	if strings.TrimSpace(trigger) != "" {
		what = fmt.Sprintf("`%s`", strings.ToLower(strings.TrimSpace(trigger)))
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Run `/autoresponse import token:%s` in another server to copy %s.", token, what))
	return nil
}

func handleImport(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts utils.OptionMap) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	result, err := b.AutoResponses.Import(ctx, i.GuildID, opts.String("token"))
	if err != nil {
		return err
	}
	utils.SendEphemeralResponse(s, i, ImportSummary(result))
	return nil
}
