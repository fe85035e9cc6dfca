package admin

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"peacebot/bot"
	"peacebot/handlers/common"
	"peacebot/model"
	"peacebot/moderation"
	"peacebot/utils"
)

func requireManageGuild(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	actor, err := common.Actor(s, i)
	if err != nil {
		return err
	}
	return moderation.RequireManageGuild(actor)
}

// HandleConfigCommand dispatches the /config subcommands.
func HandleConfigCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := requireManageGuild(s, i); err != nil {
		return err
	}

	ctx, cancel := b.CommandContext()
	defer cancel()

	sub, opts := utils.SubCommand(i.ApplicationCommandData())
	if tier, ok := moderation.ParseTier(sub); ok {
		var roleID *string
		if id := opts.ID("role"); id != "" {
			roleID = &id
		}
		if _, err := b.Settings.SetRole(ctx, i.GuildID, tier, roleID); err != nil {
			return err
		}
		if roleID == nil {
			utils.SendEphemeralResponse(s, i, fmt.Sprintf("Cleared the %s role.", tier))
		} else {
			utils.SendEphemeralResponse(s, i, fmt.Sprintf("The %s role is now <@&%s>.", tier, *roleID))
		}
		return nil
	}

	switch sub {
	case "list":
		cfg, err := b.Settings.GuildConfig(ctx, i.GuildID)
		if err != nil {
			return err
		}
		roles, err := b.Settings.Roles(ctx, i.GuildID)
		if err != nil {
			return err
		}
		utils.SendEmbedResponse(s, i, true, nil, SettingsEmbed(*cfg, roles))
	case "clear":
		if err := b.Settings.ClearRoles(ctx, i.GuildID); err != nil {
			return err
		}
		utils.SendEphemeralResponse(s, i, "Cleared every moderation role.")
	case "modlog":
		var channelID *string
		if id := opts.ID("channel"); id != "" {
			channelID = &id
		}
		if err := b.Settings.SetModLogChannel(ctx, i.GuildID, channelID); err != nil {
			return err
		}
		if channelID == nil {
			utils.SendEphemeralResponse(s, i, "Mod log channel cleared.")
		} else {
			utils.SendEphemeralResponse(s, i, fmt.Sprintf("Moderation actions will be logged in <#%s>.", *channelID))
		}
	}
	return nil
}

// HandleChangePrefix sets the guild's command prefix.
func HandleChangePrefix(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := requireManageGuild(s, i); err != nil {
		return err
	}

	ctx, cancel := b.CommandContext()
	defer cancel()

	prefix := utils.Options(i.ApplicationCommandData().Options).String("prefix")
	if err := b.Settings.SetPrefix(ctx, i.GuildID, prefix); err != nil {
		return err
	}
	utils.SendPublicResponse(s, i, fmt.Sprintf("Prefix changed to `%s`.", prefix))
	return nil
}

func roleValue(id *string) string {
	if id == nil {
		return "Not set"
	}
	return "<@&" + *id + ">"
}

// SettingsEmbed summarizes the moderation configuration of a guild.
func SettingsEmbed(cfg model.GuildConfig, roles model.ModerationRoles) *discordgo.MessageEmbed {
	modLog := "Not set"
	if cfg.ModLogChannelID != nil {
		modLog = "<#" + *cfg.ModLogChannelID + ">"
	}
	color := utils.ColorSuccess
	if !roles.Complete() {
		color = utils.ColorAlert
	}
	embed := &discordgo.MessageEmbed{
		Title: "Server Configuration",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prefix", Value: "`" + cfg.Prefix + "`", Inline: true},
			{Name: "Mod Log", Value: modLog, Inline: true},
			{Name: "Admin Role", Value: roleValue(roles.AdminRoleID)},
			{Name: "Mod Role", Value: roleValue(roles.ModRoleID)},
			{Name: "Moderation Role", Value: roleValue(roles.ModerationRoleID)},
		},
	}
	if !roles.Complete() {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Moderation commands stay locked until all three roles are set."}
	}
	return embed
}
