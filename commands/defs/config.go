package defs

import "github.com/bwmarrin/discordgo"

func roleSubCommand(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The role to use. Clears the setting when omitted.",
			},
		},
	}
}

var Config = &discordgo.ApplicationCommand{
	Name:                     "config",
	Description:              "Configure moderation for this server.",
	DefaultMemberPermissions: &manageGuild,
	Options: []*discordgo.ApplicationCommandOption{
		roleSubCommand("moderation", "Set the general moderation role."),
		roleSubCommand("mod", "Set the mod role."),
		roleSubCommand("admin", "Set the admin role."),
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "Show the moderation configuration.",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "clear",
			Description: "Clear every moderation role.",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "modlog",
			Description: "Set the moderation log channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The channel to log to. Clears the setting when omitted.",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
	},
}

var ChangePrefix = &discordgo.ApplicationCommand{
	Name:                     "changeprefix",
	Description:              "Change the prefix for the server.",
	DefaultMemberPermissions: &manageGuild,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "prefix",
			Description: "Custom prefix for the server.",
			Required:    true,
			MaxLength:   10,
		},
	},
}
