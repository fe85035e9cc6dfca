package defs

import "github.com/bwmarrin/discordgo"

var manageGuild int64 = discordgo.PermissionManageGuild

func triggerOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "trigger",
		Description:  "The trigger text.",
		Required:     required,
		Autocomplete: true,
	}
}

var AutoResponse = &discordgo.ApplicationCommand{
	Name:        "autoresponse",
	Description: "Manage automatic responses to trigger messages.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "List the autoresponses of this server.",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "info",
			Description: "Show details of an autoresponse.",
			Options:     []*discordgo.ApplicationCommandOption{triggerOption(true)},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "add",
			Description: "Add an autoresponse.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "trigger",
					Description: "The text that triggers the response.",
					Required:    true,
					MaxLength:   100,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "response",
					Description: "The response to send.",
					Required:    true,
					MaxLength:   2000,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "extra_text",
					Description: "Also fire when the trigger is one word of a longer message.",
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "mentions",
					Description: "Allow the response to ping users and roles.",
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Only respond in this channel.",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "remove",
			Description: "Remove an autoresponse.",
			Options:     []*discordgo.ApplicationCommandOption{triggerOption(true)},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "toggle",
			Description: "Enable or disable an autoresponse.",
			Options: []*discordgo.ApplicationCommandOption{
				triggerOption(true),
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "The new state. Flips the current state when omitted.",
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "export",
			Description: "Get a token another server can import.",
			Options:     []*discordgo.ApplicationCommandOption{triggerOption(false)},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "import",
			Description: "Import autoresponses with a token from another server.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "token",
					Description: "An autoresponse id or a server id.",
					Required:    true,
				},
			},
		},
	},
}
