package defs

import "github.com/bwmarrin/discordgo"

func memberOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "member",
		Description: description,
		Required:    true,
	}
}

func reasonOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: "Reason for the action.",
		MaxLength:   512,
	}
}

var Timeout = &discordgo.ApplicationCommand{
	Name:        "timeout",
	Description: "Time a member out or lift a timeout.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "enable",
			Description: "Time a member out.",
			Options: []*discordgo.ApplicationCommandOption{
				memberOption("The member to time out."),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "duration",
					Description: "How long, e.g. 10m, 1h30m or 2w (max 28d).",
					Required:    true,
				},
				reasonOption(),
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "disable",
			Description: "Lift a member's timeout.",
			Options: []*discordgo.ApplicationCommandOption{
				memberOption("The member to release."),
				reasonOption(),
			},
		},
	},
}

var Kick = &discordgo.ApplicationCommand{
	Name:        "kick",
	Description: "Kick a member from the server.",
	Options: []*discordgo.ApplicationCommandOption{
		memberOption("The member to kick."),
		reasonOption(),
	},
}

var Ban = &discordgo.ApplicationCommand{
	Name:        "ban",
	Description: "Ban a member from the server.",
	Options: []*discordgo.ApplicationCommandOption{
		memberOption("The member to ban."),
		reasonOption(),
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "delete_days",
			Description: "Days of their messages to delete.",
			MinValue:    new(float64),
			MaxValue:    7,
		},
	},
}

var Case = &discordgo.ApplicationCommand{
	Name:        "case",
	Description: "Look up moderation cases.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "search",
			Description: "Show a single case.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "The case number.",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "List every case of this server.",
		},
	},
}
