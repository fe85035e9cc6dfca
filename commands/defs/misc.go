package defs

import "github.com/bwmarrin/discordgo"

var Ping = &discordgo.ApplicationCommand{
	Name:        "ping",
	Description: "Check the bot's latency.",
}

var SystemInfo = &discordgo.ApplicationCommand{
	Name:        "system-info",
	Description: "Show host and runtime statistics.",
}

var Avatar = &discordgo.ApplicationCommand{
	Name:        "avatar",
	Description: "Show a user's avatar.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Whose avatar to show. Defaults to you.",
		},
	},
}

var ServerInfo = &discordgo.ApplicationCommand{
	Name:        "serverinfo",
	Description: "Show information about this server.",
}

var UserInfo = &discordgo.ApplicationCommand{
	Name:        "userinfo",
	Description: "Show account and membership details of a user.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Who to look up. Defaults to you.",
		},
	},
}
