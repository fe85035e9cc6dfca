package commands

import (
	"github.com/bwmarrin/discordgo"

	"peacebot/commands/defs"
)

// Definitions lists every application command the bot registers.
func Definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.AutoResponse,
		defs.Timeout,
		defs.Kick,
		defs.Ban,
		defs.Case,
		defs.Config,
		defs.ChangePrefix,
		defs.Ping,
		defs.SystemInfo,
		defs.Avatar,
		defs.ServerInfo,
		defs.UserInfo,
	}
}
