package moderation

import (
	"github.com/bwmarrin/discordgo"

	"peacebot/bot"
	"peacebot/handlers/common"
	mod "peacebot/moderation"
	"peacebot/utils"
)

const casePageID = "case_page"

// HandleCase dispatches /case search and /case list. Both need the moderation tier.
func HandleCase(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	ctx, cancel := b.CommandContext()
	defer cancel()

	actor, err := common.Actor(s, i)
	if err != nil {
		return err
	}
	if err := b.Gate.Authorize(ctx, i.GuildID, actor, mod.TierModeration); err != nil {
		return err
	}

	sub, opts := utils.SubCommand(i.ApplicationCommandData())
	switch sub {
	case "search":
		caseID, _ := opts.Int("id")
		c, err := b.Ledger.FindCase(ctx, i.GuildID, caseID)
		if err != nil {
			return err
		}
		utils.SendEmbedResponse(s, i, false, nil, CaseEmbed(*c))
	case "list":
		cases, err := b.Ledger.ListCases(ctx, i.GuildID)
		if err != nil {
			return err
		}
		embed, components := CaseListPage(guildName(s, i.GuildID), i.GuildID, cases, 1)
		utils.SendEmbedResponse(s, i, false, components, embed)
	}
	return nil
}

// HandleCasePage turns the page of a case list. Custom id: case_page:<page>:<guildID>.
func HandleCasePage(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	page, args, err := utils.ParsePageCustomID(i.MessageComponentData().CustomID)
	if err != nil || len(args) == 0 || args[0] != i.GuildID {
		// the "n/m" label button and stale ids land here
		return nil
	}

	ctx, cancel := b.CommandContext()
	defer cancel()

	actor, err := common.Actor(s, i)
	if err != nil {
		return err
	}
	if err := b.Gate.Authorize(ctx, i.GuildID, actor, mod.TierModeration); err != nil {
		return err
	}

	cases, err := b.Ledger.ListCases(ctx, i.GuildID)
	if err != nil {
		return err
	}
	embed, components := CaseListPage(guildName(s, i.GuildID), i.GuildID, cases, page)
	utils.UpdateComponentMessage(s, i, components, embed)
	return nil
}

func guildName(s *discordgo.Session, guildID string) string {
	if g, err := s.State.Guild(guildID); err == nil {
		return g.Name
	}
	return guildID
}
