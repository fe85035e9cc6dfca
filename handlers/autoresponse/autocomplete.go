package autoresponse

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	ar "peacebot/autoresponse"
	"peacebot/bot"
	"peacebot/model"
)

// Discord accepts at most 25 choices
const maxChoices = 25

// TriggerChoices returns the triggers containing the typed text, in record order.
// Triggers too long for a choice value are left out.
func TriggerChoices(records []model.AutoResponse, typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(strings.TrimSpace(typed))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, maxChoices)
	for _, r := range records {
		if utf8.RuneCountInString(r.Trigger) > ar.MaxTriggerLength || !strings.Contains(r.Trigger, typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  r.Trigger,
			Value: r.Trigger,
		})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}

// HandleAutocomplete suggests triggers of the current guild for the "trigger" option.
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, opt := range data.Options[0].Options {
		if opt.Focused {
			focused = opt
		}
	}
	if focused == nil || focused.Name != "trigger" {
		return
	}

	ctx, cancel := b.CommandContext()
	defer cancel()

	var records []model.AutoResponse
	listing, err := b.AutoResponses.List(ctx, i.GuildID)
	if err != nil {
		b.GetLogger().Warn("autocomplete lookup failed", zap.String("guild_id", i.GuildID), zap.Error(err))
	} else {
		records = append(listing.Enabled, listing.Disabled...)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: TriggerChoices(records, focused.StringValue()),
		},
	})
	if err != nil {
		b.GetLogger().Warn("failed to respond to autocomplete", zap.Error(err))
	}
}
