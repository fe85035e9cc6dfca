package moderation

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"peacebot/model"
	"peacebot/utils"
)

const casesPerPage = 5

// Action is a moderation action about to be announced.
type Action struct {
	Type        model.CaseType
	ModeratorID string
	Target      *discordgo.User
	Reason      string
	// Until is only set for timeouts.
	Until time.Time
}

func actionColor(t model.CaseType) int {
	switch t {
	case model.CaseTimeoutDisable:
		return utils.ColorSuccess
	case model.CaseBan:
		return utils.ColorError
	default:
		return utils.ColorAlert
	}
}

func actionTitle(t model.CaseType) string {
	switch t {
	case model.CaseTimeoutEnable:
		return "Member Timed Out"
	case model.CaseTimeoutDisable:
		return "Timeout Removed"
	case model.CaseKick:
		return "Member Kicked"
	default:
		return "Member Banned"
	}
}

// ActionEmbed is posted both to the mod log and as the command response.
func ActionEmbed(a Action, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: actionTitle(a.Type),
		Color: actionColor(a.Type),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("<@%s> (`%s`)", a.Target.ID, a.Target.ID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", a.ModeratorID), Inline: true},
			{Name: "Reason", Value: a.Reason},
		},
		Timestamp: now.Format(time.RFC3339),
	}
	if !a.Until.IsZero() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Expires",
			Value: fmt.Sprintf("<t:%d:F> (%s)", a.Until.Unix(), humanize.RelTime(a.Until, now, "ago", "from now")),
		})
	}
	if avatar := a.Target.AvatarURL("128"); avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}
	return embed
}

// WithCaseNumber stamps the case number into the announcement footer.
func WithCaseNumber(embed *discordgo.MessageEmbed, caseID int64) *discordgo.MessageEmbed {
	stamped := *embed
	stamped.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Case #%d", caseID)}
	return &stamped
}

// DMEmbed tells the target what happened to them.
func DMEmbed(a Action, guildName string) *discordgo.MessageEmbed {
	verb := "kicked from"
	if a.Type == model.CaseBan {
		verb = "banned from"
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("You were %s %s", verb, guildName),
		Color:       actionColor(a.Type),
		Description: "**Reason:** " + a.Reason,
	}
}

// CaseEmbed renders a single case.
func CaseEmbed(c model.Case) *discordgo.MessageEmbed {
	description := "No announcement recorded."
	if c.Message != "" {
		description = fmt.Sprintf("[Jump to Message!](%s)", c.Message)
	}
	channel := c.Channel
	if channel == "" {
		channel = "Unknown"
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Case | No. %d", c.Type, c.CaseID),
		Description: description,
		Color:       utils.ColorGeneric,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Moderator", Value: c.Moderator, Inline: true},
			{Name: "Target", Value: c.Target, Inline: true},
			{Name: "Reason", Value: c.Reason, Inline: true},
			{Name: "Channel", Value: channel, Inline: true},
			{Name: "Guild ID", Value: c.GuildID, Inline: true},
			{Name: "Time", Value: fmt.Sprintf("<t:%d:F> • <t:%d:R>", c.Timestamp, c.Timestamp), Inline: true},
		},
	}
}

// CaseListPage renders one page of the case list together with its buttons.
func CaseListPage(guildName, guildID string, cases []model.Case, page int) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	start, end, page, totalPages := utils.PageBounds(len(cases), casesPerPage, page)

	var sb strings.Builder
	for _, c := range cases[start:end] {
		fmt.Fprintf(&sb, "**#%d** - <t:%d:R> -> %s\n**Type**: `%s`\n", c.CaseID, c.Timestamp, c.Moderator, c.Type)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Moderation Cases for " + guildName,
		Description: sb.String(),
		Color:       utils.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Cases %d-%d of %s", start+1, end, humanize.Comma(int64(len(cases)))),
		},
	}
	return embed, utils.CreatePaginationComponents(page, totalPages, casePageID, guildID)
}
