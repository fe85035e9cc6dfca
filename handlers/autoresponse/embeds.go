package autoresponse

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	ar "peacebot/autoresponse"
	"peacebot/model"
	"peacebot/utils"
)

// embed field values are capped at 1024 characters
const maxFieldLen = 1024

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func triggerList(records []model.AutoResponse) string {
	if len(records) == 0 {
		return "None"
	}
	triggers := make([]string, 0, len(records))
	for _, r := range records {
		triggers = append(triggers, "`"+r.Trigger+"`")
	}
	return truncate(strings.Join(triggers, ", "), maxFieldLen)
}

// ListEmbed shows the enabled and disabled triggers of a guild.
func ListEmbed(guildName string, l ar.Listing) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Autoresponses for " + guildName,
		Color: utils.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Enabled (%d)", len(l.Enabled)), Value: triggerList(l.Enabled)},
			{Name: fmt.Sprintf("Disabled (%d)", len(l.Disabled)), Value: triggerList(l.Disabled)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: humanize.Comma(int64(l.Len())) + " total"},
	}
}

// InfoEmbed describes one record.
func InfoEmbed(r model.AutoResponse) *discordgo.MessageEmbed {
	channel := "Any channel"
	if r.AllowedChannelID != nil {
		channel = "<#" + *r.AllowedChannelID + ">"
	}
	color := utils.ColorSuccess
	if !r.Enabled {
		color = utils.ColorError
	}
	return &discordgo.MessageEmbed{
		Title: "Autoresponse: " + r.Trigger,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Response", Value: truncate(r.Response, maxFieldLen)},
			{Name: "Enabled", Value: yesNo(r.Enabled), Inline: true},
			{Name: "Match anywhere", Value: yesNo(r.ExtraText), Inline: true},
			{Name: "Mentions", Value: yesNo(r.Mentions), Inline: true},
			{Name: "Channel", Value: channel, Inline: true},
			{Name: "Created by", Value: "<@" + r.CreatedBy + ">", Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:R>", r.CreatedAt), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "ID: " + r.ID},
	}
}

// ImportSummary reports the outcome of an import.
func ImportSummary(res ar.ImportResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Imported %s %s.", humanize.Comma(int64(len(res.Imported))), english.PluralWord(len(res.Imported), "autoresponse", ""))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(&sb, " Skipped %d existing %s: `%s`", len(res.Skipped), english.PluralWord(len(res.Skipped), "trigger", ""), strings.Join(res.Skipped, "`, `"))
	}
	return truncate(sb.String(), 2000)
}
