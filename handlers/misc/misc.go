package misc

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"peacebot/bot"
	"peacebot/handlers/common"
	"peacebot/utils"
)

func HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	utils.SendPublicResponse(s, i, fmt.Sprintf("🏓 Pong! Latency: `%s`", s.HeartbeatLatency().Round(time.Millisecond)))
	return nil
}

// HandleAvatar shows the avatar of the given user, or of the caller.
func HandleAvatar(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	opts := utils.Options(i.ApplicationCommandData().Options)
	var user *discordgo.User
	if opt, ok := opts["user"]; ok {
		user = opt.UserValue(s)
	}
	if user == nil {
		if i.Member != nil {
			user = i.Member.User
		} else {
			user = i.User
		}
	}
	utils.SendEmbedResponse(s, i, false, nil, AvatarEmbed(user))
	return nil
}

func AvatarEmbed(user *discordgo.User) *discordgo.MessageEmbed {
	url := user.AvatarURL("1024")
	return &discordgo.MessageEmbed{
		Title:       "Avatar of " + user.Username,
		Description: fmt.Sprintf("[Open in browser](%s)", url),
		Color:       utils.ColorGeneric,
		Image:       &discordgo.MessageEmbedImage{URL: url},
	}
}

func HandleServerInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if i.GuildID == "" {
		return common.ErrNotInGuild
	}
	g, err := s.State.Guild(i.GuildID)
	if err != nil {
		if g, err = s.GuildWithCounts(i.GuildID); err != nil {
			return err
		}
	}
	utils.SendEmbedResponse(s, i, false, nil, ServerInfoEmbed(g, time.Now()))
	return nil
}

func ServerInfoEmbed(g *discordgo.Guild, now time.Time) *discordgo.MessageEmbed {
	created, _ := discordgo.SnowflakeTimestamp(g.ID)
	members := g.MemberCount
	if members == 0 {
		members = g.ApproximateMemberCount
	}
	embed := &discordgo.MessageEmbed{
		Title: g.Name,
		Color: utils.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: "<@" + g.OwnerID + ">", Inline: true},
			{Name: "Members", Value: humanize.Comma(int64(members)), Inline: true},
			{Name: "Roles", Value: humanize.Comma(int64(len(g.Roles))), Inline: true},
			{Name: "Channels", Value: humanize.Comma(int64(len(g.Channels))), Inline: true},
			{Name: "Boosts", Value: fmt.Sprintf("%d (tier %d)", g.PremiumSubscriptionCount, g.PremiumTier), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:D> (%s)", created.Unix(), humanize.RelTime(created, now, "ago", "from now")), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "ID: " + g.ID},
	}
	if icon := g.IconURL("256"); icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: icon}
	}
	return embed
}

// HandleUserInfo describes the given member, or the caller.
func HandleUserInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if i.GuildID == "" || i.Member == nil {
		return common.ErrNotInGuild
	}
	member := i.Member
	if opt, ok := utils.Options(i.ApplicationCommandData().Options)["user"]; ok {
		userID := opt.Value.(string)
		if userID != member.User.ID {
			m, err := common.GuildMember(s, i.GuildID, userID)
			if err != nil {
				return err
			}
			member = m
		}
	}

	roles, err := common.GuildRoles(s, i.GuildID)
	if err != nil {
		return err
	}
	utils.SendEmbedResponse(s, i, false, nil, UserInfoEmbed(member, roles, time.Now()))
	return nil
}

// memberRoles returns the member's roles, highest position first.
func memberRoles(m *discordgo.Member, guildRoles []*discordgo.Role) []*discordgo.Role {
	held := make(map[string]struct{}, len(m.Roles))
	for _, id := range m.Roles {
		held[id] = struct{}{}
	}
	var out []*discordgo.Role
	for _, r := range guildRoles {
		if _, ok := held[r.ID]; ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Position > out[b].Position })
	return out
}

// joinRoles fits as many mentions as limit allows and counts the rest.
func joinRoles(mentions []string, limit int) string {
	if len(mentions) == 0 {
		return "None"
	}
	more := func(k int) string { return fmt.Sprintf(" +%d more", k) }
	var sb strings.Builder
	for n, m := range mentions {
		need := sb.Len() + len(m)
		if n > 0 {
			need++
		}
		// room for the suffix if later mentions get cut
		if rest := len(mentions) - n - 1; rest > 0 {
			need += len(more(rest))
		}
		if need > limit {
			sb.WriteString(more(len(mentions) - n))
			break
		}
		if n > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m)
	}
	return strings.TrimSpace(sb.String())
}

func stamp(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return fmt.Sprintf("<t:%d:F> (%s)", t.Unix(), humanize.RelTime(t, now, "ago", "from now"))
}

func UserInfoEmbed(m *discordgo.Member, guildRoles []*discordgo.Role, now time.Time) *discordgo.MessageEmbed {
	user := m.User
	created, _ := discordgo.SnowflakeTimestamp(user.ID)
	roles := memberRoles(m, guildRoles)

	top, color := "None", utils.ColorInfo
	mentions := make([]string, 0, len(roles))
	for _, r := range roles {
		mentions = append(mentions, "<@&"+r.ID+">")
	}
	if len(roles) > 0 {
		top = mentions[0]
		if roles[0].Color != 0 {
			color = roles[0].Color
		}
	}
	roleList := joinRoles(mentions, 1024)

	name := user.Username
	if m.Nick != "" {
		name = m.Nick + " (" + user.Username + ")"
	}
	return &discordgo.MessageEmbed{
		Title:     name,
		Color:     color,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: user.Mention(), Inline: true},
			{Name: "Top Role", Value: top, Inline: true},
			{Name: "Account Created", Value: stamp(created, now)},
			{Name: "Joined Server", Value: stamp(m.JoinedAt, now)},
			{Name: fmt.Sprintf("Roles (%d)", len(roles)), Value: roleList},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "ID: " + user.ID},
	}
}
