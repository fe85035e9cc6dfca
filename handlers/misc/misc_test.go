package misc

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peacebot/utils"
)

func TestSystemInfoEmbed(t *testing.T) {
	now := time.Now()
	st := SystemStats{
		Platform:     "debian 12",
		CPUCount:     8,
		MemUsed:      2 << 30,
		MemTotal:     8 << 30,
		MemPercent:   25,
		Goroutines:   1234,
		DBDriver:     "sqlite3",
		DBLatency:    150 * time.Microsecond,
		Uptime:       3 * 24 * time.Hour,
		CachedGuilds: 2,
		Commands:     14,
	}
	embed := SystemInfoEmbed(st, now)
	require.Len(t, embed.Fields, 13)
	assert.Equal(t, "Unknown", embed.Fields[1].Value)
	assert.Equal(t, "25.0% (2.0 GiB / 8.0 GiB)", embed.Fields[5].Value)
	assert.Equal(t, "1,234", embed.Fields[7].Value)
	assert.Equal(t, "sqlite3 (150µs)", embed.Fields[8].Value)
	assert.Equal(t, "14", embed.Fields[12].Value)
	assert.True(t, strings.HasPrefix(embed.Footer.Text, "Host up since 3 days ago"))
	assert.Equal(t, utils.ColorInfo, embed.Color)

	st.DBErr = errors.New("down")
	embed = SystemInfoEmbed(st, now)
	assert.Equal(t, "sqlite3 (unreachable)", embed.Fields[8].Value)
	assert.Equal(t, utils.ColorAlert, embed.Color)
}

func TestServerInfoEmbed(t *testing.T) {
	// snowflake of 2021-01-01T00:00:00Z
	g := &discordgo.Guild{ID: "794354201395200000", Name: "Peace", OwnerID: "7", ApproximateMemberCount: 1500}
	created, err := discordgo.SnowflakeTimestamp(g.ID)
	require.NoError(t, err)

	embed := ServerInfoEmbed(g, created.AddDate(1, 0, 0))
	assert.Equal(t, "Peace", embed.Title)
	assert.Equal(t, "1,500", embed.Fields[1].Value)
	assert.Contains(t, embed.Fields[5].Value, "ago")
	assert.Nil(t, embed.Thumbnail)
}

func TestAvatarEmbed(t *testing.T) {
	embed := AvatarEmbed(&discordgo.User{ID: "42", Username: "kai", Avatar: "abc"})
	assert.Equal(t, "Avatar of kai", embed.Title)
	assert.Contains(t, embed.Image.URL, "avatars/42/abc")
}

func TestUserInfoEmbed(t *testing.T) {
	// snowflake of 2021-01-01T00:00:00Z
	user := &discordgo.User{ID: "794354201395200000", Username: "kai", Avatar: "abc"}
	created, err := discordgo.SnowflakeTimestamp(user.ID)
	require.NoError(t, err)
	now := created.AddDate(2, 0, 0)
	guildRoles := []*discordgo.Role{
		{ID: "10", Position: 1},
		{ID: "20", Position: 5, Color: 0x123456},
		{ID: "30", Position: 3},
	}
	m := &discordgo.Member{
		User:     user,
		Nick:     "Kai",
		Roles:    []string{"10", "20", "30", "99"},
		JoinedAt: now.AddDate(0, -3, 0),
	}

	embed := UserInfoEmbed(m, guildRoles, now)
	assert.Equal(t, "Kai (kai)", embed.Title)
	assert.Equal(t, 0x123456, embed.Color)
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "<@794354201395200000>", embed.Fields[0].Value)
	assert.Equal(t, "<@&20>", embed.Fields[1].Value)
	assert.Contains(t, embed.Fields[2].Value, "<t:1609459200:F>")
	assert.Contains(t, embed.Fields[2].Value, "2 years ago")
	assert.Contains(t, embed.Fields[3].Value, "3 months ago")
	assert.NotContains(t, embed.Fields[3].Value, "from now")
	// unknown role ids are dropped, the rest ordered by position
	assert.Equal(t, "Roles (3)", embed.Fields[4].Name)
	assert.Equal(t, "<@&20> <@&30> <@&10>", embed.Fields[4].Value)
	assert.Contains(t, embed.Thumbnail.URL, "avatars/794354201395200000/abc")
}

func TestUserInfoEmbed_NoRoles(t *testing.T) {
	m := &discordgo.Member{User: &discordgo.User{ID: "794354201395200000", Username: "kai"}}
	embed := UserInfoEmbed(m, nil, time.Now())
	assert.Equal(t, "kai", embed.Title)
	assert.Equal(t, utils.ColorInfo, embed.Color)
	assert.Equal(t, "None", embed.Fields[1].Value)
	assert.Equal(t, "Unknown", embed.Fields[3].Value)
	assert.Equal(t, "None", embed.Fields[4].Value)
}

func TestJoinRoles(t *testing.T) {
	assert.Equal(t, "<@&1> <@&2>", joinRoles([]string{"<@&1>", "<@&2>"}, 1024))

	mentions := make([]string, 250)
	for n := range mentions {
		mentions[n] = fmt.Sprintf("<@&%d>", 1000000000000000000+n)
	}
	got := joinRoles(mentions, 1024)
	assert.LessOrEqual(t, len(got), 1024)
	assert.True(t, strings.HasPrefix(got, mentions[0]+" "))
	assert.Regexp(t, ` \+\d+ more$`, got)

	shown := strings.Count(got, "<@&")
	assert.True(t, strings.HasSuffix(got, fmt.Sprintf(" +%d more", len(mentions)-shown)))
}
