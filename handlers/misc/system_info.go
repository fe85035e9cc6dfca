package misc

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"peacebot/bot"
	"peacebot/utils"
)

// SystemStats is a snapshot of the host and the bot process.
type SystemStats struct {
	Platform      string
	Kernel        string
	Uptime        time.Duration
	CPUCount      int
	CPUPercent    float64
	MemUsed       uint64
	MemTotal      uint64
	MemPercent    float64
	Goroutines    int
	HeapAlloc     uint64
	DBDriver      string
	DBLatency     time.Duration
	DBErr         error
	Latency       time.Duration
	CachedGuilds  int
	CachedMembers int
	Commands      int
}

func collectStats(ctx context.Context, s *discordgo.Session, b *bot.Bot) SystemStats {
	stats := SystemStats{
		Goroutines: runtime.NumGoroutine(),
		Latency:    s.HeartbeatLatency(),
		DBDriver:   b.Store.Driver(),
		Commands:   b.RegisteredCommands(),
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.CPUCount = n
	}
	if p, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(p) > 0 {
		stats.CPUPercent = p[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemUsed, stats.MemTotal, stats.MemPercent = vm.Used, vm.Total, vm.UsedPercent
	}
	if h, err := host.InfoWithContext(ctx); err == nil {
		stats.Platform = fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion)
		stats.Kernel = h.KernelVersion
		stats.Uptime = time.Duration(h.Uptime) * time.Second
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	stats.HeapAlloc = ms.HeapAlloc

	start := time.Now()
	stats.DBErr = b.Store.Ping(ctx)
	stats.DBLatency = time.Since(start)

	if s.State != nil {
		s.State.RLock()
		stats.CachedGuilds = len(s.State.Guilds)
		for _, g := range s.State.Guilds {
			stats.CachedMembers += g.MemberCount
		}
		s.State.RUnlock()
	}
	return stats
}

// SystemInfoEmbed renders stats taken at now.
func SystemInfoEmbed(st SystemStats, now time.Time) *discordgo.MessageEmbed {
	db := fmt.Sprintf("%s (%s)", st.DBDriver, st.DBLatency.Round(time.Microsecond))
	color := utils.ColorInfo
	if st.DBErr != nil {
		db = st.DBDriver + " (unreachable)"
		color = utils.ColorAlert
	}
	return &discordgo.MessageEmbed{
		Title: "System Information",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS", Value: orUnknown(st.Platform), Inline: true},
			{Name: "🔧 Kernel", Value: orUnknown(st.Kernel), Inline: true},
			{Name: "🐹 Go", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPUs", Value: fmt.Sprintf("%d", st.CPUCount), Inline: true},
			{Name: "🔥 CPU Usage", Value: fmt.Sprintf("%.1f%%", st.CPUPercent), Inline: true},
			{Name: "🧠 Memory", Value: fmt.Sprintf("%.1f%% (%s / %s)", st.MemPercent, humanize.IBytes(st.MemUsed), humanize.IBytes(st.MemTotal)), Inline: true},
			{Name: "📦 Heap", Value: humanize.IBytes(st.HeapAlloc), Inline: true},
			{Name: "🚀 Goroutines", Value: humanize.Comma(int64(st.Goroutines)), Inline: true},
			{Name: "🗃️ Database", Value: db, Inline: true},
			{Name: "⏱️ WebSocket Latency", Value: st.Latency.Round(time.Millisecond).String(), Inline: true},
			{Name: "🌍 Servers", Value: humanize.Comma(int64(st.CachedGuilds)), Inline: true},
			{Name: "👥 Members", Value: humanize.Comma(int64(st.CachedMembers)), Inline: true},
			{Name: "⚙️ Commands", Value: humanize.Comma(int64(st.Commands)), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Host up since %s", humanize.Time(now.Add(-st.Uptime))),
		},
		Timestamp: now.Format(time.RFC3339),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func HandleSystemInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	// host lookups can exceed the interaction deadline
	if err := utils.DeferResponse(s, i, false); err != nil {
		return err
	}
	ctx, cancel := b.CommandContext()
	defer cancel()

	embed := SystemInfoEmbed(collectStats(ctx, s, b), time.Now())
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		return err
	}
	return nil
}
