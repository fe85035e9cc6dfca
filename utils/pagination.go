package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CreatePaginationComponents creates a set of pagination buttons. Custom ids take
// the form prefix:page[:arg...].
func CreatePaginationComponents(currentPage, totalPages int, customIDPrefix string, args ...string) []discordgo.MessageComponent {
	if totalPages <= 1 {
		return nil
	}

	buttonArgs := ""
	for _, arg := range args {
		buttonArgs += ":" + arg
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.PrimaryButton,
					Disabled: currentPage == 1,
					CustomID: fmt.Sprintf("%s:%d%s", customIDPrefix, currentPage-1, buttonArgs),
				},
				discordgo.Button{
					Label:    fmt.Sprintf("%d/%d", currentPage, totalPages),
					Style:    discordgo.SecondaryButton,
					Disabled: true,
					CustomID: fmt.Sprintf("%s:noop", customIDPrefix),
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.PrimaryButton,
					Disabled: currentPage == totalPages,
					CustomID: fmt.Sprintf("%s:%d%s", customIDPrefix, currentPage+1, buttonArgs),
				},
			},
		},
	}
}

// ParsePageCustomID extracts the page and extra args from a pagination custom id.
func ParsePageCustomID(customID string) (page int, args []string, err error) {
	parts := strings.Split(customID, ":")
	if len(parts) < 2 {
		return 0, nil, fmt.Errorf("malformed pagination id %q", customID)
	}
	page, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, nil, fmt.Errorf("malformed pagination id %q: %w", customID, err)
	}
	return page, parts[2:], nil
}

// PageBounds clamps page to [1, totalPages] and returns the slice bounds of that page.
func PageBounds(total, perPage, page int) (start, end, clamped, totalPages int) {
	totalPages = (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start = (page - 1) * perPage
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end, page, totalPages
}
