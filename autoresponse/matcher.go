package autoresponse

import (
	"context"
	"strings"

	"peacebot/model"
)

// MatchesContent applies the trigger rule to a message body. In extra-text mode the
// trigger must equal one whitespace-separated word of the message, otherwise the
// whole message must equal the trigger. Both comparisons ignore case.
func MatchesContent(r model.AutoResponse, content string) bool {
	trigger := strings.ToLower(r.Trigger)
	content = strings.ToLower(content)
	if !r.ExtraText {
		return trigger == content
	}
	for _, word := range strings.Fields(content) {
		if word == trigger {
			return true
		}
	}
	return false
}

// AllowedIn reports whether the record may fire in channelID.
func AllowedIn(r model.AutoResponse, channelID string) bool {
	return r.AllowedChannelID == nil || *r.AllowedChannelID == channelID
}

// Fires combines every predicate a record must satisfy to answer a message.
func Fires(r model.AutoResponse, content, channelID string) bool {
	return r.Enabled && AllowedIn(r, channelID) && MatchesContent(r, content)
}

// Matcher picks the auto-response, if any, that answers a guild message.
type Matcher struct {
	store Store
}

func NewMatcher(store Store) *Matcher {
	return &Matcher{store: store}
}

// Match returns the oldest enabled record of the guild that fires for the message,
// or nil when none does.
func (m *Matcher) Match(ctx context.Context, content, guildID, channelID string) (*model.AutoResponse, error) {
	if content == "" {
		return nil, nil
	}

	enabled := true
	records, err := m.store.FindAutoResponses(ctx, guildID, model.AutoResponseFilter{Enabled: &enabled})
	if err != nil {
		return nil, err
	}
	for i := range records {
		if Fires(records[i], content, channelID) {
			return &records[i], nil
		}
	}
	return nil, nil
}
