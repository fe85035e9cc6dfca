package model

// AutoResponse is a per-guild trigger/response pair. The table is named 'autoresponses'.
type AutoResponse struct {
	// ID is a UUID and doubles as the single-record export token.
	ID      string `db:"id"`
	GuildID string `db:"guild_id"`
	// Trigger is always stored lower-cased.
	Trigger          string  `db:"trigger_text"`
	Response         string  `db:"response"`
	Enabled          bool    `db:"enabled"`
	AllowedChannelID *string `db:"allowed_channel_id"`
	// ExtraText fires the trigger when it is one word of a longer message.
	ExtraText bool   `db:"extra_text"`
	Mentions  bool   `db:"mentions"`
	CreatedBy string `db:"created_by"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

// AutoResponseFilter narrows FindAutoResponses. A nil Enabled returns every record.
type AutoResponseFilter struct {
	Enabled *bool
}
