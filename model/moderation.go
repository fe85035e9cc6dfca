package model

// CaseType names the moderation action recorded by a case.
type CaseType string

const (
	CaseTimeoutEnable  CaseType = "TimeOut Enable"
	CaseTimeoutDisable CaseType = "TimeOut Disable"
	CaseKick           CaseType = "Kick"
	CaseBan            CaseType = "Ban"
)

// Case is an append-only moderation log entry. The table is named 'mod_logs'.
// Moderator and Target hold user mentions, Channel a channel mention and
// Message the jump link of the announcement.
type Case struct {
	ID        int64    `db:"id"`
	CaseID    int64    `db:"case_id"`
	GuildID   string   `db:"guild_id"`
	Moderator string   `db:"moderator"`
	Target    string   `db:"target"`
	Reason    string   `db:"reason"`
	Type      CaseType `db:"type"`
	Message   string   `db:"message"`
	Channel   string   `db:"channel"`
	Timestamp int64    `db:"timestamp"`
}
