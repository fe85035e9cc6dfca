package database

import (
	"context"
	"errors"
	"fmt"

	"peacebot/model"
)

// caseInsertAttempts bounds retries when two writers race for the same case number.
const caseInsertAttempts = 3

// CreateCase appends a case and returns the per-guild case number assigned to it.
func (s *Store) CreateCase(ctx context.Context, c model.Case) (int64, error) {
	query := s.db.Rebind(`INSERT INTO mod_logs (case_id, guild_id, moderator, target, reason, type, message, channel, timestamp)
		SELECT COALESCE(MAX(case_id), 0) + 1, ?, ?, ?, ?, ?, ?, ?, CAST(? AS BIGINT)
		FROM mod_logs WHERE guild_id = ?
		RETURNING case_id`)

	var err error
	for attempt := 0; attempt < caseInsertAttempts; attempt++ {
		var caseID int64
		err = s.db.QueryRowxContext(ctx, query,
			c.GuildID, c.Moderator, c.Target, c.Reason, string(c.Type), c.Message, c.Channel, c.Timestamp,
			c.GuildID,
		).Scan(&caseID)
		if err == nil {
			return caseID, nil
		}
		err = mapError(err)
		if !errors.Is(err, ErrUniqueViolation) {
			break
		}
	}
	return 0, fmt.Errorf("failed to insert case for guild %s: %w", c.GuildID, err)
}

func (s *Store) GetCase(ctx context.Context, guildID string, caseID int64) (*model.Case, error) {
	var c model.Case
	query := s.db.Rebind("SELECT * FROM mod_logs WHERE guild_id = ? AND case_id = ?")
	if err := s.db.GetContext(ctx, &c, query, guildID, caseID); err != nil {
		return nil, fmt.Errorf("failed to get case %d in guild %s: %w", caseID, guildID, mapError(err))
	}
	return &c, nil
}

func (s *Store) ListCases(ctx context.Context, guildID string) ([]model.Case, error) {
	var cases []model.Case
	query := s.db.Rebind("SELECT * FROM mod_logs WHERE guild_id = ? ORDER BY case_id")
	if err := s.db.SelectContext(ctx, &cases, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to list cases for guild %s: %w", guildID, err)
	}
	return cases, nil
}
