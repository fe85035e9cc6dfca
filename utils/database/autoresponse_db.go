package database

import (
	"context"
	"fmt"
	"strings"

	"peacebot/model"
)

const autoResponseColumns = "id, guild_id, trigger_text, response, enabled, allowed_channel_id, extra_text, mentions, created_by, created_at, updated_at"

const insertAutoResponse = `INSERT INTO autoresponses (id, guild_id, trigger_text, response, enabled, allowed_channel_id, extra_text, mentions, created_by, created_at, updated_at)
	VALUES (:id, :guild_id, :trigger_text, :response, :enabled, :allowed_channel_id, :extra_text, :mentions, :created_by, :created_at, :updated_at)`

// FindAutoResponses lists a guild's records in creation order.
func (s *Store) FindAutoResponses(ctx context.Context, guildID string, filter model.AutoResponseFilter) ([]model.AutoResponse, error) {
	query := "SELECT " + autoResponseColumns + " FROM autoresponses WHERE guild_id = ?"
	args := []interface{}{guildID}
	if filter.Enabled != nil {
		query += " AND enabled = ?"
		args = append(args, *filter.Enabled)
	}
	// records created in the same second keep their insertion order
	query += " ORDER BY created_at, " + s.insertOrder()

	var records []model.AutoResponse
	if err := s.db.SelectContext(ctx, &records, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to find autoresponses for guild %s: %w", guildID, err)
	}
	return records, nil
}

// insertOrder names the column that grows with every insert: sqlite's implicit rowid,
// or the seq column on PostgreSQL.
func (s *Store) insertOrder() string {
	if s.driver == DriverPostgres {
		return "seq"
	}
	return "rowid"
}

func (s *Store) GetAutoResponse(ctx context.Context, id string) (*model.AutoResponse, error) {
	var record model.AutoResponse
	err := s.db.GetContext(ctx, &record, s.db.Rebind("SELECT "+autoResponseColumns+" FROM autoresponses WHERE id = ?"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get autoresponse %s: %w", id, mapError(err))
	}
	return &record, nil
}

// GetAutoResponseByTrigger looks a trigger up case-insensitively.
func (s *Store) GetAutoResponseByTrigger(ctx context.Context, guildID, trigger string) (*model.AutoResponse, error) {
	var record model.AutoResponse
	query := s.db.Rebind("SELECT " + autoResponseColumns + " FROM autoresponses WHERE guild_id = ? AND trigger_text = ?")
	if err := s.db.GetContext(ctx, &record, query, guildID, strings.ToLower(trigger)); err != nil {
		return nil, fmt.Errorf("failed to get autoresponse %q in guild %s: %w", trigger, guildID, mapError(err))
	}
	return &record, nil
}

func (s *Store) ExistsAutoResponse(ctx context.Context, guildID, trigger string) (bool, error) {
	var count int
	query := s.db.Rebind("SELECT COUNT(*) FROM autoresponses WHERE guild_id = ? AND trigger_text = ?")
	if err := s.db.GetContext(ctx, &count, query, guildID, strings.ToLower(trigger)); err != nil {
		return false, fmt.Errorf("failed to check autoresponse %q in guild %s: %w", trigger, guildID, err)
	}
	return count > 0, nil
}

func (s *Store) CreateAutoResponse(ctx context.Context, record model.AutoResponse) error {
	if _, err := s.db.NamedExecContext(ctx, insertAutoResponse, record); err != nil {
		return fmt.Errorf("failed to insert autoresponse %q: %w", record.Trigger, mapError(err))
	}
	return nil
}

// CreateAutoResponses inserts every record in one transaction; either all rows land or none do.
func (s *Store) CreateAutoResponses(ctx context.Context, records []model.AutoResponse) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		if _, err := tx.NamedExecContext(ctx, insertAutoResponse, record); err != nil {
			return fmt.Errorf("failed to insert autoresponse %q: %w", record.Trigger, mapError(err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit autoresponses: %w", err)
	}
	return nil
}

func (s *Store) UpdateAutoResponseEnabled(ctx context.Context, id string, enabled bool, updatedAt int64) error {
	query := s.db.Rebind("UPDATE autoresponses SET enabled = ?, updated_at = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, query, enabled, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update autoresponse %s: %w", id, err)
	}
	return expectAffected(result, "autoresponse "+id)
}

func (s *Store) DeleteAutoResponse(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM autoresponses WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete autoresponse %s: %w", id, err)
	}
	return expectAffected(result, "autoresponse "+id)
}
