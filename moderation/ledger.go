package moderation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"peacebot/model"
	"peacebot/utils/database"
)

// CaseParams describes a moderation action that already happened.
type CaseParams struct {
	GuildID     string
	ModeratorID string
	TargetID    string
	Reason      string
	Type        model.CaseType
	MessageLink string
	ChannelID   string
}

// Ledger is the append-only record of moderation actions.
type Ledger struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewLedger(store Store, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger.With(zap.String("module", "modlog")),
		now:    time.Now,
	}
}

// RegisterCase appends a case and returns its per-guild number. Call it once, after
// the action and its announcement succeeded.
func (l *Ledger) RegisterCase(ctx context.Context, p CaseParams) (int64, error) {
	c := model.Case{
		GuildID:   p.GuildID,
		Moderator: "<@" + p.ModeratorID + ">",
		Target:    "<@" + p.TargetID + ">",
		Reason:    p.Reason,
		Type:      p.Type,
		Message:   p.MessageLink,
		Timestamp: l.now().Unix(),
	}
	if p.ChannelID != "" {
		c.Channel = "<#" + p.ChannelID + ">"
	}

	caseID, err := l.store.CreateCase(ctx, c)
	if err != nil {
		return 0, err
	}
	l.logger.Info("case registered",
		zap.String("guild_id", p.GuildID),
		zap.Int64("case_id", caseID),
		zap.String("type", string(p.Type)),
		zap.String("moderator_id", p.ModeratorID),
		zap.String("target_id", p.TargetID))
	return caseID, nil
}

func (l *Ledger) FindCase(ctx context.Context, guildID string, caseID int64) (*model.Case, error) {
	c, err := l.store.GetCase(ctx, guildID, caseID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrCaseNotFound
	}
	return c, err
}

// ListCases returns every case of the guild in case order.
func (l *Ledger) ListCases(ctx context.Context, guildID string) ([]model.Case, error) {
	cases, err := l.store.ListCases(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, ErrNoCases
	}
	return cases, nil
}
