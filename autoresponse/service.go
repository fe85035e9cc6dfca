package autoresponse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"peacebot/model"
	"peacebot/utils/database"
)

// MaxTriggerLength is the longest trigger, in characters, that still fits an
// autocomplete choice value.
const MaxTriggerLength = 100

// Service owns the lifecycle of a guild's auto-responses.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the UUID generator used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger.With(zap.String("module", "autoresponse")),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type AddParams struct {
	GuildID          string
	Trigger          string
	Response         string
	ExtraText        bool
	Mentions         bool
	AllowedChannelID *string
	CreatedBy        string
}

// Listing partitions a guild's records by state.
type Listing struct {
	Enabled  []model.AutoResponse
	Disabled []model.AutoResponse
}

func (l Listing) Len() int {
	return len(l.Enabled) + len(l.Disabled)
}

type ImportResult struct {
	Imported []model.AutoResponse
	// Skipped holds triggers the destination guild already had.
	Skipped []string
}

// Add creates an enabled record. The trigger is stored lower-cased.
func (s *Service) Add(ctx context.Context, p AddParams) (*model.AutoResponse, error) {
	trigger := strings.ToLower(strings.TrimSpace(p.Trigger))
	if trigger == "" || strings.TrimSpace(p.Response) == "" {
		return nil, ErrInvalidTrigger
	}
	if utf8.RuneCountInString(trigger) > MaxTriggerLength {
		return nil, ErrTriggerTooLong
	}

	exists, err := s.store.ExistsAutoResponse(ctx, p.GuildID, trigger)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateTrigger
	}

	now := s.now().Unix()
	record := model.AutoResponse{
		ID:               s.newID(),
		GuildID:          p.GuildID,
		Trigger:          trigger,
		Response:         p.Response,
		Enabled:          true,
		AllowedChannelID: p.AllowedChannelID,
		ExtraText:        p.ExtraText,
		Mentions:         p.Mentions,
		CreatedBy:        p.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreateAutoResponse(ctx, record); err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			return nil, ErrDuplicateTrigger
		}
		return nil, err
	}

	s.logger.Info("autoresponse added",
		zap.String("guild_id", p.GuildID),
		zap.String("trigger", trigger),
		zap.String("created_by", p.CreatedBy))
	return &record, nil
}

// Remove deletes the record and returns what was deleted.
func (s *Service) Remove(ctx context.Context, guildID, trigger string) (*model.AutoResponse, error) {
	record, err := s.lookup(ctx, guildID, trigger)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteAutoResponse(ctx, record.ID); err != nil {
		return nil, notFound(err)
	}

	s.logger.Info("autoresponse removed", zap.String("guild_id", guildID), zap.String("trigger", record.Trigger))
	return record, nil
}

// Toggle sets the enabled flag to *enabled, or flips it when enabled is nil.
func (s *Service) Toggle(ctx context.Context, guildID, trigger string, enabled *bool) (*model.AutoResponse, error) {
	record, err := s.lookup(ctx, guildID, trigger)
	if err != nil {
		return nil, err
	}

	next := !record.Enabled
	if enabled != nil {
		next = *enabled
	}
	now := s.now().Unix()
	if err := s.store.UpdateAutoResponseEnabled(ctx, record.ID, next, now); err != nil {
		return nil, notFound(err)
	}
	record.Enabled = next
	record.UpdatedAt = now
	return record, nil
}

func (s *Service) Info(ctx context.Context, guildID, trigger string) (*model.AutoResponse, error) {
	return s.lookup(ctx, guildID, trigger)
}

func (s *Service) List(ctx context.Context, guildID string) (Listing, error) {
	records, err := s.store.FindAutoResponses(ctx, guildID, model.AutoResponseFilter{})
	if err != nil {
		return Listing{}, err
	}
	var l Listing
	for _, r := range records {
		if r.Enabled {
			l.Enabled = append(l.Enabled, r)
		} else {
			l.Disabled = append(l.Disabled, r)
		}
	}
	return l, nil
}

// Export returns the token another guild can import: the guild id for the whole set,
// or the record id when a trigger is given.
func (s *Service) Export(ctx context.Context, guildID, trigger string) (string, error) {
	if strings.TrimSpace(trigger) == "" {
		return guildID, nil
	}
	record, err := s.lookup(ctx, guildID, trigger)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// Import copies records into guildID. A UUID token imports one record, a guild id
// token imports every record of that guild whose trigger is not already present.
func (s *Service) Import(ctx context.Context, guildID, token string) (ImportResult, error) {
	token = strings.TrimSpace(token)
	if token == guildID {
		return ImportResult{}, ErrSameGuildImport
	}

	if id, err := uuid.Parse(token); err == nil {
		return s.importOne(ctx, guildID, id.String())
	}
	if _, err := strconv.ParseUint(token, 10, 64); err == nil {
		return s.importGuild(ctx, guildID, token)
	}
	return ImportResult{}, ErrInvalidImportToken
}

func (s *Service) importOne(ctx context.Context, guildID, id string) (ImportResult, error) {
	src, err := s.store.GetAutoResponse(ctx, id)
	if err != nil {
		return ImportResult{}, notFound(err)
	}

	exists, err := s.store.ExistsAutoResponse(ctx, guildID, src.Trigger)
	if err != nil {
		return ImportResult{}, err
	}
	if exists {
		return ImportResult{}, ErrDuplicateTrigger
	}

	record := Clone(*src, guildID, s.newID(), s.now())
	if err := s.store.CreateAutoResponse(ctx, record); err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			return ImportResult{}, ErrDuplicateTrigger
		}
		return ImportResult{}, err
	}

	s.logger.Info("autoresponse imported",
		zap.String("guild_id", guildID),
		zap.String("source_id", id),
		zap.String("trigger", record.Trigger))
	return ImportResult{Imported: []model.AutoResponse{record}}, nil
}

func (s *Service) importGuild(ctx context.Context, guildID, sourceGuildID string) (ImportResult, error) {
	sources, err := s.store.FindAutoResponses(ctx, sourceGuildID, model.AutoResponseFilter{})
	if err != nil {
		return ImportResult{}, err
	}
	if len(sources) == 0 {
		return ImportResult{}, ErrNotFound
	}

	existing, err := s.store.FindAutoResponses(ctx, guildID, model.AutoResponseFilter{})
	if err != nil {
		return ImportResult{}, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		taken[strings.ToLower(r.Trigger)] = struct{}{}
	}

	var result ImportResult
	now := s.now()
	for _, src := range sources {
		key := strings.ToLower(src.Trigger)
		if _, ok := taken[key]; ok {
			result.Skipped = append(result.Skipped, src.Trigger)
			continue
		}
		taken[key] = struct{}{}
		result.Imported = append(result.Imported, Clone(src, guildID, s.newID(), now))
	}

	if len(result.Imported) > 0 {
		if err := s.store.CreateAutoResponses(ctx, result.Imported); err != nil {
			if errors.Is(err, database.ErrUniqueViolation) {
				return ImportResult{}, ErrDuplicateTrigger
			}
			return ImportResult{}, err
		}
	}

	s.logger.Info("autoresponses imported from guild",
		zap.String("guild_id", guildID),
		zap.String("source_guild_id", sourceGuildID),
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *Service) lookup(ctx context.Context, guildID, trigger string) (*model.AutoResponse, error) {
	record, err := s.store.GetAutoResponseByTrigger(ctx, guildID, strings.TrimSpace(trigger))
	if err != nil {
		return nil, notFound(err)
	}
	return record, nil
}

func notFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("autoresponse store: %w", err)
}
