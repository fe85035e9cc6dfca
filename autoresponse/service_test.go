package autoresponse

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"peacebot/model"
	"peacebot/utils/database"
)

func newTestService(t *testing.T) (*Service, *database.Store) {
	t.Helper()
	store, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := time.Unix(1700000000, 0)
	svc := NewService(store, zap.NewNop(), WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	return svc, store
}

func add(t *testing.T, svc *Service, guildID, trigger string) *model.AutoResponse {
	t.Helper()
	r, err := svc.Add(context.Background(), AddParams{GuildID: guildID, Trigger: trigger, Response: "re: " + trigger, CreatedBy: "1"})
	require.NoError(t, err)
	return r
}

func TestAdd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Add(ctx, AddParams{GuildID: "100", Trigger: "  Hello ", Response: "Hi there!", CreatedBy: "1", Mentions: true})
	require.NoError(t, err)
	assert.Equal(t, "hello", r.Trigger)
	assert.True(t, r.Enabled)
	assert.True(t, r.Mentions)
	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)

	_, err = svc.Add(ctx, AddParams{GuildID: "100", Trigger: "HELLO", Response: "again", CreatedBy: "1"})
	assert.ErrorIs(t, err, ErrDuplicateTrigger)

	_, err = svc.Add(ctx, AddParams{GuildID: "100", Trigger: " ", Response: "x", CreatedBy: "1"})
	assert.ErrorIs(t, err, ErrInvalidTrigger)
	_, err = svc.Add(ctx, AddParams{GuildID: "100", Trigger: "x", Response: "", CreatedBy: "1"})
	assert.ErrorIs(t, err, ErrInvalidTrigger)
}

func TestProperty_AddTwiceIsDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seen := map[string]bool{}

	rapid.Check(t, func(rt *rapid.T) {
		guildID := fmt.Sprint(rapid.IntRange(1, 5).Draw(rt, "guild"))
		trigger := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "trigger")
		key := guildID + "/" + trigger

		_, err := svc.Add(ctx, AddParams{GuildID: guildID, Trigger: trigger, Response: "r", CreatedBy: "1"})
		if seen[key] {
			if err != ErrDuplicateTrigger {
				rt.Fatalf("expected duplicate for %s, got %v", key, err)
			}
		} else if err != nil {
			rt.Fatalf("add %s: %v", key, err)
		}
		seen[key] = true

		_, err = svc.Add(ctx, AddParams{GuildID: guildID, Trigger: strings.ToUpper(trigger), Response: "r", CreatedBy: "1"})
		if err != ErrDuplicateTrigger {
			rt.Fatalf("expected duplicate for upper-cased %s, got %v", key, err)
		}
	})
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	add(t, svc, "100", "hello")

	removed, err := svc.Remove(ctx, "100", "HELLO")
	require.NoError(t, err)
	assert.Equal(t, "hello", removed.Trigger)

	_, err = svc.Remove(ctx, "100", "hello")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Info(ctx, "100", "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	add(t, svc, "100", "hello")

	r, err := svc.Toggle(ctx, "100", "hello", nil)
	require.NoError(t, err)
	assert.False(t, r.Enabled)
	r, err = svc.Toggle(ctx, "100", "hello", nil)
	require.NoError(t, err)
	assert.True(t, r.Enabled)

	// explicit values are honored, including false on an enabled record
	off := false
	r, err = svc.Toggle(ctx, "100", "hello", &off)
	require.NoError(t, err)
	assert.False(t, r.Enabled)
	r, err = svc.Toggle(ctx, "100", "hello", &off)
	require.NoError(t, err)
	assert.False(t, r.Enabled)

	info, err := svc.Info(ctx, "100", "hello")
	require.NoError(t, err)
	assert.False(t, info.Enabled)

	_, err = svc.Toggle(ctx, "100", "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	add(t, svc, "100", "a")
	add(t, svc, "100", "b")
	add(t, svc, "100", "c")
	_, err := svc.Toggle(ctx, "100", "b", nil)
	require.NoError(t, err)

	l, err := svc.List(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	require.Len(t, l.Enabled, 2)
	require.Len(t, l.Disabled, 1)
	assert.Equal(t, "a", l.Enabled[0].Trigger)
	assert.Equal(t, "b", l.Disabled[0].Trigger)

	empty, err := svc.List(ctx, "999")
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}

func TestExport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	r := add(t, svc, "100", "hello")

	token, err := svc.Export(ctx, "100", "")
	require.NoError(t, err)
	assert.Equal(t, "100", token)

	token, err = svc.Export(ctx, "100", "Hello")
	require.NoError(t, err)
	assert.Equal(t, r.ID, token)

	_, err = svc.Export(ctx, "100", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImport_TokenValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, "100", "100")
	assert.ErrorIs(t, err, ErrSameGuildImport)

	for _, token := range []string{"", "abc", "12a", "-5", "1.5"} {
		_, err := svc.Import(ctx, "100", token)
		assert.ErrorIs(t, err, ErrInvalidImportToken, token)
	}

	_, err = svc.Import(ctx, "100", uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Import(ctx, "100", "424242")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProperty_SameGuildImportAlwaysFails(t *testing.T) {
	svc, _ := newTestService(t)
	rapid.Check(t, func(rt *rapid.T) {
		guildID := rapid.StringMatching(`[0-9]{1,20}`).Draw(rt, "guild")
		_, err := svc.Import(context.Background(), guildID, guildID)
		if err != ErrSameGuildImport {
			rt.Fatalf("guild %s: expected ErrSameGuildImport, got %v", guildID, err)
		}
	})
}

func TestImport_SingleRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	src, err := svc.Add(ctx, AddParams{GuildID: "100", Trigger: "hello", Response: "Hi", CreatedBy: "1", ExtraText: true, AllowedChannelID: channel("5")})
	require.NoError(t, err)

	res, err := svc.Import(ctx, "200", src.ID)
	require.NoError(t, err)
	require.Len(t, res.Imported, 1)
	got := res.Imported[0]
	assert.NotEqual(t, src.ID, got.ID)
	assert.Equal(t, "200", got.GuildID)
	assert.Equal(t, "hello", got.Trigger)
	assert.True(t, got.ExtraText)
	assert.Nil(t, got.AllowedChannelID)

	// importing it again collides with the copy
	_, err = svc.Import(ctx, "200", strings.ToUpper(src.ID))
	assert.ErrorIs(t, err, ErrDuplicateTrigger)
}

func TestImport_GuildSkipsExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	add(t, svc, "100", "a")
	add(t, svc, "100", "b")
	add(t, svc, "100", "c")
	_, err := svc.Toggle(ctx, "100", "c", nil)
	require.NoError(t, err)
	add(t, svc, "200", "b")

	res, err := svc.Import(ctx, "200", "100")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, res.Skipped)
	require.Len(t, res.Imported, 2)

	l, err := svc.List(ctx, "200")
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	// state is carried over
	require.Len(t, l.Disabled, 1)
	assert.Equal(t, "c", l.Disabled[0].Trigger)

	// a second run imports nothing and is not an error
	res, err = svc.Import(ctx, "200", "100")
	require.NoError(t, err)
	assert.Empty(t, res.Imported)
	assert.Len(t, res.Skipped, 3)
}

func TestExampleScenario(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	matcher := NewMatcher(store)

	r, err := svc.Add(ctx, AddParams{GuildID: "100", Trigger: "hello", Response: "Hi there!", CreatedBy: "1"})
	require.NoError(t, err)

	got, err := matcher.Match(ctx, "hello", "100", "5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r.ID, got.ID)

	got, err = matcher.Match(ctx, "hello there", "100", "5")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = svc.Toggle(ctx, "100", "hello", nil)
	require.NoError(t, err)
	got, err = matcher.Match(ctx, "hello", "100", "5")
	require.NoError(t, err)
	assert.Nil(t, got)

	token, err := svc.Export(ctx, "100", "")
	require.NoError(t, err)
	assert.Equal(t, "100", token)

	res, err := svc.Import(ctx, "200", token)
	require.NoError(t, err)
	require.Len(t, res.Imported, 1)
	clone := res.Imported[0]
	assert.Equal(t, "200", clone.GuildID)
	assert.NotEqual(t, r.ID, clone.ID)
	assert.Nil(t, clone.AllowedChannelID)

	stored, err := store.GetAutoResponse(ctx, clone.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", stored.Trigger)
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(fmt.Errorf("wrapped: %w", ErrNotFound)))
	assert.False(t, IsUserError(fmt.Errorf("disk full")))
}

func TestAdd_TriggerLength(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, AddParams{GuildID: "100", Trigger: strings.Repeat("ü", MaxTriggerLength), Response: "r", CreatedBy: "1"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, AddParams{GuildID: "100", Trigger: strings.Repeat("a", MaxTriggerLength+1), Response: "r", CreatedBy: "1"})
	assert.ErrorIs(t, err, ErrTriggerTooLong)
	assert.True(t, IsUserError(err))

	// surrounding whitespace does not count
	_, err = svc.Add(ctx, AddParams{GuildID: "100", Trigger: "  " + strings.Repeat("b", MaxTriggerLength) + "  ", Response: "r", CreatedBy: "1"})
	assert.NoError(t, err)
}

// racingStore passes every existence check and then loses the insert to a
// concurrent writer.
type racingStore struct {
	Store
	sources []model.AutoResponse
}

func (s *racingStore) ExistsAutoResponse(context.Context, string, string) (bool, error) {
	return false, nil
}

func (s *racingStore) GetAutoResponse(_ context.Context, id string) (*model.AutoResponse, error) {
	for _, r := range s.sources {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *racingStore) FindAutoResponses(_ context.Context, guildID string, _ model.AutoResponseFilter) ([]model.AutoResponse, error) {
	var out []model.AutoResponse
	for _, r := range s.sources {
		if r.GuildID == guildID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *racingStore) CreateAutoResponse(_ context.Context, r model.AutoResponse) error {
	return fmt.Errorf("%w: guild %s trigger %s", database.ErrUniqueViolation, r.GuildID, r.Trigger)
}

func (s *racingStore) CreateAutoResponses(_ context.Context, rs []model.AutoResponse) error {
	return fmt.Errorf("%w: %d records", database.ErrUniqueViolation, len(rs))
}

func TestConcurrentInsertIsDuplicate(t *testing.T) {
	srcID := uuid.NewString()
	store := &racingStore{sources: []model.AutoResponse{
		{ID: srcID, GuildID: "100", Trigger: "hello", Response: "Hi", Enabled: true},
		{ID: uuid.NewString(), GuildID: "100", Trigger: "bye", Response: "Bye", Enabled: true},
	}}
	svc := NewService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, AddParams{GuildID: "200", Trigger: "hello", Response: "Hi", CreatedBy: "1"})
	assert.ErrorIs(t, err, ErrDuplicateTrigger)

	_, err = svc.Import(ctx, "200", srcID)
	assert.ErrorIs(t, err, ErrDuplicateTrigger)

	res, err := svc.Import(ctx, "200", "100")
	assert.ErrorIs(t, err, ErrDuplicateTrigger)
	assert.Empty(t, res.Imported)
}

func TestImport_GuildKeepsSourceOrder(t *testing.T) {
	store, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// fixed clock and ids that sort against creation order
	ids := []string{"ff", "ee", "dd", "cc", "bb", "aa"}
	svc := NewService(store, zap.NewNop(),
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
		WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}))
	ctx := context.Background()
	for _, trigger := range []string{"one", "two", "three"} {
		add(t, svc, "100", trigger)
	}

	_, err = svc.Import(ctx, "200", "100")
	require.NoError(t, err)

	l, err := svc.List(ctx, "200")
	require.NoError(t, err)
	var got []string
	for _, r := range l.Enabled {
		got = append(got, r.Trigger)
	}
	assert.Equal(t, []string{"one", "two", "three"}, got)
}
