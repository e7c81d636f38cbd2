package egg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/suPer8Hu/animai/internal/ai"
	"github.com/suPer8Hu/animai/internal/common"
	"github.com/suPer8Hu/animai/internal/users"
)

type recordingProvider struct {
	mu    sync.Mutex
	calls [][]ai.Message
	reply string
	err   error
}

func (p *recordingProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	// copy to avoid mutations
	p.calls = append(p.calls, append([]ai.Message(nil), messages...))
	if p.err != nil {
		return "", p.err
	}
	if p.reply == "" {
		return "ok", nil
	}
	return p.reply, nil
}

func (p *recordingProvider) last() []ai.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return nil
	}
	return p.calls[len(p.calls)-1]
}

type recordingLocker struct {
	mu      sync.Mutex
	keys    []string
	release int
}

func (l *recordingLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	return func() {
		l.mu.Lock()
		l.release++
		l.mu.Unlock()
	}, nil
}

type recordingPublisher struct {
	events []any
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event any) error {
	p.events = append(p.events, event)
	return p.err
}

// tickClock returns strictly increasing UTC times so created_at ordering is deterministic.
func tickClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&users.User{}, &Egg{}, &ConversationLog{}, &Pet{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fixture struct {
	db    *gorm.DB
	repo  *Repo
	users *users.Service
	prov  *recordingProvider
	svc   *Service
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db := openTestDB(t)
	f := &fixture{
		db:    db,
		repo:  NewRepo(db),
		users: users.NewService(users.NewRepo(db)),
		prov:  &recordingProvider{},
	}
	opts = append([]Option{WithClock(tickClock())}, opts...)
	f.svc = NewService(f.users, f.repo, f.prov, opts...)
	return f
}

func (f *fixture) login(t *testing.T, email string) *users.User {
	t.Helper()
	u, err := f.users.Login(context.Background(), email, "")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return u
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestTalkToEgg_FirstMessageCreatesEggAndTwoEntries(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "alice@example.com")

	res, err := f.svc.TalkToEgg(context.Background(), u.ID, "Hello")
	if err != nil {
		t.Fatalf("talk: %v", err)
	}
	if res.Reply != "ok" {
		t.Fatalf("unexpected reply: %q", res.Reply)
	}
	if res.EggID == 0 {
		t.Fatalf("expected egg id to be set")
	}
	if n := f.count(t, &Egg{}, "owner_id = ?", u.ID); n != 1 {
		t.Fatalf("expected 1 egg, got %d", n)
	}

	logs, err := f.repo.ListLogs(context.Background(), res.EggID)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(logs))
	}
	if logs[0].Speaker != SpeakerUser || logs[0].Message != "Hello" {
		t.Fatalf("unexpected user entry: %+v", logs[0])
	}
	if logs[1].Speaker != SpeakerEgg || logs[1].Message != "ok" {
		t.Fatalf("unexpected egg entry: %+v", logs[1])
	}
	for _, l := range logs {
		if l.OwnerID != u.ID || l.PetID != nil {
			t.Fatalf("unexpected owner/pet on entry: %+v", l)
		}
	}
}

func TestTalkToEgg_SendsFullOrderedHistory(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "bob@example.com")

	var eggID uint64
	inputs := []string{"one", "two", "three"}
	for i, msg := range inputs {
		res, err := f.svc.TalkToEgg(context.Background(), u.ID, msg)
		if err != nil {
			t.Fatalf("talk %d: %v", i, err)
		}
		if eggID == 0 {
			eggID = res.EggID
		} else if res.EggID != eggID {
			t.Fatalf("expected the same egg across talks, got %d then %d", eggID, res.EggID)
		}

		got := f.prov.last()
		if len(got) != 2*i+1 {
			t.Fatalf("talk %d: expected %d messages sent to agent, got %d", i, 2*i+1, len(got))
		}
		for j, m := range got {
			wantSpeaker := ai.SpeakerUser
			if j%2 == 1 {
				wantSpeaker = ai.SpeakerEgg
			}
			if m.Speaker != wantSpeaker {
				t.Fatalf("talk %d msg %d: expected speaker %s, got %s", i, j, wantSpeaker, m.Speaker)
			}
			if j%2 == 0 && m.Message != inputs[j/2] {
				t.Fatalf("talk %d msg %d: expected %q, got %q", i, j, inputs[j/2], m.Message)
			}
		}
		if got[len(got)-1].Message != msg {
			t.Fatalf("expected newest agent input to be %q", msg)
		}
	}
	if n := f.count(t, &ConversationLog{}, "egg_id = ?", eggID); n != 6 {
		t.Fatalf("expected 6 entries, got %d", n)
	}
}

func TestTalkToEgg_FallbackReply(t *testing.T) {
	cases := map[string]*recordingProvider{
		"agent error":  {err: errors.New("connection refused")},
		"http error":   {err: &ai.HTTPError{Provider: "agent", StatusCode: 500}},
		"no reply":     {err: ai.ErrNoReply},
		"blank string": {reply: "   "},
	}
	for name, prov := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.svc.provider = prov
			u := f.login(t, "carol@example.com")

			res, err := f.svc.TalkToEgg(context.Background(), u.ID, "are you there?")
			if err != nil {
				t.Fatalf("talk must succeed on agent failure: %v", err)
			}
			if res.Reply != FallbackReply {
				t.Fatalf("expected fallback reply, got %q", res.Reply)
			}
			logs, _ := f.repo.ListLogs(context.Background(), res.EggID)
			if len(logs) != 2 || logs[1].Speaker != SpeakerEgg || logs[1].Message != FallbackReply {
				t.Fatalf("expected stored fallback entry, got %+v", logs)
			}
		})
	}
}

func TestTalkToEgg_NilProviderUsesFallback(t *testing.T) {
	db := openTestDB(t)
	usersSvc := users.NewService(users.NewRepo(db))
	svc := NewService(usersSvc, NewRepo(db), nil)
	u, err := usersSvc.Login(context.Background(), "dan@example.com", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	res, err := svc.TalkToEgg(context.Background(), u.ID, "hi")
	if err != nil {
		t.Fatalf("talk: %v", err)
	}
	if res.Reply != FallbackReply {
		t.Fatalf("expected fallback, got %q", res.Reply)
	}
}

func TestTalkToEgg_UnknownUserWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.TalkToEgg(context.Background(), 999, "hello")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if n := f.count(t, &Egg{}, ""); n != 0 {
		t.Fatalf("expected no eggs, got %d", n)
	}
	if n := f.count(t, &ConversationLog{}, ""); n != 0 {
		t.Fatalf("expected no entries, got %d", n)
	}
	if len(f.prov.calls) != 0 {
		t.Fatalf("agent must not be called")
	}
}

func TestTalkToEgg_EmptyMessage(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "erin@example.com")

	_, err := f.svc.TalkToEgg(context.Background(), u.ID, "  ")
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := f.count(t, &Egg{}, ""); n != 0 {
		t.Fatalf("expected no eggs, got %d", n)
	}
}

func TestTalkToEgg_ConcurrentFirstMessagesShareOneEgg(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "frank@example.com")

	const n = 6
	var wg sync.WaitGroup
	ids := make([]uint64, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.TalkToEgg(context.Background(), u.ID, fmt.Sprintf("msg %d", i))
			errs[i] = err
			if res != nil {
				ids[i] = res.EggID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("talk %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("expected one shared egg, got %v", ids)
		}
	}
	if c := f.count(t, &Egg{}, "owner_id = ? AND hatched = ?", u.ID, false); c != 1 {
		t.Fatalf("expected one unhatched egg, got %d", c)
	}
	if c := f.count(t, &ConversationLog{}, "egg_id = ?", ids[0]); c != 2*n {
		t.Fatalf("expected %d entries, got %d", 2*n, c)
	}
}

// cancellingProvider simulates the caller disconnecting while the agent is thinking.
type cancellingProvider struct {
	cancel context.CancelFunc
}

func (p *cancellingProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	p.cancel()
	<-ctx.Done()
	return "", ctx.Err()
}

func TestTalkToEgg_CallerCancelsDuringAgentCall(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "gina@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.svc.provider = &cancellingProvider{cancel: cancel}

	res, err := f.svc.TalkToEgg(ctx, u.ID, "hello")
	if err != nil {
		t.Fatalf("talk must not fail when the caller goes away: %v", err)
	}
	if res.Reply != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", res.Reply)
	}

	logs, err := f.repo.ListLogs(context.Background(), res.EggID)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected USER and EGG entries, got %+v", logs)
	}
	if logs[0].Speaker != SpeakerUser || logs[0].Message != "hello" ||
		logs[1].Speaker != SpeakerEgg || logs[1].Message != FallbackReply {
		t.Fatalf("unexpected entries: %+v", logs)
	}
}

func TestTalkToEgg_UsesLocker(t *testing.T) {
	locker := &recordingLocker{}
	f := newFixture(t, WithLocker(locker))
	u := f.login(t, "gina@example.com")

	if _, err := f.svc.TalkToEgg(context.Background(), u.ID, "hi"); err != nil {
		t.Fatalf("talk: %v", err)
	}
	if len(locker.keys) != 1 || locker.keys[0] != fmt.Sprintf("animai:talk:%d", u.ID) {
		t.Fatalf("unexpected lock keys: %v", locker.keys)
	}
	if locker.release != 1 {
		t.Fatalf("expected lock to be released once, got %d", locker.release)
	}
}

func TestHatchEgg_ForestConversation(t *testing.T) {
	pub := &recordingPublisher{}
	f := newFixture(t, WithPublisher(pub))
	u := f.login(t, "hana@example.com")

	res, err := f.svc.TalkToEgg(context.Background(), u.ID, "I love the quiet forest and tall trees")
	if err != nil {
		t.Fatalf("talk: %v", err)
	}

	pet, err := f.svc.HatchEgg(context.Background(), u.ID, res.EggID)
	if err != nil {
		t.Fatalf("hatch: %v", err)
	}
	if pet.ID == 0 || pet.FromEggID != res.EggID || pet.OwnerID != u.ID {
		t.Fatalf("unexpected pet: %+v", pet)
	}
	if pet.Species != "forest fox" || pet.Personality != "quiet, warm, forest-scented companion" {
		t.Fatalf("unexpected classification: %s / %s", pet.Species, pet.Personality)
	}
	if pet.Name != "my own animal" {
		t.Fatalf("unexpected name %q", pet.Name)
	}

	e, err := f.repo.GetEgg(context.Background(), res.EggID)
	if err != nil {
		t.Fatalf("get egg: %v", err)
	}
	if !e.Hatched || e.HatchedAt == nil || e.ActiveOwnerID != nil {
		t.Fatalf("expected hatched egg, got %+v", e)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected one hatch event, got %d", len(pub.events))
	}
	ev, ok := pub.events[0].(HatchedEvent)
	if !ok || ev.Type != EventEggHatched || ev.PetID != pet.ID || ev.EventID == "" {
		t.Fatalf("unexpected event: %+v", pub.events[0])
	}
}

func TestHatchEgg_NoKeywordsIsMystery(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "ian@example.com")

	res, err := f.svc.TalkToEgg(context.Background(), u.ID, "hello there")
	if err != nil {
		t.Fatalf("talk: %v", err)
	}
	pet, err := f.svc.HatchEgg(context.Background(), u.ID, res.EggID)
	if err != nil {
		t.Fatalf("hatch: %v", err)
	}
	if pet.Species != "mystery creature" {
		t.Fatalf("expected mystery creature, got %s", pet.Species)
	}
}

func TestHatchEgg_SecondCallConflicts(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "jay@example.com")
	res, _ := f.svc.TalkToEgg(context.Background(), u.ID, "hi")

	if _, err := f.svc.HatchEgg(context.Background(), u.ID, res.EggID); err != nil {
		t.Fatalf("first hatch: %v", err)
	}
	_, err := f.svc.HatchEgg(context.Background(), u.ID, res.EggID)
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if n := f.count(t, &Pet{}, "from_egg_id = ?", res.EggID); n != 1 {
		t.Fatalf("expected 1 pet, got %d", n)
	}
}

func TestHatchEgg_NotOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.login(t, "kim@example.com")
	other := f.login(t, "lee@example.com")
	res, _ := f.svc.TalkToEgg(context.Background(), owner.ID, "hi")

	_, err := f.svc.HatchEgg(context.Background(), other.ID, res.EggID)
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	e, _ := f.repo.GetEgg(context.Background(), res.EggID)
	if e.Hatched {
		t.Fatalf("egg must stay unhatched")
	}
}

func TestHatchEgg_NotFound(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "max@example.com")

	if _, err := f.svc.HatchEgg(context.Background(), u.ID, 12345); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected egg not found, got %v", err)
	}
	if _, err := f.svc.HatchEgg(context.Background(), 777, 1); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestHatchEgg_ConcurrentCallsProduceOnePet(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "nia@example.com")
	res, _ := f.svc.TalkToEgg(context.Background(), u.ID, "the sea at night")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.HatchEgg(context.Background(), u.ID, res.EggID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, common.ErrConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful hatch, got %d", succeeded)
	}
	if c := f.count(t, &Pet{}, "from_egg_id = ?", res.EggID); c != 1 {
		t.Fatalf("expected 1 pet, got %d", c)
	}
}

func TestTalkAfterHatch_StartsNewEgg(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "oli@example.com")
	first, _ := f.svc.TalkToEgg(context.Background(), u.ID, "hi")
	if _, err := f.svc.HatchEgg(context.Background(), u.ID, first.EggID); err != nil {
		t.Fatalf("hatch: %v", err)
	}

	second, err := f.svc.TalkToEgg(context.Background(), u.ID, "hi again")
	if err != nil {
		t.Fatalf("talk: %v", err)
	}
	if second.EggID == first.EggID {
		t.Fatalf("expected a new egg after hatching")
	}
	// the new egg's history starts fresh
	if got := f.prov.last(); len(got) != 1 || got[0].Message != "hi again" {
		t.Fatalf("expected fresh history, got %+v", got)
	}

	cur, err := f.svc.CurrentEgg(context.Background(), u.ID)
	if err != nil || cur.ID != second.EggID {
		t.Fatalf("current egg: %+v err=%v", cur, err)
	}
	pets, err := f.svc.ListPets(context.Background(), u.ID)
	if err != nil || len(pets) != 1 || pets[0].FromEggID != first.EggID {
		t.Fatalf("list pets: %+v err=%v", pets, err)
	}
}

func TestListMessages_Ownership(t *testing.T) {
	f := newFixture(t)
	owner := f.login(t, "pat@example.com")
	other := f.login(t, "quinn@example.com")
	res, _ := f.svc.TalkToEgg(context.Background(), owner.ID, "hi")

	msgs, err := f.svc.ListMessages(context.Background(), owner.ID, res.EggID)
	if err != nil || len(msgs) != 2 {
		t.Fatalf("list: %d err=%v", len(msgs), err)
	}
	if _, err := f.svc.ListMessages(context.Background(), other.ID, res.EggID); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCurrentEgg_NoneYet(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "rae@example.com")

	if _, err := f.svc.CurrentEgg(context.Background(), u.ID); !errors.Is(err, ErrEggNotFound) {
		t.Fatalf("expected egg not found, got %v", err)
	}
}

func TestRepo_HatchIsCompareAndSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.login(t, "sol@example.com")
	e, _, err := f.repo.GetOrCreateActiveEgg(ctx, u.ID, time.Now())
	if err != nil {
		t.Fatalf("create egg: %v", err)
	}

	if err := f.repo.Hatch(ctx, e.ID, time.Now(), &Pet{FromEggID: e.ID, OwnerID: u.ID, Species: "a", Name: "n", Personality: "p"}); err != nil {
		t.Fatalf("first hatch: %v", err)
	}
	err = f.repo.Hatch(ctx, e.ID, time.Now(), &Pet{FromEggID: e.ID, OwnerID: u.ID, Species: "b", Name: "n", Personality: "p"})
	if !errors.Is(err, ErrAlreadyHatched) {
		t.Fatalf("expected already hatched, got %v", err)
	}
	if n := f.count(t, &Pet{}, ""); n != 1 {
		t.Fatalf("expected 1 pet, got %d", n)
	}
}

func TestRepo_HatchRollsBackWhenPetInsertFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.login(t, "tai@example.com")
	e, _, _ := f.repo.GetOrCreateActiveEgg(ctx, u.ID, time.Now())

	// a pet for this egg already exists, so the insert violates from_egg_id uniqueness
	if err := f.db.Create(&Pet{FromEggID: e.ID, OwnerID: u.ID, Species: "x", Name: "n", Personality: "p"}).Error; err != nil {
		t.Fatalf("seed pet: %v", err)
	}
	err := f.repo.Hatch(ctx, e.ID, time.Now(), &Pet{FromEggID: e.ID, OwnerID: u.ID, Species: "y", Name: "n", Personality: "p"})
	if err == nil {
		t.Fatalf("expected pet insert to fail")
	}

	got, _ := f.repo.GetEgg(ctx, e.ID)
	if got.Hatched || got.HatchedAt != nil || got.ActiveOwnerID == nil {
		t.Fatalf("egg update must be rolled back, got %+v", got)
	}
}

func TestRepo_ActiveEggIsUniquePerOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.login(t, "uma@example.com")

	first, created, err := f.repo.GetOrCreateActiveEgg(ctx, u.ID, time.Now())
	if err != nil || !created {
		t.Fatalf("create: created=%v err=%v", created, err)
	}

	active := u.ID
	if err := f.repo.CreateEgg(ctx, &Egg{OwnerID: u.ID, ActiveOwnerID: &active, CreatedAt: time.Now()}); err == nil {
		t.Fatalf("expected the unique index to reject a second unhatched egg")
	}

	again, created, err := f.repo.GetOrCreateActiveEgg(ctx, u.ID, time.Now())
	if err != nil || created || again.ID != first.ID {
		t.Fatalf("expected existing egg, got %+v created=%v err=%v", again, created, err)
	}
}

func TestRepo_LogRoundTripKeepsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.login(t, "vic@example.com")
	e, _, _ := f.repo.GetOrCreateActiveEgg(ctx, u.ID, time.Now())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// inserted out of order on purpose
	entries := []ConversationLog{
		{OwnerID: u.ID, EggID: e.ID, Speaker: SpeakerEgg, Message: "second", CreatedAt: base.Add(2 * time.Second)},
		{OwnerID: u.ID, EggID: e.ID, Speaker: SpeakerUser, Message: "first 🌲", CreatedAt: base.Add(time.Second)},
		{OwnerID: u.ID, EggID: e.ID, Speaker: SpeakerPet, Message: "third\nline", CreatedAt: base.Add(3 * time.Second)},
	}
	for i := range entries {
		if err := f.repo.AppendLog(ctx, &entries[i]); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	logs, err := f.repo.ListLogs(ctx, e.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []struct {
		speaker Speaker
		msg     string
	}{
		{SpeakerUser, "first 🌲"},
		{SpeakerEgg, "second"},
		{SpeakerPet, "third\nline"},
	}
	if len(logs) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(logs))
	}
	for i, w := range want {
		if logs[i].Speaker != w.speaker || logs[i].Message != w.msg {
			t.Fatalf("entry %d: got %s/%q want %s/%q", i, logs[i].Speaker, logs[i].Message, w.speaker, w.msg)
		}
	}
}
