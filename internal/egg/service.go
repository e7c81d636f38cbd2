package egg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/suPer8Hu/animai/internal/ai"
	"github.com/suPer8Hu/animai/internal/metrics"
	"github.com/suPer8Hu/animai/internal/petfactory"
	"github.com/suPer8Hu/animai/internal/users"
)

// FallbackReply is stored as the egg's answer whenever the agent fails or has nothing to say.
const FallbackReply = "Hmm... I didn't quite understand 😅"

type UserResolver interface {
	Get(ctx context.Context, id uint64) (*users.User, error)
}

// Locker serializes work per key across processes. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type Publisher interface {
	Publish(ctx context.Context, event any) error
}

type Option func(*Service)

func WithLocker(l Locker) Option {
	return func(s *Service) { s.locker = l }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithProviderName labels agent metrics.
func WithProviderName(name string) Option {
	return func(s *Service) { s.providerName = name }
}

type Service struct {
	users        UserResolver
	repo         *Repo
	provider     ai.Provider
	providerName string
	locker       Locker
	publisher    Publisher
	now          func() time.Time
}

func NewService(usersSvc UserResolver, repo *Repo, provider ai.Provider, opts ...Option) *Service {
	s := &Service{
		users:        usersSvc,
		repo:         repo,
		provider:     provider,
		providerName: "agent",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TalkToEgg stores the user's message on their current egg (creating the egg
// on first contact), asks the agent for a reply over the full history and
// stores that reply. Agent failures never fail the call.
func (s *Service) TalkToEgg(ctx context.Context, userID uint64, message string) (*TalkResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, fmt.Sprintf("animai:talk:%d", user.ID))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.WithError(err).WithField("user_id", user.ID).Warn("talk lock unavailable, continuing unlocked")
		} else {
			defer unlock()
		}
	}

	// 1) current egg
	e, created, err := s.repo.GetOrCreateActiveEgg(ctx, user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("resolve egg: %w", err)
	}
	if created {
		metrics.EggsCreated.Inc()
		log.WithFields(log.Fields{"user_id": user.ID, "egg_id": e.ID}).Info("egg created")
	}

	// 2) store user message
	if err := s.repo.AppendLog(ctx, &ConversationLog{
		OwnerID:   user.ID,
		EggID:     e.ID,
		Speaker:   SpeakerUser,
		Message:   message,
		CreatedAt: s.now(),
	}); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	// The USER entry is stored; the EGG entry must follow even if the caller
	// goes away mid-call, so storage below ignores cancellation.
	storeCtx := context.WithoutCancel(ctx)

	// 3) full history, oldest first
	logs, err := s.repo.ListLogs(storeCtx, e.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	history := make([]ai.Message, 0, len(logs))
	for _, l := range logs {
		history = append(history, ai.Message{Speaker: string(l.Speaker), Message: l.Message})
	}

	// 4) agent
	reply := s.reply(ctx, user.ID, e.ID, history)

	// 5) store egg reply
	if err := s.repo.AppendLog(storeCtx, &ConversationLog{
		OwnerID:   user.ID,
		EggID:     e.ID,
		Speaker:   SpeakerEgg,
		Message:   reply,
		CreatedAt: s.now(),
	}); err != nil {
		return nil, fmt.Errorf("store egg reply: %w", err)
	}

	return &TalkResult{EggID: e.ID, Reply: reply}, nil
}

func (s *Service) reply(ctx context.Context, userID, eggID uint64, history []ai.Message) string {
	if s.provider == nil {
		metrics.AgentRequests.WithLabelValues(s.providerName, "fallback").Inc()
		return FallbackReply
	}

	start := time.Now()
	reply, err := s.provider.Chat(ctx, history)
	metrics.AgentLatency.WithLabelValues(s.providerName).Observe(time.Since(start).Seconds())

	if err == nil && strings.TrimSpace(reply) == "" {
		err = ai.ErrNoReply
	}
	if err != nil {
		metrics.AgentRequests.WithLabelValues(s.providerName, "fallback").Inc()
		log.WithError(err).WithFields(log.Fields{
			"user_id":  userID,
			"egg_id":   eggID,
			"provider": s.providerName,
			"cost":     time.Since(start),
		}).Warn("agent reply failed, using fallback")
		return FallbackReply
	}

	metrics.AgentRequests.WithLabelValues(s.providerName, "ok").Inc()
	return reply
}

// HatchEgg turns the user's egg into a pet chosen from its conversation.
func (s *Service) HatchEgg(ctx context.Context, userID, eggID uint64) (*Pet, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.GetEgg(ctx, eggID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != user.ID {
		return nil, ErrNotEggOwner
	}
	if e.Hatched {
		return nil, ErrAlreadyHatched
	}

	logs, err := s.repo.ListLogs(ctx, e.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	texts := make([]string, 0, len(logs))
	for _, l := range logs {
		texts = append(texts, l.Message)
	}
	result := petfactory.FromConversation(texts)

	now := s.now()
	pet := &Pet{
		FromEggID:   e.ID,
		OwnerID:     user.ID,
		Species:     result.Species,
		Name:        petfactory.DefaultName,
		Personality: result.Personality,
		CreatedAt:   now,
	}
	if err := s.repo.Hatch(ctx, e.ID, now, pet); err != nil {
		if errors.Is(err, ErrAlreadyHatched) {
			return nil, err
		}
		return nil, fmt.Errorf("hatch egg: %w", err)
	}

	metrics.PetsHatched.WithLabelValues(pet.Species).Inc()
	log.WithFields(log.Fields{
		"user_id": user.ID,
		"egg_id":  e.ID,
		"pet_id":  pet.ID,
		"species": pet.Species,
	}).Info("egg hatched")

	s.publishHatched(ctx, pet, now)
	return pet, nil
}

func (s *Service) publishHatched(ctx context.Context, pet *Pet, at time.Time) {
	if s.publisher == nil {
		return
	}
	ev := HatchedEvent{
		EventID:    uuid.NewString(),
		Type:       EventEggHatched,
		UserID:     pet.OwnerID,
		EggID:      pet.FromEggID,
		PetID:      pet.ID,
		Species:    pet.Species,
		OccurredAt: at,
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.WithError(err).WithField("egg_id", pet.FromEggID).Warn("publish hatch event failed")
	}
}

// CurrentEgg returns the user's unhatched egg, ErrEggNotFound if they have none.
func (s *Service) CurrentEgg(ctx context.Context, userID uint64) (*Egg, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetActiveEgg(ctx, user.ID)
}

func (s *Service) ListMessages(ctx context.Context, userID, eggID uint64) ([]ConversationLog, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.GetEgg(ctx, eggID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != user.ID {
		return nil, ErrNotEggOwner
	}
	return s.repo.ListLogs(ctx, e.ID)
}

func (s *Service) ListPets(ctx context.Context, userID uint64) ([]Pet, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPetsByOwner(ctx, user.ID)
}
