package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/klokku/finance-kanban/internal/event_bus"
	"github.com/klokku/finance-kanban/internal/utils"
	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/klokku/finance-kanban/pkg/scenario"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type NewGame struct {
	Difficulty string
	Housing    string
	// Seed replays a previous game when set.
	Seed *uint64
}

// Service exposes the engine operations of the game selected in the context.
// Rejected engine operations are not errors: they return the unchanged
// snapshot with applied == false.
type Service interface {
	CreateGame(ctx context.Context, request NewGame) (Snapshot, error)
	GetGame(ctx context.Context) (Snapshot, error)
	DeleteGame(ctx context.Context) (bool, error)
	AssignPayment(ctx context.Context, method finance.Method, amount decimal.Decimal, obligationId string) (Snapshot, bool, error)
	UnassignPayment(ctx context.Context, paymentId uuid.UUID, obligationId string) (Snapshot, bool, error)
	ChangeHousing(ctx context.Context, housingKey string) (Snapshot, bool, error)
	AdvanceRound(ctx context.Context) (Snapshot, finance.RoundSummary, error)
	WithdrawSavings(ctx context.Context, obligationId string, amount *decimal.Decimal) (Snapshot, bool, error)
	BorrowDebt(ctx context.Context, obligationId string) (Snapshot, bool, error)
}

type ServiceImpl struct {
	repo        Repository
	builder     *scenario.Builder
	eventBus    *event_bus.EventBus
	clock       utils.Clock
	defaults    NewGame
	defaultSeed uint64
}

// NewService creates the game service. A defaultSeed of zero derives a seed
// from the clock for each game.
func NewService(repo Repository, builder *scenario.Builder, eventBus *event_bus.EventBus, clock utils.Clock, defaults NewGame, defaultSeed uint64) *ServiceImpl {
	return &ServiceImpl{
		repo:        repo,
		builder:     builder,
		eventBus:    eventBus,
		clock:       clock,
		defaults:    defaults,
		defaultSeed: defaultSeed,
	}
}

func (s *ServiceImpl) CreateGame(ctx context.Context, request NewGame) (Snapshot, error) {
	if request.Difficulty == "" {
		request.Difficulty = s.defaults.Difficulty
	}
	if request.Housing == "" {
		request.Housing = s.defaults.Housing
	}
	seed := s.defaultSeed
	if request.Seed != nil {
		seed = *request.Seed
	}
	if seed == 0 {
		seed = uint64(s.clock.Now().UnixNano())
	}

	state, summary := s.builder.Build(request.Difficulty, request.Housing)
	engine := finance.NewEngine(state, s.builder.Rules(), utils.NewSeededRandom(seed), s.builder.Catalog())
	session := &Session{
		Id:        uuid.New(),
		Seed:      seed,
		CreatedAt: s.clock.Now(),
		Scenario:  summary,
		engine:    engine,
	}
	if err := s.repo.Store(ctx, session); err != nil {
		return Snapshot{}, fmt.Errorf("failed to store game: %w", err)
	}
	log.Infof("Created game %s (%s, %s, seed %d)", session.Id, summary.DifficultyKey, summary.HousingKey, seed)

	s.publish(ctx, event_bus.GameCreatedType, event_bus.GameCreated{
		GameId:        session.Id,
		DifficultyKey: summary.DifficultyKey,
		HousingKey:    summary.HousingKey,
		Seed:          seed,
	})

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot(), nil
}

func (s *ServiceImpl) GetGame(ctx context.Context) (Snapshot, error) {
	session, err := s.currentSession(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot(), nil
}

func (s *ServiceImpl) DeleteGame(ctx context.Context) (bool, error) {
	gameId, err := CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current game: %w", err)
	}
	return s.repo.Delete(ctx, gameId)
}

func (s *ServiceImpl) AssignPayment(ctx context.Context, method finance.Method, amount decimal.Decimal, obligationId string) (Snapshot, bool, error) {
	return s.mutate(ctx, func(e *finance.Engine) bool {
		_, ok := e.ApplyPayment(obligationId, amount, method)
		return ok
	})
}

func (s *ServiceImpl) UnassignPayment(ctx context.Context, paymentId uuid.UUID, obligationId string) (Snapshot, bool, error) {
	return s.mutate(ctx, func(e *finance.Engine) bool {
		return e.RemovePayment(paymentId, obligationId)
	})
}

func (s *ServiceImpl) ChangeHousing(ctx context.Context, housingKey string) (Snapshot, bool, error) {
	session, err := s.currentSession(ctx)
	if err != nil {
		return Snapshot{}, false, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if !session.engine.ChangeHousing(housingKey) {
		return session.snapshot(), false, nil
	}
	snapshot := session.snapshot()
	s.publish(ctx, event_bus.HousingChangedType, event_bus.HousingChanged{
		GameId:     snapshot.GameId,
		Round:      snapshot.State.RoundIndex,
		HousingKey: housingKey,
		Surcharge:  snapshot.State.Housing.Surcharge.String(),
	})
	return snapshot, true, nil
}

// WithdrawSavings withdraws amount, or the whole account balance when amount is nil.
func (s *ServiceImpl) WithdrawSavings(ctx context.Context, obligationId string, amount *decimal.Decimal) (Snapshot, bool, error) {
	return s.mutate(ctx, func(e *finance.Engine) bool {
		if amount == nil {
			_, ok := e.WithdrawAllSavings(obligationId)
			return ok
		}
		_, ok := e.WithdrawSavings(obligationId, *amount)
		return ok
	})
}

func (s *ServiceImpl) BorrowDebt(ctx context.Context, obligationId string) (Snapshot, bool, error) {
	return s.mutate(ctx, func(e *finance.Engine) bool {
		return e.BorrowAgainstDebt(obligationId)
	})
}

func (s *ServiceImpl) AdvanceRound(ctx context.Context) (Snapshot, finance.RoundSummary, error) {
	session, err := s.currentSession(ctx)
	if err != nil {
		return Snapshot{}, finance.RoundSummary{}, err
	}
	// Events go out under the session lock so subscribers see rounds in order.
	session.mu.Lock()
	defer session.mu.Unlock()
	summary := session.engine.AdvanceRound()
	session.lastRound = &summary

	log.Debugf("Game %s settled round %d", session.Id, summary.Round)
	s.publish(ctx, event_bus.RoundSettledType, event_bus.RoundSettled{GameId: session.Id, Summary: summary})
	if summary.Defeated() {
		log.Infof("Game %s lost in round %d: %s", session.Id, summary.Round, summary.Status)
		s.publish(ctx, event_bus.GameOverType, event_bus.GameOver{GameId: session.Id, Round: summary.Round, Status: summary.Status})
	}
	return session.snapshot(), summary, nil
}

func (s *ServiceImpl) mutate(ctx context.Context, op func(e *finance.Engine) bool) (Snapshot, bool, error) {
	session, err := s.currentSession(ctx)
	if err != nil {
		return Snapshot{}, false, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	ok := op(session.engine)
	return session.snapshot(), ok, nil
}

func (s *ServiceImpl) currentSession(ctx context.Context) (*Session, error) {
	gameId, err := CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	session, err := s.repo.Get(ctx, gameId)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", gameId, err)
	}
	return session, nil
}

// publish is best effort; subscriber failures never undo an engine transition.
// The transition already happened, so a cancelled request still publishes.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
