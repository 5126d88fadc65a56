package report

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/klokku/finance-kanban/internal/event_bus"
	"github.com/klokku/finance-kanban/pkg/finance"
	log "github.com/sirupsen/logrus"
)

type HousingMove struct {
	Round      int
	HousingKey string
	Surcharge  string
}

// GameRecord is what History knows about one game. Rounds are kept in
// settlement order.
type GameRecord struct {
	GameId        uuid.UUID
	DifficultyKey string
	HousingKey    string
	Seed          uint64
	Rounds        []finance.RoundSummary
	HousingMoves  []HousingMove
	// Outcome is the defeat status, empty while the game is still being won.
	Outcome      string
	OutcomeRound *int
}

// History keeps the settled rounds and milestones of every game.
type History struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*GameRecord
}

func NewHistory() *History {
	return &History{games: map[uuid.UUID]*GameRecord{}}
}

// Subscribe records game events published on the bus.
func (h *History) Subscribe(eventBus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribers := []func(){
		event_bus.SubscribeTyped(eventBus, event_bus.GameCreatedType, func(e event_bus.EventT[event_bus.GameCreated]) error {
			h.Start(e.Data.GameId, e.Data.DifficultyKey, e.Data.HousingKey, e.Data.Seed)
			return nil
		}),
		event_bus.SubscribeTyped(eventBus, event_bus.RoundSettledType, func(e event_bus.EventT[event_bus.RoundSettled]) error {
			h.Record(e.Data.GameId, e.Data.Summary)
			return nil
		}),
		event_bus.SubscribeTyped(eventBus, event_bus.HousingChangedType, func(e event_bus.EventT[event_bus.HousingChanged]) error {
			h.RecordMove(e.Data.GameId, HousingMove{Round: e.Data.Round, HousingKey: e.Data.HousingKey, Surcharge: e.Data.Surcharge})
			return nil
		}),
		event_bus.SubscribeTyped(eventBus, event_bus.GameOverType, func(e event_bus.EventT[event_bus.GameOver]) error {
			h.RecordOutcome(e.Data.GameId, e.Data.Round, e.Data.Status)
			return nil
		}),
	}
	return func() {
		for _, u := range unsubscribers {
			u()
		}
	}
}

func (h *History) Start(gameId uuid.UUID, difficultyKey, housingKey string, seed uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	record := h.record(gameId)
	record.DifficultyKey = difficultyKey
	record.HousingKey = housingKey
	record.Seed = seed
}

func (h *History) Record(gameId uuid.UUID, summary finance.RoundSummary) {
	h.mu.Lock()
	defer h.mu.Unlock()
	record := h.record(gameId)
	record.Rounds = append(record.Rounds, summary)
	log.Tracef("recorded round %d of game %s", summary.Round, gameId)
}

func (h *History) RecordMove(gameId uuid.UUID, move HousingMove) {
	h.mu.Lock()
	defer h.mu.Unlock()
	record := h.record(gameId)
	record.HousingMoves = append(record.HousingMoves, move)
}

// RecordOutcome keeps the first defeat of a game.
func (h *History) RecordOutcome(gameId uuid.UUID, round int, status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	record := h.record(gameId)
	if record.OutcomeRound != nil {
		return
	}
	record.Outcome = status
	record.OutcomeRound = &round
}

// Rounds returns a copy of the recorded rounds. Unknown games have no rounds.
func (h *History) Rounds(gameId uuid.UUID) []finance.RoundSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	record, ok := h.games[gameId]
	if !ok {
		return nil
	}
	return slices.Clone(record.Rounds)
}

// Game returns a copy of everything recorded for the game.
func (h *History) Game(gameId uuid.UUID) (GameRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	record, ok := h.games[gameId]
	if !ok {
		return GameRecord{GameId: gameId}, false
	}
	c := *record
	c.Rounds = slices.Clone(record.Rounds)
	c.HousingMoves = slices.Clone(record.HousingMoves)
	if record.OutcomeRound != nil {
		round := *record.OutcomeRound
		c.OutcomeRound = &round
	}
	return c, true
}

// record must be called with h.mu held.
func (h *History) record(gameId uuid.UUID) *GameRecord {
	record, ok := h.games[gameId]
	if !ok {
		record = &GameRecord{GameId: gameId}
		h.games[gameId] = record
	}
	return record
}
