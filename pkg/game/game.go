package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/klokku/finance-kanban/pkg/scenario"
)

// Session is one independent single-player game. The mutex serialises every
// engine call so no request observes a half-applied transition.
type Session struct {
	mu        sync.Mutex
	Id        uuid.UUID
	Seed      uint64
	CreatedAt time.Time
	Scenario  scenario.Summary
	engine    *finance.Engine
	lastRound *finance.RoundSummary
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	GameId    uuid.UUID
	Seed      uint64
	CreatedAt time.Time
	Scenario  scenario.Summary
	State     finance.FinanceState
	LastRound *finance.RoundSummary
}

// snapshot must be called with s.mu held.
func (s *Session) snapshot() Snapshot {
	var last *finance.RoundSummary
	if s.lastRound != nil {
		r := *s.lastRound
		last = &r
	}
	return Snapshot{
		GameId:    s.Id,
		Seed:      s.Seed,
		CreatedAt: s.CreatedAt,
		Scenario:  s.Scenario,
		State:     s.engine.State(),
		LastRound: last,
	}
}
