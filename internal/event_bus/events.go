package event_bus

import (
	"github.com/google/uuid"
	"github.com/klokku/finance-kanban/pkg/finance"
)

const (
	GameCreatedType    EventType = "game.created"
	RoundSettledType   EventType = "game.round_settled"
	GameOverType       EventType = "game.over"
	HousingChangedType EventType = "game.housing_changed"
)

type GameCreated struct {
	GameId        uuid.UUID
	DifficultyKey string
	HousingKey    string
	Seed          uint64
}

type RoundSettled struct {
	GameId  uuid.UUID
	Summary finance.RoundSummary
}

// GameOver is published for every round that ends in a defeat status.
type GameOver struct {
	GameId uuid.UUID
	Round  int
	Status string
}

type HousingChanged struct {
	GameId     uuid.UUID
	Round      int
	HousingKey string
	Surcharge  string
}
