package finance

import (
	"github.com/klokku/finance-kanban/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// HousingOption is a housing tier the player can move to.
type HousingOption struct {
	Key         string
	Label       string
	Rent        decimal.Decimal
	QolDelta    int
	Description string
}

type HousingCatalog interface {
	Housing(key string) (HousingOption, bool)
}

// Engine owns a single FinanceState. It is a single-writer state machine and
// is not safe for concurrent use; callers serialise access.
type Engine struct {
	state   FinanceState
	rules   Rules
	rnd     utils.Random
	housing HousingCatalog
}

// NewEngine takes ownership of a freshly built state and schedules round 0.
// Payments present on the initial state are kept.
func NewEngine(initial FinanceState, rules Rules, rnd utils.Random, housing HousingCatalog) *Engine {
	e := &Engine{state: initial.Clone(), rules: rules, rnd: rnd, housing: housing}
	if e.state.RandomCounts == nil {
		e.state.RandomCounts = map[string]int{}
	}
	e.schedule(e.state.RoundIndex, false)
	log.Debugf("engine started at round %d with %d obligations", e.state.RoundIndex, len(e.state.Obligations))
	return e
}

// State returns a snapshot of the current state.
func (e *Engine) State() FinanceState {
	return e.state.Clone()
}

func (e *Engine) Rules() Rules {
	return e.rules
}

func (e *Engine) obligation(id string) *Obligation {
	idx := e.state.indexOf(id)
	if idx < 0 {
		return nil
	}
	return &e.state.Obligations[idx]
}
