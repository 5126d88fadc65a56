package autoplay

import (
	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Strategy places the payments of a single round. It returns the number of
// payments the engine accepted.
type Strategy interface {
	PlayRound(engine *finance.Engine) int
}

var priority = []finance.Status{
	finance.StatusFixed,
	finance.StatusEvent,
	finance.StatusVariable,
	finance.StatusGoal,
	finance.StatusOpportunity,
}

// PriorityStrategy pays obligations in order of urgency with cash. Bills that
// cash cannot cover fall back to credit when UseCredit is set. Goals are never
// paid on credit.
type PriorityStrategy struct {
	UseCredit bool
}

func NewPriorityStrategy(useCredit bool) *PriorityStrategy {
	return &PriorityStrategy{UseCredit: useCredit}
}

func (s *PriorityStrategy) PlayRound(engine *finance.Engine) int {
	state := engine.State()
	cash := state.CashOnHand
	applied := 0

	pay := func(o finance.Obligation, value decimal.Decimal, method finance.Method) decimal.Decimal {
		p, ok := engine.ApplyPayment(o.Id, value, method)
		if !ok {
			return decimal.Zero
		}
		applied++
		if method == finance.Cash {
			cash = cash.Sub(p.Value)
		}
		return p.Value
	}

	for _, status := range priority {
		for _, o := range state.Obligations {
			if !o.IsActive || o.Status != status {
				continue
			}
			need := o.Amount.Sub(o.Paid())
			if o.Category == finance.CategoryDebt {
				need = decimal.Min(need, state.DebtBalance)
			}
			if !need.IsPositive() {
				continue
			}
			if cash.GreaterThanOrEqual(need) {
				pay(o, need, finance.Cash)
				continue
			}
			if !s.UseCredit || !creditable(o) {
				log.Tracef("autoplay skips %s: needs %s, has %s", o.Id, need, cash)
				continue
			}
			need = need.Sub(pay(o, need, finance.Credit))
			if need.IsPositive() && cash.GreaterThanOrEqual(need) {
				pay(o, need, finance.Cash)
			}
		}
	}
	return applied
}

func creditable(o finance.Obligation) bool {
	switch o.Category {
	case finance.CategorySavings, finance.CategoryDebt:
		return false
	}
	return o.Status != finance.StatusGoal && o.Status != finance.StatusOpportunity
}

// Simulate plays up to rounds rounds and settles each of them. It stops after
// the first defeated round.
func Simulate(engine *finance.Engine, strategy Strategy, rounds int) []finance.RoundSummary {
	summaries := make([]finance.RoundSummary, 0, rounds)
	for i := 0; i < rounds; i++ {
		strategy.PlayRound(engine)
		summary := engine.AdvanceRound()
		summaries = append(summaries, summary)
		if summary.Defeated() {
			log.Debugf("simulation ended in round %d: %s", summary.Round, summary.Status)
			break
		}
	}
	return summaries
}
