package finance

import (
	log "github.com/sirupsen/logrus"
)

// schedule decides which obligations are active in round n. On rollover
// (reset) every obligation loses its payments and the rent picks up any
// pending housing surcharge.
func (e *Engine) schedule(n int, reset bool) {
	for i := range e.state.Obligations {
		o := &e.state.Obligations[i]
		if reset {
			o.Payments = nil
			o.LastSettledRound = nil
			if o.Category == CategoryRent {
				o.Amount = e.state.Housing.BaseRent.Add(e.state.Housing.Surcharge)
			}
		}
		o.IsActive = e.isActive(*o, n)
	}
}

func (e *Engine) isActive(o Obligation, n int) bool {
	if o.tracksBalance() {
		return true
	}
	switch o.Frequency {
	case EveryOtherRound:
		return n%2 == 0
	case Random:
		return e.drawRandom(o)
	default:
		return true
	}
}

// drawRandom consumes exactly one sample per call. Once an obligation reached
// its cap it stays inactive for the rest of the session.
func (e *Engine) drawRandom(o Obligation) bool {
	rule := e.rules.randomRule(o.RuleKey)
	sample := e.rnd.Float64()
	count := e.state.RandomCounts[o.Id]
	if rule.MaxPerYear > 0 && count >= rule.MaxPerYear {
		return false
	}
	if sample >= rule.Probability {
		return false
	}
	e.state.RandomCounts[o.Id] = count + 1
	log.Debugf("random obligation %s activated (%d so far)", o.Id, count+1)
	return true
}
