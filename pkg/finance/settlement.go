package finance

import (
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// AdvanceRound settles the current round, applies every delta to the state,
// checks the defeat conditions and schedules the next round. It never fails;
// all values are clamped. Defeat is only reported in the summary.
func (e *Engine) AdvanceRound() RoundSummary {
	s := &e.state
	summary := RoundSummary{Round: s.RoundIndex, TotalSpent: decimal.Zero}

	for i := range s.Obligations {
		o := &s.Obligations[i]
		if !o.IsActive || o.tracksBalance() {
			continue
		}
		paid := o.Paid()
		summary.TotalSpent = summary.TotalSpent.Add(paid)
		satisfied := paid.GreaterThanOrEqual(o.Amount)
		switch o.Status {
		case StatusFixed, StatusEvent:
			if satisfied {
				summary.PaidFixed++
			} else {
				summary.UnpaidFixed++
			}
		case StatusVariable:
			if satisfied {
				summary.PaidVariable++
			} else {
				summary.UnpaidVariable++
			}
		case StatusGoal, StatusOpportunity:
			if satisfied {
				summary.PaidGoals++
			}
		}
		round := s.RoundIndex
		o.LastSettledRound = &round
	}

	r := e.rules
	summary.QolDelta = r.GoalQol*summary.PaidGoals + r.VariableQol*summary.PaidVariable -
		r.UnpaidFixedQol*summary.UnpaidFixed - r.UnpaidVariableQol*summary.UnpaidVariable
	s.QualityOfLife = max(0, s.QualityOfLife+summary.QolDelta)
	summary.QualityOfLife = s.QualityOfLife

	outstandingCredit := s.CreditLimit.Sub(s.CreditRemaining())
	summary.CreditInterest = outstandingCredit.Mul(r.CreditInterestRate)
	summary.LateFees = r.LateFeePerFixed.Mul(decimal.NewFromInt(int64(summary.UnpaidFixed)))
	summary.DebtDelta = summary.CreditInterest.Add(summary.LateFees)
	s.DebtBalance = decimal.Max(decimal.Zero, s.DebtBalance.Add(summary.DebtDelta))
	summary.DebtBalance = s.DebtBalance
	for i := range s.Obligations {
		if s.Obligations[i].Category == CategoryDebt {
			s.Obligations[i].AccountBalance = s.DebtBalance
		}
	}

	scoreDelta := -r.UnpaidFixedScore*summary.UnpaidFixed - r.UnpaidVariableScore*summary.UnpaidVariable
	if summary.UnpaidFixed == 0 && summary.UnpaidVariable == 0 {
		scoreDelta += r.CleanRoundScore
	}
	previousScore := s.CreditScore
	s.CreditScore = min(MaxCreditScore, max(MinCreditScore, s.CreditScore+scoreDelta))
	summary.CreditScoreDelta = s.CreditScore - previousScore
	summary.CreditScore = s.CreditScore

	summary.SavingsInterest = s.SavingsBalance.Mul(r.SavingsInterestRate)
	summary.InvestmentReturnRate = r.InvestmentReturnMin + e.rnd.Float64()*(r.InvestmentReturnMax-r.InvestmentReturnMin)
	summary.InvestmentDelta = s.InvestmentBalance.Mul(decimal.NewFromFloat(summary.InvestmentReturnRate))
	summary.LeftoverCash = decimal.Max(s.CashOnHand, decimal.Zero)
	s.SavingsBalance = s.SavingsBalance.Add(summary.SavingsInterest).Add(summary.LeftoverCash)
	s.InvestmentBalance = s.InvestmentBalance.Add(summary.InvestmentDelta)
	s.CashOnHand = s.Profile.Paycheck
	summary.SavingsBalance = s.SavingsBalance
	summary.InvestmentBalance = s.InvestmentBalance

	summary.Status = e.terminalStatus()

	e.schedule(s.RoundIndex+1, true)
	s.Housing.Surcharge = decimal.Zero
	s.Housing.BaseKey = s.Housing.CurrentKey
	s.RoundIndex++
	s.CurrentWeek += r.WeeksPerRound

	log.Debugf("round %d settled: qol %+d, debt %s, score %+d, status %q",
		summary.Round, summary.QolDelta, summary.DebtDelta.StringFixed(2), summary.CreditScoreDelta, summary.Status)
	return summary
}

// terminalStatus reports the defeat condition, QoL taking priority over debt.
func (e *Engine) terminalStatus() string {
	if e.state.QualityOfLife <= 0 {
		return StatusQoLCollapsed
	}
	annual := e.state.Profile.MonthlyTakeHome.Mul(decimal.NewFromInt(int64(e.rules.DefeatDebtMonths)))
	if annual.IsPositive() && e.state.DebtBalance.GreaterThanOrEqual(annual) {
		return StatusDebtExceeded
	}
	return ""
}
