package finance

import (
	"testing"

	"github.com/klokku/finance-kanban/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type housingCatalogStub map[string]HousingOption

func (s housingCatalogStub) Housing(key string) (HousingOption, bool) {
	h, ok := s[key]
	return h, ok
}

var housingStub = housingCatalogStub{
	"sharedApartment": {Key: "sharedApartment", Label: "Shared Apartment", Rent: d(1000), QolDelta: 0},
	"oneBed":          {Key: "oneBed", Label: "1B1B", Rent: d(1600), QolDelta: 2},
	"sharedRoom":      {Key: "sharedRoom", Label: "Shared Room", Rent: d(700), QolDelta: -2},
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertMoney(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, actual.Equal(d(expected)), "expected %d, got %s", expected, actual)
}

func testState() FinanceState {
	return FinanceState{
		CurrentWeek: 1,
		CashOnHand:  d(2160),
		CreditLimit: d(1500),
		CreditUsed:  decimal.Zero,
		Obligations: []Obligation{
			{Id: "T1", Title: "Rent (Shared Apartment)", Amount: d(1000), Category: CategoryRent, Status: StatusFixed, Frequency: EveryOtherRound},
			{Id: "T2", Title: "Utilities", Amount: d(120), Category: CategoryMisc, Status: StatusFixed, Frequency: EveryOtherRound},
			{Id: "T3", Title: "Groceries", Amount: d(300), Category: CategoryMisc, Status: StatusVariable, Frequency: EveryRound},
			{Id: "G1", Title: "Concert", Amount: d(100), Category: CategoryMisc, Status: StatusGoal, Frequency: EveryRound},
			{Id: "S1", Title: "Savings Deposit", Amount: d(100), Category: CategorySavings, Status: StatusGoal, Frequency: EveryRound},
			{Id: "D1", Title: "Debt Paydown", Amount: d(50), Category: CategoryDebt, Status: StatusFixed, Frequency: EveryRound, AccountBalance: d(250)},
		},
		SavingsBalance:    decimal.Zero,
		InvestmentBalance: decimal.Zero,
		QualityOfLife:     60,
		DebtBalance:       d(250),
		CreditScore:       690,
		Profile:           Profile{DifficultyKey: "medium", Paycheck: d(2160), MonthlyTakeHome: d(4688)},
		Housing:           Housing{CurrentKey: "sharedApartment", BaseKey: "sharedApartment", BaseRent: d(1000), Surcharge: decimal.Zero},
	}
}

func newTestEngine(state FinanceState, rnd utils.Random) *Engine {
	rules := DefaultRules()
	rules.RandomRules = map[string]RandomRule{"capped": {Probability: 0.5, MaxPerYear: 2}}
	return NewEngine(state, rules, rnd, housingStub)
}

func withRandomObligation(state FinanceState, ruleKey string) FinanceState {
	state.Obligations = append(state.Obligations,
		Obligation{Id: "R1", Title: "Car Breakdown", Amount: d(400), Category: CategoryMisc, Status: StatusEvent, Frequency: Random, RuleKey: ruleKey})
	return state
}

func TestNewEngine(t *testing.T) {
	t.Run("should schedule round zero without clearing payments", func(t *testing.T) {
		// given
		state := testState()
		state.Obligations[2].Payments = []Payment{{Value: d(10), Method: Cash}}

		// when
		engine := newTestEngine(state, &utils.MockRandom{})

		// then
		snapshot := engine.State()
		for _, o := range snapshot.Obligations {
			assert.True(t, o.IsActive, o.Id)
		}
		groceries, _ := snapshot.Obligation("T3")
		assert.Len(t, groceries.Payments, 1)
		assert.NotNil(t, snapshot.RandomCounts)
	})

	t.Run("should not alias the caller's state", func(t *testing.T) {
		// given
		state := testState()
		engine := newTestEngine(state, &utils.MockRandom{})

		// when
		state.Obligations[0].Title = "mutated"
		snapshot := engine.State()
		snapshot.Obligations[1].Title = "mutated too"

		// then
		rent, _ := engine.State().Obligation("T1")
		utilities, _ := engine.State().Obligation("T2")
		assert.Equal(t, "Rent (Shared Apartment)", rent.Title)
		assert.Equal(t, "Utilities", utilities.Title)
	})
}

func TestObligation_Paid(t *testing.T) {
	o := Obligation{Amount: d(100), Payments: []Payment{{Value: d(60)}, {Value: d(40)}}}

	assertMoney(t, 100, o.Paid())
	assert.True(t, o.Satisfied())
	assert.False(t, o.HasCreditPayment())
}

func TestFinanceState_CreditRemaining(t *testing.T) {
	state := FinanceState{CreditLimit: d(1000), CreditUsed: d(1200)}

	assert.True(t, state.CreditRemaining().IsZero())
}
