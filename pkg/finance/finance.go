package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryRent    Category = "rent"
	CategorySavings Category = "savings"
	CategoryDebt    Category = "debt"
	CategoryMisc    Category = "misc"
)

type Status string

const (
	StatusFixed       Status = "fixed"
	StatusVariable    Status = "variable"
	StatusGoal        Status = "goal"
	StatusEvent       Status = "event"
	StatusOpportunity Status = "opportunity"
)

// Frequency is expressed in rounds. Random obligations use a negative value.
type Frequency int

const (
	EveryRound      Frequency = 1
	EveryOtherRound Frequency = 2
	Random          Frequency = -1
)

type Method string

const (
	Cash   Method = "cash"
	Credit Method = "credit"
)

type Payment struct {
	Id     uuid.UUID
	Value  decimal.Decimal
	Method Method
	// Applied is the part of Value that moved a running balance. For debt
	// payments this is the reduction actually taken off DebtBalance.
	Applied decimal.Decimal
}

type Obligation struct {
	Id        string
	Title     string
	Amount    decimal.Decimal
	Category  Category
	Status    Status
	Frequency Frequency
	Payments  []Payment
	IsActive  bool
	// AccountBalance is a running balance for savings and debt obligations,
	// independent of the payments made in the current round.
	AccountBalance   decimal.Decimal
	LastSettledRound *int
	// RuleKey selects the random activation rule, empty means the default rule.
	RuleKey string
	DueWeek int
}

// Paid is the sum of all payments assigned this round.
func (o Obligation) Paid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Payments {
		total = total.Add(p.Value)
	}
	return total
}

func (o Obligation) Satisfied() bool {
	return o.Paid().GreaterThanOrEqual(o.Amount)
}

func (o Obligation) HasCreditPayment() bool {
	for _, p := range o.Payments {
		if p.Method == Credit {
			return true
		}
	}
	return false
}

// tracksBalance reports whether the obligation is a running account rather
// than a bill settled each round.
func (o Obligation) tracksBalance() bool {
	return o.Category == CategorySavings || o.Category == CategoryDebt
}

// Profile holds the scenario figures the engine needs after the build.
type Profile struct {
	DifficultyKey   string
	Paycheck        decimal.Decimal
	MonthlyTakeHome decimal.Decimal
}

// Housing tracks rent changes within a round. BaseKey is the housing the round
// started with; changing back to it is free.
type Housing struct {
	CurrentKey string
	BaseKey    string
	BaseRent   decimal.Decimal
	Surcharge  decimal.Decimal
}

type FinanceState struct {
	RoundIndex        int
	CurrentWeek       int
	CashOnHand        decimal.Decimal
	CreditLimit       decimal.Decimal
	CreditUsed        decimal.Decimal
	Obligations       []Obligation
	SavingsBalance    decimal.Decimal
	InvestmentBalance decimal.Decimal
	QualityOfLife     int
	DebtBalance       decimal.Decimal
	CreditScore       int

	Profile Profile
	Housing Housing
	// RandomCounts counts activations of random obligations by obligation id.
	RandomCounts map[string]int
}

func (s FinanceState) CreditRemaining() decimal.Decimal {
	return decimal.Max(s.CreditLimit.Sub(s.CreditUsed), decimal.Zero)
}

// Obligation returns a copy of the obligation with the given id.
func (s FinanceState) Obligation(id string) (Obligation, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Obligation{}, false
	}
	return s.Obligations[idx], true
}

func (s FinanceState) indexOf(id string) int {
	for i := range s.Obligations {
		if s.Obligations[i].Id == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so snapshots handed to callers never alias engine state.
func (s FinanceState) Clone() FinanceState {
	c := s
	c.Obligations = make([]Obligation, len(s.Obligations))
	for i, o := range s.Obligations {
		o.Payments = append([]Payment(nil), o.Payments...)
		if o.LastSettledRound != nil {
			r := *o.LastSettledRound
			o.LastSettledRound = &r
		}
		c.Obligations[i] = o
	}
	c.RandomCounts = make(map[string]int, len(s.RandomCounts))
	for k, v := range s.RandomCounts {
		c.RandomCounts[k] = v
	}
	return c
}

const (
	StatusQoLCollapsed = "QoL collapsed"
	StatusDebtExceeded = "debt exceeded annual salary"
	MinCreditScore     = 300
	MaxCreditScore     = 850
)

// RoundSummary reports everything a round settlement changed.
type RoundSummary struct {
	Round                int
	PaidFixed            int
	UnpaidFixed          int
	PaidVariable         int
	UnpaidVariable       int
	PaidGoals            int
	TotalSpent           decimal.Decimal
	QolDelta             int
	QualityOfLife        int
	CreditInterest       decimal.Decimal
	LateFees             decimal.Decimal
	DebtDelta            decimal.Decimal
	DebtBalance          decimal.Decimal
	CreditScoreDelta     int
	CreditScore          int
	SavingsInterest      decimal.Decimal
	LeftoverCash         decimal.Decimal
	InvestmentReturnRate float64
	InvestmentDelta      decimal.Decimal
	SavingsBalance       decimal.Decimal
	InvestmentBalance    decimal.Decimal
	Status               string
}

// Defeated reports whether the round ended in a terminal condition.
func (r RoundSummary) Defeated() bool {
	return r.Status != ""
}
