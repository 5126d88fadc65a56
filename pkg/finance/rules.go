package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rules holds every tunable constant of the engine. It is validated once when
// a scenario is built; engine operations rely on it being complete.
type Rules struct {
	HousingChangeFee decimal.Decimal
	BorrowChunk      decimal.Decimal
	// DebtBorrowCeiling caps DebtBalance for borrowing. Zero disables the cap.
	DebtBorrowCeiling        decimal.Decimal
	DefaultRandomProbability float64
	CreditInterestRate       decimal.Decimal
	LateFeePerFixed          decimal.Decimal
	SavingsInterestRate      decimal.Decimal
	InvestmentReturnMin      float64
	InvestmentReturnMax      float64
	DefeatDebtMonths         int
	WeeksPerRound            int

	GoalQol           int
	VariableQol       int
	UnpaidFixedQol    int
	UnpaidVariableQol int

	UnpaidFixedScore    int
	UnpaidVariableScore int
	CleanRoundScore     int

	RandomRules map[string]RandomRule
}

// RandomRule controls how often a random obligation appears. MaxPerYear of
// zero means uncapped.
type RandomRule struct {
	Probability float64
	MaxPerYear  int
}

func DefaultRules() Rules {
	return Rules{
		HousingChangeFee:         decimal.NewFromInt(200),
		BorrowChunk:              decimal.NewFromInt(200),
		DebtBorrowCeiling:        decimal.Zero,
		DefaultRandomProbability: 0.35,
		CreditInterestRate:       decimal.RequireFromString("0.02"),
		LateFeePerFixed:          decimal.NewFromInt(25),
		SavingsInterestRate:      decimal.RequireFromString("0.003"),
		InvestmentReturnMin:      -0.05,
		InvestmentReturnMax:      0.08,
		DefeatDebtMonths:         12,
		WeeksPerRound:            2,

		GoalQol:           2,
		VariableQol:       1,
		UnpaidFixedQol:    5,
		UnpaidVariableQol: 3,

		UnpaidFixedScore:    10,
		UnpaidVariableScore: 5,
		CleanRoundScore:     2,

		RandomRules: map[string]RandomRule{},
	}
}

var ErrInvalidRules = errors.New("invalid engine rules")

func (r Rules) Validate() error {
	var problems []error
	if r.HousingChangeFee.IsNegative() {
		problems = append(problems, errors.New("housing change fee must not be negative"))
	}
	if !r.BorrowChunk.IsPositive() {
		problems = append(problems, errors.New("borrow chunk must be positive"))
	}
	if r.DebtBorrowCeiling.IsNegative() {
		problems = append(problems, errors.New("debt borrow ceiling must not be negative"))
	}
	if !validProbability(r.DefaultRandomProbability) {
		problems = append(problems, fmt.Errorf("default random probability %v out of [0,1]", r.DefaultRandomProbability))
	}
	if r.CreditInterestRate.IsNegative() || r.LateFeePerFixed.IsNegative() || r.SavingsInterestRate.IsNegative() {
		problems = append(problems, errors.New("rates and fees must not be negative"))
	}
	if r.InvestmentReturnMin > r.InvestmentReturnMax {
		problems = append(problems, fmt.Errorf("investment return range [%v,%v] is inverted", r.InvestmentReturnMin, r.InvestmentReturnMax))
	}
	if r.DefeatDebtMonths <= 0 {
		problems = append(problems, errors.New("defeat debt months must be positive"))
	}
	if r.WeeksPerRound <= 0 {
		problems = append(problems, errors.New("weeks per round must be positive"))
	}
	for key, rule := range r.RandomRules {
		if !validProbability(rule.Probability) {
			problems = append(problems, fmt.Errorf("random rule %q probability %v out of [0,1]", key, rule.Probability))
		}
		if rule.MaxPerYear < 0 {
			problems = append(problems, fmt.Errorf("random rule %q has negative maxPerYear", key))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRules, errors.Join(problems...))
	}
	return nil
}

// randomRule resolves the rule of an obligation, falling back to the default probability.
func (r Rules) randomRule(key string) RandomRule {
	if rule, ok := r.RandomRules[key]; ok {
		return rule
	}
	return RandomRule{Probability: r.DefaultRandomProbability}
}

func validProbability(p float64) bool {
	return p >= 0 && p <= 1
}
