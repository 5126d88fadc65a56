package scenario

import (
	"fmt"

	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Summary describes a built scenario for the setup and report screens.
type Summary struct {
	DifficultyKey      string
	HousingKey         string
	DifficultyLabel    string
	HousingLabel       string
	Paycheck           decimal.Decimal
	MonthlyTakeHome    decimal.Decimal
	RentAmount         decimal.Decimal
	RentPercentage     int
	QolBaseline        int
	CreditScore        int
	CreditLimit        decimal.Decimal
	StartingDebt       decimal.Decimal
	Narrative          string
	HousingDescription string
}

type Builder struct {
	catalog *Catalog
	rules   finance.Rules
}

// NewBuilder merges the catalog's random rules into rules and validates the
// result. This is the only place rules are checked.
func NewBuilder(catalog *Catalog, rules finance.Rules) (*Builder, error) {
	merged := rules
	merged.RandomRules = catalog.RandomRules()
	for k, v := range rules.RandomRules {
		merged.RandomRules[k] = v
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create scenario builder: %w", err)
	}
	return &Builder{catalog: catalog, rules: merged}, nil
}

func (b *Builder) Rules() finance.Rules {
	return b.rules
}

func (b *Builder) Catalog() *Catalog {
	return b.catalog
}

// Build derives the initial state for a difficulty and housing pair. Unknown
// keys fall back to the defaults.
func (b *Builder) Build(difficultyKey, housingKey string) (finance.FinanceState, Summary) {
	difficulty, ok := b.catalog.Difficulty(difficultyKey)
	if !ok {
		log.Debugf("unknown difficulty %q, using %s", difficultyKey, DefaultDifficulty)
		difficulty, _ = b.catalog.Difficulty(DefaultDifficulty)
	}
	housing, ok := b.catalog.Housing(housingKey)
	if !ok {
		log.Debugf("unknown housing %q, using %s", housingKey, DefaultHousing)
		housing, _ = b.catalog.Housing(DefaultHousing)
	}

	obligations := make([]finance.Obligation, 0, len(b.catalog.obligations))
	for _, t := range b.catalog.obligations {
		o := finance.Obligation{
			Id:             t.Id,
			Title:          t.Title,
			Amount:         t.Amount,
			Category:       t.Category,
			Status:         t.Status,
			Frequency:      t.Frequency,
			RuleKey:        t.RuleKey,
			DueWeek:        t.DueWeek,
			AccountBalance: decimal.Zero,
		}
		switch t.Category {
		case finance.CategoryRent:
			o.Amount = housing.Rent
			o.Title = finance.RentTitle(housing.Label)
		case finance.CategoryDebt:
			o.AccountBalance = difficulty.StartingDebt
		}
		obligations = append(obligations, o)
	}

	state := finance.FinanceState{
		RoundIndex:        0,
		CurrentWeek:       1,
		CashOnHand:        difficulty.StartingBalance,
		CreditLimit:       difficulty.CreditLimit,
		CreditUsed:        decimal.Zero,
		Obligations:       obligations,
		SavingsBalance:    decimal.Zero,
		InvestmentBalance: decimal.Zero,
		QualityOfLife:     difficulty.QualityOfLife + housing.QolDelta,
		DebtBalance:       difficulty.StartingDebt,
		CreditScore:       difficulty.CreditScore,
		Profile: finance.Profile{
			DifficultyKey:   difficulty.Key,
			Paycheck:        difficulty.Paycheck,
			MonthlyTakeHome: difficulty.MonthlyTakeHome,
		},
		Housing: finance.Housing{
			CurrentKey: housing.Key,
			BaseKey:    housing.Key,
			BaseRent:   housing.Rent,
			Surcharge:  decimal.Zero,
		},
		RandomCounts: map[string]int{},
	}

	summary := Summary{
		DifficultyKey:      difficulty.Key,
		HousingKey:         housing.Key,
		DifficultyLabel:    difficulty.Label,
		HousingLabel:       housing.Label,
		Paycheck:           difficulty.Paycheck,
		MonthlyTakeHome:    difficulty.MonthlyTakeHome,
		RentAmount:         housing.Rent,
		RentPercentage:     RentPercentage(housing.Rent, difficulty.MonthlyTakeHome),
		QolBaseline:        difficulty.QualityOfLife + housing.QolDelta,
		CreditScore:        difficulty.CreditScore,
		CreditLimit:        difficulty.CreditLimit,
		StartingDebt:       difficulty.StartingDebt,
		Narrative:          difficulty.Narrative,
		HousingDescription: housing.Description,
	}
	return state, summary
}

// RentPercentage is rent as a whole percentage of monthly take-home pay.
func RentPercentage(rent, monthlyTakeHome decimal.Decimal) int {
	if !monthlyTakeHome.IsPositive() {
		return 0
	}
	return int(rent.Div(monthlyTakeHome).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
