package scenario

import (
	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/shopspring/decimal"
)

const (
	DefaultDifficulty = "medium"
	DefaultHousing    = "sharedApartment"
)

type Difficulty struct {
	Key             string
	Label           string
	GrossAnnual     decimal.Decimal
	MonthlyTakeHome decimal.Decimal
	Paycheck        decimal.Decimal
	CreditLimit     decimal.Decimal
	StartingBalance decimal.Decimal
	QualityOfLife   int
	CreditScore     int
	StartingDebt    decimal.Decimal
	Narrative       string
}

// ObligationTemplate is the static row an obligation is created from.
type ObligationTemplate struct {
	Id        string
	Title     string
	Amount    decimal.Decimal
	Category  finance.Category
	Status    finance.Status
	Frequency finance.Frequency
	RuleKey   string
	DueWeek   int
}

// Catalog is the read-only lookup of everything a scenario can be built from.
type Catalog struct {
	difficulties map[string]Difficulty
	housing      map[string]finance.HousingOption
	// ordered keys for listing
	difficultyKeys []string
	housingKeys    []string
	obligations    []ObligationTemplate
	randomRules    map[string]finance.RandomRule
}

func (c *Catalog) Difficulty(key string) (Difficulty, bool) {
	d, ok := c.difficulties[key]
	return d, ok
}

func (c *Catalog) Housing(key string) (finance.HousingOption, bool) {
	h, ok := c.housing[key]
	return h, ok
}

func (c *Catalog) Difficulties() []Difficulty {
	result := make([]Difficulty, 0, len(c.difficultyKeys))
	for _, key := range c.difficultyKeys {
		result = append(result, c.difficulties[key])
	}
	return result
}

func (c *Catalog) HousingOptions() []finance.HousingOption {
	result := make([]finance.HousingOption, 0, len(c.housingKeys))
	for _, key := range c.housingKeys {
		result = append(result, c.housing[key])
	}
	return result
}

func (c *Catalog) Obligations() []ObligationTemplate {
	return append([]ObligationTemplate(nil), c.obligations...)
}

// RandomRules returns the activation rules keyed by rule key.
func (c *Catalog) RandomRules() map[string]finance.RandomRule {
	rules := make(map[string]finance.RandomRule, len(c.randomRules))
	for k, v := range c.randomRules {
		rules[k] = v
	}
	return rules
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func NewDefaultCatalog() *Catalog {
	c := &Catalog{
		difficulties: map[string]Difficulty{},
		housing:      map[string]finance.HousingOption{},
	}
	for _, d := range []Difficulty{
		{
			Key: "hard", Label: "Hard - Below Average",
			GrossAnnual: money(50000), MonthlyTakeHome: money(3125), Paycheck: money(1440),
			CreditLimit: money(1000), StartingBalance: money(1440),
			QualityOfLife: 48, CreditScore: 640, StartingDebt: money(500),
			Narrative: "Entry-level salary in an expensive college town.",
		},
		{
			Key: "medium", Label: "Medium - Around Average",
			GrossAnnual: money(75000), MonthlyTakeHome: money(4688), Paycheck: money(2160),
			CreditLimit: money(1500), StartingBalance: money(2160),
			QualityOfLife: 60, CreditScore: 690, StartingDebt: money(250),
			Narrative: "Solid mid-career salary.",
		},
		{
			Key: "easy", Label: "Easy - High Earner",
			GrossAnnual: money(100000), MonthlyTakeHome: money(6250), Paycheck: money(2880),
			CreditLimit: money(2000), StartingBalance: money(2880),
			QualityOfLife: 70, CreditScore: 720, StartingDebt: money(0),
			Narrative: "Well-paid tech/finance/management role.",
		},
	} {
		c.difficulties[d.Key] = d
		c.difficultyKeys = append(c.difficultyKeys, d.Key)
	}

	for _, h := range []finance.HousingOption{
		{Key: "sharedRoom", Label: "Shared Room", Rent: money(700), QolDelta: -2,
			Description: "House hacking to save cash; lower QoL baseline."},
		{Key: "sharedApartment", Label: "Shared Apartment", Rent: money(1000), QolDelta: 0,
			Description: "Your own room with roommates; neutral QoL."},
		{Key: "oneBed", Label: "1B1B", Rent: money(1600), QolDelta: 2,
			Description: "Comfortable solo living, modest QoL boost."},
		{Key: "luxury", Label: "Luxury Loft", Rent: money(2200), QolDelta: 4,
			Description: "Big QoL boost, but punishing if income dips."},
	} {
		c.housing[h.Key] = h
		c.housingKeys = append(c.housingKeys, h.Key)
	}

	// Rent amount is replaced by the chosen housing at build time.
	c.obligations = []ObligationTemplate{
		{Id: "T1", Title: "Rent Payment", Amount: money(100), Category: finance.CategoryRent,
			Status: finance.StatusFixed, Frequency: finance.EveryOtherRound, DueWeek: 3},
		{Id: "T2", Title: "Utilities", Amount: money(120), Category: finance.CategoryMisc,
			Status: finance.StatusFixed, Frequency: finance.EveryOtherRound, DueWeek: 2},
		{Id: "T3", Title: "Groceries", Amount: money(300), Category: finance.CategoryMisc,
			Status: finance.StatusVariable, Frequency: finance.EveryRound, DueWeek: 1},
		{Id: "T4", Title: "Internet Bill", Amount: money(70), Category: finance.CategoryMisc,
			Status: finance.StatusFixed, Frequency: finance.EveryOtherRound, DueWeek: 2},
		{Id: "T5", Title: "Phone Bill", Amount: money(55), Category: finance.CategoryMisc,
			Status: finance.StatusFixed, Frequency: finance.EveryOtherRound, DueWeek: 1},
		{Id: "S1", Title: "Savings Deposit", Amount: money(100), Category: finance.CategorySavings,
			Status: finance.StatusGoal, Frequency: finance.EveryRound},
		{Id: "D1", Title: "Debt Paydown", Amount: money(50), Category: finance.CategoryDebt,
			Status: finance.StatusFixed, Frequency: finance.EveryRound},
		{Id: "R1", Title: "Emergency Fund Top-up", Amount: money(150), Category: finance.CategoryMisc,
			Status: finance.StatusGoal, Frequency: finance.Random, RuleKey: "emergencyFund", DueWeek: 2},
		{Id: "R2", Title: "Car Breakdown", Amount: money(400), Category: finance.CategoryMisc,
			Status: finance.StatusEvent, Frequency: finance.Random, RuleKey: "carBreakdown", DueWeek: 1},
		{Id: "R3", Title: "Side Gig Gear", Amount: money(80), Category: finance.CategoryMisc,
			Status: finance.StatusOpportunity, Frequency: finance.Random, RuleKey: "sideGigOpportunity", DueWeek: 2},
		{Id: "R4", Title: "Tax Prep Fee", Amount: money(60), Category: finance.CategoryMisc,
			Status: finance.StatusEvent, Frequency: finance.Random, RuleKey: "taxRefund", DueWeek: 2},
	}

	c.randomRules = map[string]finance.RandomRule{
		"emergencyFund":      {Probability: 0.15, MaxPerYear: 3},
		"carBreakdown":       {Probability: 0.1, MaxPerYear: 2},
		"sideGigOpportunity": {Probability: 0.25, MaxPerYear: 4},
		"taxRefund":          {Probability: 0.2, MaxPerYear: 1},
	}
	return c
}
