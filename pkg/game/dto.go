package game

import (
	"time"

	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/shopspring/decimal"
)

type GameDTO struct {
	Id        string           `json:"id"`
	Seed      uint64           `json:"seed"`
	CreatedAt time.Time        `json:"createdAt"`
	Scenario  ScenarioDTO      `json:"scenario"`
	State     StateDTO         `json:"state"`
	LastRound *RoundSummaryDTO `json:"lastRound,omitempty"`
}

type ScenarioDTO struct {
	DifficultyKey      string          `json:"difficultyKey"`
	HousingKey         string          `json:"housingKey"`
	DifficultyLabel    string          `json:"difficultyLabel"`
	HousingLabel       string          `json:"housingLabel"`
	Paycheck           decimal.Decimal `json:"paycheckAmount"`
	MonthlyTakeHome    decimal.Decimal `json:"monthlyTakeHome"`
	RentAmount         decimal.Decimal `json:"rentAmount"`
	RentPercentage     int             `json:"rentPercentage"`
	QolBaseline        int             `json:"qolBaseline"`
	CreditScore        int             `json:"creditScore"`
	CreditLimit        decimal.Decimal `json:"creditLimit"`
	StartingDebt       decimal.Decimal `json:"startingDebt"`
	Narrative          string          `json:"narrative,omitempty"`
	HousingDescription string          `json:"housingDescription,omitempty"`
}

type StateDTO struct {
	RoundIndex        int             `json:"roundIndex"`
	CurrentWeek       int             `json:"currentWeek"`
	CashOnHand        decimal.Decimal `json:"cashOnHand"`
	CreditLimit       decimal.Decimal `json:"creditLimit"`
	CreditUsed        decimal.Decimal `json:"creditUsed"`
	CreditRemaining   decimal.Decimal `json:"creditRemaining"`
	SavingsBalance    decimal.Decimal `json:"savingsBalance"`
	InvestmentBalance decimal.Decimal `json:"investmentBalance"`
	QualityOfLife     int             `json:"qualityOfLife"`
	DebtBalance       decimal.Decimal `json:"debtBalance"`
	CreditScore       int             `json:"creditScore"`
	HousingKey        string          `json:"housingKey"`
	RentSurcharge     decimal.Decimal `json:"rentSurcharge"`
	Obligations       []ObligationDTO `json:"obligations"`
}

type ObligationDTO struct {
	Id               string          `json:"id"`
	Title            string          `json:"title"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category"`
	Status           string          `json:"status"`
	Frequency        int             `json:"frequency"`
	IsActive         bool            `json:"isActive"`
	Paid             decimal.Decimal `json:"paid"`
	Satisfied        bool            `json:"satisfied"`
	AccountBalance   decimal.Decimal `json:"accountBalance"`
	LastSettledRound *int            `json:"lastSettledRound,omitempty"`
	DueWeek          int             `json:"dueWeek,omitempty"`
	Payments         []PaymentDTO    `json:"payments"`
}

type PaymentDTO struct {
	Id     string          `json:"id"`
	Value  decimal.Decimal `json:"value"`
	Method string          `json:"method"`
}

type RoundSummaryDTO struct {
	Round                int             `json:"round"`
	PaidFixed            int             `json:"paidFixed"`
	UnpaidFixed          int             `json:"unpaidFixed"`
	PaidVariable         int             `json:"paidVariable"`
	UnpaidVariable       int             `json:"unpaidVariable"`
	PaidGoals            int             `json:"paidGoals"`
	TotalSpent           decimal.Decimal `json:"totalSpent"`
	QolDelta             int             `json:"qolDelta"`
	QualityOfLife        int             `json:"qualityOfLife"`
	CreditInterest       decimal.Decimal `json:"creditInterest"`
	LateFees             decimal.Decimal `json:"lateFees"`
	DebtDelta            decimal.Decimal `json:"debtDelta"`
	DebtBalance          decimal.Decimal `json:"debtBalance"`
	CreditScoreDelta     int             `json:"creditScoreDelta"`
	CreditScore          int             `json:"creditScore"`
	SavingsInterest      decimal.Decimal `json:"savingsInterest"`
	LeftoverCash         decimal.Decimal `json:"leftoverCash"`
	InvestmentReturnRate float64         `json:"investmentReturnRate"`
	InvestmentDelta      decimal.Decimal `json:"investmentDelta"`
	SavingsBalance       decimal.Decimal `json:"savingsBalance"`
	InvestmentBalance    decimal.Decimal `json:"investmentBalance"`
	Status               string          `json:"status,omitempty"`
}

type ActionResponseDTO struct {
	Applied bool    `json:"applied"`
	Game    GameDTO `json:"game"`
}

type RoundResponseDTO struct {
	Round RoundSummaryDTO `json:"round"`
	Game  GameDTO         `json:"game"`
}

func SnapshotToDTO(s Snapshot) GameDTO {
	dto := GameDTO{
		Id:        s.GameId.String(),
		Seed:      s.Seed,
		CreatedAt: s.CreatedAt,
		Scenario: ScenarioDTO{
			DifficultyKey:      s.Scenario.DifficultyKey,
			HousingKey:         s.Scenario.HousingKey,
			DifficultyLabel:    s.Scenario.DifficultyLabel,
			HousingLabel:       s.Scenario.HousingLabel,
			Paycheck:           s.Scenario.Paycheck,
			MonthlyTakeHome:    s.Scenario.MonthlyTakeHome,
			RentAmount:         s.Scenario.RentAmount,
			RentPercentage:     s.Scenario.RentPercentage,
			QolBaseline:        s.Scenario.QolBaseline,
			CreditScore:        s.Scenario.CreditScore,
			CreditLimit:        s.Scenario.CreditLimit,
			StartingDebt:       s.Scenario.StartingDebt,
			Narrative:          s.Scenario.Narrative,
			HousingDescription: s.Scenario.HousingDescription,
		},
		State: StateToDTO(s.State),
	}
	if s.LastRound != nil {
		round := RoundSummaryToDTO(*s.LastRound)
		dto.LastRound = &round
	}
	return dto
}

func StateToDTO(state finance.FinanceState) StateDTO {
	obligations := make([]ObligationDTO, 0, len(state.Obligations))
	for _, o := range state.Obligations {
		payments := make([]PaymentDTO, 0, len(o.Payments))
		for _, p := range o.Payments {
			payments = append(payments, PaymentDTO{Id: p.Id.String(), Value: p.Value, Method: string(p.Method)})
		}
		obligations = append(obligations, ObligationDTO{
			Id:               o.Id,
			Title:            o.Title,
			Amount:           o.Amount,
			Category:         string(o.Category),
			Status:           string(o.Status),
			Frequency:        int(o.Frequency),
			IsActive:         o.IsActive,
			Paid:             o.Paid(),
			Satisfied:        o.Satisfied(),
			AccountBalance:   o.AccountBalance,
			LastSettledRound: o.LastSettledRound,
			DueWeek:          o.DueWeek,
			Payments:         payments,
		})
	}
	return StateDTO{
		RoundIndex:        state.RoundIndex,
		CurrentWeek:       state.CurrentWeek,
		CashOnHand:        state.CashOnHand,
		CreditLimit:       state.CreditLimit,
		CreditUsed:        state.CreditUsed,
		CreditRemaining:   state.CreditRemaining(),
		SavingsBalance:    state.SavingsBalance,
		InvestmentBalance: state.InvestmentBalance,
		QualityOfLife:     state.QualityOfLife,
		DebtBalance:       state.DebtBalance,
		CreditScore:       state.CreditScore,
		HousingKey:        state.Housing.CurrentKey,
		RentSurcharge:     state.Housing.Surcharge,
		Obligations:       obligations,
	}
}

func RoundSummaryToDTO(r finance.RoundSummary) RoundSummaryDTO {
	return RoundSummaryDTO{
		Round:                r.Round,
		PaidFixed:            r.PaidFixed,
		UnpaidFixed:          r.UnpaidFixed,
		PaidVariable:         r.PaidVariable,
		UnpaidVariable:       r.UnpaidVariable,
		PaidGoals:            r.PaidGoals,
		TotalSpent:           r.TotalSpent,
		QolDelta:             r.QolDelta,
		QualityOfLife:        r.QualityOfLife,
		CreditInterest:       r.CreditInterest,
		LateFees:             r.LateFees,
		DebtDelta:            r.DebtDelta,
		DebtBalance:          r.DebtBalance,
		CreditScoreDelta:     r.CreditScoreDelta,
		CreditScore:          r.CreditScore,
		SavingsInterest:      r.SavingsInterest,
		LeftoverCash:         r.LeftoverCash,
		InvestmentReturnRate: r.InvestmentReturnRate,
		InvestmentDelta:      r.InvestmentDelta,
		SavingsBalance:       r.SavingsBalance,
		InvestmentBalance:    r.InvestmentBalance,
		Status:               r.Status,
	}
}
