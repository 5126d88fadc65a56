package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type HistoryRenderer interface {
	RenderHistory(rounds []finance.RoundSummary) (string, error)
}

type CsvHistoryRendererImpl struct {
}

func NewCsvHistoryRenderer() *CsvHistoryRendererImpl {
	return &CsvHistoryRendererImpl{}
}

var historyHeader = []string{
	"Round", "Paid fixed", "Unpaid fixed", "Paid variable", "Unpaid variable", "Paid goals",
	"Total spent", "QoL", "QoL change", "Credit interest", "Late fees", "Debt", "Debt change",
	"Credit score", "Score change", "Savings interest", "Leftover cash", "Investment return",
	"Savings", "Investments", "Status",
}

func (t *CsvHistoryRendererImpl) RenderHistory(rounds []finance.RoundSummary) (string, error) {
	data := make([][]string, 0, len(rounds)+1)
	data = append(data, historyHeader)
	for _, r := range rounds {
		data = append(data, []string{
			strconv.Itoa(r.Round + 1),
			strconv.Itoa(r.PaidFixed),
			strconv.Itoa(r.UnpaidFixed),
			strconv.Itoa(r.PaidVariable),
			strconv.Itoa(r.UnpaidVariable),
			strconv.Itoa(r.PaidGoals),
			money(r.TotalSpent),
			strconv.Itoa(r.QualityOfLife),
			signed(r.QolDelta),
			money(r.CreditInterest),
			money(r.LateFees),
			money(r.DebtBalance),
			money(r.DebtDelta),
			strconv.Itoa(r.CreditScore),
			signed(r.CreditScoreDelta),
			money(r.SavingsInterest),
			money(r.LeftoverCash),
			strconv.FormatFloat(r.InvestmentReturnRate*100, 'f', 2, 64) + "%",
			money(r.SavingsBalance),
			money(r.InvestmentBalance),
			r.Status,
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func signed(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
