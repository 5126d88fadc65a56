package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ApplyPayment assigns value to the obligation using the given method.
// Rejected payments leave the state untouched and return false.
//
// Credit is a draw on the revolving line only: it raises CreditUsed and never
// touches CashOnHand. A credit payment covers as much of the unpaid part of the
// obligation as the remaining credit allows; value only has to be positive.
func (e *Engine) ApplyPayment(obligationId string, value decimal.Decimal, method Method) (Payment, bool) {
	o := e.obligation(obligationId)
	if o == nil {
		log.Debugf("payment rejected: obligation %s not found", obligationId)
		return Payment{}, false
	}
	if !o.IsActive {
		log.Debugf("payment rejected: obligation %s is not active", obligationId)
		return Payment{}, false
	}
	if !value.IsPositive() {
		log.Debugf("payment rejected: non-positive value %s", value)
		return Payment{}, false
	}

	switch method {
	case Cash:
		return e.applyCash(o, value)
	case Credit:
		return e.applyCredit(o)
	default:
		log.Debugf("payment rejected: unknown method %q", method)
		return Payment{}, false
	}
}

func (e *Engine) applyCash(o *Obligation, value decimal.Decimal) (Payment, bool) {
	if value.GreaterThan(e.state.CashOnHand) {
		log.Debugf("cash payment rejected on %s: %s exceeds cash on hand %s", o.Id, value, e.state.CashOnHand)
		return Payment{}, false
	}
	payment := Payment{Id: uuid.New(), Value: value, Method: Cash, Applied: decimal.Zero}

	switch o.Category {
	case CategorySavings:
		payment.Applied = value
		o.AccountBalance = o.AccountBalance.Add(value)
		e.state.SavingsBalance = e.state.SavingsBalance.Add(value)
	case CategoryDebt:
		reduction := decimal.Min(value, e.state.DebtBalance)
		payment.Applied = reduction
		e.state.DebtBalance = e.state.DebtBalance.Sub(reduction)
		o.AccountBalance = e.state.DebtBalance
	}

	e.state.CashOnHand = e.state.CashOnHand.Sub(value)
	o.Payments = append(o.Payments, payment)
	return payment, true
}

func (e *Engine) applyCredit(o *Obligation) (Payment, bool) {
	if o.tracksBalance() {
		log.Debugf("credit payment rejected on %s: %s accepts cash only", o.Id, o.Category)
		return Payment{}, false
	}
	if o.HasCreditPayment() {
		log.Debugf("credit payment rejected on %s: already carries a credit payment", o.Id)
		return Payment{}, false
	}
	remainingCredit := e.state.CreditRemaining()
	if !remainingCredit.IsPositive() {
		log.Debugf("credit payment rejected on %s: no credit remaining", o.Id)
		return Payment{}, false
	}
	remainingNeed := decimal.Max(o.Amount.Sub(o.Paid()), decimal.Zero)
	if !remainingNeed.IsPositive() {
		log.Debugf("credit payment rejected on %s: already paid in full", o.Id)
		return Payment{}, false
	}
	applied := decimal.Min(remainingCredit, remainingNeed)
	if !applied.IsPositive() {
		return Payment{}, false
	}

	payment := Payment{Id: uuid.New(), Value: applied, Method: Credit, Applied: applied}
	e.state.CreditUsed = e.state.CreditUsed.Add(applied)
	o.Payments = append(o.Payments, payment)
	return payment, true
}

// RemovePayment unassigns a payment and refunds its funding source. A savings
// deposit refunds at most what is still in the account.
func (e *Engine) RemovePayment(paymentId uuid.UUID, obligationId string) bool {
	o := e.obligation(obligationId)
	if o == nil {
		log.Debugf("payment removal rejected: obligation %s not found", obligationId)
		return false
	}
	idx := -1
	for i, p := range o.Payments {
		if p.Id == paymentId {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Debugf("payment removal rejected: payment %s not on %s", paymentId, obligationId)
		return false
	}
	payment := o.Payments[idx]
	o.Payments = append(o.Payments[:idx:idx], o.Payments[idx+1:]...)

	refund := payment.Value
	switch o.Category {
	case CategorySavings:
		// Withdrawn savings already went back to cash.
		refund = decimal.Min(payment.Applied, o.AccountBalance)
		o.AccountBalance = o.AccountBalance.Sub(refund)
		e.state.SavingsBalance = decimal.Max(e.state.SavingsBalance.Sub(refund), decimal.Zero)
	case CategoryDebt:
		e.state.DebtBalance = e.state.DebtBalance.Add(payment.Applied)
		o.AccountBalance = e.state.DebtBalance
	}

	switch payment.Method {
	case Cash:
		e.state.CashOnHand = e.state.CashOnHand.Add(refund)
	case Credit:
		e.state.CreditUsed = decimal.Max(e.state.CreditUsed.Sub(refund), decimal.Zero)
	}
	return true
}

// WithdrawSavings moves up to amount from the savings account back to cash and
// returns what was moved.
func (e *Engine) WithdrawSavings(obligationId string, amount decimal.Decimal) (decimal.Decimal, bool) {
	if !amount.IsPositive() {
		log.Debugf("withdrawal rejected: non-positive amount %s", amount)
		return decimal.Zero, false
	}
	o := e.obligation(obligationId)
	if o == nil || o.Category != CategorySavings {
		log.Debugf("withdrawal rejected: %s is not a savings obligation", obligationId)
		return decimal.Zero, false
	}
	if !o.AccountBalance.IsPositive() {
		return decimal.Zero, false
	}
	moved := decimal.Min(amount, o.AccountBalance)
	o.AccountBalance = o.AccountBalance.Sub(moved)
	e.state.SavingsBalance = decimal.Max(e.state.SavingsBalance.Sub(moved), decimal.Zero)
	e.state.CashOnHand = e.state.CashOnHand.Add(moved)
	return moved, true
}

// WithdrawAllSavings empties the savings account into cash.
func (e *Engine) WithdrawAllSavings(obligationId string) (decimal.Decimal, bool) {
	o := e.obligation(obligationId)
	if o == nil {
		return decimal.Zero, false
	}
	return e.WithdrawSavings(obligationId, o.AccountBalance)
}

// BorrowAgainstDebt adds one borrow chunk to both debt and cash. Borrowing is
// unlimited unless the rules set a debt ceiling.
func (e *Engine) BorrowAgainstDebt(obligationId string) bool {
	o := e.obligation(obligationId)
	if o == nil || o.Category != CategoryDebt {
		log.Debugf("borrow rejected: %s is not a debt obligation", obligationId)
		return false
	}
	chunk := e.rules.BorrowChunk
	ceiling := e.rules.DebtBorrowCeiling
	if ceiling.IsPositive() && e.state.DebtBalance.Add(chunk).GreaterThan(ceiling) {
		log.Debugf("borrow rejected: debt would exceed ceiling %s", ceiling)
		return false
	}
	e.state.DebtBalance = e.state.DebtBalance.Add(chunk)
	e.state.CashOnHand = e.state.CashOnHand.Add(chunk)
	o.AccountBalance = e.state.DebtBalance
	return true
}
