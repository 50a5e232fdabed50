package evaluation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-evaluator/domain"
)

// Installment is one row of an amortization table.
type Installment struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// RoundCurrency rounds to cents, half away from zero.
func RoundCurrency(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Schedule builds the month-by-month amortization table in cents. The final
// installment absorbs rounding drift so the closing balance is exactly zero.
// Terms above MaxScheduleMonths and installments that round to zero cents are
// rejected.
func Schedule(offer domain.LoanPackageOffer) ([]Installment, error) {
	monthly, err := ComputeMonthlyPayment(offer)
	if err != nil {
		return nil, err
	}
	if offer.TermMonths > MaxScheduleMonths {
		return nil, fmt.Errorf("%w: schedule term %d exceeds %d months", domain.ErrInvalidInput, offer.TermMonths, MaxScheduleMonths)
	}

	rate := decimal.NewFromFloat(monthlyRate(offer.InterestRatePercent))
	payment := decimal.NewFromFloat(monthly).Round(2)
	if !payment.IsPositive() {
		return nil, fmt.Errorf("%w: installment of %v rounds to zero cents", domain.ErrInvalidInput, monthly)
	}
	balance := decimal.NewFromFloat(offer.Amount).Round(2)

	rows := make([]Installment, 0, offer.TermMonths)
	for month := 1; month <= offer.TermMonths; month++ {
		interest := balance.Mul(rate).Round(2)
		principal := payment.Sub(interest)
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		if month == offer.TermMonths || principal.GreaterThan(balance) {
			principal = balance
		}
		balance = balance.Sub(principal)

		rows = append(rows, Installment{
			Month:     month,
			Payment:   principal.Add(interest).InexactFloat64(),
			Principal: principal.InexactFloat64(),
			Interest:  interest.InexactFloat64(),
			Balance:   balance.InexactFloat64(),
		})

		if balance.IsZero() {
			break
		}
	}

	return rows, nil
}
