package evaluation

import (
	"fmt"
	"math"

	"loan-evaluator/domain"
)

// LoanSummary is the cost breakdown of an offer, rounded to cents.
type LoanSummary struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// ComputeMonthlyPayment returns the constant monthly installment that repays
// offer.Amount over offer.TermMonths. The result is not rounded.
//
// A rate of exactly zero divides the principal evenly. Any other rate uses the
// annuity formula, with (1+r)^n - 1 evaluated through Expm1/Log1p so tiny
// rates stay accurate.
func ComputeMonthlyPayment(offer domain.LoanPackageOffer) (float64, error) {
	if err := validateOffer(offer); err != nil {
		return 0, err
	}

	r := monthlyRate(offer.InterestRatePercent)
	n := float64(offer.TermMonths)

	if r == 0 {
		return offer.Amount / n, nil
	}

	growthMinusOne := math.Expm1(n * math.Log1p(r))
	payment := offer.Amount * r * (1 + growthMinusOne) / growthMinusOne
	if !isFinite(payment) {
		return 0, fmt.Errorf("%w: payment overflows for rate %v over %d months", domain.ErrInvalidInput, offer.InterestRatePercent, offer.TermMonths)
	}
	return payment, nil
}

// Summarize computes payment, total paid and interest for an offer.
func Summarize(offer domain.LoanPackageOffer) (LoanSummary, error) {
	payment, err := ComputeMonthlyPayment(offer)
	if err != nil {
		return LoanSummary{}, err
	}

	total := payment * float64(offer.TermMonths)
	return LoanSummary{
		MonthlyPayment: RoundCurrency(payment),
		TotalPayment:   RoundCurrency(total),
		TotalInterest:  RoundCurrency(total - offer.Amount),
	}, nil
}

func monthlyRate(annualPercent float64) float64 {
	return (annualPercent / 100) / monthsPerYear
}

func validateOffer(offer domain.LoanPackageOffer) error {
	switch {
	case !isFinite(offer.Amount) || offer.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive, got %v", domain.ErrInvalidInput, offer.Amount)
	case !isFinite(offer.InterestRatePercent) || offer.InterestRatePercent < 0:
		return fmt.Errorf("%w: interest rate must be non-negative, got %v", domain.ErrInvalidInput, offer.InterestRatePercent)
	case offer.TermMonths < 1:
		return fmt.Errorf("%w: term must be at least 1 month, got %d", domain.ErrInvalidInput, offer.TermMonths)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
