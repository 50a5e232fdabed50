package evaluation

import (
	"fmt"
	"time"

	"loan-evaluator/domain"
)

// PortfolioSummary aggregates a set of active loans.
type PortfolioSummary struct {
	ActiveLoans               int                          `json:"active_loans"`
	TotalRemaining            float64                      `json:"total_remaining"`
	ByStatus                  map[domain.PaymentStatus]int `json:"by_status"`
	ByRisk                    map[domain.RiskLevel]int     `json:"by_risk"`
	AverageDefaultProbability float64                      `json:"average_default_probability"`
}

// SummarizePortfolio counts loans per payment status and risk bucket. Every
// bucket is present in the result even when its count is zero. Balances are
// checked with the RepaymentProgress rules, so a remaining amount above the
// principal is rejected. The first invalid loan aborts the summary.
func SummarizePortfolio(loans []domain.LoanSnapshot, now time.Time) (PortfolioSummary, error) {
	summary := PortfolioSummary{
		ByStatus: map[domain.PaymentStatus]int{
			domain.PaymentOverdue: 0,
			domain.PaymentDueSoon: 0,
			domain.PaymentOnTrack: 0,
		},
		ByRisk: map[domain.RiskLevel]int{
			domain.RiskLow:    0,
			domain.RiskMedium: 0,
			domain.RiskHigh:   0,
		},
	}

	var remaining, probabilities float64
	for i, loan := range loans {
		risk, err := ClassifyDefaultRisk(loan.DefaultProbability)
		if err != nil {
			return PortfolioSummary{}, fmt.Errorf("loan %d (%s): %w", i, loan.ID, err)
		}
		if _, err := RepaymentProgress(loan); err != nil {
			return PortfolioSummary{}, fmt.Errorf("loan %d (%s): %w", i, loan.ID, err)
		}
		summary.ByRisk[risk]++
		summary.ByStatus[ClassifyPaymentStatus(loan.NextPaymentDate, now)]++
		remaining += loan.AmountRemaining
		probabilities += loan.DefaultProbability
	}

	summary.ActiveLoans = len(loans)
	summary.TotalRemaining = RoundCurrency(remaining)
	if len(loans) > 0 {
		summary.AverageDefaultProbability = probabilities / float64(len(loans))
	}
	return summary, nil
}
